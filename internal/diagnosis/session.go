package diagnosis

// Mode selects which question sequence a session walks.
type Mode string

const (
	ModeQuick    Mode = "quick"    // 1分診断, 6 questions
	ModeDetailed Mode = "detailed" // 3分診断, 11 questions
)

func (m Mode) Valid() bool {
	return m == ModeQuick || m == ModeDetailed
}

// StepCount returns how many numbered steps the mode has.
func StepCount(mode Mode) int {
	if mode == ModeQuick {
		return 6
	}
	return len(detailedOrder)
}

// Status is the lifecycle phase of a session.
type Status string

const (
	StatusInProgress Status = "in_progress"
	// StatusAwaitingConfirmation means the questions are done (or the final
	// question is on screen) and the explicit "view result" action is exposed.
	StatusAwaitingConfirmation Status = "awaiting_final_confirmation"
	StatusCompleted            Status = "completed"
)

// Session is the single in-progress diagnosis. It is a plain value owned by
// its caller; nothing in this package keeps global session state.
type Session struct {
	ID      string     `json:"id"`
	Mode    Mode       `json:"mode"`
	Step    int        `json:"step"` // 1-based, within [1, StepCount(Mode)]
	Status  Status     `json:"status"`
	Answers *AnswerSet `json:"answers"`
	Result  *Result    `json:"result,omitempty"`
}
