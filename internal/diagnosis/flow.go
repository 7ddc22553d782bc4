package diagnosis

import (
	"shindan/pkg/utils"
)

// NewSession starts a diagnosis in the given mode at step 1 with a fresh
// answer set. The id is assigned by the caller owning session storage.
func NewSession(id string, mode Mode) (*Session, error) {
	if !mode.Valid() {
		return nil, utils.ErrInvalidMode
	}
	return &Session{
		ID:      id,
		Mode:    mode,
		Step:    1,
		Status:  StatusInProgress,
		Answers: NewAnswerSet(),
	}, nil
}

// CurrentQuestion returns the question at the session's current step.
func (s *Session) CurrentQuestion() Question {
	q, _ := QuestionAt(s.Mode, s.Step)
	return q
}

// Submit validates and records an answer for the question at the current
// step, then advances. Advancement rules:
//   - the satisfaction question is terminal in quick mode (the session moves
//     to AwaitingFinalConfirmation without leaving step 6) and auto-advances
//     in detailed mode;
//   - answering the final detailed question keeps the session at step 11;
//   - multi-choice steps are not submittable at all, they take ToggleChoice
//     and an explicit Continue, and Submit fails with ErrInvalidChoice.
//
// A validation failure leaves both the answer set and the state untouched.
func (s *Session) Submit(questionID string, raw interface{}) error {
	if s.Status != StatusInProgress && s.Status != StatusAwaitingConfirmation {
		return utils.ErrInvalidTransition
	}
	q, ok := QuestionAt(s.Mode, s.Step)
	if !ok {
		return utils.ErrInvalidStep
	}
	if q.ID != questionID {
		return utils.ErrWrongQuestion
	}
	if err := s.Answers.Set(questionID, raw); err != nil {
		return err
	}

	switch {
	case q.ID == QuestionSatisfaction && s.Mode == ModeQuick:
		s.Status = StatusAwaitingConfirmation
	case s.Step < StepCount(s.Mode):
		s.Step++
		s.applyStepPolicy()
	}
	return nil
}

// ToggleChoice flips a multi-choice selection. The needs question is
// reachable at any point of a live session (it shares the satisfaction
// screen); other multi-choice questions only while they are the current step.
// Toggles never advance the step.
func (s *Session) ToggleChoice(questionID, choice string) ([]string, error) {
	if s.Status != StatusInProgress && s.Status != StatusAwaitingConfirmation {
		return nil, utils.ErrInvalidTransition
	}
	if questionID != QuestionNeeds && s.CurrentQuestion().ID != questionID {
		return nil, utils.ErrWrongQuestion
	}
	return s.Answers.Toggle(questionID, choice)
}

// Continue is the explicit advance past the current step. It is accepted
// only on multi-choice screens, where individual toggles must not move the
// flow; every other step advances through Submit.
func (s *Session) Continue() error {
	if s.Status != StatusInProgress {
		return utils.ErrInvalidTransition
	}
	if s.CurrentQuestion().Kind != KindMultiChoice {
		return utils.ErrInvalidTransition
	}
	s.Step++
	s.applyStepPolicy()
	return nil
}

// Back moves to a prior step. Re-entering a terminal step re-applies its
// transition policy, so a quick session landing back on step 6 with a
// satisfaction answer re-exposes the result action.
func (s *Session) Back(step int) error {
	if s.Status != StatusInProgress && s.Status != StatusAwaitingConfirmation {
		return utils.ErrInvalidTransition
	}
	if step < 1 || step > s.Step {
		return utils.ErrInvalidStep
	}
	s.Step = step
	s.applyStepPolicy()
	return nil
}

// Finalize runs the recommendation engine over the accumulated answers and
// completes the session. It is only accepted from AwaitingFinalConfirmation
// with every mode-required answer present; on failure the session state is
// left exactly as it was.
func (s *Session) Finalize() (Result, error) {
	if s.Status != StatusAwaitingConfirmation {
		return Result{}, utils.ErrInvalidTransition
	}
	for _, id := range OrderedIDs(s.Mode) {
		if !s.Answers.Has(id) {
			return Result{}, utils.ErrIncompleteAnswers
		}
	}
	result := Recommend(s.Answers.Snapshot())
	s.Result = &result
	s.Status = StatusCompleted
	return result, nil
}

// applyStepPolicy settles the status after the step index changes. The last
// detailed step and the quick satisfaction step (once answered) expose the
// final confirmation; everything else is plain progress.
func (s *Session) applyStepPolicy() {
	switch {
	case s.Mode == ModeDetailed && s.Step == StepCount(ModeDetailed):
		s.Status = StatusAwaitingConfirmation
	case s.Mode == ModeQuick && s.Step == StepCount(ModeQuick) && s.Answers.Has(QuestionSatisfaction):
		s.Status = StatusAwaitingConfirmation
	default:
		s.Status = StatusInProgress
	}
}
