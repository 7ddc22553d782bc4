package response_models

import "shindan/internal/diagnosis"

// StepView is what a running session renders: the question on screen plus
// enough progress state for the front end to draw the bar and buttons.
type StepView struct {
	SessionID   string             `json:"session_id"`
	Mode        string             `json:"mode"`
	Status      string             `json:"status"`
	CurrentStep int                `json:"current_step"`
	TotalSteps  int                `json:"total_steps"`
	Question    diagnosis.Question `json:"question"`
	// Selected mirrors the authoritative multi-choice selection; highlight
	// state derives from this, never the other way around.
	Selected []string `json:"selected,omitempty"`
	// CanFinalize is true when the "view result" action is exposed.
	CanFinalize bool `json:"can_finalize"`
	// Notice carries transient storage warnings; the session itself is fine.
	Notice string `json:"notice,omitempty"`
}

// ResultView is the completed diagnosis. SavingsVisible is false when no
// plan matched the data bucket, in which case savings figures are suppressed.
type ResultView struct {
	SessionID        string                 `json:"session_id"`
	Plans            []diagnosis.PlanOption `json:"plans"`
	SavingsVisible   bool                   `json:"savings_visible"`
	MonthlySavings   int                    `json:"monthly_savings"`
	AnnualSavings    int                    `json:"annual_savings"`
	Emphasized       bool                   `json:"emphasized"`
	CashbackEligible bool                   `json:"cashback_eligible"`
	Advisories       []string               `json:"advisories"`
	Answers          AnswerSummary          `json:"answers"`
	Notice           string                 `json:"notice,omitempty"`
}

// AnswerSummary echoes the answers the result screen lists. Detailed-course
// fields are omitted for quick sessions.
type AnswerSummary struct {
	Carrier      string   `json:"carrier"`
	Wifi         string   `json:"wifi"`
	Price        int      `json:"price"`
	DataUsage    string   `json:"data_usage"`
	Members      int      `json:"members"`
	Satisfaction string   `json:"satisfaction"`
	CallTime     string   `json:"call_time,omitempty"`
	Location     string   `json:"location,omitempty"`
	Apps         []string `json:"apps,omitempty"`
	Contract     string   `json:"contract,omitempty"`
	Payment      string   `json:"payment,omitempty"`
	Needs        []string `json:"needs,omitempty"`
}

type ToggleView struct {
	QuestionID string   `json:"question_id"`
	Selected   []string `json:"selected"`
}

type HistoryItemView struct {
	Timestamp       string   `json:"timestamp"`
	Date            string   `json:"date"`
	Carrier         string   `json:"carrier"`
	Price           int      `json:"price"`
	DataUsage       string   `json:"data_usage"`
	Members         int      `json:"members"`
	Needs           []string `json:"needs,omitempty"`
	RecommendedPlan string   `json:"recommended_plan"`
}
