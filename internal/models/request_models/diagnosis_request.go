package request_models

import "github.com/go-playground/validator/v10"

var validate = validator.New()

type StartDiagnosisRequest struct {
	Mode string `json:"mode" validate:"required,oneof=quick detailed"`
	// Resume preloads the persisted answer snapshot instead of a clean set.
	Resume bool `json:"resume"`
}

func (r StartDiagnosisRequest) Validate() error {
	return validate.Struct(r)
}

// SubmitAnswerRequest carries one raw answer. Value stays untyped here; the
// answer store owns validation against the question's kind and bounds.
type SubmitAnswerRequest struct {
	QuestionID string      `json:"question_id" validate:"required"`
	Value      interface{} `json:"value" validate:"required"`
}

func (r SubmitAnswerRequest) Validate() error {
	return validate.Struct(r)
}

type ToggleChoiceRequest struct {
	QuestionID string `json:"question_id" validate:"required"`
	Choice     string `json:"choice" validate:"required"`
}

func (r ToggleChoiceRequest) Validate() error {
	return validate.Struct(r)
}

type BackRequest struct {
	Step int `json:"step" validate:"required,min=1,max=11"`
}

func (r BackRequest) Validate() error {
	return validate.Struct(r)
}
