package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shindan/internal/diagnosis"
	"shindan/internal/models/request_models"
	"shindan/internal/models/response_models"
	"shindan/internal/services"
	"shindan/pkg/utils"
)

type DiagnosisController struct {
	service services.DiagnosisServiceInterface
}

func NewDiagnosisController(service services.DiagnosisServiceInterface) *DiagnosisController {
	return &DiagnosisController{service: service}
}

// viewPresenter implements diagnosis.Presenter for one request: it records
// what the engine asked to render and the controller turns that into the
// response body afterwards.
type viewPresenter struct {
	step       int
	totalSteps int
	question   diagnosis.Question

	result    diagnosis.Result
	answers   diagnosis.AnswerSet
	hasResult bool

	notice string
}

func (vp *viewPresenter) ShowStep(step, totalSteps int, question diagnosis.Question) {
	vp.step, vp.totalSteps, vp.question = step, totalSteps, question
}

func (vp *viewPresenter) ShowResult(result diagnosis.Result, answers diagnosis.AnswerSet) {
	vp.result, vp.answers, vp.hasResult = result, answers, true
}

func (vp *viewPresenter) ShowError(message string) {
	vp.notice = message
}

func (vp *viewPresenter) stepView(session *diagnosis.Session) response_models.StepView {
	view := response_models.StepView{
		SessionID:   session.ID,
		Mode:        string(session.Mode),
		Status:      string(session.Status),
		CurrentStep: vp.step,
		TotalSteps:  vp.totalSteps,
		Question:    vp.question,
		CanFinalize: session.Status == diagnosis.StatusAwaitingConfirmation,
		Notice:      vp.notice,
	}
	if vp.question.Kind == diagnosis.KindMultiChoice {
		snapshot := session.Answers.Snapshot()
		if vp.question.ID == diagnosis.QuestionNeeds {
			view.Selected = snapshot.Needs
		} else {
			view.Selected = snapshot.Apps
		}
	}
	return view
}

func (vp *viewPresenter) resultView(session *diagnosis.Session) response_models.ResultView {
	a := vp.answers
	summary := response_models.AnswerSummary{
		Carrier:      a.Carrier,
		Wifi:         a.Wifi,
		Price:        a.Price,
		DataUsage:    a.DataUsage,
		Members:      a.Members,
		Satisfaction: a.Satisfaction,
		Needs:        a.Needs,
	}
	if session.Mode == diagnosis.ModeDetailed {
		summary.CallTime = a.CallTime
		summary.Location = a.Location
		summary.Apps = a.Apps
		summary.Contract = a.Contract
		summary.Payment = a.Payment
	}
	return response_models.ResultView{
		SessionID:        session.ID,
		Plans:            vp.result.Plans,
		SavingsVisible:   len(vp.result.Plans) > 0,
		MonthlySavings:   vp.result.MonthlySavings,
		AnnualSavings:    vp.result.AnnualSavings,
		Emphasized:       vp.result.Emphasized,
		CashbackEligible: vp.result.CashbackEligible,
		Advisories:       vp.result.Advisories,
		Answers:          summary,
		Notice:           vp.notice,
	}
}

func (dc *DiagnosisController) StartHandler(c *gin.Context) {
	var req request_models.StartDiagnosisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	vp := &viewPresenter{}
	session, err := dc.service.Start(c.Request.Context(), diagnosis.Mode(req.Mode), req.Resume, vp)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, vp.stepView(session), "diagnosis started")
}

func (dc *DiagnosisController) CurrentHandler(c *gin.Context) {
	vp := &viewPresenter{}
	session, err := dc.service.Current(c.Request.Context(), c.Param("sessionId"), vp)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if vp.hasResult {
		utils.RespondSuccess(c, vp.resultView(session), "diagnosis result")
		return
	}
	utils.RespondSuccess(c, vp.stepView(session), "current step")
}

func (dc *DiagnosisController) SubmitHandler(c *gin.Context) {
	var req request_models.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	vp := &viewPresenter{}
	session, err := dc.service.Submit(c.Request.Context(), c.Param("sessionId"), req.QuestionID, req.Value, vp)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, vp.stepView(session), "answer recorded")
}

func (dc *DiagnosisController) ToggleHandler(c *gin.Context) {
	var req request_models.ToggleChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	selected, err := dc.service.Toggle(c.Request.Context(), c.Param("sessionId"), req.QuestionID, req.Choice)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.ToggleView{
		QuestionID: req.QuestionID,
		Selected:   selected,
	}, "selection updated")
}

func (dc *DiagnosisController) ContinueHandler(c *gin.Context) {
	vp := &viewPresenter{}
	session, err := dc.service.Continue(c.Request.Context(), c.Param("sessionId"), vp)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, vp.stepView(session), "advanced")
}

func (dc *DiagnosisController) BackHandler(c *gin.Context) {
	var req request_models.BackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	vp := &viewPresenter{}
	session, err := dc.service.Back(c.Request.Context(), c.Param("sessionId"), req.Step, vp)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, vp.stepView(session), "moved back")
}

func (dc *DiagnosisController) ResultHandler(c *gin.Context) {
	vp := &viewPresenter{}
	session, err := dc.service.Finalize(c.Request.Context(), c.Param("sessionId"), vp)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, vp.resultView(session), "diagnosis result")
}

func (dc *DiagnosisController) ResetHandler(c *gin.Context) {
	if err := dc.service.Reset(c.Request.Context(), c.Param("sessionId")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "session reset")
}
