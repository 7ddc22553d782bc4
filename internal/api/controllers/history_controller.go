package controllers

import (
	"github.com/gin-gonic/gin"

	"shindan/internal/models/response_models"
	"shindan/internal/services"
	"shindan/pkg/utils"
)

type HistoryController struct {
	persistence services.PersistenceServiceInterface
}

func NewHistoryController(persistence services.PersistenceServiceInterface) *HistoryController {
	return &HistoryController{persistence: persistence}
}

// ListHandler returns past diagnoses, newest first, at most ten.
func (hc *HistoryController) ListHandler(c *gin.Context) {
	entries, err := hc.persistence.LoadHistory(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	items := make([]response_models.HistoryItemView, 0, len(entries))
	for _, entry := range entries {
		items = append(items, response_models.HistoryItemView{
			Timestamp:       utils.FormatRFC3339JST(entry.Timestamp),
			Date:            entry.Date,
			Carrier:         entry.Carrier,
			Price:           entry.Price,
			DataUsage:       entry.DataUsage,
			Members:         entry.Members,
			Needs:           entry.Needs,
			RecommendedPlan: entry.RecommendedPlan,
		})
	}
	utils.RespondSuccess(c, items, "diagnosis history")
}

func (hc *HistoryController) ClearHandler(c *gin.Context) {
	if err := hc.persistence.ClearHistory(c.Request.Context()); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "history cleared")
}
