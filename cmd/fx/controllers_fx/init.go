package controllers_fx

import (
	"go.uber.org/fx"

	"shindan/internal/api/controllers"
	"shindan/internal/services"
)

var Module = fx.Provide(
	provideDiagnosisController, provideHistoryController)

func provideDiagnosisController(service services.DiagnosisServiceInterface) *controllers.DiagnosisController {
	return controllers.NewDiagnosisController(service)
}

func provideHistoryController(persistence services.PersistenceServiceInterface) *controllers.HistoryController {
	return controllers.NewHistoryController(persistence)
}
