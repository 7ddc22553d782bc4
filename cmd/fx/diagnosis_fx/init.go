package diagnosis_fx

import (
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"shindan/internal/config"
	"shindan/internal/repositories"
	"shindan/internal/services"
)

var Module = fx.Provide(
	providePersistenceService, provideDiagnosisService)

func providePersistenceService(storage repositories.StorageRepositoryInterface, log *zap.Logger) services.PersistenceServiceInterface {
	return services.NewPersistenceService(storage, log)
}

func provideDiagnosisService(persistence services.PersistenceServiceInterface, cfg *config.Config, log *zap.Logger) services.DiagnosisServiceInterface {
	ttl := time.Duration(cfg.App.SessionTTLMinutes) * time.Minute
	return services.NewDiagnosisService(persistence, log, ttl)
}
