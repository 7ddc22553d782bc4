package storage_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"shindan/internal/config"
	"shindan/internal/infra"
	"shindan/internal/repositories"
)

var Module = fx.Provide(provideStorage)

// provideStorage picks the persistence backend from config. Memory is the
// dev default; postgres and redis hold the same JSON text payloads.
func provideStorage(cfg *config.Config, log *zap.Logger) (repositories.StorageRepositoryInterface, error) {
	switch cfg.App.StorageDriver {
	case "postgres":
		db, err := infra.InitPostgresql(cfg.Database.Connection)
		if err != nil {
			return nil, err
		}
		log.Info("storage backend ready", zap.String("driver", "postgres"))
		return repositories.NewStorageRepository(db), nil

	case "redis":
		client, err := infra.InitRedis(cfg.Redis.URL)
		if err != nil {
			return nil, err
		}
		log.Info("storage backend ready", zap.String("driver", "redis"))
		return repositories.NewRedisStorageRepository(client), nil

	default:
		log.Info("storage backend ready", zap.String("driver", "memory"))
		return repositories.NewMemoryStorageRepository(), nil
	}
}
