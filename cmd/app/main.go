package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"shindan/cmd/fx/controllers_fx"
	"shindan/cmd/fx/diagnosis_fx"
	"shindan/cmd/fx/storage_fx"
	"shindan/internal/api/controllers"
	"shindan/internal/config"
	"shindan/pkg/logger"
	"shindan/pkg/middleware"
)

func main() {
	app := fx.New(
		fx.Provide(config.Load, provideLogger),
		storage_fx.Module,
		diagnosis_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func provideLogger(cfg *config.Config) *zap.Logger {
	return logger.New(cfg.App.LogFilePath, cfg.IsProduction())
}

func ProvideRouter(
	cfg *config.Config,
	diagnosisController *controllers.DiagnosisController,
	historyController *controllers.HistoryController) *gin.Engine {

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.App.CorsAllowedOrigins))

	RegisterRoutes(r, diagnosisController, historyController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	diagnosisController *controllers.DiagnosisController,
	historyController *controllers.HistoryController) {

	diagnosisGroup := r.Group("/diagnosis")
	diagnosisGroup.POST("/start", diagnosisController.StartHandler)
	diagnosisGroup.GET("/:sessionId", diagnosisController.CurrentHandler)
	diagnosisGroup.POST("/:sessionId/answers", diagnosisController.SubmitHandler)
	diagnosisGroup.POST("/:sessionId/toggles", diagnosisController.ToggleHandler)
	diagnosisGroup.POST("/:sessionId/continue", diagnosisController.ContinueHandler)
	diagnosisGroup.POST("/:sessionId/back", diagnosisController.BackHandler)
	diagnosisGroup.POST("/:sessionId/result", diagnosisController.ResultHandler)
	diagnosisGroup.DELETE("/:sessionId", diagnosisController.ResetHandler)

	historyGroup := r.Group("/history")
	historyGroup.GET("", historyController.ListHandler)
	historyGroup.DELETE("", historyController.ClearHandler)
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, log *zap.Logger) {
	server := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("starting HTTP server", zap.String("port", cfg.App.Port))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutting down server: %w", err)
			}
			return nil
		},
	})
}
