package bootstrap

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"tracematrix/internal/bootstrap/config"
	"tracematrix/internal/bootstrap/database"
	"tracematrix/internal/bootstrap/logging"
	"tracematrix/internal/domain/matrix"
	cacheinfra "tracematrix/internal/infrastructure/cache"
	sqliterepo "tracematrix/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "tracematrix/internal/infrastructure/persistence/sqlite/uow"
	"tracematrix/internal/ports"
	"tracematrix/internal/usecase/evaluation"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideDatabase),
	fx.Provide(provideApp),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewEvaluationRepository,
			fx.As(new(ports.EvaluationRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewInsightRepository,
			fx.As(new(ports.InsightRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliteuow.NewUnitOfWork,
			fx.As(new(ports.UnitOfWork)),
		),
	),
	fx.Provide(
		fx.Annotate(
			cacheinfra.NewSQLiteCache,
			fx.As(new(ports.Cache)),
		),
	),
	fx.Provide(provideEvaluationConfig),
	fx.Provide(evaluation.NewService),
)

type configParams struct {
	fx.In

	Ctx        context.Context
	ConfigFile string `name:"configFile"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithAttrs(p.Ctx, slog.String("component", "bootstrap.fx"))
	return config.Load(ctx, p.ConfigFile)
}

func provideDatabase(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))

	db, err := database.Open(logCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return db, nil
}

func provideApp(cfg config.Config, db *gorm.DB) *App {
	return &App{
		Config: cfg,
		DB:     db,
	}
}

// provideEvaluationConfig maps the viper matrix section onto the evaluation
// service policies.
func provideEvaluationConfig(cfg config.Config) evaluation.Config {
	out := evaluation.DefaultConfig()
	if cfg.Matrix.GreenThreshold > 0 || cfg.Matrix.AmberThreshold > 0 {
		out.Thresholds = matrix.Thresholds{
			Green: cfg.Matrix.GreenThreshold,
			Amber: cfg.Matrix.AmberThreshold,
		}
	}
	if len(cfg.Matrix.EligibleStatuses) > 0 {
		out.EligibleStatuses = cfg.Matrix.EligibleStatuses
	}
	if cfg.Matrix.GapDisplayCap > 0 {
		out.GapDisplayCap = cfg.Matrix.GapDisplayCap
	}
	if cfg.Matrix.ConsensusSelection == string(matrix.SelectMean) {
		out.Consensus = matrix.SelectMean
	}
	return out
}
