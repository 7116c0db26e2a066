package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goaltrack/internal/clock"
	"github.com/templui/goaltrack/internal/config"
	"github.com/templui/goaltrack/internal/db"
	"github.com/templui/goaltrack/internal/repository"
	"github.com/templui/goaltrack/internal/service"
	"github.com/templui/goaltrack/internal/storage"
)

type App struct {
	Cfg           *config.Config
	DB            *sqlx.DB
	Clock         clock.Clock
	AuthService   *service.AuthService
	GoalService   *service.GoalService
	ExportService *service.ExportService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	database, err := db.Init(ctx, cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	err = db.RunMigrations(ctx, database.DB, cfg.DBDriver)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	archive, err := storage.New(ctx, cfg)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return Assemble(cfg, database, clock.System{Location: cfg.Location}, archive), nil
}

// Assemble wires repositories and services onto an open, migrated database.
// archive may be nil.
func Assemble(cfg *config.Config, database *sqlx.DB, c clock.Clock, archive storage.Archive) *App {
	// Repositories
	userRepository := repository.NewUserRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	progressRepository := repository.NewGoalProgressRepository(database)

	// Services
	goalService := service.NewGoalService(goalRepository, progressRepository, c)
	exportService := service.NewExportService(goalService, archive, cfg.S3PresignExpiry)
	authService := service.NewAuthService(
		userRepository,
		c,
		cfg.JWTSecret,
		cfg.JWTExpiry,
		cfg.SecureCookies(),
	)

	return &App{
		Cfg:           cfg,
		DB:            database,
		Clock:         c,
		AuthService:   authService,
		GoalService:   goalService,
		ExportService: exportService,
	}
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
