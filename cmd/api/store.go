package main

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/johnquangdev/telehealth-assistant/internal/adapter/repository"
	"github.com/johnquangdev/telehealth-assistant/internal/adapter/repository/mongodb"
	"github.com/johnquangdev/telehealth-assistant/internal/domain/repositories"
	"github.com/johnquangdev/telehealth-assistant/internal/infrastructure/database"
	"github.com/johnquangdev/telehealth-assistant/pkg/config"
)

// store bundles the repositories of the selected backend
type store struct {
	appointments repositories.AppointmentRepository
	symptoms     repositories.SymptomRepository
	alerts       repositories.AlertRepository
	summaries    repositories.SummaryRepository
	ping         func(ctx context.Context) error
	close        func()
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.Database.Backend {
	case "mongo":
		return openMongoStore(ctx, cfg)
	default:
		return openPostgresStore(cfg)
	}
}

func openPostgresStore(cfg *config.Config) (*store, error) {
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		return nil, err
	}

	// Schema changes normally ship through cmd/migrate
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			return nil, fmt.Errorf("DB_AUTO_MIGRATE is not allowed in production, run cmd/migrate instead")
		}
		n, err := database.Migrate(db, database.MigrationsDir, false, 0)
		if err != nil {
			return nil, err
		}
		log.Printf("🔄 Applied %d migrations", n)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	return &store{
		appointments: repository.NewAppointmentRepository(db),
		symptoms:     repository.NewSymptomRepository(db),
		alerts:       repository.NewAlertRepository(db),
		summaries:    repository.NewSummaryRepository(db),
		ping:         sqlDB.PingContext,
		close: func() {
			if err := database.CloseDB(db); err != nil {
				log.Printf("⚠️  %v", err)
			}
		},
	}, nil
}

func openMongoStore(ctx context.Context, cfg *config.Config) (*store, error) {
	client, db, err := database.NewMongoDB(ctx, &cfg.Mongo)
	if err != nil {
		return nil, err
	}

	return &store{
		appointments: mongodb.NewAppointmentRepository(db),
		symptoms:     mongodb.NewSymptomRepository(db),
		alerts:       mongodb.NewAlertRepository(db),
		summaries:    mongodb.NewSummaryRepository(db),
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		close: func() {
			if err := database.CloseMongoDB(client); err != nil {
				log.Printf("⚠️  %v", err)
			}
		},
	}, nil
}
