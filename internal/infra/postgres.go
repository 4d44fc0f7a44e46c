package infra

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"zenjourney/internal/config"
	"zenjourney/internal/models/db_models"
)

// InitPostgresql opens the connection pool and migrates the schema.
func InitPostgresql(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	connectionPool, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := connectionPool.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxConns)
	sqlDB.SetMaxIdleConns(cfg.MaxConns)
	sqlDB.SetConnMaxLifetime(cfg.MaxLifetime)

	if err := connectionPool.AutoMigrate(db_models.AllModels()...); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	log.Info("connected to PostgreSQL")
	return connectionPool, nil
}

func ClosePostgresql(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("error getting database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Error("error closing database connection", zap.Error(err))
	} else {
		log.Info("PostgreSQL database connection closed")
	}
}

// RegisterPostgresLifecycle pings the database on start and closes it on stop.
func RegisterPostgresLifecycle(lc fx.Lifecycle, db *gorm.DB, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		OnStop: func(ctx context.Context) error {
			ClosePostgresql(db, log)
			return nil
		},
	})
}
