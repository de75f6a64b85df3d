package telemetry

import (
	"fmt"

	"github.com/shopmall/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InstrumentDB adds otelgorm spans and metrics to db when database tracing is enabled.
// Query variables stay out of spans unless full SQL logging is switched on.
func InstrumentDB(db *gorm.DB, cfg config.TelemetryConfig, dbSystem string, logger *zap.Logger) error {
	if !cfg.Enabled || !cfg.DBTraceEnabled {
		return nil
	}
	opts := []otelgorm.Option{otelgorm.WithDBName(dbSystem)}
	if !cfg.DBLogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return fmt.Errorf("failed to register otelgorm: %w", err)
	}
	if logger != nil {
		logger.Info("Database tracing enabled", zap.String("db_system", dbSystem), zap.Bool("full_sql", cfg.DBLogFullSQL))
	}
	return nil
}
