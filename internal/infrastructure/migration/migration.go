// Package migration creates and upgrades the schema, either from the gorm
// models or from versioned goose scripts.
package migration

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/orris-inc/tenantdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/tenantdesk/internal/shared/constants"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager uses AutoMigrate in development and the goose scripts elsewhere.
func NewManager(environment, driver string, log logger.Interface) (*Manager, error) {
	if strings.EqualFold(environment, constants.EnvDevelopment) {
		return NewManagerWithStrategy(NewGormAutoMigrateStrategy(models.All(), log), log), nil
	}
	goose, err := NewGooseStrategy(driver, log)
	if err != nil {
		return nil, err
	}
	return NewManagerWithStrategy(goose, log), nil
}

func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.With("component", "migration.manager"),
	}
}

func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

func (m *Manager) Strategy() Strategy {
	return m.strategy
}
