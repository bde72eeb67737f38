package migration

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/orris-inc/tenantdesk/internal/shared/config"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

//go:embed scripts
var scripts embed.FS

// Strategy defines the interface for different migration strategies
type Strategy interface {
	Migrate(db *gorm.DB) error
	GetName() string
}

// GormAutoMigrateStrategy creates tables from the gorm models. Used in
// development and for sqlite test databases.
type GormAutoMigrateStrategy struct {
	models []any
	logger logger.Interface
}

func NewGormAutoMigrateStrategy(models []any, log logger.Interface) *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{
		models: models,
		logger: log.With("component", "migration.gorm"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB) error {
	s.logger.Infow("running gorm auto migrate", "models_count", len(s.models))
	if err := db.AutoMigrate(s.models...); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

// GooseStrategy applies the versioned SQL scripts embedded in the binary for
// the connection's dialect.
type GooseStrategy struct {
	dialect string
	dir     string
	logger  logger.Interface
}

// NewGooseStrategy picks the script directory for the database driver.
func NewGooseStrategy(driver string, log logger.Interface) (*GooseStrategy, error) {
	var dialect, dir string
	switch strings.ToLower(driver) {
	case config.DriverMySQL, "":
		dialect, dir = "mysql", "scripts/mysql"
	case config.DriverPostgres:
		dialect, dir = "postgres", "scripts/postgres"
	case config.DriverSQLite:
		dialect, dir = "sqlite3", "scripts/sqlite"
	default:
		return nil, fmt.Errorf("no migration scripts for driver %q", driver)
	}
	return &GooseStrategy{
		dialect: dialect,
		dir:     dir,
		logger:  log.With("component", "migration.goose"),
	}, nil
}

func (s *GooseStrategy) prepare() error {
	goose.SetBaseFS(scripts)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(s.dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

func (s *GooseStrategy) Migrate(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return err
	}

	currentVersion, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}
	s.logger.Infow("starting goose migration", "dialect", s.dialect, "version", currentVersion)

	if err := goose.Up(sqlDB, s.dir); err != nil {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to get final version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion)
	return nil
}

func (s *GooseStrategy) GetName() string {
	return "goose"
}

func (s *GooseStrategy) MigrateDown(db *gorm.DB, steps int) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return err
	}

	for i := 0; i < steps; i++ {
		if err := goose.Down(sqlDB, s.dir); err != nil {
			return fmt.Errorf("failed to run down migration: %w", err)
		}
	}
	s.logger.Infow("down migration completed successfully", "steps", steps)
	return nil
}

func (s *GooseStrategy) GetVersion(db *gorm.DB) (int64, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return 0, err
	}
	version, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return 0, fmt.Errorf("failed to get version: %w", err)
	}
	return version, nil
}

// Pending lists the versions of the embedded scripts not yet applied.
func (s *GooseStrategy) Pending(db *gorm.DB) ([]int64, error) {
	current, err := s.GetVersion(db)
	if err != nil {
		return nil, err
	}
	migrations, err := goose.CollectMigrations(s.dir, current, goose.MaxVersion)
	if errors.Is(err, goose.ErrNoMigrationFiles) {
		return []int64{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to collect migrations: %w", err)
	}
	pending := make([]int64, 0, len(migrations))
	for _, m := range migrations {
		if m.Version > current {
			pending = append(pending, m.Version)
		}
	}
	return pending, nil
}
