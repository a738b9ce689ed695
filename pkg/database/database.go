package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/redsoft-clinic/clinicflow/internal/config"
	"github.com/redsoft-clinic/clinicflow/internal/domain"
	"github.com/redsoft-clinic/clinicflow/internal/domain/consultation"
	"github.com/redsoft-clinic/clinicflow/internal/domain/doctor"
	"github.com/redsoft-clinic/clinicflow/internal/domain/patient"
	"github.com/redsoft-clinic/clinicflow/internal/domain/schedule"
)

func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		PrepareStmt:                              true,
		DisableForeignKeyConstraintWhenMigrating: false,
		DisableAutomaticPing:                     false,
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DNS(),
		PreferSimpleProtocol: false,
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	start := time.Now()

	schemas := []string{"clinical", "auth", "audit"} // logical namespace
	for _, schema := range schemas {
		if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)).Error; err != nil {
			return fmt.Errorf("creating schema %s: %w", schema, err)
		}
	}

	models := []any{
		&domain.User{},
		&domain.AuditLog{},
		&doctor.Doctor{},
		&patient.Patient{},
		&schedule.Entry{},
		&consultation.Consultation{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("creating indexes: %w", err)
	}

	log.Info("migrations completed", zap.Duration("duration", time.Since(start)))
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []struct {
		name  string
		query string
	}{
		// A doctor offers at most one entry per (date, slot, mode); the
		// regeneration transaction relies on this to stay conflict free.
		{
			name:  "uq_schedule_entries_slot",
			query: `CREATE UNIQUE INDEX IF NOT EXISTS uq_schedule_entries_slot ON clinical.schedule_entries (doctor_id, date, time_slot, mode)`,
		},
		{
			name:  "idx_schedule_entries_doctor_date",
			query: `CREATE INDEX IF NOT EXISTS idx_schedule_entries_doctor_date ON clinical.schedule_entries (doctor_id, date)`,
		},
		{
			name:  "idx_schedule_entries_date",
			query: `CREATE INDEX IF NOT EXISTS idx_schedule_entries_date ON clinical.schedule_entries (date)`,
		},
		// Capacity math groups occupied consultations by doctor, date, slot.
		{
			name:  "idx_consultations_slot_usage",
			query: `CREATE INDEX IF NOT EXISTS idx_consultations_slot_usage ON clinical.consultations (doctor_id, date, time_slot) WHERE deleted_at IS NULL AND status NOT IN ('cancelled', 'no_show')`,
		},
		// Patient search: GIN index for fuzzy search on name fields
		{
			name:  "idx_patients_name_search",
			query: `CREATE INDEX IF NOT EXISTS idx_patients_name_trgm ON clinical.patients USING gin ((first_name || ' ' || last_name) gin_trgm_ops) WHERE deleted_at IS NULL`,
		},
	}

	for _, idx := range indexes {
		_ = db.Exec("CREATE EXTENSION IF NOT EXISTS pg_trgm").Error

		if err := db.Exec(idx.query).Error; err != nil {
			_ = err
		}
	}

	return nil
}
