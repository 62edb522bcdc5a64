package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ARQAP/museum-insights/src/apperr"
	"github.com/ARQAP/museum-insights/src/config"
	"github.com/ARQAP/museum-insights/src/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Opener hands out a fresh database handle. Callers close what they open;
// WithConnection does both.
type Opener interface {
	Open() (*gorm.DB, error)
}

// Factory opens short-lived connections to the configured database.
type Factory struct {
	driver string
	dsn    string
	debug  bool
}

// NewFactory validates the database settings and builds the DSN once.
func NewFactory(settings config.Database, debug bool) (*Factory, error) {
	dsn, err := buildDSN(settings)
	if err != nil {
		return nil, err
	}
	return &Factory{driver: settings.Driver, dsn: dsn, debug: debug}, nil
}

func buildDSN(s config.Database) (string, error) {
	switch s.Driver {
	case "mysql":
		if s.DSN != "" {
			return s.DSN, nil
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			s.User, s.Password, s.Host, s.Port, s.Name), nil
	case "postgres":
		if s.DSN != "" {
			return s.DSN, nil
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			s.Host, s.User, s.Password, s.Name, s.Port), nil
	case "sqlite":
		dsn := s.DSN
		if dsn == "" {
			dsn = s.Name + ".db"
		}
		// foreign keys are off by default in SQLite
		if !strings.Contains(dsn, "_foreign_keys") && !strings.Contains(dsn, "_fk") {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn += sep + "_foreign_keys=1"
		}
		return dsn, nil
	default:
		return "", apperr.Invalid("db.config", "unsupported database driver %q", s.Driver)
	}
}

func (f *Factory) dialector() gorm.Dialector {
	switch f.driver {
	case "postgres":
		return postgres.Open(f.dsn)
	case "sqlite":
		return sqlite.Open(f.dsn)
	default:
		return mysql.Open(f.dsn)
	}
}

// Open connects to the database. Failures are reported as connection errors.
func (f *Factory) Open() (*gorm.DB, error) {
	db, err := gorm.Open(f.dialector(), &gorm.Config{
		Logger:         newGormLogger(f.debug),
		TranslateError: true,
	})
	if err != nil {
		return nil, apperr.New(apperr.ErrConnection, "db.open", err)
	}
	return db, nil
}

func newGormLogger(debug bool) logger.Interface {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// Close releases the pool behind a handle returned by Open.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// WithConnection opens a connection, runs fn with it bound to ctx and closes
// it again, whatever fn returns.
func WithConnection(ctx context.Context, opener Opener, fn func(db *gorm.DB) error) error {
	conn, err := opener.Open()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := Close(conn); cerr != nil {
			log.Printf("Error closing database connection: %v\n", cerr)
		}
	}()
	return fn(conn.WithContext(ctx))
}

// Migrate creates or updates the artifact and user tables.
func Migrate(ctx context.Context, opener Opener) error {
	return WithConnection(ctx, opener, func(db *gorm.DB) error {
		tables := append(models.ArtifactTables(), &models.UserModel{})
		if err := db.AutoMigrate(tables...); err != nil {
			return fmt.Errorf("error during auto-migration: %w", err)
		}
		log.Println("Museum insights DB migrated successfully!")
		return nil
	})
}
