// Package app wires configuration, database access and services together.
package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"

	"github.com/ARQAP/museum-insights/src/config"
	"github.com/ARQAP/museum-insights/src/db"
	"github.com/ARQAP/museum-insights/src/harvard"
	"github.com/ARQAP/museum-insights/src/metrics"
	"github.com/ARQAP/museum-insights/src/routes"
	"github.com/ARQAP/museum-insights/src/seed"
	"github.com/ARQAP/museum-insights/src/services"
	"github.com/gin-gonic/gin"
)

// App holds the assembled services. It owns no open connection: every
// operation acquires its own through Opener.
type App struct {
	Settings *config.Settings
	Opener   db.Opener
	Metrics  *metrics.Metrics

	Ingest  *services.IngestService
	Reports *services.ReportService
	Users   *services.UserService
}

// New builds the application from settings. fetcher may be nil, in which
// case a catalog client is created from the Harvard settings.
func New(settings *config.Settings, fetcher harvard.Fetcher) (*App, error) {
	factory, err := db.NewFactory(settings.Database, settings.Debug)
	if err != nil {
		return nil, err
	}
	return NewWithOpener(settings, factory, fetcher)
}

// NewWithOpener is New with an explicit database opener.
func NewWithOpener(settings *config.Settings, opener db.Opener, fetcher harvard.Fetcher) (*App, error) {
	m, err := metrics.New()
	if err != nil {
		return nil, fmt.Errorf("registering metrics: %w", err)
	}

	if fetcher == nil {
		fetcher = harvard.NewClient(settings.Harvard.APIKey,
			harvard.WithBaseURL(settings.Harvard.BaseURL),
			harvard.WithPageSize(settings.Harvard.PageSize))
	}

	if settings.Auth.JWTSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		log.Println("No JWT secret configured, tokens will not survive a restart")
		settings.Auth.JWTSecret = secret
	}

	reportCache := services.NewReportCache()
	return &App{
		Settings: settings,
		Opener:   opener,
		Metrics:  m,
		Ingest:   services.NewIngestService(fetcher, services.NewLoaderService(opener), reportCache, m),
		Reports:  services.NewReportService(opener, reportCache, m),
		Users:    services.NewUserService(opener, settings.Auth.JWTSecret),
	}, nil
}

// Prepare migrates the schema and seeds the operator account.
func (a *App) Prepare(ctx context.Context) error {
	if err := db.Migrate(ctx, a.Opener); err != nil {
		return err
	}
	return seed.Seed(ctx, a.Users, a.Settings.Auth)
}

// Router returns the HTTP API.
func (a *App) Router() *gin.Engine {
	return routes.NewRouter(routes.Dependencies{
		Ingest:         a.Ingest,
		Reports:        a.Reports,
		Users:          a.Users,
		Metrics:        a.Metrics,
		JWTSecret:      a.Settings.Auth.JWTSecret,
		AllowedOrigins: a.Settings.Server.AllowedOrigins,
	})
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating JWT secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
