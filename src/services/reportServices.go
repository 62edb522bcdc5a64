package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ARQAP/museum-insights/src/apperr"
	"github.com/ARQAP/museum-insights/src/db"
	"github.com/ARQAP/museum-insights/src/metrics"
	"github.com/ARQAP/museum-insights/src/reports"
	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

const (
	reportCacheTTL     = 5 * time.Minute
	reportCacheCleanup = 30 * time.Minute
)

// NewReportCache returns the cache shared by the report service and the
// ingestion service, which flushes it after every load.
func NewReportCache() *cache.Cache {
	return cache.New(reportCacheTTL, reportCacheCleanup)
}

// ReportService runs catalog reports and table browsing against the store.
type ReportService struct {
	opener  db.Opener
	cache   *cache.Cache
	metrics *metrics.Metrics
}

// NewReportService creates a new instance of ReportService. cache and m may be nil.
func NewReportService(opener db.Opener, c *cache.Cache, m *metrics.Metrics) *ReportService {
	return &ReportService{opener: opener, cache: c, metrics: m}
}

// GetCatalog lists every available report
func (s *ReportService) GetCatalog() []reports.Report {
	return reports.Catalog()
}

// RunReport executes report id with the given arguments.
func (s *ReportService) RunReport(ctx context.Context, id int, args reports.Args) (*reports.Result, error) {
	report, err := reports.Lookup(id)
	if err != nil {
		return nil, err
	}
	// validate before touching cache or database
	bound, err := report.Bind(args)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("report_%d_%v", id, bound)
	res, err := s.cached(key, func() (*reports.Result, error) {
		var res *reports.Result
		err := db.WithConnection(ctx, s.opener, func(conn *gorm.DB) error {
			var err error
			res, err = reports.Run(conn, report, args)
			return err
		})
		return res, err
	})

	status := "success"
	if err != nil {
		status = errorStatus(err)
	}
	s.metrics.RecordReport(report.Slug, status)
	return res, err
}

// BrowseTable lists rows of a table restricted to a classification.
func (s *ReportService) BrowseTable(ctx context.Context, table, classification string) (*reports.Result, error) {
	t, err := reports.ParseTable(table)
	if err != nil {
		return nil, err
	}
	if classification == "" {
		return nil, apperr.Invalid("reports.browse", "classification is required")
	}

	key := fmt.Sprintf("table_%s_%s", t, classification)
	return s.cached(key, func() (*reports.Result, error) {
		var res *reports.Result
		err := db.WithConnection(ctx, s.opener, func(conn *gorm.DB) error {
			var err error
			res, err = reports.Browse(conn, t, classification)
			return err
		})
		return res, err
	})
}

func (s *ReportService) cached(key string, load func() (*reports.Result, error)) (*reports.Result, error) {
	if s.cache != nil {
		if v, found := s.cache.Get(key); found {
			s.metrics.RecordCache(true)
			return v.(*reports.Result), nil
		}
		s.metrics.RecordCache(false)
	}

	res, err := load()
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetDefault(key, res)
	}
	return res, nil
}

func errorStatus(err error) string {
	if kind := apperr.KindOf(err); kind != "" {
		return string(kind)
	}
	return "error"
}
