package services

import (
	"context"
	"log"
	"time"

	"github.com/ARQAP/museum-insights/src/harvard"
	"github.com/ARQAP/museum-insights/src/metrics"
	"github.com/ARQAP/museum-insights/src/normalize"
	"github.com/patrickmn/go-cache"
)

// IngestResult reports what one ingestion run fetched and how many rows
// were new in each table.
type IngestResult struct {
	Classification string `json:"classification"`
	Fetched        int    `json:"fetched"`
	Metadata       int64  `json:"metadata"`
	Media          int64  `json:"media"`
	Colors         int64  `json:"colors"`
}

// IngestService runs fetch, normalize and load for one classification.
type IngestService struct {
	fetcher harvard.Fetcher
	loader  *LoaderService
	cache   *cache.Cache
	metrics *metrics.Metrics
}

// NewIngestService creates a new instance of IngestService. cache and m may be nil.
func NewIngestService(fetcher harvard.Fetcher, loader *LoaderService, c *cache.Cache, m *metrics.Metrics) *IngestService {
	return &IngestService{fetcher: fetcher, loader: loader, cache: c, metrics: m}
}

// Ingest fetches pages 1..pages of classification and stores every record
// not stored yet. Metadata is committed first; media and colors follow in
// their own transactions, so a failure after the metadata step leaves
// metadata rows without their media or colors.
func (s *IngestService) Ingest(ctx context.Context, classification string, pages int) (*IngestResult, error) {
	start := time.Now()
	result, err := s.ingest(ctx, classification, pages)

	status := "success"
	if err != nil {
		status = errorStatus(err)
		log.Printf("Ingestion of %q failed: %v\n", classification, err)
	}
	s.metrics.RecordIngest(classification, status, time.Since(start).Seconds())
	return result, err
}

func (s *IngestService) ingest(ctx context.Context, label string, pages int) (*IngestResult, error) {
	classification, err := harvard.ParseClassification(label)
	if err != nil {
		return nil, err
	}

	records, err := s.fetcher.FetchClassification(ctx, classification, pages)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordFetched(label, len(records))

	// whatever lands in the tables from here on makes cached reports stale
	defer s.invalidate()

	batch := normalize.Records(records)
	result := &IngestResult{Classification: label, Fetched: len(records)}

	receipt, err := s.loader.LoadMetadata(ctx, batch.Metadata)
	if err != nil {
		return nil, err
	}
	result.Metadata = receipt.Inserted()
	s.metrics.RecordInserted("artifact_metadata", result.Metadata)

	if result.Media, err = s.loader.LoadMedia(ctx, receipt, batch.Media); err != nil {
		return nil, err
	}
	s.metrics.RecordInserted("artifact_media", result.Media)

	if result.Colors, err = s.loader.LoadColors(ctx, receipt, batch.Colors); err != nil {
		return nil, err
	}
	s.metrics.RecordInserted("artifact_colors", result.Colors)

	log.Printf("Ingested %s: fetched %d records, inserted %d metadata, %d media, %d colors\n",
		label, result.Fetched, result.Metadata, result.Media, result.Colors)
	return result, nil
}

// invalidate drops cached report results once new rows may exist.
func (s *IngestService) invalidate() {
	if s.cache != nil {
		s.cache.Flush()
	}
}
