package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ARQAP/museum-insights/src/apperr"
	"github.com/ARQAP/museum-insights/src/db"
	"github.com/ARQAP/museum-insights/src/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const insertBatchSize = 500

// ErrMetadataNotLoaded is returned when media or colors are loaded without a
// receipt from a successful metadata load.
var ErrMetadataNotLoaded = errors.New("metadata batch must be loaded before media and colors")

// MetadataReceipt proves that a metadata batch was committed. Media and color
// loads require one, so the loading order is part of the API.
type MetadataReceipt struct {
	rows     int
	inserted int64
}

// Rows is the size of the metadata batch the receipt was issued for.
func (r *MetadataReceipt) Rows() int { return r.rows }

// Inserted is the number of metadata rows that were new.
func (r *MetadataReceipt) Inserted() int64 { return r.inserted }

// LoaderService writes normalized rows with insert-if-absent semantics.
// Each call runs in its own transaction: a batch lands whole or not at all.
type LoaderService struct {
	opener db.Opener
}

// NewLoaderService creates a new instance of LoaderService
func NewLoaderService(opener db.Opener) *LoaderService {
	return &LoaderService{opener: opener}
}

// LoadMetadata inserts metadata rows whose id is not stored yet.
func (s *LoaderService) LoadMetadata(ctx context.Context, rows []models.ArtifactMetadataModel) (*MetadataReceipt, error) {
	inserted, err := insertIfAbsent(ctx, s.opener, "loader.metadata", rows)
	if err != nil {
		return nil, err
	}
	return &MetadataReceipt{rows: len(rows), inserted: inserted}, nil
}

// LoadMedia inserts media rows whose object id is not stored yet.
func (s *LoaderService) LoadMedia(ctx context.Context, receipt *MetadataReceipt, rows []models.ArtifactMediaModel) (int64, error) {
	if receipt == nil {
		return 0, apperr.New(apperr.ErrValidation, "loader.media", ErrMetadataNotLoaded)
	}
	return insertIfAbsent(ctx, s.opener, "loader.media", rows)
}

// LoadColors inserts color rows whose (object id, position) is not stored yet.
func (s *LoaderService) LoadColors(ctx context.Context, receipt *MetadataReceipt, rows []models.ArtifactColorModel) (int64, error) {
	if receipt == nil {
		return 0, apperr.New(apperr.ErrValidation, "loader.colors", ErrMetadataNotLoaded)
	}
	return insertIfAbsent(ctx, s.opener, "loader.colors", rows)
}

// insertIfAbsent runs INSERT ... ON CONFLICT DO NOTHING for all rows inside
// one transaction and reports how many rows were actually added.
func insertIfAbsent[T any](ctx context.Context, opener db.Opener, op string, rows []T) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	var inserted int64
	err := db.WithConnection(ctx, opener, func(conn *gorm.DB) error {
		return conn.Transaction(func(tx *gorm.DB) error {
			result := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Omit(clause.Associations).
				CreateInBatches(rows, insertBatchSize)
			if result.Error != nil {
				return result.Error
			}
			inserted = result.RowsAffected
			return nil
		})
	})
	if err != nil {
		return 0, classifyInsertError(op, err)
	}
	return inserted, nil
}

func classifyInsertError(op string, err error) error {
	if apperr.KindOf(err) != "" {
		return err
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) ||
		errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(strings.ToLower(err.Error()), "constraint") {
		return apperr.New(apperr.ErrConstraint, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
