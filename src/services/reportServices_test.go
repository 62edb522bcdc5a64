package services

import (
	"context"
	"testing"

	"github.com/ARQAP/museum-insights/src/apperr"
	"github.com/ARQAP/museum-insights/src/models"
	"github.com/ARQAP/museum-insights/src/reports"
	"github.com/ARQAP/museum-insights/src/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedByzantine(t *testing.T, loader *LoaderService) {
	t.Helper()
	ctx := context.Background()

	receipt, err := loader.LoadMetadata(ctx, []models.ArtifactMetadataModel{
		{ID: 1, Century: strPtr("11th century"), Culture: strPtr("Byzantine"), Department: strPtr("Paintings Dept")},
		{ID: 2, Century: strPtr("11th century"), Culture: strPtr("Byzantine")},
		{ID: 3, Century: strPtr("10th century"), Culture: strPtr("Byzantine")},
	})
	require.NoError(t, err)
	_, err = loader.LoadMedia(ctx, receipt, []models.ArtifactMediaModel{
		{ObjectID: 1, MediaCount: intPtr(0)},
		{ObjectID: 2, MediaCount: intPtr(3)},
	})
	require.NoError(t, err)
}

func TestRunReport(t *testing.T) {
	opener := testutil.SQLiteOpener(t)
	seedByzantine(t, NewLoaderService(opener))
	service := NewReportService(opener, nil, nil)

	res, err := service.RunReport(context.Background(), 1, reports.Args{})
	require.NoError(t, err)
	assert.Len(t, res.Rows, 2)

	res, err = service.RunReport(context.Background(), 15, reports.Args{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Rows[0][0])

	res, err = service.RunReport(context.Background(), 22, reports.Args{Department: "Paintings Dept"})
	require.NoError(t, err)
	assert.Len(t, res.Rows, 1)
}

func TestRunReport_Validation(t *testing.T) {
	service := NewReportService(testutil.SQLiteOpener(t), nil, nil)

	_, err := service.RunReport(context.Background(), 99, reports.Args{})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = service.RunReport(context.Background(), 19, reports.Args{ArtifactID: "abc"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestRunReport_CachesResults(t *testing.T) {
	opener := testutil.SQLiteOpener(t)
	loader := NewLoaderService(opener)
	service := NewReportService(opener, NewReportCache(), nil)
	ctx := context.Background()

	first, err := service.RunReport(ctx, 2, reports.Args{})
	require.NoError(t, err)

	// rows loaded behind the service's back stay invisible until the cache is flushed
	seedByzantine(t, loader)

	second, err := service.RunReport(ctx, 2, reports.Args{})
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Empty(t, second.Rows)
}

func TestBrowseTable(t *testing.T) {
	opener := testutil.SQLiteOpener(t)
	loader := NewLoaderService(opener)
	ctx := context.Background()

	receipt, err := loader.LoadMetadata(ctx, []models.ArtifactMetadataModel{
		{ID: 1, Classification: strPtr("Paintings")},
		{ID: 2, Classification: strPtr("Sculpture")},
	})
	require.NoError(t, err)
	_, err = loader.LoadColors(ctx, receipt, []models.ArtifactColorModel{
		{ObjectID: 1, Position: 0, Hue: strPtr("Red")},
		{ObjectID: 2, Position: 0, Hue: strPtr("Blue")},
	})
	require.NoError(t, err)

	service := NewReportService(opener, nil, nil)

	res, err := service.BrowseTable(ctx, "artifact_colors", "Sculpture")
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)

	_, err = service.BrowseTable(ctx, "user_models", "Sculpture")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = service.BrowseTable(ctx, "artifact_metadata", "")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
