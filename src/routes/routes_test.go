package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ARQAP/museum-insights/src/harvard"
	"github.com/ARQAP/museum-insights/src/metrics"
	"github.com/ARQAP/museum-insights/src/services"
	"github.com/ARQAP/museum-insights/src/testutil"
	"github.com/gin-gonic/gin"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	catalogURL = "https://catalog.test/object"
)

const paintingsPage = `{"info": {"pages": 1}, "records": [
	{"id": 1, "title": "A", "classification": "Paintings", "mediacount": 0,
	 "colors": [{"color": "#000000", "hue": "Black", "percent": 0.9}, {"color": "#ffffff", "hue": "White", "percent": 0.1}]},
	{"id": 2, "title": "B", "classification": "Paintings", "mediacount": 1, "colors": []},
	{"id": 3, "title": "C", "classification": "Paintings", "mediacount": 0}
]}`

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hc := &http.Client{}
	httpmock.ActivateNonDefault(hc)
	t.Cleanup(httpmock.DeactivateAndReset)
	client := harvard.NewClient("test-key", harvard.WithHTTPClient(hc), harvard.WithBaseURL("https://catalog.test"))

	opener := testutil.SQLiteOpener(t)
	m, err := metrics.New()
	require.NoError(t, err)

	users := services.NewUserService(opener, testSecret)
	_, err = users.EnsureUser(context.Background(), "curator", "pw")
	require.NoError(t, err)

	reportCache := services.NewReportCache()
	return NewRouter(Dependencies{
		Ingest:    services.NewIngestService(client, services.NewLoaderService(opener), reportCache, m),
		Reports:   services.NewReportService(opener, reportCache, m),
		Users:     users,
		Metrics:   m,
		JWTSecret: testSecret,
	})
}

func registerPaintings(responder httpmock.Responder) {
	httpmock.RegisterResponderWithQuery(http.MethodGet, catalogURL,
		map[string]string{"apikey": "test-key", "size": "100", "page": "1", "classification": "Paintings"},
		responder)
}

func do(t *testing.T, router *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, router *gin.Engine) string {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/login", `{"username": "curator", "password": "pw"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

type resultBody struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) resultBody {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res resultBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func TestClassifications(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/classifications", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var labels []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &labels))
	assert.Equal(t, []string{"Paintings", "Sculpture", "Drawings", "Fragments", "Photographs"}, labels)
}

func TestLogin_WrongPassword(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/login", `{"username": "curator", "password": "nope"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, router, http.MethodPost, "/login", `{"username": "curator"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIngest_RequiresToken(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/ingest", `{"classification": "Paintings", "pages": 1}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, httpmock.GetTotalCallCount())
}

func TestIngestThenQuery(t *testing.T) {
	router := newTestRouter(t)
	registerPaintings(httpmock.NewStringResponder(http.StatusOK, paintingsPage))
	token := login(t, router)

	rec := do(t, router, http.MethodPost, "/ingest", `{"classification": "Paintings", "pages": 1}`, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result services.IngestResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, services.IngestResult{Classification: "Paintings", Fetched: 3, Metadata: 3, Media: 3, Colors: 2}, result)

	rec = do(t, router, http.MethodPost, "/ingest", `{"classification": "Paintings", "pages": 1}`, token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Zero(t, result.Metadata+result.Media+result.Colors, "second run must insert nothing")

	noMedia := decodeResult(t, do(t, router, http.MethodGet, "/reports/15", "", ""))
	require.Len(t, noMedia.Rows, 1)
	assert.InDelta(t, 2, noMedia.Rows[0][0], 0)

	colors := decodeResult(t, do(t, router, http.MethodGet, "/reports/19?artifactId=1", "", ""))
	assert.Len(t, colors.Rows, 2)

	media := decodeResult(t, do(t, router, http.MethodGet, "/tables/artifact_media?classification=Paintings", "", ""))
	assert.Len(t, media.Rows, 3)
	assert.Contains(t, media.Columns, "rank_value")

	rec = do(t, router, http.MethodGet, "/reports/11/export", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentTypeForTest, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "report-11.xlsx")
	assert.NotZero(t, rec.Body.Len())
}

const xlsxContentTypeForTest = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func TestIngest_ErrorStatuses(t *testing.T) {
	router := newTestRouter(t)
	registerPaintings(httpmock.NewErrorResponder(errors.New("connection refused")))
	token := login(t, router)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"unknown classification", `{"classification": "Furniture", "pages": 1}`, http.StatusBadRequest},
		{"missing classification", `{"pages": 1}`, http.StatusBadRequest},
		{"negative pages", `{"classification": "Paintings", "pages": -1}`, http.StatusBadRequest},
		{"catalog unreachable", `{"classification": "Paintings", "pages": 1}`, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/ingest", tt.body, token)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestReports_Validation(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/reports", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var catalog []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &catalog))
	assert.Len(t, catalog, 25)

	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/reports/abc", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/reports/26", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/reports/19", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/reports/22", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/tables/artifact_media", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/tables/user_models?classification=Paintings", "", "").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	do(t, router, http.MethodGet, "/reports/20", "", "")
	rec := do(t, router, http.MethodGet, "/metrics", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `insights_report_runs_total{report="color-entries",status="success"} 1`)
}
