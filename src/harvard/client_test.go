package harvard

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/ARQAP/museum-insights/src/apperr"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://catalog.test"

func setupHTTPMock(t *testing.T) *Client {
	t.Helper()
	hc := &http.Client{}
	httpmock.ActivateNonDefault(hc)
	t.Cleanup(httpmock.DeactivateAndReset)
	return NewClient("test-key", WithHTTPClient(hc), WithBaseURL(testBaseURL))
}

func pageQuery(classification string, page int) map[string]string {
	return map[string]string{
		"apikey":         "test-key",
		"size":           "100",
		"page":           fmt.Sprint(page),
		"classification": classification,
	}
}

func pageBody(totalPages int, ids ...int) string {
	records := make([]string, 0, len(ids))
	for _, id := range ids {
		records = append(records, fmt.Sprintf(`{"id": %d, "title": "Object %d"}`, id, id))
	}
	return fmt.Sprintf(`{"info": {"pages": %d}, "records": [%s]}`, totalPages, strings.Join(records, ","))
}

func recordIDs(t *testing.T, records []Record) []int64 {
	t.Helper()
	ids := make([]int64, 0, len(records))
	for _, r := range records {
		id, err := r.GetInt64("id")
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func TestFetchClassification_PagesInOrder(t *testing.T) {
	client := setupHTTPMock(t)

	httpmock.RegisterResponderWithQuery(http.MethodGet, testBaseURL+"/object", pageQuery("Paintings", 1),
		httpmock.NewStringResponder(http.StatusOK, pageBody(5, 1, 2)))
	httpmock.RegisterResponderWithQuery(http.MethodGet, testBaseURL+"/object", pageQuery("Paintings", 2),
		httpmock.NewStringResponder(http.StatusOK, pageBody(5, 3)))

	records, err := client.FetchClassification(t.Context(), Paintings, 2)
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2, 3}, recordIDs(t, records))
	assert.Equal(t, 2, httpmock.GetTotalCallCount(), "expected one request per page")
}

func TestFetchClassification_EmptyPageEndsFetch(t *testing.T) {
	client := setupHTTPMock(t)

	httpmock.RegisterResponderWithQuery(http.MethodGet, testBaseURL+"/object", pageQuery("Sculpture", 1),
		httpmock.NewStringResponder(http.StatusOK, pageBody(0, 7)))
	httpmock.RegisterResponderWithQuery(http.MethodGet, testBaseURL+"/object", pageQuery("Sculpture", 2),
		httpmock.NewStringResponder(http.StatusOK, `{"records": []}`))

	records, err := client.FetchClassification(t.Context(), Sculpture, 25)
	require.NoError(t, err)

	assert.Equal(t, []int64{7}, recordIDs(t, records))
	assert.Equal(t, 2, httpmock.GetTotalCallCount(), "pages after the empty one must not be requested")
}

func TestFetchClassification_StopsAtDeclaredPageCount(t *testing.T) {
	client := setupHTTPMock(t)

	httpmock.RegisterResponderWithQuery(http.MethodGet, testBaseURL+"/object", pageQuery("Drawings", 1),
		httpmock.NewStringResponder(http.StatusOK, pageBody(1, 10, 11)))

	records, err := client.FetchClassification(t.Context(), Drawings, 3)
	require.NoError(t, err)

	assert.Len(t, records, 2)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestFetchClassification_MissingRecordsField(t *testing.T) {
	client := setupHTTPMock(t)

	httpmock.RegisterResponderWithQuery(http.MethodGet, testBaseURL+"/object", pageQuery("Fragments", 1),
		httpmock.NewStringResponder(http.StatusOK, `{"info": {"totalrecords": 0}}`))

	records, err := client.FetchClassification(t.Context(), Fragments, 1)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFetchClassification_TransportErrors(t *testing.T) {
	tests := []struct {
		name      string
		responder httpmock.Responder
	}{
		{"non-OK status", httpmock.NewStringResponder(http.StatusUnauthorized, `{"error": "bad key"}`)},
		{"server error", httpmock.NewStringResponder(http.StatusInternalServerError, "oops")},
		{"non-JSON body", httpmock.NewStringResponder(http.StatusOK, "<html>maintenance</html>")},
		{"records not objects", httpmock.NewStringResponder(http.StatusOK, `{"records": [1, 2]}`)},
		{"network failure", httpmock.NewErrorResponder(errors.New("connection reset"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := setupHTTPMock(t)

			httpmock.RegisterResponderWithQuery(http.MethodGet, testBaseURL+"/object", pageQuery("Paintings", 1),
				httpmock.NewStringResponder(http.StatusOK, pageBody(3, 1)))
			httpmock.RegisterResponderWithQuery(http.MethodGet, testBaseURL+"/object", pageQuery("Paintings", 2), tt.responder)

			records, err := client.FetchClassification(t.Context(), Paintings, 3)

			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrTransport)
			assert.Nil(t, records, "already fetched pages must be discarded")
			assert.Equal(t, 2, httpmock.GetTotalCallCount(), "no retry and no further pages")
		})
	}
}

func TestFetchClassification_Validation(t *testing.T) {
	client := setupHTTPMock(t)

	_, err := client.FetchClassification(t.Context(), Classification("Furniture"), 1)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = client.FetchClassification(t.Context(), Paintings, 0)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	assert.Zero(t, httpmock.GetTotalCallCount(), "invalid input must not reach the network")
}

func TestFetchClassification_CustomPageSize(t *testing.T) {
	hc := &http.Client{}
	httpmock.ActivateNonDefault(hc)
	t.Cleanup(httpmock.DeactivateAndReset)
	client := NewClient("test-key", WithHTTPClient(hc), WithBaseURL(testBaseURL), WithPageSize(10))

	query := pageQuery("Photographs", 1)
	query["size"] = "10"
	httpmock.RegisterResponderWithQuery(http.MethodGet, testBaseURL+"/object", query,
		httpmock.NewStringResponder(http.StatusOK, pageBody(1, 99)))

	records, err := client.FetchClassification(t.Context(), Photographs, 1)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestParseClassification(t *testing.T) {
	for _, c := range Classifications() {
		got, err := ParseClassification(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseClassification("paintings")
	assert.ErrorIs(t, err, apperr.ErrValidation, "labels are case sensitive")
}
