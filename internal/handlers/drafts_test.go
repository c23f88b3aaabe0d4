package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VP-RPT/internal/docstore"
	"VP-RPT/internal/geocode"
	"VP-RPT/internal/models"
	"VP-RPT/internal/storage"
)

type hashResolver struct{}

func (hashResolver) ResolvePlaceID(_ context.Context, address string) (string, error) {
	return geocode.FallbackPlaceID(address), nil
}

func newDraftsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	drafts := docstore.NewDraftStore(storage.NewMemoryStore(), hashResolver{}, zerolog.Nop())
	h := NewDraftsHandler(drafts)

	r := gin.New()
	r.GET("/api/v1/drafts", h.List)
	r.GET("/api/v1/drafts/:draftId", h.Get)
	r.POST("/api/v1/drafts", h.Save)
	r.DELETE("/api/v1/drafts/:draftId", h.Delete)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSaveThenGetDraft(t *testing.T) {
	r := newDraftsRouter()

	w := doJSON(t, r, http.MethodPost, "/api/v1/drafts", gin.H{
		"propertyAddress": "12 Test St",
		"formData":        gin.H{"Info": gin.H{"Property Address": "12 Test St"}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var saved models.Draft
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.NotEmpty(t, saved.DraftID)
	assert.NotEmpty(t, saved.PlaceID)

	w = doJSON(t, r, http.MethodGet, "/api/v1/drafts/"+saved.DraftID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Draft
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "12 Test St", got.PropertyAddress)
}

func TestSaveDraftRequiresAddress(t *testing.T) {
	r := newDraftsRouter()
	w := doJSON(t, r, http.MethodPost, "/api/v1/drafts", gin.H{"formData": gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMissingDraftIs404(t *testing.T) {
	r := newDraftsRouter()
	w := doJSON(t, r, http.MethodGet, "/api/v1/drafts/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "does-not-exist")
}

func TestDeleteMissingDraftIs200(t *testing.T) {
	r := newDraftsRouter()
	w := doJSON(t, r, http.MethodDelete, "/api/v1/drafts/does-not-exist", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body["removed"])
}

func TestSaveSameAddressUpdatesExistingDraft(t *testing.T) {
	r := newDraftsRouter()

	w1 := doJSON(t, r, http.MethodPost, "/api/v1/drafts", gin.H{"propertyAddress": "12 Test St"})
	require.Equal(t, http.StatusOK, w1.Code)
	w2 := doJSON(t, r, http.MethodPost, "/api/v1/drafts", gin.H{"propertyAddress": "12 Test St"})
	require.Equal(t, http.StatusOK, w2.Code)

	var first, second models.Draft
	require.NoError(t, json.Unmarshal(w1.Body.Bytes(), &first))
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &second))
	assert.Equal(t, first.DraftID, second.DraftID)

	w := doJSON(t, r, http.MethodGet, "/api/v1/drafts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Drafts []models.DraftSummary `json:"drafts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Drafts, 1)
}
