package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePlaceIDReturnsFirstResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "12 Test St", r.URL.Query().Get("address"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK","results":[{"place_id":"ChIJfirst","formatted_address":"12 Test St"},{"place_id":"ChIJsecond"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", zerolog.Nop())
	id, err := c.ResolvePlaceID(context.Background(), "12 Test St")
	require.NoError(t, err)
	assert.Equal(t, "ChIJfirst", id)
}

func TestResolvePlaceIDZeroResultsFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", zerolog.Nop())
	id, err := c.ResolvePlaceID(context.Background(), "Nowhere")
	require.NoError(t, err)
	assert.Equal(t, FallbackPlaceID("Nowhere"), id)
}

func TestResolvePlaceIDServerErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", zerolog.Nop())
	id, err := c.ResolvePlaceID(context.Background(), "12 Test St")
	require.NoError(t, err)
	assert.Equal(t, FallbackPlaceID("12 Test St"), id)
}

func TestResolvePlaceIDTransportErrorFallsBack(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "test-key", zerolog.Nop())
	id, err := c.ResolvePlaceID(context.Background(), "12 Test St")
	require.NoError(t, err)
	assert.Equal(t, FallbackPlaceID("12 Test St"), id)
}

func TestFallbackPlaceIDNormalizesAddress(t *testing.T) {
	a := FallbackPlaceID("12 Test St, Springfield")
	b := FallbackPlaceID("  12  TEST st,   Springfield ")
	c := FallbackPlaceID("13 Test St, Springfield")

	assert.Equal(t, a, b, "case and whitespace must not change the identifier")
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "addr-"))
	assert.Len(t, a, len("addr-")+40)
}
