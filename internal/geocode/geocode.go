// Package geocode resolves property addresses to place identifiers via the
// Google Geocoding API. When geocoding yields nothing (or the call fails),
// a deterministic hash of the normalized address is used instead so that
// upsert-by-address stays stable without true geocoding.
package geocode

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID          string `json:"place_id"`
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
}

type Client struct {
	http    *resty.Client
	baseURL string
	apiKey  string
	log     zerolog.Logger
}

func NewClient(baseURL, apiKey string, log zerolog.Logger) *Client {
	return &Client{
		http:    resty.New(),
		baseURL: baseURL,
		apiKey:  apiKey,
		log:     log.With().Str("component", "geocode").Logger(),
	}
}

// ResolvePlaceID returns the first geocoding result's place_id for address.
// Zero results or a transport failure fall back to FallbackPlaceID; the
// fallback is logged but never surfaced as an error.
func (c *Client) ResolvePlaceID(ctx context.Context, address string) (string, error) {
	var parsed geocodeResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("address", address).
		SetQueryParam("key", c.apiKey).
		SetResult(&parsed).
		Get(c.baseURL)
	if err != nil {
		c.log.Warn().Err(err).Str("address", address).Msg("geocoding request failed, using hash fallback")
		return FallbackPlaceID(address), nil
	}
	if resp.IsError() {
		c.log.Warn().Int("status", resp.StatusCode()).Str("address", address).
			Msg("geocoding returned error status, using hash fallback")
		return FallbackPlaceID(address), nil
	}
	if parsed.Status != "OK" || len(parsed.Results) == 0 {
		c.log.Warn().Str("status", parsed.Status).Str("address", address).
			Msg("no geocoding results, using hash fallback")
		return FallbackPlaceID(address), nil
	}

	return parsed.Results[0].PlaceID, nil
}

// FallbackPlaceID derives a stable identifier from the normalized address:
// lowercased, whitespace-collapsed, SHA-1 hashed.
func FallbackPlaceID(address string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(address)), " ")
	sum := sha1.Sum([]byte(normalized))
	return fmt.Sprintf("addr-%s", hex.EncodeToString(sum[:]))
}
