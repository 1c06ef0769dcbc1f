package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cityscout-app/cityscout/internal/types"
)

// GeocoderClient calls the Yandex geocoder HTTP API.
type GeocoderClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewGeocoderClient(baseURL, apiKey string) *GeocoderClient {
	return &GeocoderClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// geocodeResponse mirrors the parts of the Yandex geocoder payload we read.
type geocodeResponse struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []struct {
				GeoObject struct {
					Name        string `json:"name"`
					Description string `json:"description"`
					Point       struct {
						Pos string `json:"pos"` // "lng lat"
					} `json:"Point"`
				} `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

func (c *GeocoderClient) get(ctx context.Context, params url.Values) (*geocodeResponse, error) {
	params.Set("format", "json")
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("geocoder error: status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode geocoder response: %w", err)
	}
	return &decoded, nil
}

// parsePos splits the geocoder "lng lat" position string.
func parsePos(pos string) (lat, lng float64, err error) {
	parts := strings.Fields(pos)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed position %q", pos)
	}
	lng, err = strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed longitude %q: %w", parts[0], err)
	}
	lat, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed latitude %q: %w", parts[1], err)
	}
	return lat, lng, nil
}

// SearchCity geocodes a city query into up to five candidate localities.
func (c *GeocoderClient) SearchCity(ctx context.Context, query string) ([]types.CityMatch, error) {
	params := url.Values{}
	params.Set("geocode", query)
	params.Set("kind", "locality")
	params.Set("results", "5")

	decoded, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	members := decoded.Response.GeoObjectCollection.FeatureMember
	matches := make([]types.CityMatch, 0, len(members))
	for _, m := range members {
		lat, lng, err := parsePos(m.GeoObject.Point.Pos)
		if err != nil {
			continue
		}
		matches = append(matches, types.CityMatch{
			Name:    m.GeoObject.Name,
			Country: m.GeoObject.Description,
			Lat:     lat,
			Lng:     lng,
		})
	}
	return matches, nil
}

// GeocodePlaceInCity resolves a place scoped to a city, which is more precise
// than a bare place-name search. Returns nil when there is no match.
func (c *GeocoderClient) GeocodePlaceInCity(ctx context.Context, place, city string) (*types.ResolvedLocation, error) {
	params := url.Values{}
	params.Set("geocode", fmt.Sprintf("%s, %s", place, city))
	params.Set("results", "1")

	decoded, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	members := decoded.Response.GeoObjectCollection.FeatureMember
	if len(members) == 0 {
		return nil, nil
	}
	obj := members[0].GeoObject
	lat, lng, err := parsePos(obj.Point.Pos)
	if err != nil {
		return nil, err
	}
	return &types.ResolvedLocation{
		Lat:     lat,
		Lng:     lng,
		Address: fmt.Sprintf("%s, %s", obj.Name, obj.Description),
	}, nil
}
