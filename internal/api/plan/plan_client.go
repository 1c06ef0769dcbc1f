package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// WeatherClient calls the OpenWeather One Call 3.0 API.
type WeatherClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewWeatherClient(baseURL, apiKey string) *WeatherClient {
	return &WeatherClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// DailyForecast returns the daily forecast entries for the location, raw as
// delivered by the API. Only a digest of these is forwarded to the model.
func (c *WeatherClient) DailyForecast(ctx context.Context, lat, lng float64) ([]json.RawMessage, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	params.Set("exclude", "minutely")
	params.Set("units", "metric")
	params.Set("appid", c.apiKey)

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
		return nil, fmt.Errorf("weather api error: status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}

	var decoded struct {
		Daily []json.RawMessage `json:"daily"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}
	return decoded.Daily, nil
}
