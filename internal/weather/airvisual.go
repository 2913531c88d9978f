package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// AirVisual fetches the US AQI for the nearest city to a coordinate.
type AirVisual struct {
	BaseURL  string
	APIKey   string
	Lat, Lon float64
	Client   *http.Client
}

func NewAirVisual(apiKey string, lat, lon float64, timeout time.Duration) *AirVisual {
	return &AirVisual{
		BaseURL: "https://api.airvisual.com/v2/nearest_city",
		APIKey:  apiKey,
		Lat:     lat,
		Lon:     lon,
		Client:  &http.Client{Timeout: timeout},
	}
}

type airVisualPayload struct {
	Data struct {
		Current struct {
			Pollution struct {
				AQIUS *int `json:"aqius"`
			} `json:"pollution"`
		} `json:"current"`
	} `json:"data"`
}

func (a *AirVisual) AQI(ctx context.Context) (int, error) {
	url := fmt.Sprintf("%s?lat=%f&lon=%f&key=%s", a.BaseURL, a.Lat, a.Lon, a.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("X-Clacks-Overhead", "GNU Terry Pratchett")

	resp, err := a.Client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return 0, fmt.Errorf("airvisual status %d", resp.StatusCode)
	}

	var payload airVisualPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("airvisual decode: %w", err)
	}
	if payload.Data.Current.Pollution.AQIUS == nil {
		return 0, fmt.Errorf("airvisual payload missing aqius")
	}
	return *payload.Data.Current.Pollution.AQIUS, nil
}
