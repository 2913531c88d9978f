package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// NWS fetches active alerts for a point from api.weather.gov. The API asks
// for a contact address in the User-Agent.
type NWS struct {
	BaseURL  string
	Lat, Lon float64
	Contact  string
	Client   *http.Client
}

func NewNWS(lat, lon float64, contact string, timeout time.Duration) *NWS {
	return &NWS{
		BaseURL: "https://api.weather.gov/alerts/active",
		Lat:     lat,
		Lon:     lon,
		Contact: contact,
		Client:  &http.Client{Timeout: timeout},
	}
}

type nwsPayload struct {
	Features []struct {
		Properties Alert `json:"properties"`
	} `json:"features"`
}

var _ AlertFeed = (*NWS)(nil)

func (n *NWS) Active(ctx context.Context) ([]Alert, error) {
	url := fmt.Sprintf("%s?status=actual&point=%f,%f", n.BaseURL, n.Lat, n.Lon)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "chimeclock, "+n.Contact)
	req.Header.Set("X-Clacks-Overhead", "GNU Terry Pratchett")

	resp, err := n.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("nws status %d", resp.StatusCode)
	}

	var payload nwsPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("nws decode: %w", err)
	}
	alerts := make([]Alert, 0, len(payload.Features))
	for _, f := range payload.Features {
		alerts = append(alerts, f.Properties)
	}
	return alerts, nil
}
