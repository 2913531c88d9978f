package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const kelvinZero = 273.15

// OpenWeather fetches the current temperature for a zip code.
type OpenWeather struct {
	BaseURL string
	APIKey  string
	Zip     string // "12345,us"
	Client  *http.Client
}

func NewOpenWeather(apiKey, zip string, timeout time.Duration) *OpenWeather {
	return &OpenWeather{
		BaseURL: "https://api.openweathermap.org/data/2.5/weather",
		APIKey:  apiKey,
		Zip:     zip,
		Client:  &http.Client{Timeout: timeout},
	}
}

type openWeatherPayload struct {
	Main struct {
		Temp float64 `json:"temp"` // Kelvin
	} `json:"main"`
}

// Temperature returns the current reading in Celsius.
func (o *OpenWeather) Temperature(ctx context.Context) (float64, error) {
	url := fmt.Sprintf("%s?zip=%s&appid=%s", o.BaseURL, o.Zip, o.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("X-Clacks-Overhead", "GNU Terry Pratchett")

	resp, err := o.Client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return 0, fmt.Errorf("openweather status %d", resp.StatusCode)
	}

	var payload openWeatherPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("openweather decode: %w", err)
	}
	if payload.Main.Temp == 0 {
		// The API never reports exactly 0K; an empty struct means the zip
		// or key was rejected with a 2xx body.
		return 0, fmt.Errorf("openweather empty payload")
	}
	return payload.Main.Temp - kelvinZero, nil
}
