package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"aquacal/backend/types"
)

// WeatherClient queries the OpenWeatherMap current-weather endpoint. The API
// key is injected from configuration, never hard-coded.
type WeatherClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewWeatherClient(baseURL, apiKey string) *WeatherClient {
	return &WeatherClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  http.DefaultClient,
	}
}

// CurrentTemperature returns the current temperature for a city in Celsius.
// A non-success status or a response without main.temp is ErrNotFound.
func (c *WeatherClient) CurrentTemperature(city string) (float64, error) {
	query := url.Values{
		"q":     {city},
		"appid": {c.apiKey},
		"units": {"metric"},
	}

	log.Printf("weather api call for: %s", city)
	resp, err := c.client.Get(c.baseURL + "?" + query.Encode())
	if err != nil {
		return 0, fmt.Errorf("%w: openweathermap request: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("openweathermap error: status %d, body %s", resp.StatusCode, string(body))
		return 0, ErrNotFound
	}

	var payload types.OpenWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("%w: openweathermap response: %v", ErrUpstream, err)
	}

	if payload.Main.Temp == nil {
		return 0, ErrNotFound
	}

	return *payload.Main.Temp, nil
}
