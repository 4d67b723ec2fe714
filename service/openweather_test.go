package service

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func weatherServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("appid"); got != "test-key" {
			t.Errorf("appid = %q, want test-key", got)
		}
		if got := r.URL.Query().Get("units"); got != "metric" {
			t.Errorf("units = %q, want metric", got)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestWeatherClientReturnsTemperature(t *testing.T) {
	server := weatherServer(t, http.StatusOK, `{"main": {"temp": 18.3}}`)

	temperature, err := NewWeatherClient(server.URL, "test-key").CurrentTemperature("Berlin")
	if err != nil {
		t.Fatalf("CurrentTemperature returned error: %v", err)
	}
	if temperature != 18.3 {
		t.Errorf("temperature = %f, want 18.3", temperature)
	}
}

func TestWeatherClientCityNotFound(t *testing.T) {
	server := weatherServer(t, http.StatusNotFound, `{"cod": "404", "message": "city not found"}`)

	if _, err := NewWeatherClient(server.URL, "test-key").CurrentTemperature("Nowhere"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestWeatherClientMissingTemperature(t *testing.T) {
	server := weatherServer(t, http.StatusOK, `{"main": {}}`)

	if _, err := NewWeatherClient(server.URL, "test-key").CurrentTemperature("Berlin"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestWeatherClientZeroTemperature(t *testing.T) {
	server := weatherServer(t, http.StatusOK, `{"main": {"temp": 0}}`)

	temperature, err := NewWeatherClient(server.URL, "test-key").CurrentTemperature("Oymyakon")
	if err != nil {
		t.Fatalf("a real 0 °C reading must not be an error, got: %v", err)
	}
	if temperature != 0 {
		t.Errorf("temperature = %f, want 0", temperature)
	}
}

func TestWeatherClientUnreachable(t *testing.T) {
	server := weatherServer(t, http.StatusOK, `{}`)
	server.Close()

	if _, err := NewWeatherClient(server.URL, "test-key").CurrentTemperature("Berlin"); !errors.Is(err, ErrUpstream) {
		t.Errorf("error = %v, want ErrUpstream", err)
	}
}
