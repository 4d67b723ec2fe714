package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"aquacal/backend/data"
	"aquacal/backend/service"
	"aquacal/backend/types"
)

type stubFoodLookup struct {
	info types.FoodInfo
	err  error
}

func (s *stubFoodLookup) Lookup(product string) (types.FoodInfo, error) {
	return s.info, s.err
}

type stubWeatherLookup struct {
	temperatureC float64
	err          error
}

func (s *stubWeatherLookup) CurrentTemperature(city string) (float64, error) {
	return s.temperatureC, s.err
}

func newTestRouter(t *testing.T, food service.FoodLookup, weather service.WeatherLookup) *Router {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if food == nil {
		food = &stubFoodLookup{info: types.FoodInfo{ProductName: "Apple", CaloriesPer100g: 52}}
	}
	if weather == nil {
		weather = &stubWeatherLookup{temperatureC: 20}
	}

	router := NewRouterWith(service.NewTrackerServiceWithLookups(food, weather))
	router.setupRoutes()
	return router
}

func doJSON(t *testing.T, router *Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.engine.ServeHTTP(recorder, request)
	return recorder
}

func setupTestUser(t *testing.T, router *Router) {
	t.Helper()
	response := doJSON(t, router, http.MethodPost, "/api/users/u1/profile", types.ProfileRequest{
		Weight: 70, Height: 175, Age: 30, ActivityMin: 40, City: "Berlin",
	})
	if response.Code != http.StatusOK {
		t.Fatalf("profile setup returned %d: %s", response.Code, response.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	response := doJSON(t, router, http.MethodGet, "/health", nil)
	if response.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", response.Code)
	}
}

func TestSetupProfileEndpoint(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	response := doJSON(t, router, http.MethodPost, "/api/users/u1/profile", types.ProfileRequest{
		Weight: 70, Height: 175, Age: 30, ActivityMin: 40, City: "Berlin",
	})
	if response.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", response.Code, response.Body.String())
	}

	var body types.SetupResponse
	if err := json.Unmarshal(response.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Goals.CalorieGoalKcal != 1843.75 {
		t.Errorf("calorie goal = %f, want 1843.75", body.Goals.CalorieGoalKcal)
	}
	if body.Summary.Weather != types.WeatherNormal {
		t.Errorf("weather = %q, want %q", body.Summary.Weather, types.WeatherNormal)
	}
}

func TestSetupProfileRejectsInvalidBody(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	response := doJSON(t, router, http.MethodPost, "/api/users/u1/profile", types.ProfileRequest{
		Weight: -5, Height: 175, Age: 30, ActivityMin: 40, City: "Berlin",
	})
	if response.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", response.Code)
	}
}

func TestProgressWithoutProfile(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	response := doJSON(t, router, http.MethodGet, "/api/users/nobody/progress", nil)
	if response.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", response.Code)
	}
}

func TestLogWaterEndpoint(t *testing.T) {
	router := newTestRouter(t, nil, nil)
	setupTestUser(t, router)

	response := doJSON(t, router, http.MethodPost, "/api/users/u1/log/water", types.LogWaterRequest{AmountMl: 500})
	if response.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", response.Code, response.Body.String())
	}

	var result types.WaterLogResult
	if err := json.Unmarshal(response.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if result.TotalMl != 500 {
		t.Errorf("total = %d, want 500", result.TotalMl)
	}
}

func TestLogWaterRejectsNegative(t *testing.T) {
	router := newTestRouter(t, nil, nil)
	setupTestUser(t, router)

	response := doJSON(t, router, http.MethodPost, "/api/users/u1/log/water", types.LogWaterRequest{AmountMl: -100})
	if response.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", response.Code)
	}
}

func TestLogFoodEndpoint(t *testing.T) {
	router := newTestRouter(t, &stubFoodLookup{info: types.FoodInfo{ProductName: "Apple", CaloriesPer100g: 52}}, nil)
	setupTestUser(t, router)

	response := doJSON(t, router, http.MethodPost, "/api/users/u1/log/food", types.LogFoodRequest{Product: "apple", Grams: 150})
	if response.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", response.Code, response.Body.String())
	}

	var result types.FoodLogResult
	if err := json.Unmarshal(response.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if result.CaloriesAdded != 78 {
		t.Errorf("calories = %f, want 78", result.CaloriesAdded)
	}
}

func TestLogFoodThrottled(t *testing.T) {
	router := newTestRouter(t, &stubFoodLookup{err: service.ErrThrottled}, nil)
	setupTestUser(t, router)

	response := doJSON(t, router, http.MethodPost, "/api/users/u1/log/food", types.LogFoodRequest{Product: "apple", Grams: 100})
	if response.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", response.Code)
	}
}

func TestLogFoodNotFound(t *testing.T) {
	router := newTestRouter(t, &stubFoodLookup{err: service.ErrNotFound}, nil)
	setupTestUser(t, router)

	response := doJSON(t, router, http.MethodPost, "/api/users/u1/log/food", types.LogFoodRequest{Product: "mystery", Grams: 100})
	if response.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", response.Code)
	}
}

func TestLogActivityEndpoint(t *testing.T) {
	router := newTestRouter(t, nil, nil)
	setupTestUser(t, router)

	response := doJSON(t, router, http.MethodPost, "/api/users/u1/log/activity", types.LogActivityRequest{Activity: "бег", Minutes: 30})
	if response.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", response.Code, response.Body.String())
	}

	var result types.ActivityLogResult
	if err := json.Unmarshal(response.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if result.CaloriesBurned != 3000 {
		t.Errorf("burned = %f, want 3000", result.CaloriesBurned)
	}
}

func TestLogActivityUnknown(t *testing.T) {
	router := newTestRouter(t, nil, nil)
	setupTestUser(t, router)

	response := doJSON(t, router, http.MethodPost, "/api/users/u1/log/activity", types.LogActivityRequest{Activity: "йога", Minutes: 30})
	if response.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", response.Code)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	router := newTestRouter(t, nil, nil)
	setupTestUser(t, router)
	doJSON(t, router, http.MethodPost, "/api/users/u1/log/water", types.LogWaterRequest{AmountMl: 250})

	response := doJSON(t, router, http.MethodGet, "/api/users/u1/history", nil)
	if response.Code != http.StatusOK {
		t.Fatalf("status = %d", response.Code)
	}

	var history []types.IntakeEntry
	if err := json.Unmarshal(response.Body.Bytes(), &history); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(history) != 1 || history[0].Kind != "water" {
		t.Errorf("history = %+v, want one water entry", history)
	}
}

func TestActivitiesEndpoint(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	response := doJSON(t, router, http.MethodGet, "/api/activities", nil)
	if response.Code != http.StatusOK {
		t.Fatalf("status = %d", response.Code)
	}

	var activities []string
	if err := json.Unmarshal(response.Body.Bytes(), &activities); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(activities) == 0 {
		t.Error("no activities returned")
	}
}

func TestSearchEndpointRequiresQuery(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	response := doJSON(t, router, http.MethodGet, "/api/search", nil)
	if response.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", response.Code)
	}
}

func TestWeatherEndpoint(t *testing.T) {
	router := newTestRouter(t, nil, &stubWeatherLookup{temperatureC: 28.5})

	response := doJSON(t, router, http.MethodGet, "/api/weather?city=Cairo", nil)
	if response.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", response.Code, response.Body.String())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(response.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body["temperature_c"] != 28.5 {
		t.Errorf("temperature = %v, want 28.5", body["temperature_c"])
	}
}

func TestFoodCatalogEndpoints(t *testing.T) {
	if err := data.InitDatabase(filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatalf("InitDatabase failed: %v", err)
	}
	router := newTestRouter(t, nil, nil)

	if err := data.SaveFoodItem(data.FoodItem{NameKey: "apple", ProductName: "Apple", CaloriesPer100g: 52}); err != nil {
		t.Fatalf("SaveFoodItem failed: %v", err)
	}

	response := doJSON(t, router, http.MethodGet, "/api/foodItems/all", nil)
	if response.Code != http.StatusOK {
		t.Fatalf("list status = %d", response.Code)
	}

	var items []data.FoodItem
	if err := json.Unmarshal(response.Body.Bytes(), &items); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("catalog has %d items, want 1", len(items))
	}

	response = doJSON(t, router, http.MethodDelete, "/api/foodItems/Apple", nil)
	if response.Code != http.StatusOK {
		t.Errorf("delete status = %d: %s", response.Code, response.Body.String())
	}

	response = doJSON(t, router, http.MethodDelete, "/api/foodItems/Apple", nil)
	if response.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", response.Code)
	}
}
