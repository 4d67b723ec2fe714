package service

import (
	"fmt"
	"log"

	"aquacal/backend/messaging"
	"aquacal/backend/settings"
	"aquacal/backend/types"
)

// TrackerService owns the session registry and the lookup chains. It is the
// single entry surface the API layers talk to: profile setup, the three
// logging operations, and progress reporting.
type TrackerService struct {
	registry *Registry
	food     FoodLookup
	weather  WeatherLookup
}

// NewTrackerService wires the full production service: caches, limiters and
// HTTP clients per the runtime configuration, plus the SQLite-backed food
// catalog.
func NewTrackerService() (*TrackerService, error) {
	cfg := settings.Load()

	foodCache, err := NewFoodCache(cfg.FoodCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create food cache: %v", err)
	}
	weatherCache := NewWeatherCache(cfg.WeatherCacheSize, cfg.WeatherCacheTTL)

	foodLimiter := NewLookupLimiter(cfg.LookupMaxCalls, cfg.LookupWindow)
	weatherLimiter := NewLookupLimiter(cfg.LookupMaxCalls, cfg.LookupWindow)

	food := NewCachedFoodLookup(foodCache, dbCatalog{}, foodLimiter, NewFoodClient(cfg.FoodAPIURL))
	weather := NewCachedWeatherLookup(weatherCache, weatherLimiter, NewWeatherClient(cfg.WeatherAPIURL, cfg.WeatherAPIKey))

	return NewTrackerServiceWithLookups(food, weather), nil
}

// NewTrackerServiceWithLookups builds a service around explicit lookup
// implementations. The API layer tests use this with fakes.
func NewTrackerServiceWithLookups(food FoodLookup, weather WeatherLookup) *TrackerService {
	return &TrackerService{
		registry: NewRegistry(),
		food:     food,
		weather:  weather,
	}
}

// SetupProfile validates the profile, fetches the current weather for the
// city (best effort), computes the daily goals and installs a fresh session
// for the user, replacing any previous one.
func (s *TrackerService) SetupProfile(userID string, profile types.UserProfile) (types.DailyGoals, error) {
	if err := ValidateProfile(profile); err != nil {
		return types.DailyGoals{}, err
	}

	var temperatureC *float64
	if temp, err := s.weather.CurrentTemperature(profile.City); err == nil {
		temperatureC = &temp
	} else {
		log.Printf("weather unavailable for %q: %v", profile.City, err)
	}

	goals := ComputeGoals(profile, temperatureC)
	s.registry.Put(userID, NewUserSession(profile, goals, temperatureC))

	messaging.BroadcastMessage("profile-updated:" + userID)
	return goals, nil
}

// LogWater adds a water intake to the user's ledger.
func (s *TrackerService) LogWater(userID string, amountMl int) (types.WaterLogResult, error) {
	session, ok := s.registry.Get(userID)
	if !ok {
		return types.WaterLogResult{}, ErrNoSession
	}
	if amountMl <= 0 {
		return types.WaterLogResult{}, fmt.Errorf("%w: water amount must be positive", ErrInvalidInput)
	}

	result := session.AddWater(amountMl)
	messaging.BroadcastMessage("progress-changed:" + userID)
	return result, nil
}

// LogFood resolves a product through the lookup chain and, on success, adds
// the consumed calories to the ledger. A failed lookup leaves the ledger
// untouched.
func (s *TrackerService) LogFood(userID, product string, grams float64) (types.FoodLogResult, error) {
	session, ok := s.registry.Get(userID)
	if !ok {
		return types.FoodLogResult{}, ErrNoSession
	}
	if grams <= 0 {
		return types.FoodLogResult{}, fmt.Errorf("%w: grams must be positive", ErrInvalidInput)
	}

	info, err := s.food.Lookup(product)
	if err != nil {
		return types.FoodLogResult{}, err
	}

	calories := info.CaloriesPer100g * grams / 100
	result := session.AddFood(info.ProductName, grams, calories)
	messaging.BroadcastMessage("progress-changed:" + userID)
	return result, nil
}

// LogActivity adds burned calories for a known activity. Unknown activity
// names are rejected without mutation.
func (s *TrackerService) LogActivity(userID, activity string, minutes int) (types.ActivityLogResult, error) {
	session, ok := s.registry.Get(userID)
	if !ok {
		return types.ActivityLogResult{}, ErrNoSession
	}
	if minutes <= 0 {
		return types.ActivityLogResult{}, fmt.Errorf("%w: minutes must be positive", ErrInvalidInput)
	}

	rate, ok := ActivityBurnRate(activity)
	if !ok {
		return types.ActivityLogResult{}, fmt.Errorf("%w: unknown activity %q", ErrInvalidInput, activity)
	}

	result := session.AddActivity(activity, minutes, rate*float64(minutes))
	messaging.BroadcastMessage("progress-changed:" + userID)
	return result, nil
}

// GetProgress derives the current summary for the user.
func (s *TrackerService) GetProgress(userID string) (types.ProgressSummary, error) {
	session, ok := s.registry.Get(userID)
	if !ok {
		return types.ProgressSummary{}, ErrNoSession
	}
	return session.Summary(), nil
}

// History returns the user's accepted log events.
func (s *TrackerService) History(userID string) ([]types.IntakeEntry, error) {
	session, ok := s.registry.Get(userID)
	if !ok {
		return nil, ErrNoSession
	}
	return session.History(), nil
}

// SearchFood exposes the food lookup chain directly, without touching any
// ledger. Used by the catalog search surface.
func (s *TrackerService) SearchFood(product string) (types.FoodInfo, error) {
	return s.food.Lookup(product)
}

// CurrentWeather exposes the weather lookup chain directly.
func (s *TrackerService) CurrentWeather(city string) (float64, error) {
	return s.weather.CurrentTemperature(city)
}
