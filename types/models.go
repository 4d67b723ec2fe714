package types

import (
	"time"
)

// UserProfile holds the physical characteristics collected during profile
// setup. Immutable once created; re-running setup replaces the whole session.
type UserProfile struct {
	Weight      float64 `json:"weight"`       // in kg
	Height      float64 `json:"height"`       // in cm
	Age         int     `json:"age"`          // in years
	ActivityMin int     `json:"activity_min"` // minutes of activity per day
	City        string  `json:"city"`
}

// DailyGoals are the computed daily targets. Recomputation replaces the
// struct wholesale, there is no partial update.
type DailyGoals struct {
	WaterGoalMl     float64 `json:"water_goal_ml"`
	CalorieGoalKcal float64 `json:"calorie_goal_kcal"`
}

// Progress accumulates logged quantities for the current session. All three
// counters only ever grow; a fresh session starts them at zero.
type Progress struct {
	LoggedWaterMl      int     `json:"logged_water_ml"`
	LoggedCaloriesKcal float64 `json:"logged_calories_kcal"`
	BurnedCaloriesKcal float64 `json:"burned_calories_kcal"`
}

// FoodInfo is the normalized result of a food lookup. CaloriesPer100g of 0
// means the provider reported no usable energy value.
type FoodInfo struct {
	ProductName     string  `json:"product_name"`
	CaloriesPer100g float64 `json:"energy-kcal_100g"`
}

// IntakeEntry records one accepted log event. History lives in memory for
// the lifetime of the session only.
type IntakeEntry struct {
	ID       string    `json:"id"`
	Kind     string    `json:"kind"` // "water", "food" or "activity"
	Label    string    `json:"label"`
	Amount   float64   `json:"amount"`   // ml, grams or minutes depending on kind
	Calories float64   `json:"calories"` // kcal added (food) or burned (activity)
	LoggedAt time.Time `json:"logged_at"`
}

// Weather classification labels used in progress summaries.
const (
	WeatherHot      = "hot"
	WeatherNormal   = "normal"
	WeatherNotFound = "city not found"
)

// ProgressSummary is the derived view over goals and progress. Remaining
// quantities are clamped at zero.
type ProgressSummary struct {
	City                  string   `json:"city"`
	LoggedWaterMl         int      `json:"logged_water_ml"`
	WaterGoalMl           float64  `json:"water_goal_ml"`
	WaterRemainingMl      float64  `json:"water_remaining_ml"`
	LoggedCaloriesKcal    float64  `json:"logged_calories_kcal"`
	BurnedCaloriesKcal    float64  `json:"burned_calories_kcal"`
	CalorieGoalKcal       float64  `json:"calorie_goal_kcal"`
	CaloriesRemainingKcal float64  `json:"calories_remaining_kcal"`
	TemperatureC          *float64 `json:"temperature_c,omitempty"`
	Weather               string   `json:"weather"`
}

// WaterLogResult is returned after a successful water log.
type WaterLogResult struct {
	TotalMl     int     `json:"total_ml"`
	RemainingMl float64 `json:"remaining_ml"`
}

// FoodLogResult is returned after a successful food log.
type FoodLogResult struct {
	ProductName   string  `json:"product_name"`
	Grams         float64 `json:"grams"`
	CaloriesAdded float64 `json:"calories_added"`
}

// ActivityLogResult is returned after a successful activity log.
type ActivityLogResult struct {
	Activity       string  `json:"activity"`
	Minutes        int     `json:"minutes"`
	CaloriesBurned float64 `json:"calories_burned"`
}
