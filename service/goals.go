package service

import (
	"sort"

	"aquacal/backend/types"
)

const (
	// A day above this temperature adds the heat bonus to the water goal.
	// Exactly 25 °C gets no bonus.
	heatThresholdC = 25.0
	heatBonusMl    = 500.0
)

// activityBurnRates maps an activity to kcal burned per minute. The Russian
// names are the original bot vocabulary; the English ones are aliases for
// the same rates.
var activityBurnRates = map[string]float64{
	"бег":                   100,
	"running":               100,
	"программирование":      99,
	"coding":                99,
	"прогулка":              60,
	"walking":               60,
	"активная активность":   150,
	"vigorous":              150,
	"неактивная активность": 50,
	"light":                 50,
}

// ComputeGoals derives the daily water and calorie targets from a profile.
// The water goal grows with weight and activity and gets a flat bonus when
// the current temperature is above the heat threshold; a nil temperature
// simply omits the bonus. The calorie goal is a Mifflin-St Jeor style
// estimate without a sex term, an intentional simplification.
func ComputeGoals(profile types.UserProfile, temperatureC *float64) types.DailyGoals {
	waterGoal := profile.Weight*30 + float64(profile.ActivityMin)/30*500
	if temperatureC != nil && *temperatureC > heatThresholdC {
		waterGoal += heatBonusMl
	}

	calorieGoal := 10*profile.Weight + 6.25*profile.Height - 5*float64(profile.Age) + 200

	return types.DailyGoals{
		WaterGoalMl:     waterGoal,
		CalorieGoalKcal: calorieGoal,
	}
}

// ActivityBurnRate returns the per-minute burn rate for a known activity.
func ActivityBurnRate(activity string) (float64, bool) {
	rate, ok := activityBurnRates[NormalizeKey(activity)]
	return rate, ok
}

// Activities lists all known activity names, sorted for stable output.
func Activities() []string {
	names := make([]string, 0, len(activityBurnRates))
	for name := range activityBurnRates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
