package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"aquacal/backend/types"
)

// UserSession bundles one user's profile, goals, progress ledger and the
// temperature observed at setup time. All mutation goes through the session
// mutex so logging commands for the same user can safely be in flight
// concurrently.
type UserSession struct {
	mu           sync.Mutex
	profile      types.UserProfile
	goals        types.DailyGoals
	progress     types.Progress
	history      []types.IntakeEntry
	temperatureC *float64
}

func NewUserSession(profile types.UserProfile, goals types.DailyGoals, temperatureC *float64) *UserSession {
	return &UserSession{
		profile:      profile,
		goals:        goals,
		temperatureC: temperatureC,
	}
}

// Profile returns the immutable profile the session was created with.
func (s *UserSession) Profile() types.UserProfile {
	return s.profile
}

// Goals returns the daily targets computed at setup.
func (s *UserSession) Goals() types.DailyGoals {
	return s.goals
}

// AddWater records a water intake and returns the new total plus the
// remaining amount toward the goal, clamped at zero.
func (s *UserSession) AddWater(amountMl int) types.WaterLogResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.progress.LoggedWaterMl += amountMl
	s.appendEntry("water", "water", float64(amountMl), 0)

	return types.WaterLogResult{
		TotalMl:     s.progress.LoggedWaterMl,
		RemainingMl: clampZero(s.goals.WaterGoalMl - float64(s.progress.LoggedWaterMl)),
	}
}

// AddFood records consumed calories for a resolved product.
func (s *UserSession) AddFood(productName string, grams, calories float64) types.FoodLogResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.progress.LoggedCaloriesKcal += calories
	s.appendEntry("food", productName, grams, calories)

	return types.FoodLogResult{
		ProductName:   productName,
		Grams:         grams,
		CaloriesAdded: calories,
	}
}

// AddActivity records burned calories for an activity.
func (s *UserSession) AddActivity(activity string, minutes int, calories float64) types.ActivityLogResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.progress.BurnedCaloriesKcal += calories
	s.appendEntry("activity", activity, float64(minutes), calories)

	return types.ActivityLogResult{
		Activity:       activity,
		Minutes:        minutes,
		CaloriesBurned: calories,
	}
}

// Summary derives the progress view. Burned calories count as a credit
// against the calorie goal; remaining values never go negative.
func (s *UserSession) Summary() types.ProgressSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := types.ProgressSummary{
		City:                  s.profile.City,
		LoggedWaterMl:         s.progress.LoggedWaterMl,
		WaterGoalMl:           s.goals.WaterGoalMl,
		WaterRemainingMl:      clampZero(s.goals.WaterGoalMl - float64(s.progress.LoggedWaterMl)),
		LoggedCaloriesKcal:    s.progress.LoggedCaloriesKcal,
		BurnedCaloriesKcal:    s.progress.BurnedCaloriesKcal,
		CalorieGoalKcal:       s.goals.CalorieGoalKcal,
		CaloriesRemainingKcal: clampZero(s.goals.CalorieGoalKcal + s.progress.BurnedCaloriesKcal - s.progress.LoggedCaloriesKcal),
		TemperatureC:          s.temperatureC,
		Weather:               types.WeatherNotFound,
	}

	if s.temperatureC != nil {
		if *s.temperatureC > heatThresholdC {
			summary.Weather = types.WeatherHot
		} else {
			summary.Weather = types.WeatherNormal
		}
	}

	return summary
}

// History returns a copy of the accepted log events, oldest first.
func (s *UserSession) History() []types.IntakeEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]types.IntakeEntry, len(s.history))
	copy(entries, s.history)
	return entries
}

// appendEntry must be called with the session mutex held.
func (s *UserSession) appendEntry(kind, label string, amount, calories float64) {
	s.history = append(s.history, types.IntakeEntry{
		ID:       uuid.NewString(),
		Kind:     kind,
		Label:    label,
		Amount:   amount,
		Calories: calories,
		LoggedAt: time.Now(),
	})
}

func clampZero(value float64) float64 {
	if value < 0 {
		return 0
	}
	return value
}

// Registry is the process-wide user-to-session store. Sessions are created
// on successful profile setup, replaced wholesale on re-setup, and live for
// the process lifetime.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*UserSession
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*UserSession)}
}

func (r *Registry) Get(userID string) (*UserSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[userID]
	return session, ok
}

// Put installs a session for the user, replacing any previous one.
func (r *Registry) Put(userID string, session *UserSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[userID] = session
}
