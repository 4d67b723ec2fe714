package service

import (
	"fmt"
	"strconv"
	"strings"

	"aquacal/backend/types"
)

func ValidateWeight(weight float64) error {
	if weight <= 0 {
		return fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	}
	return nil
}

func ValidateHeight(height float64) error {
	if height <= 0 {
		return fmt.Errorf("%w: height must be positive", ErrInvalidInput)
	}
	return nil
}

func ValidateAge(age int) error {
	if age <= 0 {
		return fmt.Errorf("%w: age must be positive", ErrInvalidInput)
	}
	return nil
}

func ValidateActivityMinutes(minutes int) error {
	if minutes < 0 {
		return fmt.Errorf("%w: activity minutes cannot be negative", ErrInvalidInput)
	}
	return nil
}

func ValidateCity(city string) error {
	if strings.TrimSpace(city) == "" {
		return fmt.Errorf("%w: city is required", ErrInvalidInput)
	}
	return nil
}

// ValidateProfile checks a fully assembled profile, for callers that submit
// all fields at once instead of walking the setup states.
func ValidateProfile(profile types.UserProfile) error {
	if err := ValidateWeight(profile.Weight); err != nil {
		return err
	}
	if err := ValidateHeight(profile.Height); err != nil {
		return err
	}
	if err := ValidateAge(profile.Age); err != nil {
		return err
	}
	if err := ValidateActivityMinutes(profile.ActivityMin); err != nil {
		return err
	}
	return ValidateCity(profile.City)
}

// SetupState identifies one step of the profile setup flow.
type SetupState int

const (
	StateWeight SetupState = iota
	StateHeight
	StateAge
	StateActivity
	StateCity
	StateDone
)

// Prompt returns the question to ask the user for the current state.
func (s SetupState) Prompt() string {
	switch s {
	case StateWeight:
		return "Enter your weight (kg):"
	case StateHeight:
		return "Enter your height (cm):"
	case StateAge:
		return "Enter your age (years):"
	case StateActivity:
		return "How many minutes of activity do you get per day?"
	case StateCity:
		return "Which city are you in? (best answered like `Moscow, RU`)"
	default:
		return ""
	}
}

func (s SetupState) next() SetupState {
	if s >= StateCity {
		return StateDone
	}
	return s + 1
}

// ProfileSetup walks a user through the fixed setup order
// weight -> height -> age -> activity -> city. An invalid answer keeps the
// state where it is so the same question can be asked again; the caller owns
// the instance and reads the profile once StateDone is reached.
type ProfileSetup struct {
	state   SetupState
	profile types.UserProfile
}

func NewProfileSetup() *ProfileSetup {
	return &ProfileSetup{state: StateWeight}
}

// State returns the step the setup is currently waiting on.
func (p *ProfileSetup) State() SetupState {
	return p.state
}

// Submit validates the answer for the current state and advances on success.
// On failure the state is unchanged and the returned error wraps
// ErrInvalidInput.
func (p *ProfileSetup) Submit(input string) (SetupState, error) {
	input = strings.TrimSpace(input)

	switch p.state {
	case StateWeight:
		weight, err := parseFloat(input)
		if err == nil {
			err = ValidateWeight(weight)
		}
		if err != nil {
			return p.state, err
		}
		p.profile.Weight = weight
	case StateHeight:
		height, err := parseFloat(input)
		if err == nil {
			err = ValidateHeight(height)
		}
		if err != nil {
			return p.state, err
		}
		p.profile.Height = height
	case StateAge:
		age, err := parseInt(input)
		if err == nil {
			err = ValidateAge(age)
		}
		if err != nil {
			return p.state, err
		}
		p.profile.Age = age
	case StateActivity:
		minutes, err := parseInt(input)
		if err == nil {
			err = ValidateActivityMinutes(minutes)
		}
		if err != nil {
			return p.state, err
		}
		p.profile.ActivityMin = minutes
	case StateCity:
		if err := ValidateCity(input); err != nil {
			return p.state, err
		}
		p.profile.City = input
	default:
		return p.state, fmt.Errorf("%w: setup already completed", ErrInvalidInput)
	}

	p.state = p.state.next()
	return p.state, nil
}

// Profile returns the collected profile once all states have been walked.
func (p *ProfileSetup) Profile() (types.UserProfile, bool) {
	if p.state != StateDone {
		return types.UserProfile{}, false
	}
	return p.profile, true
}

func parseFloat(input string) (float64, error) {
	value, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, input)
	}
	return value, nil
}

func parseInt(input string) (int, error) {
	value, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrInvalidInput, input)
	}
	return value, nil
}
