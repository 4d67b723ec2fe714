package service

import (
	"errors"
	"testing"

	"aquacal/backend/types"
)

func TestValidateProfile(t *testing.T) {
	valid := types.UserProfile{Weight: 70, Height: 175, Age: 30, ActivityMin: 40, City: "Berlin"}
	if err := ValidateProfile(valid); err != nil {
		t.Errorf("valid profile rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*types.UserProfile)
	}{
		{"zero weight", func(p *types.UserProfile) { p.Weight = 0 }},
		{"negative height", func(p *types.UserProfile) { p.Height = -10 }},
		{"zero age", func(p *types.UserProfile) { p.Age = 0 }},
		{"negative activity", func(p *types.UserProfile) { p.ActivityMin = -1 }},
		{"blank city", func(p *types.UserProfile) { p.City = "   " }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profile := valid
			tc.mutate(&profile)
			if err := ValidateProfile(profile); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestValidateActivityMinutesAllowsZero(t *testing.T) {
	if err := ValidateActivityMinutes(0); err != nil {
		t.Errorf("zero activity minutes rejected: %v", err)
	}
}

func TestProfileSetupFullWalk(t *testing.T) {
	setup := NewProfileSetup()

	steps := []struct {
		input string
		want  SetupState
	}{
		{"70", StateHeight},
		{"175", StateAge},
		{"30", StateActivity},
		{"40", StateCity},
		{"Berlin", StateDone},
	}

	for _, step := range steps {
		state, err := setup.Submit(step.input)
		if err != nil {
			t.Fatalf("Submit(%q) returned error: %v", step.input, err)
		}
		if state != step.want {
			t.Fatalf("Submit(%q) advanced to %v, want %v", step.input, state, step.want)
		}
	}

	profile, ok := setup.Profile()
	if !ok {
		t.Fatal("Profile() not available after StateDone")
	}

	want := types.UserProfile{Weight: 70, Height: 175, Age: 30, ActivityMin: 40, City: "Berlin"}
	if profile != want {
		t.Errorf("profile = %+v, want %+v", profile, want)
	}
}

func TestProfileSetupInvalidInputKeepsState(t *testing.T) {
	setup := NewProfileSetup()

	for _, input := range []string{"abc", "-5", "0", ""} {
		state, err := setup.Submit(input)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Submit(%q) error = %v, want ErrInvalidInput", input, err)
		}
		if state != StateWeight {
			t.Errorf("Submit(%q) moved state to %v, want StateWeight", input, state)
		}
	}

	// A valid answer still advances after any number of failures.
	if state, err := setup.Submit("70"); err != nil || state != StateHeight {
		t.Errorf("Submit(70) = (%v, %v), want (StateHeight, nil)", state, err)
	}
}

func TestProfileSetupWhitespaceTolerated(t *testing.T) {
	setup := NewProfileSetup()

	if _, err := setup.Submit("  70.5  "); err != nil {
		t.Errorf("padded numeric input rejected: %v", err)
	}
}

func TestProfileSetupProfileUnavailableMidWalk(t *testing.T) {
	setup := NewProfileSetup()
	setup.Submit("70")

	if _, ok := setup.Profile(); ok {
		t.Error("Profile() available before setup completed")
	}
}

func TestProfileSetupSubmitAfterDone(t *testing.T) {
	setup := NewProfileSetup()
	for _, input := range []string{"70", "175", "30", "40", "Berlin"} {
		if _, err := setup.Submit(input); err != nil {
			t.Fatalf("Submit(%q) failed: %v", input, err)
		}
	}

	if _, err := setup.Submit("extra"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Submit after completion error = %v, want ErrInvalidInput", err)
	}
}

func TestSetupStatePrompts(t *testing.T) {
	for _, state := range []SetupState{StateWeight, StateHeight, StateAge, StateActivity, StateCity} {
		if state.Prompt() == "" {
			t.Errorf("state %v has no prompt", state)
		}
	}
	if StateDone.Prompt() != "" {
		t.Errorf("StateDone has a prompt: %q", StateDone.Prompt())
	}
}
