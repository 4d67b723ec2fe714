package api

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"aquacal/backend/service"
	"aquacal/backend/types"
)

// chatMode tracks which answer the conversation is currently waiting for.
type chatMode int

const (
	modeIdle chatMode = iota
	modeSetup
	modeFoodGrams
	modeActivityChoice
	modeActivityMinutes
)

// ChatHandler is the line-oriented conversational interface on
// stdin/stdout. It owns the conversation state (setup walk, pending food or
// activity question); the tracker service owns everything else.
type ChatHandler struct {
	tracker *service.TrackerService
	in      io.Reader
	out     io.Writer

	userID          string
	mode            chatMode
	setup           *service.ProfileSetup
	pendingFood     string
	pendingActivity string
}

func NewChatHandler() *ChatHandler {
	tracker, err := service.NewTrackerService()
	if err != nil {
		panic(fmt.Sprintf("Failed to create tracker service: %v", err))
	}
	return NewChatHandlerWith(tracker, os.Stdin, os.Stdout)
}

// NewChatHandlerWith builds a chat handler with explicit streams, used by
// tests.
func NewChatHandlerWith(tracker *service.TrackerService, in io.Reader, out io.Writer) *ChatHandler {
	return &ChatHandler{
		tracker: tracker,
		in:      in,
		out:     out,
		userID:  "local",
	}
}

func (h *ChatHandler) Start() {
	log.Println("Chat handler started - waiting for input")
	scanner := bufio.NewScanner(h.in)
	for scanner.Scan() {
		for _, reply := range h.HandleLine(scanner.Text()) {
			fmt.Fprintln(h.out, reply)
		}
	}

	if err := scanner.Err(); err != nil {
		log.Printf("Error reading chat input: %v", err)
	}
}

// HandleLine processes one line of user input and returns the replies to
// print. Commands interrupt any pending question; free text is interpreted
// according to the current conversation mode.
func (h *ChatHandler) HandleLine(input string) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	if strings.HasPrefix(input, "/") {
		return h.handleCommand(input)
	}

	switch h.mode {
	case modeSetup:
		return h.handleSetupAnswer(input)
	case modeFoodGrams:
		return h.handleFoodGrams(input)
	case modeActivityChoice:
		return h.handleActivityChoice(input)
	case modeActivityMinutes:
		return h.handleActivityMinutes(input)
	default:
		return []string{
			"No such command. See /help.",
			"But here is a quote anyway:",
			service.RandomQuote(),
		}
	}
}

func (h *ChatHandler) handleCommand(input string) []string {
	command, args := input, ""
	if idx := strings.Index(input, " "); idx > 0 {
		command, args = input[:idx], strings.TrimSpace(input[idx+1:])
	}

	if h.mode != modeIdle && command != "/cancel" {
		// A new command abandons whatever question was pending.
		h.reset()
	}

	switch command {
	case "/start":
		return []string{
			"Hi! I will help you compute daily water and calorie targets and track your food and workouts.",
			"Use /set_profile to set up your profile. Full help is available via /help.",
		}
	case "/help":
		return []string{
			"Available commands:",
			"  /start - start the conversation",
			"  /set_profile - create a profile with your physical characteristics",
			"  /check_progress - see your current progress",
			"  /log_water <ml> - log water",
			"  /log_food <product> - log food",
			"  /log_activity - log an activity",
			"  /motivation - get a dose of motivation",
			"  /cancel - cancel the current command",
			"  /help - this help",
		}
	case "/cancel":
		h.reset()
		return []string{"Cancelled."}
	case "/set_profile":
		h.mode = modeSetup
		h.setup = service.NewProfileSetup()
		return []string{h.setup.State().Prompt()}
	case "/log_water":
		return h.handleLogWater(args)
	case "/log_food":
		if !h.hasSession() {
			return []string{"Please set up your profile with /set_profile first."}
		}
		if args == "" {
			return []string{"Usage: /log_food <product>"}
		}
		h.mode = modeFoodGrams
		h.pendingFood = args
		return []string{fmt.Sprintf("How many grams of %s did you eat?", args)}
	case "/log_activity":
		if !h.hasSession() {
			return []string{"Please set up your profile with /set_profile first."}
		}
		h.mode = modeActivityChoice
		return []string{"Choose an activity: " + strings.Join(service.Activities(), ", ")}
	case "/check_progress":
		summary, err := h.tracker.GetProgress(h.userID)
		if err != nil {
			return []string{"Please set up your profile with /set_profile first."}
		}
		return formatSummary(summary)
	case "/motivation":
		return []string{service.RandomQuote()}
	default:
		return []string{
			"No such command. See /help.",
			"But here is a quote anyway:",
			service.RandomQuote(),
		}
	}
}

func (h *ChatHandler) handleLogWater(args string) []string {
	amount, err := strconv.Atoi(args)
	if err != nil {
		return []string{"Usage: /log_water <ml>"}
	}

	result, err := h.tracker.LogWater(h.userID, amount)
	if errors.Is(err, service.ErrNoSession) {
		return []string{"Please set up your profile with /set_profile first."}
	}
	if err != nil {
		return []string{"Please enter a positive amount of water in ml."}
	}

	return []string{fmt.Sprintf("Logged %d ml of water. Total today: %d ml, remaining: %.2f ml.",
		amount, result.TotalMl, result.RemainingMl)}
}

func (h *ChatHandler) handleSetupAnswer(input string) []string {
	state, err := h.setup.Submit(input)
	if err != nil {
		return []string{"Please enter a valid value.", h.setup.State().Prompt()}
	}

	if state != service.StateDone {
		return []string{state.Prompt()}
	}

	profile, _ := h.setup.Profile()
	h.reset()

	if _, err := h.tracker.SetupProfile(h.userID, profile); err != nil {
		return []string{"Could not save the profile, please try /set_profile again."}
	}

	summary, err := h.tracker.GetProgress(h.userID)
	if err != nil {
		return []string{"Profile saved."}
	}
	return append([]string{"Profile saved! Your progress:"}, formatSummary(summary)...)
}

func (h *ChatHandler) handleFoodGrams(input string) []string {
	grams, err := strconv.ParseFloat(input, 64)
	if err != nil || grams <= 0 {
		return []string{"Please enter a positive number of grams."}
	}

	product := h.pendingFood
	h.reset()

	result, err := h.tracker.LogFood(h.userID, product, grams)
	switch {
	case errors.Is(err, service.ErrThrottled):
		return []string{"The food lookup service is busy right now, try again in a minute."}
	case err != nil:
		return []string{"Food information not found."}
	}

	return []string{fmt.Sprintf("Logged %.2f kcal for %.0fg of %s.",
		result.CaloriesAdded, result.Grams, result.ProductName)}
}

func (h *ChatHandler) handleActivityChoice(input string) []string {
	if _, ok := service.ActivityBurnRate(input); !ok {
		return []string{"Please choose an activity from the list."}
	}

	h.mode = modeActivityMinutes
	h.pendingActivity = input
	return []string{fmt.Sprintf("How many minutes of %q?", input)}
}

func (h *ChatHandler) handleActivityMinutes(input string) []string {
	minutes, err := strconv.Atoi(input)
	if err != nil || minutes <= 0 {
		return []string{"Please enter a positive number of minutes."}
	}

	activity := h.pendingActivity
	h.reset()

	result, err := h.tracker.LogActivity(h.userID, activity, minutes)
	if err != nil {
		return []string{fmt.Sprintf("Invalid activity %q.", activity)}
	}

	return []string{fmt.Sprintf("Burned %.2f kcal after %d minutes of %s.",
		result.CaloriesBurned, result.Minutes, result.Activity)}
}

func (h *ChatHandler) hasSession() bool {
	_, err := h.tracker.GetProgress(h.userID)
	return err == nil
}

func (h *ChatHandler) reset() {
	h.mode = modeIdle
	h.setup = nil
	h.pendingFood = ""
	h.pendingActivity = ""
}

func formatSummary(s types.ProgressSummary) []string {
	lines := []string{
		fmt.Sprintf("Water: %d ml / %.2f ml (remaining: %.2f ml)", s.LoggedWaterMl, s.WaterGoalMl, s.WaterRemainingMl),
		fmt.Sprintf("Calories: consumed %.2f kcal, burned %.2f kcal", s.LoggedCaloriesKcal, s.BurnedCaloriesKcal),
		fmt.Sprintf("Goal: %.2f kcal (remaining: %.2f kcal)", s.CalorieGoalKcal, s.CaloriesRemainingKcal),
	}

	if s.TemperatureC != nil {
		lines = append(lines, fmt.Sprintf("Currently in %s: %.1f °C - %s", s.City, *s.TemperatureC, s.Weather))
	} else {
		lines = append(lines, "City not found")
	}
	return lines
}
