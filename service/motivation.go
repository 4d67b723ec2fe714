package service

import (
	"math/rand"
)

var motivationQuotes = []string{
	"A glass of water now beats a headache later.",
	"Small sips, big streaks.",
	"Your future self already thanks you for that walk.",
	"Progress is logged one entry at a time.",
	"Hydration is the cheapest performance upgrade there is.",
	"You don't need a perfect day, just a logged one.",
	"Every minute of movement counts, even the slow ones.",
	"Drink first, scroll later.",
	"The goal line doesn't move, keep walking toward it.",
	"Consistency today, results eventually.",
}

// RandomQuote returns one motivation quote. Used by the /motivation command
// and as filler in fallback replies.
func RandomQuote() string {
	return motivationQuotes[rand.Intn(len(motivationQuotes))]
}
