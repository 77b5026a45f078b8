// Package emotion classifies message text into one coarse emotional
// bucket for the memory store.
package emotion

import "strings"

// State is the derived emotional bucket of a message.
type State string

const (
	StateHappy      State = "happy"
	StateSad        State = "sad"
	StateWorried    State = "worried"
	StateNeutral    State = "neutral"
	StateDistressed State = "distressed"
)

// group is one keyword group with its resulting state.
type group struct {
	state    State
	keywords []string
}

// groups is the single point of truth for classification priority:
// groups are tested in slice order and the first match wins. Sad is
// checked before worried before distressed before happy, with neutral as
// the default. Reordering changes observable behavior.
var groups = []group{
	{
		state: StateSad,
		keywords: []string{
			"sad", "miss", "missing", "cry", "crying", "tears",
			"lonely", "alone", "grief", "heartbroken", "depressed",
		},
	},
	{
		state: StateWorried,
		keywords: []string{
			"worried", "worry", "anxious", "nervous", "concerned",
			"tension", "stressed", "stress", "afraid",
		},
	},
	{
		state: StateDistressed,
		keywords: []string{
			"distressed", "panic", "emergency", "help me",
			"can't take", "cannot take", "unbearable",
		},
	},
	{
		state: StateHappy,
		keywords: []string{
			"happy", "glad", "joy", "wonderful", "great news",
			"excited", "celebrate", "laughed", "smile",
		},
	},
}

// Classify returns the emotional state of the text. Matching is
// case-insensitive substring containment; no scoring across groups.
func Classify(text string) State {
	lower := strings.ToLower(text)
	for _, g := range groups {
		for _, kw := range g.keywords {
			if strings.Contains(lower, kw) {
				return g.state
			}
		}
	}
	return StateNeutral
}

// Priority returns the group states in evaluation order, ending with the
// neutral default.
func Priority() []State {
	order := make([]State, 0, len(groups)+1)
	for _, g := range groups {
		order = append(order, g.state)
	}
	return append(order, StateNeutral)
}
