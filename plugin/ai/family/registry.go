// Package family holds the static family-member profile table for the
// Saroja Illam household and the speaker-identification logic over it.
package family

import "strings"

// Member is one family-member profile record. The table is defined at
// process start and never mutated; situational-fact fields are plain
// strings that may be empty, and prompt inclusion is decided explicitly
// by the context builder, never by field presence.
type Member struct {
	ID               string
	Name             string
	Relation         string
	Location         string
	Spouse           string
	Children         []string
	EmotionalContext string
	CurrentSituation string
	HealthConcerns   string
	SpecialNotes     string
}

// members is the ordered profile table. Definition order is part of the
// observable contract: identification returns the first entry whose id or
// name appears in the message, so reordering changes behavior.
var members = []*Member{
	{
		ID:               "lakshmi",
		Name:             "Lakshmi",
		Relation:         "daughter",
		Location:         "Chennai",
		Spouse:           "Venkat",
		Children:         []string{"Guna", "Priya"},
		EmotionalContext: "Misses her mother deeply, especially during festival seasons.",
		CurrentSituation: "Living in Chennai with her family, visits the house every Pongal.",
		HealthConcerns:   "Mild blood pressure, on regular medication.",
		SpecialNotes:     "Finds comfort in cooking her mother's recipes. Feels lonely when Venkat travels.",
	},
	{
		ID:               "guna",
		Name:             "Guna",
		Relation:         "grandson",
		Location:         "Bangalore",
		Children:         nil,
		EmotionalContext: "Was very close to his grandmother as a child; regrets not visiting more.",
		CurrentSituation: "Working as a software engineer, recently moved to Bangalore.",
		SpecialNotes:     "Remembers evening stories on the terrace. Asks about the garden often.",
	},
	{
		ID:               "raman",
		Name:             "Raman",
		Relation:         "son",
		Location:         "Madurai",
		Spouse:           "Meena",
		Children:         []string{"Arjun"},
		EmotionalContext: "Carries the responsibility of maintaining the family house.",
		CurrentSituation: "Overseeing the house renovation and the construction budget.",
		HealthConcerns:   "Diabetic, advised to walk daily.",
	},
	{
		ID:               "meena",
		Name:             "Meena",
		Relation:         "daughter-in-law",
		Location:         "Madurai",
		Spouse:           "Raman",
		Children:         []string{"Arjun"},
		CurrentSituation: "Manages the household; coordinates family gatherings at the house.",
		SpecialNotes:     "Learned kolam patterns from Saroja. Keeps the pooja room exactly as it was.",
	},
	{
		ID:               "arjun",
		Name:             "Arjun",
		Relation:         "grandson",
		Location:         "Madurai",
		CurrentSituation: "In his final year of school, preparing for entrance exams.",
		EmotionalContext: "Feels exam pressure; his grandmother used to calm him before tests.",
	},
	{
		ID:               "priya",
		Name:             "Priya",
		Relation:         "granddaughter",
		Location:         "Chennai",
		CurrentSituation: "Studying architecture, drew the floor plans for the memorial site.",
		SpecialNotes:     "Named the project 'Saroja Illam'. Wants to restore the old swing.",
	},
}

// Registry provides read access to the member table.
type Registry struct {
	ordered []*Member
	byID    map[string]*Member
}

// NewRegistry creates a registry over the built-in household table.
func NewRegistry() *Registry {
	return newRegistry(members)
}

// NewRegistryWithMembers creates a registry over an explicit ordered
// table. Intended for tests that need to pin table order.
func NewRegistryWithMembers(table []*Member) *Registry {
	return newRegistry(table)
}

func newRegistry(table []*Member) *Registry {
	r := &Registry{
		ordered: table,
		byID:    make(map[string]*Member, len(table)),
	}
	for _, m := range table {
		r.byID[m.ID] = m
	}
	return r
}

// Get returns the member with the given id, or nil.
func (r *Registry) Get(id string) *Member {
	return r.byID[id]
}

// Members returns the table in definition order.
func (r *Registry) Members() []*Member {
	return r.ordered
}

// Identify maps free-text input to a family member. It walks the table in
// definition order and returns the first entry whose id or lower-cased
// name appears as a substring of the message. A message naming several
// members therefore deterministically resolves to the earliest-defined
// one. Returns nil if nothing matches.
func (r *Registry) Identify(message string) *Member {
	lower := strings.ToLower(message)
	for _, m := range r.ordered {
		if strings.Contains(lower, m.ID) || strings.Contains(lower, strings.ToLower(m.Name)) {
			return m
		}
	}
	return nil
}

// Names returns the lower-cased member names in definition order. The
// intent classifier uses these as part of its family keyword list.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ordered))
	for _, m := range r.ordered {
		names = append(names, strings.ToLower(m.Name))
	}
	return names
}
