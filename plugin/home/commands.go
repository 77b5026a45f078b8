package home

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Command is one recognized smart-home command. The set of variants is
// closed: each carries only the fields its mutation needs, and each maps
// to exactly one deterministic set of field assignments. No command has a
// partial or queued effect.
type Command interface {
	// Token is the stable identifier of the command.
	Token() string
	// Acknowledgement is the deterministic reply rendered to the user.
	Acknowledgement() string

	apply(*Snapshot)
}

// LightsOn turns every light in the house on.
type LightsOn struct{}

func (LightsOn) Token() string           { return "lights_on" }
func (LightsOn) Acknowledgement() string { return "All the lights are on now." }
func (LightsOn) apply(s *Snapshot) {
	forEachRoom(s, func(_ FloorID, _ string, r *RoomState) { r.Light = true })
}

// LightsOff turns every light in the house off.
type LightsOff struct{}

func (LightsOff) Token() string           { return "lights_off" }
func (LightsOff) Acknowledgement() string { return "All the lights are off." }
func (LightsOff) apply(s *Snapshot) {
	forEachRoom(s, func(_ FloorID, _ string, r *RoomState) { r.Light = false })
}

// FansOn turns every fan on.
type FansOn struct{}

func (FansOn) Token() string           { return "fans_on" }
func (FansOn) Acknowledgement() string { return "All the fans are running." }
func (FansOn) apply(s *Snapshot) {
	forEachRoom(s, func(_ FloorID, _ string, r *RoomState) { r.Fan = true })
}

// FansOff turns every fan off.
type FansOff struct{}

func (FansOff) Token() string           { return "fans_off" }
func (FansOff) Acknowledgement() string { return "All the fans are off." }
func (FansOff) apply(s *Snapshot) {
	forEachRoom(s, func(_ FloorID, _ string, r *RoomState) { r.Fan = false })
}

// ACOn turns the air conditioners in the bedrooms on.
type ACOn struct{}

func (ACOn) Token() string           { return "ac_on" }
func (ACOn) Acknowledgement() string { return "The bedroom air conditioners are on." }
func (ACOn) apply(s *Snapshot) {
	forEachRoom(s, func(_ FloorID, name string, r *RoomState) {
		if strings.Contains(name, "bedroom") {
			r.AC = true
		}
	})
}

// ACOff turns every air conditioner off.
type ACOff struct{}

func (ACOff) Token() string           { return "ac_off" }
func (ACOff) Acknowledgement() string { return "The air conditioners are off." }
func (ACOff) apply(s *Snapshot) {
	forEachRoom(s, func(_ FloorID, _ string, r *RoomState) { r.AC = false })
}

// SceneGoodnight prepares the house for the night: lights off except the
// ground-floor hall, fans on in bedrooms, AC on in the master bedroom.
type SceneGoodnight struct{}

func (SceneGoodnight) Token() string { return "scene_goodnight" }
func (SceneGoodnight) Acknowledgement() string {
	return "Goodnight. The house is settling down, the hall light is left on for you."
}
func (SceneGoodnight) apply(s *Snapshot) {
	forEachRoom(s, func(floorID FloorID, name string, r *RoomState) {
		r.Light = floorID == FloorGround && name == "hall"
		r.Fan = strings.Contains(name, "bedroom")
		r.AC = name == "master_bedroom"
	})
}

// SceneGoodmorning opens the house for the day: ground-floor lights on,
// fans on, AC off everywhere.
type SceneGoodmorning struct{}

func (SceneGoodmorning) Token() string { return "scene_goodmorning" }
func (SceneGoodmorning) Acknowledgement() string {
	return "Good morning. The downstairs lights and fans are on."
}
func (SceneGoodmorning) apply(s *Snapshot) {
	forEachRoom(s, func(floorID FloorID, _ string, r *RoomState) {
		r.Light = floorID == FloorGround
		r.Fan = true
		r.AC = false
	})
}

// SceneAway shuts everything down.
type SceneAway struct{}

func (SceneAway) Token() string { return "scene_away" }
func (SceneAway) Acknowledgement() string {
	return "Away mode is on. Everything is switched off, the house will keep watch."
}
func (SceneAway) apply(s *Snapshot) {
	forEachRoom(s, func(_ FloorID, _ string, r *RoomState) {
		r.Light = false
		r.Fan = false
		r.AC = false
	})
	s.ConsumptionKWh = 0.3
}

// SetTemperature sets the target temperature on every floor.
type SetTemperature struct {
	Celsius float64
}

func (SetTemperature) Token() string { return "set_temperature" }
func (c SetTemperature) Acknowledgement() string {
	return fmt.Sprintf("Temperature set to %g degrees.", c.Celsius)
}
func (c SetTemperature) apply(s *Snapshot) {
	for _, floor := range s.Floors {
		floor.TemperatureC = c.Celsius
	}
}

// StatusQuery reads the house state without mutating it.
type StatusQuery struct{}

func (StatusQuery) Token() string { return "status" }
func (StatusQuery) Acknowledgement() string {
	return "Here is how the house is doing right now."
}
func (StatusQuery) apply(*Snapshot) {}

var temperatureRe = regexp.MustCompile(`(\d{1,2})\s*(?:degrees|degree|°c|°)?`)

// ParseCommand matches the message against the fixed command-phrase
// table. Matching is case-insensitive substring containment; the table
// order below is the precedence order. Returns false when no phrase
// matches.
func ParseCommand(message string) (Command, bool) {
	lower := strings.ToLower(message)

	on := strings.Contains(lower, "turn on") || strings.Contains(lower, "switch on")
	off := strings.Contains(lower, "turn off") || strings.Contains(lower, "switch off")

	switch {
	case strings.Contains(lower, "goodnight") || strings.Contains(lower, "good night"):
		return SceneGoodnight{}, true
	case strings.Contains(lower, "good morning") || strings.Contains(lower, "morning scene"):
		return SceneGoodmorning{}, true
	case strings.Contains(lower, "away"):
		return SceneAway{}, true
	case strings.Contains(lower, "light") && off:
		return LightsOff{}, true
	case strings.Contains(lower, "light") && on:
		return LightsOn{}, true
	case strings.Contains(lower, "fan") && off:
		return FansOff{}, true
	case strings.Contains(lower, "fan") && on:
		return FansOn{}, true
	case (strings.Contains(lower, "air condition") || strings.Contains(lower, " ac")) && off:
		return ACOff{}, true
	case (strings.Contains(lower, "air condition") || strings.Contains(lower, " ac")) && on:
		return ACOn{}, true
	case strings.Contains(lower, "temperature"):
		if m := temperatureRe.FindStringSubmatch(lower); m != nil {
			if c, err := strconv.ParseFloat(m[1], 64); err == nil && c > 0 {
				return SetTemperature{Celsius: c}, true
			}
		}
		return StatusQuery{}, true
	case strings.Contains(lower, "status") || strings.Contains(lower, "tank") ||
		strings.Contains(lower, "battery") || strings.Contains(lower, "consumption"):
		return StatusQuery{}, true
	}
	return nil, false
}
