// Package home holds the simulated smart-home device registry and the
// fixed command-phrase table that mutates it. No real device IO exists;
// every "control" operation is an in-memory state mutation.
package home

import "sync"

// FloorID identifies one floor of the house.
type FloorID string

const (
	FloorGround  FloorID = "ground"
	FloorOne     FloorID = "floor1"
	FloorTwo     FloorID = "floor2"
	FloorTerrace FloorID = "terrace"
)

// floorOrder fixes iteration order for snapshots and mutations.
var floorOrder = []FloorID{FloorGround, FloorOne, FloorTwo, FloorTerrace}

// RoomState holds the boolean device fields of one room.
type RoomState struct {
	Light bool `json:"light"`
	Fan   bool `json:"fan"`
	AC    bool `json:"ac"`
}

// FloorState groups the rooms of a floor plus its temperature reading.
type FloorState struct {
	Rooms        map[string]*RoomState `json:"rooms"`
	TemperatureC float64               `json:"temperature_c"`
}

// Snapshot is a deep copy of the full house state.
type Snapshot struct {
	Floors         map[FloorID]*FloorState `json:"floors"`
	ConsumptionKWh float64                 `json:"consumption_kwh"`
	TankLevelPct   int                     `json:"tank_level_pct"`
	BatteryPct     int                     `json:"battery_pct"`
}

// State is the mock device registry. All mutations go through Apply and
// are atomic from the caller's point of view.
type State struct {
	mu   sync.RWMutex
	data Snapshot
}

// NewState creates the registry with the house's default layout.
func NewState() *State {
	return &State{data: Snapshot{
		Floors: map[FloorID]*FloorState{
			FloorGround: {
				Rooms: map[string]*RoomState{
					"hall":    {},
					"kitchen": {},
					"pooja":   {},
				},
				TemperatureC: 29,
			},
			FloorOne: {
				Rooms: map[string]*RoomState{
					"master_bedroom": {},
					"guest_bedroom":  {},
				},
				TemperatureC: 28,
			},
			FloorTwo: {
				Rooms: map[string]*RoomState{
					"study":    {},
					"bedroom3": {},
				},
				TemperatureC: 28,
			},
			FloorTerrace: {
				Rooms: map[string]*RoomState{
					"terrace": {},
				},
				TemperatureC: 31,
			},
		},
		ConsumptionKWh: 2.4,
		TankLevelPct:   76,
		BatteryPct:     88,
	}}
}

// Snapshot returns a deep copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.clone()
}

// Apply runs the command mutation atomically and returns the resulting
// snapshot.
func (s *State) Apply(cmd Command) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	cmd.apply(&s.data)
	return s.data.clone()
}

func (snap Snapshot) clone() Snapshot {
	out := Snapshot{
		Floors:         make(map[FloorID]*FloorState, len(snap.Floors)),
		ConsumptionKWh: snap.ConsumptionKWh,
		TankLevelPct:   snap.TankLevelPct,
		BatteryPct:     snap.BatteryPct,
	}
	for id, floor := range snap.Floors {
		rooms := make(map[string]*RoomState, len(floor.Rooms))
		for name, room := range floor.Rooms {
			copied := *room
			rooms[name] = &copied
		}
		out.Floors[id] = &FloorState{Rooms: rooms, TemperatureC: floor.TemperatureC}
	}
	return out
}

// forEachRoom applies fn to every room in fixed floor order.
func forEachRoom(snap *Snapshot, fn func(FloorID, string, *RoomState)) {
	for _, floorID := range floorOrder {
		floor, ok := snap.Floors[floorID]
		if !ok {
			continue
		}
		for name, room := range floor.Rooms {
			fn(floorID, name, room)
		}
	}
}
