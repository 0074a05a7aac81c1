package lift

import (
	"fmt"
	"strconv"
)

// Floors are plain integers. Requests use floors from 1 up, elevators start at 0.
type Floor int

func (f Floor) String() string { return strconv.Itoa(int(f)) }

func (f Floor) next(dir Direction) Floor {
	return Floor(int(f) + int(dir))
}

// DirectionTo returns the direction of travel from f to dest, or Idle if they are equal.
func (f Floor) DirectionTo(dest Floor) Direction {
	if f == dest {
		return Idle
	} else if dest > f {
		return Up
	} else {
		return Down
	}
}

func (f Floor) distance(other Floor) int {
	if f > other {
		return int(f - other)
	}
	return int(other - f)
}

// Direction
type Direction int

const (
	Up   Direction = 1
	Idle Direction = 0
	Down Direction = -1
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Idle:
		return "Idle"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Status is the observable state of one elevator. Elevator hands out copies only.
type Status struct {
	ID             int
	CurrentFloor   Floor
	IsMoving       bool      // true only during the tick in which the elevator is travelling
	PassengerCount int       // always len(destinations) once Move returns
	Direction      Direction // kept after a stop until the next Move recomputes it
}

func (s Status) String() string {
	return fmt.Sprintf("Elevator-%d(floor %s %s moving=%t passengers=%d)",
		s.ID, s.CurrentFloor, s.Direction, s.IsMoving, s.PassengerCount)
}

// Pickup is a queued group waiting at Floor to travel to Destination.
// Groups with the same (Floor, Destination) are merged into one entry.
type Pickup struct {
	Floor       Floor
	Destination Floor
	Passengers  int
}

func (p Pickup) String() string {
	return fmt.Sprintf("Pickup(%s->%s x%d)", p.Floor, p.Destination, p.Passengers)
}

func (p Pickup) sameRoute(floor, dest Floor) bool {
	return p.Floor == floor && p.Destination == dest
}

// Snapshot is a read-only view of an elevator for rendering.
// It shares no memory with the elevator it was taken from.
type Snapshot struct {
	ID              int
	CurrentFloor    Floor
	IsMoving        bool
	Direction       Direction
	PassengerCount  int
	MaxCapacity     int
	PendingRequests []Floor
}
