package lift

import (
	"errors"
	"fmt"
)

var ErrNoElevatorAvailable = errors.New("no elevator with available capacity")

// The Fleet provisions the elevators once and never adds or removes one.
// All elevators share a capacity and start at floor 0, numbered from 1.
type Fleet struct {
	elevators []*Elevator
}

func NewFleet(numElevators, capacity int) *Fleet {
	elevators := make([]*Elevator, numElevators)
	for i := 0; i < numElevators; i++ {
		elevators[i] = NewElevator(i+1, capacity, 0)
	}
	Log.Debug().Int("elevators", numElevators).Int("capacity", capacity).Msg("Fleet created")
	return &Fleet{elevators}
}

// Elevators returns the fleet in dispatch order. The slice is a copy, the elevators are not.
func (f *Fleet) Elevators() []*Elevator {
	return append([]*Elevator(nil), f.elevators...)
}

func (f *Fleet) Len() int { return len(f.elevators) }

// SelectNearest picks the elevator with a free seat closest to floor.
// Among equally close elevators the first in the slice wins. Returns nil if every elevator is full.
func SelectNearest(floor Floor, elevators []*Elevator) *Elevator {
	var best *Elevator
	bestDistance := 0
	for _, e := range elevators {
		at, free := e.dispatchView()
		if !free {
			continue
		}
		if d := at.distance(floor); best == nil || d < bestDistance {
			best, bestDistance = e, d
		}
	}
	return best
}

func (f *Fleet) Dispatch(floor Floor) *Elevator {
	return SelectNearest(floor, f.elevators)
}

// Submit validates req, picks an elevator and queues the request on it.
// ErrNoElevatorAvailable is an expected outcome; the caller should try again on a later cycle.
func (f *Fleet) Submit(req Request) (*Elevator, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e := f.Dispatch(req.Pickup)
	if e == nil {
		Log.Info().Stringer("request", req.ID).Stringer("floor", req.Pickup).Msg("No elevator available")
		return nil, fmt.Errorf("%w: pickup at floor %s", ErrNoElevatorAvailable, req.Pickup)
	}

	Log.Info().Stringer("request", req.ID).Int("elevator", e.ID()).Stringer("floor", req.Pickup).
		Stringer("destination", req.Destination).Int("passengers", req.Passengers).Msg("Dispatched")
	e.AddRequest(req.Pickup, req.Destination, req.Passengers)
	return e, nil
}

// Tick moves every elevator once, in fleet order.
func (f *Fleet) Tick() {
	for _, e := range f.elevators {
		e.Move()
	}
}

func (f *Fleet) Snapshots() []Snapshot {
	snaps := make([]Snapshot, len(f.elevators))
	for i, e := range f.elevators {
		snaps[i] = e.Snapshot()
	}
	return snaps
}

// Idle reports whether no elevator has anything left to do.
func (f *Fleet) Idle() bool {
	for _, e := range f.elevators {
		s := e.Snapshot()
		if s.Direction != Idle || s.IsMoving || s.PassengerCount > 0 || len(s.PendingRequests) > 0 {
			return false
		}
	}
	return true
}
