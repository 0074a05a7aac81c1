package lift

import (
	"sync"

	"github.com/McebisiMK/ElevatorChallenge/logger"
	"github.com/tiendc/go-deepcopy"
)

var Log = logger.GetLogger()

/*
	Elevator Algorithm
	Every Move():
		stops := pickup floors (FIFO order) + destination floors (boarding order), deduplicated
		if no stops: IDLE, done.
		target := stop nearest to floor. Ties go to whichever was listed first.
		Step one floor towards target (no step if already there).
		If floor == target, arrive:
			Drop off every passenger whose destination is this floor.
			Board the oldest group queued at this floor, up to the free seats.
				Whoever does not fit is dropped from the queue; the group must request again.
			Stopped. IDLE if nothing is left to do, otherwise keep the direction until the next Move
			(an elevator that stopped without moving takes the direction of its next stop).

	Passengers are never requeued, and capacity is only checked at boarding.
	The Fleet checks HasCapacity before handing out a request, not whether the whole group fits.
*/

// Elevator carries passengers between floors, one floor per Move.
// Internally, it stores
//
//	pickups      FIFO queue of groups waiting for this elevator, merged by (floor, destination)
//	destinations one floor per passenger aboard
//
// All methods are safe to call from several goroutines. Calls on one elevator are serialized.
type Elevator struct {
	mu           sync.Mutex
	maxCapacity  int
	status       Status
	pickups      []Pickup
	destinations []Floor
}

func NewElevator(id int, capacity int, startFloor Floor) *Elevator {
	return &Elevator{
		maxCapacity: capacity,
		status:      Status{ID: id, CurrentFloor: startFloor, Direction: Idle},
	}
}

func (e *Elevator) ID() int          { return e.status.ID }
func (e *Elevator) MaxCapacity() int { return e.maxCapacity }

func (e *Elevator) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// HasCapacity reports whether at least one seat is free.
func (e *Elevator) HasCapacity() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hasCapacity()
}

func (e *Elevator) hasCapacity() bool { return e.status.PassengerCount < e.maxCapacity }

// PendingRequests lists the pickup floors still queued, oldest first.
func (e *Elevator) PendingRequests() []Floor {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pendingRequests()
}

func (e *Elevator) pendingRequests() []Floor {
	floors := make([]Floor, len(e.pickups))
	for i, p := range e.pickups {
		floors[i] = p.Floor
	}
	return floors
}

func (e *Elevator) Pickups() []Pickup {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Pickup(nil), e.pickups...)
}

// Destinations lists one drop-off floor per passenger aboard, in boarding order.
func (e *Elevator) Destinations() []Floor {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Floor(nil), e.destinations...)
}

// Snapshot returns a copy of the status and pending floors for display.
func (e *Elevator) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	var snap Snapshot
	if err := deepcopy.Copy(&snap, &e.status); err != nil {
		Log.Error().Err(err).Int("elevator", e.status.ID).Msg("Could not copy status into snapshot")
		snap = Snapshot{
			ID:             e.status.ID,
			CurrentFloor:   e.status.CurrentFloor,
			IsMoving:       e.status.IsMoving,
			Direction:      e.status.Direction,
			PassengerCount: e.status.PassengerCount,
		}
	}
	snap.MaxCapacity = e.maxCapacity
	snap.PendingRequests = e.pendingRequests()
	return snap
}

// dispatchView returns what the dispatcher needs under a single lock.
func (e *Elevator) dispatchView() (Floor, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status.CurrentFloor, e.hasCapacity()
}

// AddRequest queues passengers waiting at floor for dest. A group already queued for the
// same (floor, dest) grows instead of getting a second entry. Inputs are assumed valid.
func (e *Elevator) AddRequest(floor Floor, dest Floor, passengers int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.pickups {
		if e.pickups[i].sameRoute(floor, dest) {
			e.pickups[i].Passengers += passengers
			Log.Debug().Int("elevator", e.status.ID).Stringer("pickup", e.pickups[i]).Msg("Merged request")
			return
		}
	}
	e.pickups = append(e.pickups, Pickup{floor, dest, passengers})
	Log.Debug().Int("elevator", e.status.ID).Stringer("pickup", e.pickups[len(e.pickups)-1]).Msg("Queued request")
}

// Call asks the elevator to stop at floor without anyone boarding.
func (e *Elevator) Call(floor Floor) {
	e.AddRequest(floor, floor, 0)
}

// Move advances one tick: one floor towards the nearest stop, and arrival handling once there.
func (e *Elevator) Move() {
	e.mu.Lock()
	defer e.mu.Unlock()

	target, ok := e.stops().nearest(e.status.CurrentFloor)
	if !ok {
		e.updateMovement(Idle, false)
		return
	}

	dir := e.status.CurrentFloor.DirectionTo(target)
	if dir != Idle {
		e.status.Direction = dir
	}
	e.status.IsMoving = true
	e.status.CurrentFloor = e.status.CurrentFloor.next(dir)

	if e.status.CurrentFloor == target {
		e.onArrival()
	} else {
		Log.Debug().Int("elevator", e.status.ID).Stringer("floor", e.status.CurrentFloor).
			Stringer("target", target).Stringer("dir", dir).Msg("Passing")
	}
}

func (e *Elevator) onArrival() {
	floor := e.status.CurrentFloor
	dropped := e.dropOff(floor)
	boarded, leftBehind := e.board(floor)
	e.status.PassengerCount = len(e.destinations)

	ev := Log.Debug().Int("elevator", e.status.ID).Stringer("floor", floor).
		Int("dropped", dropped).Int("boarded", boarded).Int("passengers", e.status.PassengerCount)
	if leftBehind > 0 {
		ev = ev.Int("leftBehind", leftBehind)
	}
	ev.Msg("Stopped")

	if e.stops().empty() {
		e.updateMovement(Idle, false)
		return
	}
	e.status.IsMoving = false
	if e.status.Direction == Idle {
		e.status.Direction = e.nextHeading()
	}
}

// nextHeading is the way to the nearest stop on another floor. If every stop left is on
// this floor, it is the way the first group waiting here wants to go.
func (e *Elevator) nextHeading() Direction {
	here := e.status.CurrentFloor
	best, found := here, false
	for _, f := range e.stops().arr {
		if f != here && (!found || f.distance(here) < best.distance(here)) {
			best, found = f, true
		}
	}
	if found {
		return here.DirectionTo(best)
	}
	for _, p := range e.pickups {
		if d := here.DirectionTo(p.Destination); d != Idle {
			return d
		}
	}
	return Idle
}

// dropOff removes every destination equal to floor and returns how many left the elevator.
func (e *Elevator) dropOff(floor Floor) int {
	kept := e.destinations[:0]
	for _, d := range e.destinations {
		if d != floor {
			kept = append(kept, d)
		}
	}
	dropped := len(e.destinations) - len(kept)
	e.destinations = kept
	return dropped
}

// board takes the oldest group queued at floor off the queue and seats as many as fit.
// Returns the number seated and the number that did not fit.
func (e *Elevator) board(floor Floor) (int, int) {
	idx := -1
	for i, p := range e.pickups {
		if p.Floor == floor {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, 0
	}

	group := e.pickups[idx]
	e.pickups = append(e.pickups[:idx], e.pickups[idx+1:]...)

	boarded := min(group.Passengers, e.maxCapacity-len(e.destinations))
	if boarded < 0 {
		boarded = 0
	}
	for i := 0; i < boarded; i++ {
		e.destinations = append(e.destinations, group.Destination)
	}
	return boarded, group.Passengers - boarded
}

// stops is every floor still to visit: pickups first, then destinations.
func (e *Elevator) stops() *FloorSet {
	fs := newFloorSet(len(e.pickups) + len(e.destinations))
	for _, p := range e.pickups {
		fs.set(p.Floor)
	}
	for _, d := range e.destinations {
		fs.set(d)
	}
	return fs
}

func (e *Elevator) updateMovement(dir Direction, moving bool) {
	e.status.Direction = dir
	e.status.IsMoving = moving
}
