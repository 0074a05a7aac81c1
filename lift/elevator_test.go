package lift

import (
	"math/rand"
	"os"
	"testing"

	"github.com/rs/zerolog"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

type step struct {
	floor      Floor
	moving     bool
	dir        Direction
	passengers int
}

func checkStep(t *testing.T, e *Elevator, n int, want step) {
	t.Helper()
	s := e.Status()
	if s.CurrentFloor != want.floor || s.IsMoving != want.moving || s.Direction != want.dir || s.PassengerCount != want.passengers {
		t.Errorf("after move %d: got %v, expected floor %s moving=%t %s passengers=%d",
			n, s, want.floor, want.moving, want.dir, want.passengers)
	}
}

func TestNewElevator(t *testing.T) {
	e := NewElevator(1, 8, 0)

	if e.MaxCapacity() != 8 {
		t.Errorf("MaxCapacity() = %d, expected 8", e.MaxCapacity())
	}
	if len(e.PendingRequests()) != 0 {
		t.Errorf("PendingRequests() = %v, expected none", e.PendingRequests())
	}
	want := Status{ID: 1, Direction: Idle}
	if e.Status() != want {
		t.Errorf("Status() = %v, expected %v", e.Status(), want)
	}
}

func TestHasCapacity(t *testing.T) {
	tests := []struct {
		capacity int
		boarding int
		want     bool
	}{
		{5, 0, true},
		{5, 3, true},
		{5, 4, true},
		{5, 5, false},
		{1, 1, false},
	}

	for _, tt := range tests {
		e := NewElevator(1, tt.capacity, 2)
		if tt.boarding > 0 {
			e.AddRequest(2, 6, tt.boarding)
			e.Move()
		}
		if got := e.HasCapacity(); got != tt.want {
			t.Errorf("HasCapacity() with %d/%d aboard = %t, expected %t", tt.boarding, tt.capacity, got, tt.want)
		}
	}
}

func TestMoveWithoutRequestsStaysIdle(t *testing.T) {
	e := NewElevator(1, 5, 3)

	for i := 1; i <= 5; i++ {
		e.Move()
		checkStep(t, e, i, step{3, false, Idle, 0})
	}
	if len(e.PendingRequests()) != 0 {
		t.Errorf("PendingRequests() = %v, expected none", e.PendingRequests())
	}
}

func TestMoveUpAndStop(t *testing.T) {
	e := NewElevator(1, 5, 0)
	e.Call(2)

	e.Move()
	checkStep(t, e, 1, step{1, true, Up, 0})
	if got := e.PendingRequests(); len(got) != 1 || got[0] != 2 {
		t.Errorf("PendingRequests() = %v, expected [2]", got)
	}

	e.Move()
	checkStep(t, e, 2, step{2, false, Idle, 0})
	if len(e.PendingRequests()) != 0 {
		t.Errorf("PendingRequests() = %v, expected none", e.PendingRequests())
	}
}

func TestMoveDownAndStop(t *testing.T) {
	e := NewElevator(1, 5, 3)
	e.Call(1)

	e.Move()
	checkStep(t, e, 1, step{2, true, Down, 0})
	e.Move()
	checkStep(t, e, 2, step{1, false, Idle, 0})
}

func TestRequestOnCurrentFloorIsServedWithoutMoving(t *testing.T) {
	e := NewElevator(1, 5, 2)
	e.Call(2)

	e.Move()
	checkStep(t, e, 1, step{2, false, Idle, 0})
	if len(e.PendingRequests()) != 0 {
		t.Errorf("PendingRequests() = %v, expected none", e.PendingRequests())
	}
}

func TestBoardingOnCurrentFloorHeadsForDestination(t *testing.T) {
	e := NewElevator(1, 5, 2)
	e.AddRequest(2, 5, 2)

	e.Move()
	checkStep(t, e, 1, step{2, false, Up, 2})

	e.Move()
	checkStep(t, e, 2, step{3, true, Up, 2})
}

func TestCapacityBoundedTrip(t *testing.T) {
	e := NewElevator(1, 4, 0)
	e.AddRequest(1, 5, 3)
	e.AddRequest(2, 4, 3)

	want := []step{
		{1, false, Up, 3},
		{2, false, Up, 4},
		{3, true, Up, 4},
		{4, false, Up, 3},
		{5, false, Idle, 0},
	}
	for i, w := range want {
		e.Move()
		checkStep(t, e, i+1, w)
	}
	if len(e.Destinations()) != 0 || len(e.PendingRequests()) != 0 {
		t.Errorf("expected empty elevator, got destinations %v pending %v", e.Destinations(), e.PendingRequests())
	}
}

func TestPassengersThatDoNotFitAreDropped(t *testing.T) {
	e := NewElevator(1, 2, 1)
	e.AddRequest(1, 3, 5)

	e.Move()
	if got := e.Status().PassengerCount; got != 2 {
		t.Errorf("PassengerCount = %d, expected 2", got)
	}
	if len(e.PendingRequests()) != 0 {
		t.Errorf("PendingRequests() = %v, expected the overflow to be discarded", e.PendingRequests())
	}
}

func TestAddRequestMergesSameRoute(t *testing.T) {
	e := NewElevator(1, 10, 0)
	e.AddRequest(3, 6, 2)
	e.AddRequest(4, 1, 1)
	e.AddRequest(3, 6, 5)
	e.AddRequest(3, 7, 1)

	want := []Pickup{{3, 6, 7}, {4, 1, 1}, {3, 7, 1}}
	got := e.Pickups()
	if len(got) != len(want) {
		t.Fatalf("Pickups() = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Pickups()[%d] = %v, expected %v", i, got[i], want[i])
		}
	}

	floors := e.PendingRequests()
	if len(floors) != 3 || floors[0] != 3 || floors[1] != 4 || floors[2] != 3 {
		t.Errorf("PendingRequests() = %v, expected [3 4 3]", floors)
	}
}

func TestMergedCallsAreServedInOneStop(t *testing.T) {
	e := NewElevator(1, 5, 0)
	e.Call(1)
	e.Call(1)

	e.Move()
	checkStep(t, e, 1, step{1, false, Idle, 0})
}

func TestPickupPreferredOverDestinationOnTie(t *testing.T) {
	e := NewElevator(1, 5, 3)
	e.AddRequest(3, 1, 1)
	e.Move() // board at 3, destination 1
	e.AddRequest(5, 6, 1)

	e.Move()
	if got := e.Status(); got.CurrentFloor != 4 || got.Direction != Up {
		t.Errorf("Status() = %v, expected floor 4 going Up towards the pickup", got)
	}
}

func TestQueuedGroupBehindAnotherFloorStillBoards(t *testing.T) {
	e := NewElevator(1, 5, 0)
	e.AddRequest(5, 6, 1)
	e.AddRequest(1, 2, 2)

	e.Move()
	checkStep(t, e, 1, step{1, false, Up, 2})
	if got := e.PendingRequests(); len(got) != 1 || got[0] != 5 {
		t.Errorf("PendingRequests() = %v, expected [5]", got)
	}
}

func TestMonotonicApproach(t *testing.T) {
	e := NewElevator(1, 5, 10)
	e.Call(3)

	prev := 7
	for e.Status().CurrentFloor != 3 {
		e.Move()
		d := e.Status().CurrentFloor.distance(3)
		if d != prev-1 {
			t.Fatalf("distance to target = %d, expected %d", d, prev-1)
		}
		prev = d
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	e := NewElevator(2, 6, 0)
	e.AddRequest(3, 1, 2)
	e.Move()

	snap := e.Snapshot()
	want := Snapshot{ID: 2, CurrentFloor: 1, IsMoving: true, Direction: Up, MaxCapacity: 6}
	if snap.ID != want.ID || snap.CurrentFloor != want.CurrentFloor || snap.IsMoving != want.IsMoving ||
		snap.Direction != want.Direction || snap.MaxCapacity != want.MaxCapacity || snap.PassengerCount != 0 {
		t.Errorf("Snapshot() = %+v, expected %+v", snap, want)
	}
	if len(snap.PendingRequests) != 1 || snap.PendingRequests[0] != 3 {
		t.Fatalf("Snapshot().PendingRequests = %v, expected [3]", snap.PendingRequests)
	}

	snap.PendingRequests[0] = 99
	if got := e.PendingRequests(); got[0] != 3 {
		t.Errorf("changing the snapshot changed the elevator: %v", got)
	}
}

func hasPendingStops(e *Elevator) bool {
	if len(e.PendingRequests()) > 0 {
		return true
	}
	floor := e.Status().CurrentFloor
	for _, d := range e.Destinations() {
		if d != floor {
			return true
		}
	}
	return false
}

func TestInvariantsUnderRandomLoad(t *testing.T) {
	rng := rand.New(rand.NewSource(4145))

	for run := 0; run < 20; run++ {
		capacity := 1 + rng.Intn(6)
		e := NewElevator(1, capacity, Floor(rng.Intn(8)))

		for i := 0; i < 300; i++ {
			if rng.Intn(3) == 0 {
				pickup := Floor(1 + rng.Intn(8))
				dest := Floor(1 + rng.Intn(8))
				if dest == pickup {
					dest = pickup%8 + 1
				}
				e.AddRequest(pickup, dest, 1+rng.Intn(4))
			}

			before := e.Status()
			e.Move()
			s := e.Status()

			if s.PassengerCount < 0 || s.PassengerCount > capacity {
				t.Fatalf("run %d move %d: PassengerCount = %d, capacity %d", run, i, s.PassengerCount, capacity)
			}
			if s.PassengerCount != len(e.Destinations()) {
				t.Fatalf("run %d move %d: PassengerCount = %d, destinations %v", run, i, s.PassengerCount, e.Destinations())
			}
			if d := s.CurrentFloor.distance(before.CurrentFloor); d > 1 {
				t.Fatalf("run %d move %d: moved %d floors in one tick", run, i, d)
			}
			idle := s.Direction == Idle
			if idle != (!s.IsMoving && !hasPendingStops(e)) {
				t.Fatalf("run %d move %d: %v with pending stops %t", run, i, s, hasPendingStops(e))
			}

			seen := map[[2]Floor]bool{}
			for _, p := range e.Pickups() {
				key := [2]Floor{p.Floor, p.Destination}
				if seen[key] {
					t.Fatalf("run %d move %d: duplicate queue entry %v", run, i, p)
				}
				seen[key] = true
			}
		}
	}
}

func TestFloorSetNearest(t *testing.T) {
	fs := newFloorSet(4)
	if _, ok := fs.nearest(3); ok {
		t.Errorf("nearest() on empty set reported a floor")
	}

	for _, f := range []Floor{6, 1, 4, 6, 2} {
		fs.set(f)
	}
	if fs.size() != 4 {
		t.Errorf("size() = %d, expected 4", fs.size())
	}

	tests := []struct {
		from Floor
		want Floor
	}{
		{5, 6}, // 6 and 4 are both one away, 6 was added first
		{3, 4}, // 4 and 2 are both one away, 4 was added first
		{0, 1},
		{9, 6},
	}
	for _, tt := range tests {
		if got, _ := fs.nearest(tt.from); got != tt.want {
			t.Errorf("nearest(%s) = %s, expected %s", tt.from, got, tt.want)
		}
	}
}
