package lift

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrInvalidFloor         = errors.New("floor number must be greater than 0")
	ErrSameFloor            = errors.New("destination must be different from pickup floor")
	ErrInvalidPassengers    = errors.New("number of waiting passengers must be greater than 0")
	ErrInvalidElevatorCount = errors.New("number of elevators must be greater than 0")
)

// Request is a group of passengers waiting at Pickup to go to Destination.
type Request struct {
	ID          uuid.UUID
	Pickup      Floor
	Destination Floor
	Passengers  int
}

func NewRequest(pickup, dest Floor, passengers int) Request {
	return Request{uuid.New(), pickup, dest, passengers}
}

func (r Request) String() string {
	return fmt.Sprintf("Request(%s %s->%s x%d)", r.ID, r.Pickup, r.Destination, r.Passengers)
}

// Validate checks the request before it reaches an elevator. Every failure is reported;
// use errors.Is to test for a specific one.
func (r Request) Validate() error {
	var errs []error
	if r.Pickup <= 0 {
		errs = append(errs, fmt.Errorf("%w: pickup %s", ErrInvalidFloor, r.Pickup))
	}
	if r.Destination <= 0 {
		errs = append(errs, fmt.Errorf("%w: destination %s", ErrInvalidFloor, r.Destination))
	}
	if r.Pickup == r.Destination {
		errs = append(errs, fmt.Errorf("%w: %s", ErrSameFloor, r.Pickup))
	}
	if r.Passengers < 1 {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrInvalidPassengers, r.Passengers))
	}
	return errors.Join(errs...)
}

func ValidateFleetSize(count int) error {
	if count <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidElevatorCount, count)
	}
	return nil
}
