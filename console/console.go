package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/eiannone/keyboard"

	"github.com/McebisiMK/ElevatorChallenge/lift"
	"github.com/McebisiMK/ElevatorChallenge/logger"
)

var Log = logger.GetLogger()

const banner = "================================== ELEVATOR STATUS =================================="

// KeyReader blocks for one key press, like keyboard.GetSingleKey.
type KeyReader func() (rune, keyboard.Key, error)

// Console is the interactive front end: each cycle shows the fleet, reads one command and
// ticks the fleet once.
type Console struct {
	fleet *lift.Fleet
	in    *bufio.Reader
	out   io.Writer

	ReadKey KeyReader
	Pause   time.Duration // wait after each tick so the user can follow along
}

func New(fleet *lift.Fleet, in io.Reader, out io.Writer) *Console {
	return &Console{
		fleet:   fleet,
		in:      bufio.NewReader(in),
		out:     out,
		ReadKey: keyboard.GetSingleKey,
	}
}

// Render writes one status line per elevator.
func Render(w io.Writer, snaps []lift.Snapshot) {
	fmt.Fprintln(w, banner)
	for _, s := range snaps {
		dir := "-"
		if s.IsMoving {
			dir = s.Direction.String()
		}
		fmt.Fprintf(w, "Elevator: %d | Floor: %s (%s) | Passengers: %d/%d | Pending: %v\n",
			s.ID, s.CurrentFloor, dir, s.PassengerCount, s.MaxCapacity, s.PendingRequests)
	}
	fmt.Fprintln(w)
}

// Run loops until the user quits, the input ends or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		Render(c.out, c.fleet.Snapshots())
		fmt.Fprintln(c.out, "[r] new request   [space/enter] wait one tick   [q] quit")

		ch, key, err := c.ReadKey()
		if err != nil {
			return fmt.Errorf("reading key: %w", err)
		}

		switch {
		case ch == 'q' || key == keyboard.KeyEsc || key == keyboard.KeyCtrlC:
			return nil
		case ch == 'r':
			if err := c.request(); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		case ch == ' ' || key == keyboard.KeySpace || key == keyboard.KeyEnter:
		default:
			fmt.Fprintln(c.out, "Unknown command")
			continue
		}

		c.fleet.Tick()
		if c.Pause > 0 {
			select {
			case <-time.After(c.Pause):
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// request prompts for one group and hands it to the fleet. Bad input is reported to the
// user and is not an error; only a failing reader is.
func (c *Console) request() error {
	pickup, ok, err := c.readInt("Please enter request floor: ", "Floor must be a number")
	if err != nil || !ok {
		return err
	}
	passengers, ok, err := c.readInt("Please enter number of waiting passengers (greater than 0): ", "Passengers must be a number")
	if err != nil || !ok {
		return err
	}
	dest, ok, err := c.readInt("Enter destination floor: ", "Destination must be a number")
	if err != nil || !ok {
		return err
	}

	req := lift.NewRequest(lift.Floor(pickup), lift.Floor(dest), passengers)
	e, err := c.fleet.Submit(req)
	switch {
	case errors.Is(err, lift.ErrNoElevatorAvailable):
		fmt.Fprintln(c.out, "No elevator with available capacity at the moment.")
	case err != nil:
		for _, failure := range failures(err) {
			fmt.Fprintf(c.out, "Validation Error: %v\n", failure)
		}
		Log.Debug().Err(err).Stringer("request", req).Msg("Rejected request")
	default:
		fmt.Fprintf(c.out, "Elevator %d dispatched to floor %s.\n", e.ID(), req.Pickup)
	}
	fmt.Fprintln(c.out)
	return nil
}

// readInt prompts and parses one line. ok is false if the line was not a number.
func (c *Console) readInt(prompt, complaint string) (int, bool, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return 0, false, err
	}
	n, convErr := strconv.Atoi(strings.TrimSpace(line))
	if convErr != nil {
		fmt.Fprintln(c.out, complaint)
		return 0, false, nil
	}
	return n, true, nil
}

func failures(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
