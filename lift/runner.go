package lift

import (
	"context"
	"time"
)

// Runner drives a Fleet in real time.
// Requests are submitted as soon as they arrive. Every interval the fleet ticks once and
// OnTick gets the new snapshots. Requests that fail validation or find no free elevator
// go to OnReject; they are not retried.
type Runner struct {
	fleet    *Fleet
	interval time.Duration
	OnTick   func(tick int, snaps []Snapshot)
	OnReject func(req Request, err error)
}

func NewRunner(fleet *Fleet, interval time.Duration) *Runner {
	return &Runner{fleet: fleet, interval: interval}
}

// Run blocks until ctx is done and returns ctx.Err(). A closed requests channel only stops
// intake; ticking continues.
func (r *Runner) Run(ctx context.Context, requests <-chan Request) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	tick := 0
	for {
		select {
		case req, ok := <-requests:
			if !ok {
				requests = nil
				continue
			}
			if _, err := r.fleet.Submit(req); err != nil && r.OnReject != nil {
				r.OnReject(req, err)
			}

		case <-ticker.C:
			tick++
			r.fleet.Tick()
			if r.OnTick != nil {
				r.OnTick(tick, r.fleet.Snapshots())
			}

		case <-ctx.Done():
			Log.Debug().Int("ticks", tick).Msg("Runner stopped")
			return ctx.Err()
		}
	}
}
