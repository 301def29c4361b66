// Package frame schedules the per-display-frame callback that drives the
// visualization while audio is playing.
package frame

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// State is the driver's scheduling state.
type State uint8

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Stepper runs one frame of the pipeline.
type Stepper interface {
	Step(dt time.Duration)
}

// Msg is delivered once per scheduled frame.
type Msg struct {
	gen uint64
	at  time.Time
}

// Driver keeps at most one frame tick in flight. Ticks are tagged with a
// generation; Stop bumps it so a tick already queued in the event loop is
// dropped when it arrives.
type Driver struct {
	interval time.Duration
	step     Stepper
	state    State
	gen      uint64
	pending  int
	last     time.Time
}

// New returns an idle driver ticking at fps frames per second.
func New(fps int, step Stepper) *Driver {
	if fps < 1 {
		fps = 60
	}
	return &Driver{
		interval: time.Second / time.Duration(fps),
		step:     step,
	}
}

// State reports whether frames are currently scheduled.
func (d *Driver) State() State { return d.state }

// Pending returns the number of frame ticks currently scheduled.
func (d *Driver) Pending() int { return d.pending }

// Start moves an idle driver to Running and schedules the first frame.
// Starting a running driver is a no-op and returns nil.
func (d *Driver) Start() tea.Cmd {
	if d.state == Running {
		return nil
	}
	d.state = Running
	d.last = time.Time{}
	return d.schedule()
}

// Stop cancels the pending frame and returns to Idle. It reports whether the
// driver was running; stopping an idle driver does nothing.
func (d *Driver) Stop() bool {
	if d.state == Idle {
		return false
	}
	d.state = Idle
	d.gen++
	d.pending = 0
	return true
}

// Handle runs one frame for a live tick and schedules the next unless the
// step itself stopped the driver. Ticks from a cancelled generation, or
// arriving while idle, are dropped.
func (d *Driver) Handle(msg Msg) tea.Cmd {
	if d.state != Running || msg.gen != d.gen {
		return nil
	}
	d.pending--

	var dt time.Duration
	if !d.last.IsZero() && msg.at.After(d.last) {
		dt = msg.at.Sub(d.last)
	}
	d.last = msg.at

	d.step.Step(dt)
	if d.state != Running {
		return nil
	}
	return d.schedule()
}

func (d *Driver) schedule() tea.Cmd {
	d.pending++
	gen := d.gen
	return tea.Tick(d.interval, func(t time.Time) tea.Msg {
		return Msg{gen: gen, at: t}
	})
}
