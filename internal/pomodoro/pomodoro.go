// Package pomodoro implements a work/break countdown timer.
//
// The timer is advanced one second per Tick. Run drives Tick from a ticker
// until its context ends, so a REPL can start, pause and inspect the timer
// while it counts down in the background.
package pomodoro

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type Mode string

const (
	Work  Mode = "work"
	Break Mode = "break"
)

const (
	DefaultWork  = 25 * time.Minute
	DefaultBreak = 5 * time.Minute
)

// newTicker is swapped in tests.
var newTicker = func(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// State is a snapshot of the timer.
type State struct {
	Mode     Mode
	Left     int
	Duration int
	Running  bool
}

// Display renders the remaining time as MM:SS.
func (s State) Display() string {
	return Format(s.Left)
}

// Progress is the remaining fraction of the current period, in [0, 1].
func (s State) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Left) / float64(s.Duration)
}

type Timer struct {
	mu sync.Mutex

	work    time.Duration
	brk     time.Duration
	mode    Mode
	dur     int
	left    int
	running bool

	notify func(string)
}

// New returns a paused timer in work mode. Non-positive durations fall back to
// the defaults; notify receives the message shown when a period ends.
func New(work, brk time.Duration, notify func(string)) *Timer {
	if work <= 0 {
		work = DefaultWork
	}
	if brk <= 0 {
		brk = DefaultBreak
	}
	if notify == nil {
		notify = func(string) {}
	}
	t := &Timer{work: work, brk: brk, mode: Work, notify: notify}
	t.load(Work)
	return t
}

func (t *Timer) seconds(m Mode) int {
	if m == Break {
		return int(t.brk / time.Second)
	}
	return int(t.work / time.Second)
}

// load must be called with mu held.
func (t *Timer) load(m Mode) {
	t.mode = m
	t.dur = t.seconds(m)
	t.left = t.dur
}

func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return State{Mode: t.mode, Left: t.left, Duration: t.dur, Running: t.running}
}

// StartPause toggles the running flag and reports the new value.
func (t *Timer) StartPause() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = !t.running
	return t.running
}

// Reset stops the timer and reloads the current mode's duration.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = false
	t.load(t.mode)
}

// SwitchMode stops the timer and loads m's duration.
func (t *Timer) SwitchMode(m Mode) error {
	if m != Work && m != Break {
		return fmt.Errorf("unknown mode %q", m)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = false
	t.load(m)
	return nil
}

// Tick advances a running timer by one second. When the period ends the
// timer stops, flips mode and notifies. It reports whether a period ended.
func (t *Timer) Tick() bool {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return false
	}
	if t.left > 1 {
		t.left--
		t.mu.Unlock()
		return false
	}

	finished := t.mode
	t.running = false
	if finished == Work {
		t.load(Break)
	} else {
		t.load(Work)
	}
	msg := t.message(finished)
	t.mu.Unlock()

	t.notify(msg)
	return true
}

func (t *Timer) message(finished Mode) string {
	if finished == Work {
		return fmt.Sprintf("Time for a break! Take %s.", minutes(t.brk))
	}
	return "Break's over! Back to work."
}

// Run ticks once per second until ctx is done.
func (t *Timer) Run(ctx context.Context) error {
	ticks, stop := newTicker(time.Second)
	defer stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticks:
			t.Tick()
		}
	}
}

// Format renders seconds as MM:SS. Minutes are not capped at 59.
func Format(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func minutes(d time.Duration) string {
	m := int(d / time.Minute)
	if m == 1 {
		return "1 minute"
	}
	if m == 0 {
		return fmt.Sprintf("%d seconds", int(d/time.Second))
	}
	return fmt.Sprintf("%d minutes", m)
}
