// Package watch runs a command over and over, pausing between runs, until the
// user presses ESC or Ctrl+C. It is the engine behind a shell's watch
// command:
//
//	watch -n 5 date
//
// Commands are looked up in a Registry, keystrokes come from a Keyboard, and
// all status output goes to a writer you supply:
//
//	w := watch.New(watch.Builtins(os.Stdout), kb)
//	err := w.Run(ctx, "-n 5 date")
//
// Run always returns once the loop ends, with an error saying why. Usage
// mistakes, unknown commands and interruptions are each reported with a single
// line of output before Run returns.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// Watcher repeatedly runs a command from its Registry.
type Watcher struct {
	registry Registry
	poller   Poller
	delay    *Delay
	stdout   io.Writer
}

// New returns a Watcher that resolves commands in reg and reads stop
// requests from kb. Output goes to os.Stdout until changed with WithStdout.
func New(reg Registry, kb Keyboard) *Watcher {
	return &Watcher{
		registry: reg,
		poller:   Poller{Keyboard: kb},
		delay:    NewDelay(),
		stdout:   os.Stdout,
	}
}

// WithStdout sets the writer that receives the watcher's status output.
func (w *Watcher) WithStdout(out io.Writer) *Watcher {
	w.stdout = out
	return w
}

// WithClock sets the clock used for the delay between runs.
func (w *Watcher) WithClock(c Clock) *Watcher {
	w.delay.Clock = c
	return w
}

// WithPollInterval sets how often the watcher checks the keyboard while
// waiting.
func (w *Watcher) WithPollInterval(d time.Duration) *Watcher {
	w.delay.Poll = d
	return w
}

// WithUnit sets the length of one interval unit, normally one second.
func (w *Watcher) WithUnit(d time.Duration) *Watcher {
	w.delay.Unit = d
	return w
}

// WithDestructiveCancel selects whether the Ctrl+C check consumes a pending
// character even when it isn't a 'c'. See Poller.
func (w *Watcher) WithDestructiveCancel(on bool) *Watcher {
	w.poller.Destructive = on
	return w
}

// Run parses args and runs the command it names every Interval seconds until
// the user stops it, the command turns out not to exist, or ctx is done. The
// returned error is one of ErrUsage, ErrInvalidInterval, a *NotFoundError, or
// ErrInterrupted; test for them with errors.Is.
//
// A handler runs to completion before anything else happens: a handler that
// never returns stalls the watcher. Stop requests are checked right after each
// run, and throughout the delay that follows.
func (w *Watcher) Run(ctx context.Context, args string) error {
	req, err := Parse(args)
	switch {
	case errors.Is(err, ErrUsage):
		fmt.Fprintln(w.stdout, "Usage: watch [-n sec] <command>")
		return err
	case errors.Is(err, ErrInvalidInterval):
		fmt.Fprintln(w.stdout, "watch: invalid interval")
		return err
	case err != nil:
		return err
	}
	if req.CommandLine.Truncated() {
		fmt.Fprintf(w.stdout, "watch: command truncated to %d characters\n", MaxCommandLine)
	}
	if req.CommandName.Truncated() {
		fmt.Fprintf(w.stdout, "watch: command name truncated to %d characters\n", MaxCommandName)
	}
	fmt.Fprintf(w.stdout, "Every %ds: %s\n", req.Interval, req.CommandLine)
	fmt.Fprint(w.stdout, "(Press ESC or Ctrl+C to stop)\n\n")
	cancelled := func() bool {
		return w.poller.Cancelled(ctx)
	}
	name := req.CommandName.String()
	for {
		cmdArgs := req.TrailingArgs()
		handler, ok := w.lookup(name)
		if !ok {
			fmt.Fprintf(w.stdout, "watch: command not found: %s\n", name)
			return &NotFoundError{Name: name}
		}
		handler(cmdArgs)
		if cancelled() || w.delay.Wait(ctx, req.Interval, cancelled) {
			return w.interrupted()
		}
		fmt.Fprint(w.stdout, "\n---\n")
	}
}

func (w *Watcher) lookup(name string) (Handler, bool) {
	if w.registry == nil {
		return nil, false
	}
	return w.registry.Lookup(name)
}

func (w *Watcher) interrupted() error {
	fmt.Fprint(w.stdout, "\n[watch interrupted]\n")
	if kb := w.poller.Keyboard; kb != nil {
		kb.FlushInput()
	}
	return ErrInterrupted
}
