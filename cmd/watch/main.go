// Command watch runs a command repeatedly until ESC or Ctrl+C is pressed:
//
//	watch [-n seconds] <command> [args...]
//
// The commands available are the builtins listed by "watch help"; use
// "exec" to run an external program. Environment variables:
//
//	WATCH_POLL_INTERVAL       how often to check the keyboard (default 10ms)
//	WATCH_UNIT                length of one interval second (default 1s)
//	WATCH_DESTRUCTIVE_CANCEL  consume any key typed with Ctrl held (default false)
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bitfield/watch"
	"mvdan.cc/sh/v3/syntax"
)

func main() {
	os.Exit(Main())
}

// Main runs watch with the process's arguments and returns its exit status.
func Main() int {
	log.SetFlags(0)
	log.SetPrefix("watch: ")
	cfg, err := loadConfig()
	if err != nil {
		log.Print(err)
		return 1
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	in, out, restore := openTerminal(os.Stdin, os.Stdout)
	defer restore()
	kb := watch.NewStreamKeyboard(in)
	w := watch.New(watch.Builtins(out), kb).
		WithStdout(out).
		WithPollInterval(cfg.PollInterval).
		WithUnit(cfg.Unit).
		WithDestructiveCancel(cfg.DestructiveCancel)
	return exitStatus(w.Run(ctx, commandLine(os.Args[1:])))
}

func exitStatus(err error) int {
	if err == nil || errors.Is(err, watch.ErrInterrupted) {
		return 0
	}
	return 1
}

const shellSpecial = " \t\n'\"\\$`|&;<>()*?[]{}#~!"

// commandLine joins args back into a single line, quoting any argument that
// the exec builtin would otherwise split or expand.
func commandLine(args []string) string {
	words := make([]string, len(args))
	for i, a := range args {
		words[i] = a
		if a != "" && !strings.ContainsAny(a, shellSpecial) {
			continue
		}
		if q, err := syntax.Quote(a, syntax.LangBash); err == nil {
			words[i] = q
		}
	}
	return strings.Join(words, " ")
}
