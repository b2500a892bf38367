package watch

import "strings"

const (
	// DefaultInterval is the number of seconds between runs when no -n flag
	// is given.
	DefaultInterval = 2
	// MaxCommandLine is the capacity of Request.CommandLine in bytes.
	MaxCommandLine = 255
	// MaxCommandName is the capacity of Request.CommandName in bytes.
	MaxCommandName = 31

	intervalFlag = "-n "
)

// Request is a parsed watch invocation.
type Request struct {
	// Interval is the delay between runs, in seconds. It is always positive
	// for a Request returned by Parse without error.
	Interval int
	// CommandLine is everything after the flags: the command name and its
	// arguments.
	CommandLine Text
	// CommandName is the first space-delimited word of CommandLine.
	CommandName Text
}

// TrailingArgs returns the part of the command line after the command name,
// with leading spaces removed, or the empty string if there are no arguments.
// It is computed afresh from CommandLine on every call.
func (r Request) TrailingArgs() string {
	line := r.CommandLine.String()
	i := strings.IndexByte(line, ' ')
	if i < 0 {
		return ""
	}
	return strings.TrimLeft(line[i+1:], " ")
}

// Parse reads an argument string of the form
//
//	[-n seconds] <command> [args...]
//
// and returns the corresponding Request. Flags are only recognised before the
// command; once a word that isn't a flag turns up, the rest of the string
// belongs to the command line. The interval is a run of decimal digits
// directly after "-n "; anything else after the flag counts as zero digits and
// produces ErrInvalidInterval. An empty or all-space command produces
// ErrUsage.
//
// Parse has no side effects, so calling it repeatedly with the same input
// always gives the same result.
func Parse(args string) (Request, error) {
	interval := DefaultInterval
	var command string
	for args != "" {
		args = strings.TrimLeft(args, " ")
		if !strings.HasPrefix(args, intervalFlag) {
			command = args
			break
		}
		args = args[len(intervalFlag):]
		interval = 0
		i := 0
		for i < len(args) && args[i] >= '0' && args[i] <= '9' {
			interval = interval*10 + int(args[i]-'0')
			i++
		}
		args = args[i:]
		if interval <= 0 {
			return Request{}, ErrInvalidInterval
		}
	}
	if command == "" {
		return Request{}, ErrUsage
	}
	line := NewText(command, MaxCommandLine)
	name := line.String()
	if i := strings.IndexByte(name, ' '); i >= 0 {
		name = name[:i]
	}
	return Request{
		Interval:    interval,
		CommandLine: line,
		CommandName: NewText(name, MaxCommandName),
	}, nil
}
