package watch

import "context"

// Poller decides whether the user has asked to stop. A stop request is the
// escape key, or control held with 'c' as the next pending character.
type Poller struct {
	Keyboard Keyboard
	// Destructive makes the Ctrl+C test read the next character whenever
	// control is held, whether or not it turns out to be a 'c'. Without it,
	// the character is only peeked at, and consumed once it is known to be
	// the 'c' of a Ctrl+C.
	Destructive bool
}

// Cancelled samples the keyboard once and reports whether a stop was
// requested. If the keyboard is nil, only ctx can stop the watcher.
func (p *Poller) Cancelled(ctx context.Context) bool {
	if ctx != nil && ctx.Err() != nil {
		return true
	}
	kb := p.Keyboard
	if kb == nil {
		return false
	}
	if kb.EscapePressed() {
		return true
	}
	if !kb.ControlHeld() {
		return false
	}
	if p.Destructive {
		c, ok := kb.ReadChar()
		return ok && c == 'c'
	}
	c, ok := kb.PeekChar()
	if !ok || c != 'c' {
		return false
	}
	kb.ReadChar()
	return true
}
