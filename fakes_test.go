package watch

import (
	"context"
	"time"
)

// fakeKeyboard is a Keyboard whose state the test sets directly. If
// escapeAfter is positive, the escape key reads as pressed from that call of
// EscapePressed onwards.
type fakeKeyboard struct {
	escape      bool
	ctrl        bool
	buf         []byte
	escapeAfter int
	escapeCalls int
	reads       int
	flushes     int
}

func (k *fakeKeyboard) EscapePressed() bool {
	k.escapeCalls++
	return k.escape || (k.escapeAfter > 0 && k.escapeCalls >= k.escapeAfter)
}

func (k *fakeKeyboard) ControlHeld() bool {
	return k.ctrl
}

func (k *fakeKeyboard) PeekChar() (byte, bool) {
	if len(k.buf) == 0 {
		return 0, false
	}
	return k.buf[0], true
}

func (k *fakeKeyboard) ReadChar() (byte, bool) {
	k.reads++
	if len(k.buf) == 0 {
		return 0, false
	}
	c := k.buf[0]
	k.buf = k.buf[1:]
	return c, true
}

func (k *fakeKeyboard) FlushInput() {
	k.flushes++
	k.escape = false
	k.ctrl = false
	k.buf = nil
}

// fakeClock records sleeps instead of sleeping.
type fakeClock struct {
	sleeps int
	total  time.Duration
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.sleeps++
	c.total += d
	return nil
}
