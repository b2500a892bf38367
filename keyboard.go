package watch

import (
	"errors"
	"io"
	"sync"
)

// Keyboard is the input state the watcher samples while it runs. None of the
// methods may block.
type Keyboard interface {
	// EscapePressed reports whether the escape key is down.
	EscapePressed() bool
	// ControlHeld reports whether the control modifier is down.
	ControlHeld() bool
	// PeekChar returns the next pending character without consuming it. The
	// second result is false if nothing is pending.
	PeekChar() (byte, bool)
	// ReadChar consumes and returns the next pending character. The second
	// result is false if nothing is pending.
	ReadChar() (byte, bool)
	// FlushInput discards all pending input.
	FlushInput()
}

// KeyboardBufferSize is the number of ordinary characters a StreamKeyboard
// holds. Characters arriving when the buffer is full are dropped.
const KeyboardBufferSize = 256

const (
	keyEscape = 0x1b
	keyCtrlC  = 0x03
)

// StreamKeyboard is a Keyboard fed from a byte stream, such as a terminal in
// raw mode or a pipe. A lone ESC byte latches EscapePressed. A Ctrl+C byte
// (0x03) is taken as a 'c' typed with control held: ControlHeld reports true
// and the 'c' is the next character until it is read or flushed. Terminal
// escape sequences (arrow keys and so on) are ignored.
type StreamKeyboard struct {
	mu     sync.Mutex
	escape bool
	chord  bool
	buf    []byte
	err    error
	done   chan struct{}
}

// NewStreamKeyboard starts reading r in the background and returns the
// keyboard it feeds. The reading goroutine runs until r returns an error or
// EOF, which for an interactive terminal may be never: to stop it sooner,
// close r (an *os.File, say), and Done will then be closed.
func NewStreamKeyboard(r io.Reader) *StreamKeyboard {
	k := &StreamKeyboard{done: make(chan struct{})}
	go k.read(r)
	return k
}

func (k *StreamKeyboard) read(r io.Reader) {
	defer close(k.done)
	b := make([]byte, 64)
	for {
		n, err := r.Read(b)
		if n > 0 {
			k.feed(b[:n])
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				k.mu.Lock()
				k.err = err
				k.mu.Unlock()
			}
			return
		}
	}
}

func (k *StreamKeyboard) feed(p []byte) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for i := 0; i < len(p); i++ {
		switch c := p[i]; c {
		case keyEscape:
			if i+1 < len(p) && (p[i+1] == '[' || p[i+1] == 'O') {
				i += 2
				for i < len(p) && (p[i] < 0x40 || p[i] > 0x7e) {
					i++
				}
				continue
			}
			k.escape = true
		case keyCtrlC:
			k.chord = true
		default:
			if len(k.buf) < KeyboardBufferSize {
				k.buf = append(k.buf, c)
			}
		}
	}
}

// Done returns a channel that is closed once the underlying stream is
// exhausted or fails.
func (k *StreamKeyboard) Done() <-chan struct{} {
	return k.done
}

// Err returns the error that stopped the stream, if any. Reaching the end of
// the stream is not an error.
func (k *StreamKeyboard) Err() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.err
}

func (k *StreamKeyboard) EscapePressed() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.escape
}

func (k *StreamKeyboard) ControlHeld() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.chord
}

func (k *StreamKeyboard) PeekChar() (byte, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.chord {
		return 'c', true
	}
	if len(k.buf) == 0 {
		return 0, false
	}
	return k.buf[0], true
}

func (k *StreamKeyboard) ReadChar() (byte, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.chord {
		k.chord = false
		return 'c', true
	}
	if len(k.buf) == 0 {
		return 0, false
	}
	c := k.buf[0]
	k.buf = k.buf[1:]
	return c, true
}

func (k *StreamKeyboard) FlushInput() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.escape = false
	k.chord = false
	k.buf = nil
}
