package watch

import "unicode/utf8"

// Text is a fixed-capacity string. If the value it was made from didn't fit,
// the stored text is cut short and Truncated reports true.
type Text struct {
	s         string
	truncated bool
}

// NewText returns a Text holding at most capacity bytes of s. The cut never
// falls inside a UTF-8 sequence, so the result may be a few bytes shorter than
// capacity.
func NewText(s string, capacity int) Text {
	if capacity < 0 {
		capacity = 0
	}
	if len(s) <= capacity {
		return Text{s: s}
	}
	end := capacity
	for end > 0 && !utf8.RuneStart(s[end]) {
		end--
	}
	return Text{s: s[:end], truncated: true}
}

// String returns the stored text.
func (t Text) String() string {
	return t.s
}

// Len returns the length of the stored text in bytes.
func (t Text) Len() int {
	return len(t.s)
}

// Truncated reports whether the original value was longer than the capacity.
func (t Text) Truncated() bool {
	return t.truncated
}
