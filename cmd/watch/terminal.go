package main

import (
	"bytes"
	"io"
	"log"
	"os"

	"golang.org/x/term"
)

// openTerminal puts in into raw mode if it is a terminal, so single key
// presses arrive without waiting for Enter. Raw mode also stops the terminal
// turning "\n" into "\r\n", so the returned writer does that instead. The
// returned function puts the terminal back how it was.
func openTerminal(in *os.File, out io.Writer) (io.Reader, io.Writer, func()) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return in, out, func() {}
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		log.Printf("keys will need Enter: %v", err)
		return in, out, func() {}
	}
	return in, crlfWriter{out}, func() {
		term.Restore(fd, state)
	}
}

type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
