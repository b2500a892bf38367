package watch

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"mvdan.cc/sh/v3/shell"
)

// Builtins returns a Table of general-purpose commands that write their
// output to w. Arguments are split into words the way a POSIX shell would, so
// quoting keeps spaces and special characters inside one argument. A command
// that fails prints "name: error" to w and returns; it never stops the
// watcher.
func Builtins(w io.Writer) Table {
	b := builtins{w: w, client: &http.Client{Timeout: 30 * time.Second}}
	t := Table{
		{Name: "echo", Help: "print the arguments", Handler: b.echo},
		{Name: "date", Help: "print the current date and time", Handler: b.date},
		{Name: "cat", Help: "print files: cat FILE...", Handler: b.cat},
		{Name: "wc", Help: "count lines in a file: wc FILE", Handler: b.wc},
		{Name: "head", Help: "print the first lines of a file: head N FILE", Handler: b.head},
		{Name: "tail", Help: "print the last lines of a file: tail N FILE", Handler: b.tail},
		{Name: "grep", Help: "print lines containing text: grep TEXT FILE", Handler: b.grep},
		{Name: "jq", Help: "query JSON in a file: jq QUERY FILE", Handler: b.jq},
		{Name: "get", Help: "fetch a URL and print the body: get URL", Handler: b.get},
		{Name: "exec", Help: "run an external program: exec PROGRAM [ARGS...]", Handler: b.exec},
		{Name: "help", Help: "list commands"},
	}
	t[len(t)-1].Handler = func(string) {
		for _, e := range t {
			fmt.Fprintf(w, "%-6s %s\n", e.Name, e.Help)
		}
	}
	return t
}

type builtins struct {
	w      io.Writer
	client HTTPClient
}

func (b builtins) fail(name string, err error) {
	fmt.Fprintf(b.w, "%s: %v\n", name, err)
}

func (b builtins) stdout(name string, p *Pipe) {
	if _, err := p.WithStdout(b.w).Stdout(); err != nil {
		b.fail(name, err)
	}
}

func (b builtins) echo(args string) {
	words, err := shell.Fields(args, nil)
	if err != nil {
		b.fail("echo", err)
		return
	}
	fmt.Fprintln(b.w, strings.Join(words, " "))
}

func (b builtins) date(string) {
	fmt.Fprintln(b.w, time.Now().Format(time.UnixDate))
}

func (b builtins) cat(args string) {
	files, err := shell.Fields(args, nil)
	if err != nil {
		b.fail("cat", err)
		return
	}
	if len(files) == 0 {
		b.fail("cat", errMissingOperand)
		return
	}
	for _, f := range files {
		b.stdout("cat", File(f))
	}
}

func (b builtins) wc(args string) {
	file, err := oneArg(args)
	if err != nil {
		b.fail("wc", err)
		return
	}
	n, err := File(file).CountLines()
	if err != nil {
		b.fail("wc", err)
		return
	}
	fmt.Fprintf(b.w, "%d %s\n", n, file)
}

func (b builtins) head(args string) {
	n, file, err := countAndFile(args)
	if err != nil {
		b.fail("head", err)
		return
	}
	b.stdout("head", File(file).First(n))
}

func (b builtins) tail(args string) {
	n, file, err := countAndFile(args)
	if err != nil {
		b.fail("tail", err)
		return
	}
	b.stdout("tail", File(file).Last(n))
}

func (b builtins) grep(args string) {
	fields, err := shell.Fields(args, nil)
	if err != nil {
		b.fail("grep", err)
		return
	}
	if len(fields) != 2 {
		b.fail("grep", errMissingOperand)
		return
	}
	b.stdout("grep", File(fields[1]).Match(fields[0]))
}

// jq takes the query as every word but the last, so an unquoted query
// may still contain spaces.
func (b builtins) jq(args string) {
	fields, err := shell.Fields(args, nil)
	if err != nil {
		b.fail("jq", err)
		return
	}
	if len(fields) < 2 {
		b.fail("jq", errMissingOperand)
		return
	}
	last := len(fields) - 1
	query, file := strings.Join(fields[:last], " "), fields[last]
	b.stdout("jq", File(file).JQ(query))
}

func (b builtins) get(args string) {
	url, err := oneArg(args)
	if err != nil {
		b.fail("get", err)
		return
	}
	b.stdout("get", Get(b.client, url))
}

func (b builtins) exec(args string) {
	p := Exec(args)
	err := p.Error()
	// Show the program's output even when it fails.
	p.SetError(nil)
	b.stdout("exec", p)
	if err != nil {
		b.fail("exec", err)
	}
}

var errMissingOperand = errors.New("missing operand")

func oneArg(args string) (string, error) {
	fields, err := shell.Fields(args, nil)
	if err != nil {
		return "", err
	}
	if len(fields) != 1 {
		return "", errMissingOperand
	}
	return fields[0], nil
}

func countAndFile(args string) (int, string, error) {
	fields, err := shell.Fields(args, nil)
	if err != nil {
		return 0, "", err
	}
	if len(fields) != 2 {
		return 0, "", errMissingOperand
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0, "", fmt.Errorf("invalid line count %q", fields[0])
	}
	return n, fields[1], nil
}
