package watch

import (
	"bufio"
	"bytes"
	"container/ring"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"strings"

	"github.com/itchyny/gojq"
	"mvdan.cc/sh/v3/shell"
)

// Pipe is a stream of text with an error status, used by the builtin
// commands. Once a Pipe has an error, every further operation on it is a
// no-op, so stages can be chained without checking each one:
//
//	Echo(data).Match("error").First(10).Stdout()
type Pipe struct {
	Reader io.Reader
	err    error
	stdout io.Writer
}

// NewPipe returns an empty pipe that writes to os.Stdout.
func NewPipe() *Pipe {
	return &Pipe{
		Reader: strings.NewReader(""),
		stdout: os.Stdout,
	}
}

// Echo returns a pipe containing s.
func Echo(s string) *Pipe {
	return NewPipe().WithReader(strings.NewReader(s))
}

// File returns a pipe that reads the named file. If the file can't be
// opened, the pipe's error status is set.
func File(name string) *Pipe {
	f, err := os.Open(name)
	if err != nil {
		return NewPipe().WithError(err)
	}
	return NewPipe().WithReader(f)
}

// Exec runs cmdLine as an external program and returns a pipe containing its
// combined output. The command line is split into words the way a POSIX shell
// would, quotes included, but nothing else about the shell applies. A
// non-zero exit sets the error status to "exit status N".
func Exec(cmdLine string) *Pipe {
	p := NewPipe()
	args, err := shell.Fields(cmdLine, nil)
	if err != nil {
		return p.WithError(err)
	}
	if len(args) == 0 {
		return p.WithError(errors.New("empty command line"))
	}
	cmd := exec.Command(args[0], args[1:]...)
	output, err := cmd.CombinedOutput()
	p.WithReader(bytes.NewReader(output))
	if err != nil {
		p.err = err
	}
	return p
}

// HTTPClient is the part of *http.Client that Get needs, so that callers can
// supply their own.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Get fetches url with client, or http.DefaultClient if client is nil, and
// returns a pipe containing the response body. A response status other than
// 200 OK sets the error status.
func Get(client HTTPClient, url string) *Pipe {
	p := NewPipe()
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return p.WithError(err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return p.WithError(err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return p.WithError(fmt.Errorf("unexpected HTTP response status: %s", resp.Status))
	}
	return p.WithReader(resp.Body)
}

// Error returns the pipe's error status, or nil.
func (p *Pipe) Error() error {
	if p == nil {
		return nil
	}
	return p.err
}

// SetError sets the pipe's error status and closes its reader.
func (p *Pipe) SetError(err error) {
	if p == nil {
		return
	}
	if err != nil {
		p.Close()
	}
	p.err = err
}

// WithError sets the pipe's error status and returns the pipe.
func (p *Pipe) WithError(err error) *Pipe {
	p.SetError(err)
	return p
}

// WithReader makes r the pipe's source.
func (p *Pipe) WithReader(r io.Reader) *Pipe {
	p.Reader = r
	return p
}

// WithStdout sets the writer used by Stdout, instead of os.Stdout.
func (p *Pipe) WithStdout(w io.Writer) *Pipe {
	p.stdout = w
	return p
}

// Close closes the pipe's reader, if it is closable.
func (p *Pipe) Close() error {
	return closeReader(p.Reader)
}

func closeReader(r io.Reader) error {
	if c, ok := r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// String reads the whole pipe and returns it as a string.
func (p *Pipe) String() (string, error) {
	if p.Error() != nil {
		return "", p.Error()
	}
	defer p.Close()
	data, err := io.ReadAll(p.Reader)
	if err != nil {
		p.SetError(err)
		return "", err
	}
	return string(data), nil
}

// Stdout copies the pipe's contents to its standard output and returns the
// number of bytes written.
func (p *Pipe) Stdout() (int, error) {
	if p.Error() != nil {
		return 0, p.Error()
	}
	defer p.Close()
	n, err := io.Copy(p.stdout, p.Reader)
	if err != nil {
		p.SetError(err)
	}
	return int(n), err
}

// CountLines returns the number of lines in the pipe.
func (p *Pipe) CountLines() (int, error) {
	var lines int
	p.eachLine(func(string, *strings.Builder) {
		lines++
	})
	return lines, p.Error()
}

// eachLine calls process for every line of input and returns a pipe holding
// whatever process wrote.
func (p *Pipe) eachLine(process func(string, *strings.Builder)) *Pipe {
	if p.Error() != nil {
		return p
	}
	src := p.Reader
	defer closeReader(src)
	scanner := bufio.NewScanner(src)
	var out strings.Builder
	for scanner.Scan() {
		process(scanner.Text(), &out)
	}
	if err := scanner.Err(); err != nil {
		p.SetError(err)
		return p
	}
	return p.WithReader(strings.NewReader(out.String()))
}

// Match keeps only the lines containing s.
func (p *Pipe) Match(s string) *Pipe {
	return p.eachLine(func(line string, out *strings.Builder) {
		if strings.Contains(line, s) {
			out.WriteString(line)
			out.WriteByte('\n')
		}
	})
}

// First keeps only the first n lines.
func (p *Pipe) First(n int) *Pipe {
	if p.Error() != nil {
		return p
	}
	src := p.Reader
	defer closeReader(src)
	scanner := bufio.NewScanner(src)
	var out strings.Builder
	for i := 0; i < n && scanner.Scan(); i++ {
		out.WriteString(scanner.Text())
		out.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		p.SetError(err)
		return p
	}
	return p.WithReader(strings.NewReader(out.String()))
}

// Last keeps only the last n lines.
func (p *Pipe) Last(n int) *Pipe {
	if p.Error() != nil {
		return p
	}
	if n <= 0 {
		p.Close()
		return p.WithReader(strings.NewReader(""))
	}
	src := p.Reader
	defer closeReader(src)
	scanner := bufio.NewScanner(src)
	lines := ring.New(n)
	for scanner.Scan() {
		lines.Value = scanner.Text()
		lines = lines.Next()
	}
	if err := scanner.Err(); err != nil {
		p.SetError(err)
		return p
	}
	var out strings.Builder
	lines.Do(func(v any) {
		if line, ok := v.(string); ok {
			out.WriteString(line)
			out.WriteByte('\n')
		}
	})
	return p.WithReader(strings.NewReader(out.String()))
}

// JQ runs the jq query against each JSON value in the pipe, and returns a
// pipe containing the results, one compact JSON value per line.
func (p *Pipe) JQ(query string) *Pipe {
	if p.Error() != nil {
		return p
	}
	src := p.Reader
	defer closeReader(src)
	q, err := gojq.Parse(query)
	if err != nil {
		return p.WithError(err)
	}
	code, err := gojq.Compile(q)
	if err != nil {
		return p.WithError(err)
	}
	var out bytes.Buffer
	dec := json.NewDecoder(src)
	for dec.More() {
		var input any
		if err := dec.Decode(&input); err != nil {
			return p.WithError(err)
		}
		iter := code.Run(input)
		for {
			v, ok := iter.Next()
			if !ok {
				break
			}
			if err, ok := v.(error); ok {
				return p.WithError(err)
			}
			result, err := json.Marshal(v)
			if err != nil {
				return p.WithError(err)
			}
			out.Write(result)
			out.WriteByte('\n')
		}
	}
	return p.WithReader(&out)
}
