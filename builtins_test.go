package watch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func runBuiltin(t *testing.T, name, args string) string {
	t.Helper()
	buf := &bytes.Buffer{}
	h, ok := Builtins(buf).Lookup(name)
	if !ok {
		t.Fatalf("no builtin %q", name)
	}
	h(args)
	return buf.String()
}

func TestBuiltins(t *testing.T) {
	t.Parallel()
	tcs := []struct {
		name, args string
		want       string
	}{
		{"echo", "hello  world", "hello world\n"},
		{"echo", "'hello  world'", "hello  world\n"},
		{"echo", "", "\n"},
		{"cat", "testdata/hello.txt", "hello world\n"},
		{"cat", "testdata/hello.txt testdata/hello.txt", "hello world\nhello world\n"},
		{"wc", "testdata/test.txt", "3 testdata/test.txt\n"},
		{"head", "1 testdata/test.txt", "This is the first line in the file.\n"},
		{"tail", "1 testdata/test.txt", "This is another line in the file.\n"},
		{"grep", "Hello testdata/test.txt", "Hello, world.\n"},
		{"grep", "'Hello, world' testdata/test.txt", "Hello, world.\n"},
		{"jq", ".name testdata/commands.json", "\"watch\"\n\"date\"\n"},
		{"jq", "'select(.interval == 5) | .name' testdata/commands.json", "\"date\"\n"},
		{"head", "1 'testdata/test.txt'", "This is the first line in the file.\n"},
	}
	for _, tc := range tcs {
		got := runBuiltin(t, tc.name, tc.args)
		if tc.want != got {
			t.Errorf("%s %s: %s", tc.name, tc.args, cmp.Diff(tc.want, got))
		}
	}
}

func TestBuiltinsReportFailuresAndCarryOn(t *testing.T) {
	t.Parallel()
	tcs := []struct {
		name, args string
		want       string
	}{
		{"cat", "", "cat: missing operand\n"},
		{"cat", "doesntexist", "cat: open doesntexist"},
		{"wc", "", "wc: missing operand\n"},
		{"wc", "doesntexist", "wc: open doesntexist"},
		{"head", "x testdata/test.txt", `head: invalid line count "x"`},
		{"tail", "-1 testdata/test.txt", `tail: invalid line count "-1"`},
		{"grep", "onlyone", "grep: missing operand\n"},
		{"jq", ".name", "jq: missing operand\n"},
		{"jq", ".name doesntexist", "jq: open doesntexist"},
		{"echo", "'unterminated", "echo: "},
		{"wc", "'unterminated", "wc: "},
	}
	for _, tc := range tcs {
		got := runBuiltin(t, tc.name, tc.args)
		if !strings.HasPrefix(got, tc.want) {
			t.Errorf("%s %q: want output starting %q, got %q", tc.name, tc.args, tc.want, got)
		}
	}
}

func TestDateBuiltinPrintsCurrentTime(t *testing.T) {
	t.Parallel()
	got := strings.TrimSpace(runBuiltin(t, "date", ""))
	when, err := time.Parse(time.UnixDate, got)
	if err != nil {
		t.Fatal(err)
	}
	if d := time.Since(when); d < -time.Minute || d > time.Minute {
		t.Errorf("date %q is %v away from now", got, d)
	}
}

func TestHelpBuiltinListsEveryCommand(t *testing.T) {
	t.Parallel()
	got := runBuiltin(t, "help", "")
	names := Builtins(nil).Names()
	if len(names) == 0 || names[len(names)-1] != "help" {
		t.Fatalf("want help listed last, got %q", names)
	}
	for _, name := range names {
		if !strings.Contains(got, name+" ") {
			t.Errorf("help output doesn't mention %q:\n%s", name, got)
		}
	}
}

func TestGetBuiltin(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/status" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintln(w, "all good")
	}))
	defer srv.Close()
	if got := runBuiltin(t, "get", srv.URL+"/status"); got != "all good\n" {
		t.Errorf("want %q, got %q", "all good\n", got)
	}
	want := "get: unexpected HTTP response status: 404 Not Found\n"
	if got := runBuiltin(t, "get", srv.URL+"/missing"); want != got {
		t.Error(cmp.Diff(want, got))
	}
	if got := runBuiltin(t, "get", ""); got != "get: missing operand\n" {
		t.Errorf("want missing operand, got %q", got)
	}
}

func TestBuiltinsRunUnderWatcher(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	w, _, _ := newTestWatcher(Builtins(buf), &fakeKeyboard{escapeAfter: 3})
	w.WithStdout(buf)
	if err := w.Run(context.Background(), "-n 1 wc testdata/test.txt"); !errors.Is(err, ErrInterrupted) {
		t.Fatalf("want ErrInterrupted, got %v", err)
	}
	want := "Every 1s: wc testdata/test.txt\n(Press ESC or Ctrl+C to stop)\n\n" +
		"3 testdata/test.txt\n\n[watch interrupted]\n"
	if got := buf.String(); want != got {
		t.Error(cmp.Diff(want, got))
	}
}
