package command

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"bundle", []string{"bundle"}},
		{"bundle exec rake", []string{"bundle", "exec", "rake"}},
		{`bin/rails "with space"`, []string{"bin/rails", "with space"}},
	}
	for _, tc := range cases {
		got, err := Split(tc.in)
		if err != nil {
			t.Fatalf("Split(%q) returned error: %v", tc.in, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("Split(%q) = %#v, want %#v", tc.in, got, tc.want)
		}
	}
	if _, err := Split("   "); err == nil {
		t.Fatalf("expected error for blank command")
	}
	if _, err := Split(`"unterminated`); err == nil {
		t.Fatalf("expected error for bad quoting")
	}
}

func TestJoinDoesNotAlias(t *testing.T) {
	prefix := make([]string, 2, 8)
	copy(prefix, []string{"bundle", "exec"})
	a := Join(prefix, "rake")
	b := Join(prefix, "rails")
	if a[2] != "rake" || b[2] != "rails" {
		t.Fatalf("Join aliased prefix: %v %v", a, b)
	}
}

func TestExecReportsExitCode(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	var out bytes.Buffer
	r := NewExec(&out, &out)
	err := r.Run(context.Background(), t.TempDir(), []string{"sh", "-c", "echo hi; exit 3"})
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %v", err)
	}
	if exitErr.Code != 3 {
		t.Fatalf("exit code = %d, want 3", exitErr.Code)
	}
	if out.String() != "hi\n" {
		t.Fatalf("stdout = %q", out.String())
	}
}

func TestExecOutput(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	r := NewExec(nil, nil)
	got, err := r.Output(context.Background(), t.TempDir(), []string{"sh", "-c", "echo zone"})
	if err != nil {
		t.Fatalf("Output returned error: %v", err)
	}
	if got != "zone\n" {
		t.Fatalf("Output = %q", got)
	}

	_, err = r.Output(context.Background(), t.TempDir(), []string{"sh", "-c", "echo oops >&2; exit 1"})
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Stderr != "oops" {
		t.Fatalf("expected ExitError with stderr, got %#v", err)
	}
}
