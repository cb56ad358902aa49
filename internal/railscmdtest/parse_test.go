package main

import "testing"

func TestParseArgs_SupportsFlagsAndCommandWithoutDashDash(t *testing.T) {
	opts, cmd, err := parseArgs([]string{
		"--skip-skeleton",
		"--activate-wrapper",
		"--dir", "blog/config",
		"railskit", "new", "blog",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !opts.skipSkeleton {
		t.Fatalf("expected skipSkeleton true")
	}
	if !opts.activateWrapper {
		t.Fatalf("expected activateWrapper true")
	}
	if opts.dir != "blog/config" {
		t.Fatalf("expected dir=blog/config, got %q", opts.dir)
	}
	if opts.appName != "blog" {
		t.Fatalf("expected default app name, got %q", opts.appName)
	}
	if len(cmd) != 3 || cmd[0] != "railskit" || cmd[1] != "new" || cmd[2] != "blog" {
		t.Fatalf("unexpected command: %#v", cmd)
	}
}

func TestParseArgs_SupportsDashDashDelimiter(t *testing.T) {
	opts, cmd, err := parseArgs([]string{"--keep", "--app", "field_notes", "--", "railskit", "plan"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !opts.keep {
		t.Fatalf("expected keep true")
	}
	if opts.appName != "field_notes" {
		t.Fatalf("expected app name field_notes, got %q", opts.appName)
	}
	if len(cmd) != 2 || cmd[0] != "railskit" || cmd[1] != "plan" {
		t.Fatalf("unexpected command: %#v", cmd)
	}
}

func TestParseArgs_RequiresCommand(t *testing.T) {
	_, _, err := parseArgs([]string{"--keep"})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestParseArgs_RejectsUnsafePaths(t *testing.T) {
	if _, _, err := parseArgs([]string{"--dir", "/abs", "railskit"}); err == nil {
		t.Fatalf("expected error for absolute dir")
	}
	if _, _, err := parseArgs([]string{"--app", "../escape", "railskit"}); err == nil {
		t.Fatalf("expected error for app with ..")
	}
}
