package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestModuleName(t *testing.T) {
	cases := map[string]string{
		"blog":        "Blog",
		"field_notes": "FieldNotes",
		"my-app":      "MyApp",
	}
	for in, want := range cases {
		if got := moduleName(in); got != want {
			t.Fatalf("moduleName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRailsNewThenGenerate(t *testing.T) {
	t.Chdir(t.TempDir())

	if code := dispatch("rails", []string{"new", "field_notes", "--skip-bundle"}); code != 0 {
		t.Fatalf("rails new exited %d", code)
	}
	app, err := os.ReadFile(filepath.Join("field_notes", "config", "application.rb"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(app), "module FieldNotes\n") {
		t.Fatalf("application.rb missing module:\n%s", app)
	}

	t.Chdir("field_notes")
	if code := dispatch("rails", []string{"generate", "rspec:install"}); code != 0 {
		t.Fatalf("rails generate exited %d", code)
	}
	if _, err := os.Stat(filepath.Join("spec", "spec_helper.rb")); err != nil {
		t.Fatalf("spec_helper not generated: %v", err)
	}
	if code := dispatch("rails", []string{"generate", "devise:install"}); code == 0 {
		t.Fatalf("unknown generator succeeded")
	}
}

func TestDispatchLogsAndFails(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	logPath := filepath.Join(dir, "calls.log")
	t.Setenv("RAILSKIT_STUB_LOG", logPath)
	t.Setenv("RAILSKIT_STUB_FAIL", "bundle install")

	if code := dispatch("rake", []string{"db:migrate"}); code != 0 {
		t.Fatalf("rake db:migrate exited %d", code)
	}
	if code := dispatch("bundle", []string{"install"}); code != 1 {
		t.Fatalf("expected simulated failure, got exit %d", code)
	}

	lines, err := readLines(logPath)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"rake db:migrate", "bundle install"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Fatalf("log = %q, want %q", lines, want)
	}
}

func TestBundleExecDispatchesToRake(t *testing.T) {
	t.Chdir(t.TempDir())
	if code := dispatch("bundle", []string{"exec", "rake", "db:migrate"}); code != 0 {
		t.Fatalf("bundle exec rake exited %d", code)
	}
	if code := dispatch("bundle", []string{"exec", "rake", "assets:precompile"}); code == 0 {
		t.Fatalf("unknown rake task succeeded")
	}
}
