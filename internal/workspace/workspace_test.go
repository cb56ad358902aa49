package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	good := map[string]string{
		"test/":            "test",
		"config/routes.rb": "config/routes.rb",
		"a/./b":            "a/b",
		"app/../Gemfile":   "Gemfile",
	}
	for in, want := range good {
		got, err := Clean(in)
		if err != nil || got != want {
			t.Fatalf("Clean(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	for _, bad := range []string{"", "/etc/passwd", "..", "../x", "a/../../x", "."} {
		if _, err := Clean(bad); !errors.Is(err, ErrUnsafePath) {
			t.Fatalf("Clean(%q) error = %v, want ErrUnsafePath", bad, err)
		}
	}
}

func TestDiskWriteFilePermissions(t *testing.T) {
	root := t.TempDir()
	d := NewDisk(root)

	if err := d.WriteFile("new.txt", []byte("hi")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	info, err := os.Stat(filepath.Join(root, "new.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Fatalf("new file mode = %v, want 0644", info.Mode().Perm())
	}

	script := filepath.Join(root, "run.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := d.WriteFile("run.sh", []byte("#!/bin/sh\necho\n")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	info, err = os.Stat(script)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Fatalf("existing mode = %v, want 0755", info.Mode().Perm())
	}
	data, _ := os.ReadFile(script)
	if string(data) != "#!/bin/sh\necho\n" {
		t.Fatalf("content = %q", data)
	}
}

func TestDiskRejectsEscape(t *testing.T) {
	d := NewDisk(t.TempDir())
	if err := d.WriteFile("../escape", []byte("x")); !errors.Is(err, ErrUnsafePath) {
		t.Fatalf("expected ErrUnsafePath, got %v", err)
	}
}

func TestOverlayLeavesBaseUntouched(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "Gemfile"), []byte("gem 'rails'\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "test", "unit"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "README"), []byte("readme\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	o := NewOverlay(NewDisk(root))

	if err := o.WriteFile("Gemfile", []byte("gem 'rails'\ngem 'rspec'\n")); err != nil {
		t.Fatal(err)
	}
	if err := o.MkdirAll("app/views/pages"); err != nil {
		t.Fatal(err)
	}
	if err := o.WriteFile("app/views/pages/home.html.erb", []byte("<h1>x</h1>")); err != nil {
		t.Fatal(err)
	}
	if err := o.Remove("README"); err != nil {
		t.Fatal(err)
	}
	if err := o.RemoveAll("test"); err != nil {
		t.Fatal(err)
	}

	if _, err := o.Lstat("test/unit"); !IsNotExist(err) {
		t.Fatalf("removed dir child should not exist, got %v", err)
	}
	if info, err := o.Lstat("app/views/pages"); err != nil || !info.IsDir() {
		t.Fatalf("overlay dir missing: %v", err)
	}
	got, err := o.ReadFile("Gemfile")
	if err != nil || string(got) != "gem 'rails'\ngem 'rspec'\n" {
		t.Fatalf("overlay read = %q, %v", got, err)
	}

	base, _ := os.ReadFile(filepath.Join(root, "Gemfile"))
	if string(base) != "gem 'rails'\n" {
		t.Fatalf("base modified: %q", base)
	}
	if _, err := os.Stat(filepath.Join(root, "README")); err != nil {
		t.Fatalf("base README removed: %v", err)
	}

	changes := o.Changes()
	if len(changes) != 3 {
		t.Fatalf("changes = %+v", changes)
	}
	if changes[0].Path != "Gemfile" || changes[0].Created || string(changes[0].Before) != "gem 'rails'\n" {
		t.Fatalf("Gemfile change = %+v", changes[0])
	}
	if changes[1].Path != "app/views/pages/home.html.erb" || !changes[1].Created {
		t.Fatalf("home change = %+v", changes[1])
	}
	if changes[2].Path != "README" || !changes[2].Removed {
		t.Fatalf("README change = %+v", changes[2])
	}
}

func TestOverlayRemoveMissing(t *testing.T) {
	o := NewOverlay(NewDisk(t.TempDir()))
	if err := o.Remove("public/index.html"); !IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestOverlayRewriteToSameContentIsNoChange(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a"), []byte("same"), 0o644); err != nil {
		t.Fatal(err)
	}
	o := NewOverlay(NewDisk(root))
	if err := o.WriteFile("a", []byte("same")); err != nil {
		t.Fatal(err)
	}
	if changes := o.Changes(); len(changes) != 0 {
		t.Fatalf("expected no changes, got %+v", changes)
	}
}

func TestOverlayRemoveAllReportsDiskFiles(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "test", "unit"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "test", "test_helper.rb"), []byte("require 'rails/test_help'\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "test", "unit", "user_test.rb"), []byte("class UserTest\nend\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	o := NewOverlay(NewDisk(root))
	if err := o.RemoveAll("test"); err != nil {
		t.Fatal(err)
	}

	changes := o.Changes()
	if len(changes) != 2 {
		t.Fatalf("changes = %+v", changes)
	}
	if changes[0].Path != "test/test_helper.rb" || !changes[0].Removed || string(changes[0].Before) != "require 'rails/test_help'\n" {
		t.Fatalf("helper change = %+v", changes[0])
	}
	if changes[1].Path != "test/unit/user_test.rb" || !changes[1].Removed || string(changes[1].Before) != "class UserTest\nend\n" {
		t.Fatalf("unit change = %+v", changes[1])
	}
	if _, err := os.Stat(filepath.Join(root, "test", "unit", "user_test.rb")); err != nil {
		t.Fatalf("base file removed: %v", err)
	}
	if _, err := o.ReadDir("test"); !IsNotExist(err) {
		t.Fatalf("expected removed dir listing to fail, got %v", err)
	}
}

func TestOverlayReadDirMergesWrites(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "lib"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a.rb", "b.rb"} {
		if err := os.WriteFile(filepath.Join(root, "lib", name), []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	o := NewOverlay(NewDisk(root))
	if err := o.Remove("lib/a.rb"); err != nil {
		t.Fatal(err)
	}
	if err := o.WriteFile("lib/c.rb", []byte("c")); err != nil {
		t.Fatal(err)
	}
	entries, err := o.ReadDir("lib")
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	if strings.Join(names, ",") != "b.rb,c.rb" {
		t.Fatalf("entries = %v", names)
	}
}
