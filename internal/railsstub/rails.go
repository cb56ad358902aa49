package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

func handleRails(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: rails COMMAND [ARGS]")
		return 1
	}
	switch args[0] {
	case "new":
		if len(args) < 2 || strings.HasPrefix(args[1], "-") {
			fmt.Fprintln(os.Stderr, "rails new requires an application path")
			return 1
		}
		return railsNew(args[1])
	case "generate", "g":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "rails generate requires a generator name")
			return 1
		}
		return railsGenerate(args[1])
	}
	fmt.Fprintf(os.Stderr, "rails stub cannot handle: %s\n", strings.Join(args, " "))
	return 1
}

func railsNew(dir string) int {
	if _, err := os.Stat(dir); err == nil {
		fmt.Fprintf(os.Stderr, "%s already exists\n", dir)
		return 1
	}
	module := moduleName(filepath.Base(dir))
	files := skeleton(module)
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writeFile(filepath.Join(dir, filepath.FromSlash(name)), files[name]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	fmt.Printf("      create  %s (%d files)\n", dir, len(names))
	return 0
}

var generators = map[string]map[string]string{
	"rspec:install": {
		".rspec":              "--colour\n",
		"spec/spec_helper.rb": specHelper,
	},
	"responders:install": {
		"lib/application_responder.rb": "class ApplicationResponder < ActionController::Responder\nend\n",
	},
	"simple_form:install": {
		"config/initializers/simple_form.rb": "SimpleForm.setup do |config|\nend\n",
	},
}

func railsGenerate(name string) int {
	files, ok := generators[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "Could not find generator %s.\n", name)
		return 1
	}
	if _, err := os.Stat("config/application.rb"); err != nil {
		fmt.Fprintln(os.Stderr, "rails generate must run inside a Rails application")
		return 1
	}
	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		if err := writeFile(filepath.FromSlash(path), files[path]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("      create  %s\n", path)
	}
	return 0
}

// moduleName camelizes an application directory name the way Rails does
// for the top-level module.
func moduleName(base string) string {
	var b strings.Builder
	for _, part := range strings.FieldsFunc(base, func(r rune) bool { return r == '_' || r == '-' }) {
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
