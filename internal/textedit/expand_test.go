package textedit

import (
	"reflect"
	"strings"
	"testing"
)

func TestExpand(t *testing.T) {
	vars := map[string]string{"TIME_ZONE": "Pacific Time (US & Canada)", "HOST": "localhost:3000"}

	got, err := Expand("    config.time_zone = '${TIME_ZONE}'\n", vars)
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if want := "    config.time_zone = 'Pacific Time (US & Canada)'\n"; got != want {
		t.Fatalf("Expand = %q, want %q", got, want)
	}

	// Ruby interpolation and bare shell variables pass through.
	in := `"#{@title} | $HOME"`
	if got, err := Expand(in, vars); err != nil || got != in {
		t.Fatalf("Expand(%q) = %q, %v", in, got, err)
	}
}

func TestExpandUnresolved(t *testing.T) {
	_, err := Expand("${B} ${A} ${HOST}", map[string]string{"HOST": "x"})
	if err == nil {
		t.Fatalf("expected error for unresolved variables")
	}
	if !strings.Contains(err.Error(), "A, B") {
		t.Fatalf("error should list sorted names, got %v", err)
	}
}

func TestReferences(t *testing.T) {
	got := References("${B} ${A} ${B} $C")
	want := []string{"A", "B"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("References = %v, want %v", got, want)
	}
}
