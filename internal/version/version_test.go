package version

import "testing"

func TestInfoString(t *testing.T) {
	cases := []struct {
		info Info
		want string
	}{
		{Info{Version: "v1.2.3"}, "v1.2.3"},
		{Info{Version: "v1.2.3", Revision: "7a30fe1140401234"}, "v1.2.3"},
		{Info{Version: ""}, "(devel)"},
		{Info{Version: "(devel)", Revision: "7a30fe1140401234abcd"}, "(devel 7a30fe114040)"},
		{Info{Version: "(devel)", Revision: "7a30fe1", Modified: true}, "(devel 7a30fe1-dirty)"},
		{Info{Version: "v0.0.0-20250716020515-7a30fe114040"}, "(devel)"},
		{Info{Version: "v1.2.4-0.20250716020515-7a30fe114040"}, "(devel)"},
		{Info{Version: "v1.2.4-pre.0.20250716020515-7a30fe114040+dirty"}, "(devel)"},
		{Info{Version: "v1.2.3+dirty"}, "(devel)"},
		{Info{Version: "v1.0.0-rc.1"}, "v1.0.0-rc.1"},
	}
	for _, tc := range cases {
		if got := tc.info.String(); got != tc.want {
			t.Fatalf("%+v.String() = %q, want %q", tc.info, got, tc.want)
		}
	}
}
