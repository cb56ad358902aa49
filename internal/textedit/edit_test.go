package textedit

import (
	"testing"
)

func TestInject(t *testing.T) {
	cases := []struct {
		name    string
		content string
		anchor  Anchor
		insert  string
		pos     Position
		all     bool
		want    string
		ok      bool
	}{
		{
			name:    "after literal",
			content: "group :test do\nend\n",
			anchor:  Literal("group :test do\n"),
			insert:  "  gem 'capybara'\n",
			pos:     After,
			want:    "group :test do\n  gem 'capybara'\nend\n",
			ok:      true,
		},
		{
			name:    "before literal",
			content: "a\n//= require jquery\nb\n",
			anchor:  Literal("//= require jquery\n"),
			insert:  "//= require modernizr\n",
			pos:     Before,
			want:    "a\n//= require modernizr\n//= require jquery\nb\n",
			ok:      true,
		},
		{
			name:    "first match only",
			content: "x x x",
			anchor:  Literal("x"),
			insert:  "!",
			pos:     After,
			want:    "x! x x",
			ok:      true,
		},
		{
			name:    "all matches",
			content: "x x x",
			anchor:  Literal("x"),
			insert:  "!",
			pos:     After,
			all:     true,
			want:    "x! x! x!",
			ok:      true,
		},
		{
			name:    "all matches before",
			content: "ab ab",
			anchor:  Literal("b"),
			insert:  "-",
			pos:     Before,
			all:     true,
			want:    "a-b a-b",
			ok:      true,
		},
		{
			name:    "missing anchor is a no-op",
			content: "nothing here\n",
			anchor:  Literal("routes.draw do"),
			insert:  "root\n",
			pos:     After,
			want:    "nothing here\n",
			ok:      false,
		},
		{
			name:    "missing regexp anchor is a no-op",
			content: "nothing here\n",
			anchor:  Regexp(`(?s)google_analytics_ua.*</script>`),
			insert:  "<% end -%>",
			pos:     After,
			want:    "nothing here\n",
			ok:      false,
		},
		{
			name:    "multi-line regexp",
			content: "if google_analytics_ua\n  <script>\n  </script>\ntail",
			anchor:  Regexp(`(?sm)google_analytics_ua.*^\s{2}</script>`),
			insert:  "\n  <% end -%>",
			pos:     After,
			want:    "if google_analytics_ua\n  <script>\n  </script>\n  <% end -%>\ntail",
			ok:      true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Inject(tc.content, tc.anchor, tc.insert, tc.pos, tc.all)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if got != tc.want {
				t.Fatalf("Inject = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSubstitute(t *testing.T) {
	cases := []struct {
		name        string
		content     string
		pattern     Anchor
		replacement string
		first       bool
		want        string
		count       int
	}{
		{
			name:        "zero matches",
			content:     "config.filter_parameters += [:secret]\n",
			pattern:     Regexp(`:password`),
			replacement: ":password, :password_confirmation",
			want:        "config.filter_parameters += [:secret]\n",
			count:       0,
		},
		{
			name:        "all matches replaced",
			content:     "<header>a</header><header>b</header>",
			pattern:     Literal("<header>"),
			replacement: `<header role="banner" class="clearfix">`,
			want:        `<header role="banner" class="clearfix">a</header><header role="banner" class="clearfix">b</header>`,
			count:       2,
		},
		{
			name:        "first only",
			content:     "a a a",
			pattern:     Literal("a"),
			replacement: "b",
			first:       true,
			want:        "b a a",
			count:       1,
		},
		{
			name:        "comment lines stripped",
			content:     "source 'https://rubygems.org'\n# comment\ngem 'rails'\n# another\n",
			pattern:     Regexp(`(?m)^#.*\n`),
			replacement: "",
			want:        "source 'https://rubygems.org'\ngem 'rails'\n",
			count:       2,
		},
		{
			name:        "replacement taken literally",
			content:     "price",
			pattern:     Regexp(`(price)`),
			replacement: "$1 ${1}",
			want:        "$1 ${1}",
			count:       1,
		},
		{
			name:        "dotall spans lines",
			content:     "do\n  # one\n  # two\nend\n",
			pattern:     Regexp(`(?s)  #.*end`),
			replacement: "end",
			want:        "do\nend\n",
			count:       1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, n := Substitute(tc.content, tc.pattern, tc.replacement, tc.first)
			if n != tc.count {
				t.Fatalf("count = %d, want %d", n, tc.count)
			}
			if got != tc.want {
				t.Fatalf("Substitute = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPrependAppend(t *testing.T) {
	if got := Prepend("body\n", "head\n"); got != "head\nbody\n" {
		t.Fatalf("Prepend = %q", got)
	}
	if got := Append("body\n", "tail\n"); got != "body\ntail\n" {
		t.Fatalf("Append = %q", got)
	}
}

func TestAnchorString(t *testing.T) {
	if got := Literal("a\n").String(); got != `"a\n"` {
		t.Fatalf("literal String = %s", got)
	}
	if got := Regexp(`^#.*`).String(); got != "/^#.*/" {
		t.Fatalf("regexp String = %s", got)
	}
	if !Regexp(`x`).IsRegexp() || Literal("x").IsRegexp() {
		t.Fatalf("IsRegexp mismatch")
	}
	if !(Anchor{}).IsZero() {
		t.Fatalf("zero anchor should report IsZero")
	}
}
