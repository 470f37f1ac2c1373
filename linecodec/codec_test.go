package linecodec

import (
	"errors"
	"testing"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "abc", "abc"},
		{"newline", "a\nb", `a\nb`},
		{"quotes and backslash", `say "hi" \ ok`, `say \"hi\" \\ ok`},
		{"controls", "\t\r\b\f\x01", `\t\r\b\f\u0001`},
		{"line separators", "a\u2028b\u2029", `a\u2028b\u2029`},
		{"unicode kept", "héllo 世界", "héllo 世界"},
		{"invalid utf8 copied", "a\xffb", "a\xffb"},
		{"single quote kept", "it's", "it's"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Escape(tt.in); got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"newline", `a\nb`, "a\nb"},
		{"quotes", `\"x\" \'y\'`, `"x" 'y'`},
		{"solidus", `a\/b`, "a/b"},
		{"unicode", `\u00e9\u4E16`, "é世"},
		{"surrogate pair", `\ud83d\ude00`, "😀"},
		{"lone high surrogate", `\ud83d!`, `\ud83d!`},
		{"lone low surrogate", `\ude00`, `\ude00`},
		{"bad hex", `\u12g4`, `\u12g4`},
		{"short unicode", `\u12`, `\u12`},
		{"unknown escape", `\q\x`, `\q\x`},
		{"trailing backslash", `end\`, `end\`},
		{"no escapes", "plain", "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Unescape(tt.in); got != tt.want {
				t.Errorf("Unescape(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEscape_SingleLine(t *testing.T) {
	got := Escape("function f() {\n\treturn \"x\";\r\n}\n")
	for _, c := range got {
		if c == '\n' || c == '\r' {
			t.Fatalf("Escape() left a line break in %q", got)
		}
	}
}

func TestCodec_Legacy(t *testing.T) {
	c := Codec{Mode: ModeLegacy}
	if got := c.Escape("say \"hi\"\nbye"); got != `say 'hi'\nbye` {
		t.Errorf("Escape() = %q", got)
	}
	if got := c.Unescape(`a\nb \"c\"`); got != "a\nb \\\"c\\\"" {
		t.Errorf("Unescape() = %q", got)
	}
	if ModeLegacy.Reversible() {
		t.Error("legacy mode reported reversible")
	}
}

func TestCodec_ZeroValueIsJSON(t *testing.T) {
	var c Codec
	in := "x = \"1\"\ny"
	if got := c.Unescape(c.Escape(in)); got != in {
		t.Errorf("round trip = %q, want %q", got, in)
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeJSON, "JSON": ModeJSON, " legacy ": ModeLegacy} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseMode("yaml"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("ParseMode(yaml) error = %v, want ErrUnknownMode", err)
	}
}

func FuzzRoundTrip(f *testing.F) {
	for _, seed := range []string{"", "a\nb", `\n`, "\"\\ ", "\xff\xfe", "😀\t"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		if got := Unescape(Escape(s)); got != s {
			t.Errorf("Unescape(Escape(%q)) = %q", s, got)
		}
	})
}
