package extract

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain text", "Breaking news", "Breaking news"},
		{"cdata with markup and entity", "<![CDATA[<b>Hi &amp; Bye</b>]]>", "Hi & Bye"},
		{"strips tags", "<p>Hello <a href=\"x\">world</a></p>", "Hello world"},
		{"adjacent tags join text", "<p>a</p><p>b</p>", "ab"},
		{"entity table", "&quot;Q&quot; &#39;s&#39; &apos;a&apos; &lt; x", "\"Q\" 's' 'a' < x"},
		{"lone less-than kept", "5 &lt; 6", "5 < 6"},
		{"unterminated tag stops stripping", "text <b unterminated", "text <b unterminated"},
		{"escaped markup is stripped too", "a &lt;b&gt; c", "a c"},
		{"double escaped ampersand", "Tom &amp;amp; Jerry", "Tom & Jerry"},
		{"collapses whitespace", "  one\n\ttwo   three  ", "one two three"},
		{"unicode spaces trimmed", "\u00a0 Café \t\n", "Café"},
		{"nfc composed", "Cafe\u0301", "Caf\u00e9"},
		{"only markup", "<img src=\"x.jpg\"/>", ""},
		{"unterminated cdata kept", "<![CDATA[oops", "<![CDATA[oops"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"<![CDATA[<b>Hi &amp; Bye</b>]]>",
		"a &lt;b&gt; c",
		"&amp;lt;script&amp;gt;alert(1)&amp;lt;/script&amp;gt;",
		"5 &lt; 6 and 7 &gt; 3",
		"x < y",
		"x > y",
		"<<<>>>",
		"&&&amp;;;",
		"text <b unterminated",
		"<![CDATA[<![CDATA[nested]]>]]>",
		"  spaced　out ",
		"Café <i>menu</i>",
		"<![CDATA[ &lt;p&gt;&amp;quot;quoted&amp;quot;&lt;/p&gt; ]]>",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: once=%q twice=%q", input, once, twice)
		}
	}
}
