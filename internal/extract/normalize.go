package extract

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// entities is the fixed unescape table. Order matters: &amp; goes
// first, so "&amp;lt;" becomes "&lt;" within one pass.
var entities = [][2]string{
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", "\""},
	{"&#39;", "'"},
	{"&apos;", "'"},
}

// Normalize turns extracted markup into plain display text.
//
// One pass unwraps CDATA, strips <...> spans, unescapes the entity table,
// collapses whitespace and trims. Unescaping can expose new tags or entities,
// so passes repeat until the text is stable; the result is then NFC
// normalized. Normalize(Normalize(x)) == Normalize(x) for every x.
func Normalize(text string) string {
	for {
		next := normalizePass(text)
		if next == text {
			break
		}
		text = next
	}
	return norm.NFC.String(text)
}

func normalizePass(text string) string {
	text = UnwrapCDATA(text)
	text = stripTags(text)
	text = unescapeEntities(text)
	return strings.Join(strings.Fields(text), " ")
}

// stripTags deletes every "<...>" span. A "<" with no later ">" ends the scan
// and is kept as text.
func stripTags(text string) string {
	if !strings.Contains(text, "<") {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for {
		open := strings.IndexByte(text, '<')
		if open < 0 {
			break
		}
		end := strings.IndexByte(text[open:], '>')
		if end < 0 {
			break
		}
		b.WriteString(text[:open])
		text = text[open+end+1:]
	}
	b.WriteString(text)
	return b.String()
}

func unescapeEntities(text string) string {
	if !strings.Contains(text, "&") {
		return text
	}
	for _, e := range entities {
		text = strings.ReplaceAll(text, e[0], e[1])
	}
	return text
}
