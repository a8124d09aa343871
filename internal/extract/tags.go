// Package extract pulls news item fields out of feed markup.
//
// Tag lookups are lenient literal scans, not an XML parser: the first
// occurrence of an opening tag is paired with the next matching closing tag,
// so nested or repeated same-named tags collapse into that first pair.
package extract

import "strings"

const (
	cdataOpen  = "<![CDATA["
	cdataClose = "]]>"
)

// ExtractTag returns the content between the first "<tag>" and the next
// "</tag>" after it. CDATA inside the content is unwrapped.
func ExtractTag(markup, tag string) (string, bool) {
	open := "<" + tag + ">"
	start := strings.Index(markup, open)
	if start < 0 {
		return "", false
	}
	start += len(open)

	end := strings.Index(markup[start:], "</"+tag+">")
	if end < 0 {
		return "", false
	}
	return UnwrapCDATA(markup[start : start+end]), true
}

// ExtractAttribute finds the first opening "<tag" and returns the value of
// attr="..." or attr='...' from within that opening tag only.
func ExtractAttribute(markup, tag, attr string) (string, bool) {
	opening, ok := openingTag(markup, tag)
	if !ok {
		return "", false
	}

	for from := 0; from < len(opening); {
		i := strings.Index(opening[from:], attr+"=")
		if i < 0 {
			return "", false
		}
		i += from

		// attr must start a word so "url" does not match "data-url".
		if i > 0 && !isAttrBoundary(opening[i-1]) {
			from = i + len(attr)
			continue
		}

		q := i + len(attr) + 1
		if q >= len(opening) || (opening[q] != '"' && opening[q] != '\'') {
			from = q
			continue
		}

		quote := opening[q]
		end := strings.IndexByte(opening[q+1:], quote)
		if end < 0 {
			return "", false
		}
		return opening[q+1 : q+1+end], true
	}
	return "", false
}

// openingTag returns the span from "<tag" up to, not including, the next ">".
// The character after the name must end it, so "<media:content" is not
// matched by a search for "<media:con".
func openingTag(markup, tag string) (string, bool) {
	prefix := "<" + tag
	for from := 0; from < len(markup); {
		i := strings.Index(markup[from:], prefix)
		if i < 0 {
			return "", false
		}
		i += from

		after := i + len(prefix)
		if after < len(markup) && !isNameEnd(markup[after]) {
			from = after
			continue
		}

		end := strings.IndexByte(markup[after:], '>')
		if end < 0 {
			return "", false
		}
		return markup[i : after+end], true
	}
	return "", false
}

// UnwrapCDATA replaces content with the payload of its first CDATA section.
// An unterminated section leaves content unchanged.
func UnwrapCDATA(content string) string {
	start := strings.Index(content, cdataOpen)
	if start < 0 {
		return content
	}
	payload := start + len(cdataOpen)
	end := strings.Index(content[payload:], cdataClose)
	if end < 0 {
		return content
	}
	return content[payload : payload+end]
}

func isNameEnd(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '/' || c == '>'
}

func isAttrBoundary(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
