package extract

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/zagzy8776/realssa-news-agg/internal/models"
)

// Field is a logical NewsItem field resolved from item markup.
type Field string

const (
	FieldTitle       Field = "title"
	FieldLink        Field = "link"
	FieldDescription Field = "description"
	FieldPubDate     Field = "pubDate"
)

const (
	DefaultLink        = "https://realssa.vercel.app"
	DefaultDescription = "No description available"
	DefaultPubDate     = "2024-01-01"
)

// Candidate names a tag, or a tag attribute when Attr is set.
type Candidate struct {
	Tag  string
	Attr string
}

func (c Candidate) lookup(fragment string) (string, bool) {
	if c.Attr != "" {
		return ExtractAttribute(fragment, c.Tag, c.Attr)
	}
	return ExtractTag(fragment, c.Tag)
}

// Candidates lists, per field, the alternate names tried in priority order.
var Candidates = map[Field][]Candidate{
	FieldTitle: {
		{Tag: "title"},
		{Tag: "dc:title"},
		{Tag: "media:title"},
	},
	FieldLink: {
		{Tag: "link"},
		{Tag: "link", Attr: "href"},
		{Tag: "guid"},
		{Tag: "id"},
	},
	FieldDescription: {
		{Tag: "description"},
		{Tag: "content:encoded"},
		{Tag: "summary"},
		{Tag: "media:description"},
	},
	FieldPubDate: {
		{Tag: "pubDate"},
		{Tag: "dc:date"},
		{Tag: "updated"},
		{Tag: "published"},
	},
}

var imageExtensions = []string{".jpg", ".png", ".jpeg", ".webp"}

// ResolveField returns the first candidate for field that normalizes to
// non-empty text, or the field's default. Title has no default and comes back
// empty, which callers treat as "drop the item".
func ResolveField(fragment string, field Field) string {
	value, _ := resolve(fragment, field)
	if value == "" {
		return Default(field)
	}
	return value
}

// Default is the sentinel used when no candidate for field yields text.
func Default(field Field) string {
	switch field {
	case FieldLink:
		return DefaultLink
	case FieldDescription:
		return DefaultDescription
	case FieldPubDate:
		return DefaultPubDate
	default:
		return ""
	}
}

// resolve returns the normalized winner and the raw markup it came from.
// Later candidates are never consulted once one wins. With no winner, raw is
// the first candidate that was present at all, so markup that holds only an
// image is still available to the image scan.
func resolve(fragment string, field Field) (value, raw string) {
	present := false
	for _, c := range Candidates[field] {
		content, ok := c.lookup(fragment)
		if !ok {
			continue
		}
		if v := Normalize(content); v != "" {
			return v, content
		}
		if !present {
			raw, present = content, true
		}
	}
	return "", raw
}

// ResolveImage tries media:content, media:thumbnail, an image-like enclosure,
// then the first <img src> in rawDescription. Empty means no image.
func ResolveImage(fragment, rawDescription string) string {
	if u, ok := ExtractAttribute(fragment, "media:content", "url"); ok && u != "" {
		return u
	}
	if u, ok := ExtractAttribute(fragment, "media:thumbnail", "url"); ok && u != "" {
		return u
	}
	if u, ok := ExtractAttribute(fragment, "enclosure", "url"); ok && IsImageURL(u) {
		return u
	}
	return FirstImageSource(rawDescription)
}

// IsImageURL reports whether u carries one of the accepted image extensions.
func IsImageURL(u string) bool {
	lower := strings.ToLower(u)
	for _, ext := range imageExtensions {
		if strings.Contains(lower, ext) {
			return true
		}
	}
	return false
}

// FirstImageSource returns the src of the first <img> in an HTML snippet.
// Entity-escaped HTML, common in RSS descriptions without CDATA, is
// unescaped before parsing.
func FirstImageSource(markup string) string {
	if markup == "" {
		return ""
	}
	if !strings.Contains(markup, "<img") {
		if !strings.Contains(markup, "&lt;img") {
			return ""
		}
		markup = html.UnescapeString(markup)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img[src]").First().Attr("src")
	return strings.TrimSpace(src)
}

// BuildItem resolves every field of one item fragment. ok is false when the
// title is empty and the item must be dropped.
func BuildItem(fragment string, source models.FeedSource) (models.NewsItem, bool) {
	title := ResolveField(fragment, FieldTitle)
	if title == "" {
		return models.NewsItem{}, false
	}

	description, rawDescription := resolve(fragment, FieldDescription)
	if description == "" {
		description = DefaultDescription
	}

	return models.NewsItem{
		Title:       title,
		Link:        ResolveField(fragment, FieldLink),
		Description: description,
		PubDate:     ResolveField(fragment, FieldPubDate),
		Source:      source.SourceName,
		Category:    source.Category,
		Country:     source.Country,
		ImageURL:    ResolveImage(fragment, rawDescription),
	}, true
}
