package extract

import (
	"bytes"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/zagzy8776/realssa-news-agg/internal/models"
)

// DefaultMaxItems is the per-source item cap.
const DefaultMaxItems = 30

// Strategy turns one fetched document into items. limit caps kept items;
// zero or less means no cap.
type Strategy interface {
	Name() string
	Extract(body []byte, source models.FeedSource, limit int) []models.NewsItem
}

// Chain tries strategies in order; the first non-empty result wins.
type Chain []Strategy

func DefaultChain() Chain {
	return Chain{
		ScanStrategy{Tag: "item"},
		ScanStrategy{Tag: "entry"},
		FeedParserStrategy{},
	}
}

// Extract returns the winning items and the name of the strategy that
// produced them. Both are empty when no strategy finds anything.
func (c Chain) Extract(body []byte, source models.FeedSource, limit int) ([]models.NewsItem, string) {
	for _, s := range c {
		if items := s.Extract(body, source, limit); len(items) > 0 {
			return items, s.Name()
		}
	}
	return nil, ""
}

// ScanStrategy splits the document on successive literal <Tag>...</Tag> spans.
type ScanStrategy struct {
	Tag string
}

func (s ScanStrategy) Name() string {
	return "scan:" + s.Tag
}

func (s ScanStrategy) Extract(body []byte, source models.FeedSource, limit int) []models.NewsItem {
	var items []models.NewsItem
	eachFragment(string(body), s.Tag, func(fragment string) bool {
		item, ok := BuildItem(fragment, source)
		if !ok {
			return true
		}
		items = append(items, item)
		return limit <= 0 || len(items) < limit
	})
	return items
}

// eachFragment calls fn with the contents of each <tag>...</tag> span in
// document order until fn returns false. An opening tag with no closing tag
// ends the scan.
func eachFragment(doc, tag string, fn func(fragment string) bool) {
	openTag, closeTag := "<"+tag+">", "</"+tag+">"

	for pos := 0; ; {
		start := strings.Index(doc[pos:], openTag)
		if start < 0 {
			return
		}
		start += pos + len(openTag)

		end := strings.Index(doc[start:], closeTag)
		if end < 0 {
			return
		}
		if !fn(doc[start : start+end]) {
			return
		}
		pos = start + end + len(closeTag)
	}
}

// FeedParserStrategy parses the document with gofeed. It catches formats the
// literal scans miss, such as RDF items with attributes on the opening tag.
// Fields follow the same candidate order and defaults as BuildItem.
type FeedParserStrategy struct{}

func (FeedParserStrategy) Name() string {
	return "gofeed"
}

func (FeedParserStrategy) Extract(body []byte, source models.FeedSource, limit int) []models.NewsItem {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil || feed == nil {
		return nil
	}

	var items []models.NewsItem
	for _, fi := range feed.Items {
		if fi == nil {
			continue
		}
		item, ok := fromFeedItem(fi, source)
		if !ok {
			continue
		}
		items = append(items, item)
		if limit > 0 && len(items) >= limit {
			break
		}
	}
	return items
}

func fromFeedItem(fi *gofeed.Item, source models.FeedSource) (models.NewsItem, bool) {
	title := Normalize(fi.Title)
	if title == "" {
		return models.NewsItem{}, false
	}

	links := append([]string{fi.Link}, fi.Links...)
	link := firstNormalized(append(links, fi.GUID)...)
	if link == "" {
		link = DefaultLink
	}

	description, rawDescription := DefaultDescription, ""
	for _, candidate := range []string{fi.Description, fi.Content} {
		if v := Normalize(candidate); v != "" {
			description, rawDescription = v, candidate
			break
		}
		if rawDescription == "" {
			rawDescription = candidate
		}
	}

	pubDate := firstNormalized(fi.Published, fi.Updated)
	if pubDate == "" {
		pubDate = DefaultPubDate
	}

	return models.NewsItem{
		Title:       title,
		Link:        link,
		Description: description,
		PubDate:     pubDate,
		Source:      source.SourceName,
		Category:    source.Category,
		Country:     source.Country,
		ImageURL:    feedItemImage(fi, rawDescription),
	}, true
}

func feedItemImage(fi *gofeed.Item, rawDescription string) string {
	if u := mediaURL(fi, "content"); u != "" {
		return u
	}
	if u := mediaURL(fi, "thumbnail"); u != "" {
		return u
	}
	if fi.Image != nil && fi.Image.URL != "" {
		return fi.Image.URL
	}
	for _, enc := range fi.Enclosures {
		if enc != nil && IsImageURL(enc.URL) {
			return enc.URL
		}
	}
	return FirstImageSource(rawDescription)
}

// mediaURL reads the url attribute of a media:<name> extension element.
func mediaURL(fi *gofeed.Item, name string) string {
	media, ok := fi.Extensions["media"]
	if !ok {
		return ""
	}
	for _, ext := range media[name] {
		if u := ext.Attrs["url"]; u != "" {
			return u
		}
	}
	return ""
}

func firstNormalized(values ...string) string {
	for _, v := range values {
		if n := Normalize(v); n != "" {
			return n
		}
	}
	return ""
}
