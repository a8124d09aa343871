package extract

import (
	"testing"

	"github.com/zagzy8776/realssa-news-agg/internal/models"
)

func TestResolveField(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		field    Field
		want     string
	}{
		{
			name:     "cdata description",
			fragment: "<description><![CDATA[<b>Hi &amp; Bye</b>]]></description>",
			field:    FieldDescription,
			want:     "Hi & Bye",
		},
		{
			name:     "content:encoded fallback",
			fragment: "<title>T</title><content:encoded><![CDATA[<p>Full body</p>]]></content:encoded>",
			field:    FieldDescription,
			want:     "Full body",
		},
		{
			name:     "empty description falls through",
			fragment: "<description>  <br/> </description><summary>Short</summary>",
			field:    FieldDescription,
			want:     "Short",
		},
		{
			name:     "first candidate wins over later ones",
			fragment: "<summary>Summary</summary><description>Desc</description>",
			field:    FieldDescription,
			want:     "Desc",
		},
		{
			name:     "description default",
			fragment: "<title>T</title>",
			field:    FieldDescription,
			want:     DefaultDescription,
		},
		{
			name:     "dc:title fallback",
			fragment: "<dc:title>Namespaced</dc:title>",
			field:    FieldTitle,
			want:     "Namespaced",
		},
		{
			name:     "media:title fallback",
			fragment: "<title></title><media:title>Media</media:title>",
			field:    FieldTitle,
			want:     "Media",
		},
		{
			name:     "missing title is empty",
			fragment: "<description>No title</description>",
			field:    FieldTitle,
			want:     "",
		},
		{
			name:     "link text",
			fragment: "<link>https://news.example.com/a</link><guid>g-1</guid>",
			field:    FieldLink,
			want:     "https://news.example.com/a",
		},
		{
			name:     "atom link href",
			fragment: `<link rel="alternate" href="https://news.example.com/atom"/><id>urn:1</id>`,
			field:    FieldLink,
			want:     "https://news.example.com/atom",
		},
		{
			name:     "guid fallback",
			fragment: "<guid>https://news.example.com/guid</guid>",
			field:    FieldLink,
			want:     "https://news.example.com/guid",
		},
		{
			name:     "id fallback",
			fragment: "<id>tag:example.com,2024:1</id>",
			field:    FieldLink,
			want:     "tag:example.com,2024:1",
		},
		{
			name:     "link default",
			fragment: "<title>T</title>",
			field:    FieldLink,
			want:     DefaultLink,
		},
		{
			name:     "pubDate",
			fragment: "<pubDate>Mon, 06 May 2024 10:00:00 GMT</pubDate><updated>ignored</updated>",
			field:    FieldPubDate,
			want:     "Mon, 06 May 2024 10:00:00 GMT",
		},
		{
			name:     "dc:date fallback",
			fragment: "<dc:date>2024-05-06T10:00:00Z</dc:date>",
			field:    FieldPubDate,
			want:     "2024-05-06T10:00:00Z",
		},
		{
			name:     "published fallback",
			fragment: "<published>2024-05-06</published>",
			field:    FieldPubDate,
			want:     "2024-05-06",
		},
		{
			name:     "pubDate default",
			fragment: "<title>T</title>",
			field:    FieldPubDate,
			want:     DefaultPubDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveField(tt.fragment, tt.field); got != tt.want {
				t.Errorf("ResolveField() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveImage(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		rawDesc  string
		want     string
	}{
		{
			name: "media content first",
			fragment: `<media:thumbnail url="https://img.example.com/thumb.jpg"/>` +
				`<media:content url="https://img.example.com/full.jpg"/>`,
			want: "https://img.example.com/full.jpg",
		},
		{
			name:     "media thumbnail",
			fragment: `<media:thumbnail url="https://img.example.com/thumb.jpg"/>`,
			want:     "https://img.example.com/thumb.jpg",
		},
		{
			name:     "image enclosure",
			fragment: `<enclosure url="https://img.example.com/photo.webp" type="image/webp"/>`,
			want:     "https://img.example.com/photo.webp",
		},
		{
			name:     "non-image enclosure skipped",
			fragment: `<enclosure url="https://cdn.example.com/episode.mp3" type="audio/mpeg"/>`,
			rawDesc:  `<p><img src="https://img.example.com/inline.png"></p>`,
			want:     "https://img.example.com/inline.png",
		},
		{
			name:     "escaped img in description",
			fragment: "",
			rawDesc:  `&lt;p&gt;&lt;img src=&quot;https://img.example.com/esc.jpeg&quot;&gt;&lt;/p&gt;`,
			want:     "https://img.example.com/esc.jpeg",
		},
		{
			name:     "nothing found",
			fragment: "<title>T</title>",
			rawDesc:  "plain text",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveImage(tt.fragment, tt.rawDesc); got != tt.want {
				t.Errorf("ResolveImage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsImageURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://x/a.jpg", true},
		{"https://x/a.JPEG?w=300", true},
		{"https://x/a.png", true},
		{"https://x/a.webp", true},
		{"https://x/a.gif", false},
		{"https://x/a.mp4", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsImageURL(tt.url); got != tt.want {
			t.Errorf("IsImageURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestBuildItem(t *testing.T) {
	source := models.FeedSource{
		URL:        "https://www.myjoyonline.com/feed/",
		SourceName: "Joy Online",
		Category:   "General News",
		Country:    "Ghana",
	}

	t.Run("full item", func(t *testing.T) {
		fragment := `<title>Cedi gains</title>
<link>https://www.myjoyonline.com/cedi</link>
<description><![CDATA[<p><img src="https://img.example.com/cedi.jpg"/>The cedi &amp; markets</p>]]></description>
<pubDate>Tue, 07 May 2024 08:00:00 GMT</pubDate>`

		item, ok := BuildItem(fragment, source)
		if !ok {
			t.Fatal("BuildItem() dropped an item with a title")
		}

		want := models.NewsItem{
			Title:       "Cedi gains",
			Link:        "https://www.myjoyonline.com/cedi",
			Description: "The cedi & markets",
			PubDate:     "Tue, 07 May 2024 08:00:00 GMT",
			Source:      "Joy Online",
			Category:    "General News",
			Country:     "Ghana",
			ImageURL:    "https://img.example.com/cedi.jpg",
		}
		if item != want {
			t.Errorf("BuildItem() = %+v, want %+v", item, want)
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		item, ok := BuildItem("<title>Only a title</title>", source)
		if !ok {
			t.Fatal("BuildItem() dropped an item with a title")
		}
		if item.Link != DefaultLink {
			t.Errorf("Link = %q, want %q", item.Link, DefaultLink)
		}
		if item.Description != DefaultDescription {
			t.Errorf("Description = %q, want %q", item.Description, DefaultDescription)
		}
		if item.PubDate != DefaultPubDate {
			t.Errorf("PubDate = %q, want %q", item.PubDate, DefaultPubDate)
		}
		if item.ImageURL != "" {
			t.Errorf("ImageURL = %q, want empty", item.ImageURL)
		}
	})

	t.Run("image-only description", func(t *testing.T) {
		fragment := `<title>Photo</title><description><![CDATA[<img src="https://img.example.com/only.png">]]></description>`
		item, ok := BuildItem(fragment, source)
		if !ok {
			t.Fatal("BuildItem() dropped an item with a title")
		}
		if item.Description != DefaultDescription {
			t.Errorf("Description = %q, want %q", item.Description, DefaultDescription)
		}
		if item.ImageURL != "https://img.example.com/only.png" {
			t.Errorf("ImageURL = %q", item.ImageURL)
		}
	})

	t.Run("empty title dropped", func(t *testing.T) {
		for _, fragment := range []string{
			"<description>No title here</description>",
			"<title>   </title><description>x</description>",
			"<title><![CDATA[<span></span>]]></title>",
		} {
			if _, ok := BuildItem(fragment, source); ok {
				t.Errorf("BuildItem(%q) should drop the item", fragment)
			}
		}
	})
}
