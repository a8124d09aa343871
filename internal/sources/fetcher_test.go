package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/zagzy8776/realssa-news-agg/internal/extract"
	"github.com/zagzy8776/realssa-news-agg/internal/models"
	"github.com/zagzy8776/realssa-news-agg/internal/ratelimit"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><item><title>Hello</title></item></channel></rss>`

func testConfig() FetcherConfig {
	config := DefaultConfig()
	config.Timeout = 5 * time.Second
	return config
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Timeout != 30*time.Second {
		t.Errorf("DefaultConfig().Timeout = %v, want %v", config.Timeout, 30*time.Second)
	}
	if config.MaxItems != extract.DefaultMaxItems {
		t.Errorf("DefaultConfig().MaxItems = %d, want %d", config.MaxItems, extract.DefaultMaxItems)
	}
	if !strings.HasPrefix(config.UserAgent, "Mozilla/5.0") {
		t.Errorf("DefaultConfig().UserAgent = %q, want a browser-like agent", config.UserAgent)
	}
	if config.MaxRedirects != 10 {
		t.Errorf("DefaultConfig().MaxRedirects = %d, want 10", config.MaxRedirects)
	}
}

func TestHTTPTransport_Fetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, sampleRSS)
	}))
	defer srv.Close()

	transport := NewHTTPTransport(nil, testConfig())
	body, err := transport.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(body) != sampleRSS {
		t.Errorf("Fetch() body = %q", body)
	}
	if gotUA != testConfig().UserAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, testConfig().UserAgent)
	}
}

func TestHTTPTransport_FollowsRedirects(t *testing.T) {
	var finalUA string
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		finalUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, sampleRSS)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	transport := NewHTTPTransport(nil, testConfig())
	body, err := transport.Fetch(context.Background(), srv.URL+"/old")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(body) != sampleRSS {
		t.Errorf("Fetch() body = %q", body)
	}
	if finalUA != testConfig().UserAgent {
		t.Errorf("redirected User-Agent = %q", finalUA)
	}
}

func TestHTTPTransport_RedirectLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/loop", http.StatusFound)
	}))
	defer srv.Close()

	config := testConfig()
	config.MaxRedirects = 3
	transport := NewHTTPTransport(nil, config)

	if _, err := transport.Fetch(context.Background(), srv.URL); err == nil {
		t.Error("Fetch() expected error for redirect loop")
	}
}

func TestHTTPTransport_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	transport := NewHTTPTransport(nil, testConfig())
	_, err := transport.Fetch(context.Background(), srv.URL)

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("Fetch() error = %v, want *FetchError", err)
	}
	if fe.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", fe.StatusCode)
	}
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Errorf("Fetch() error should wrap ErrUnexpectedStatus")
	}
	if !strings.Contains(err.Error(), "status 404") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestHTTPTransport_BodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, strings.Repeat("x", 2048))
	}))
	defer srv.Close()

	config := testConfig()
	config.MaxBodyBytes = 1024
	transport := NewHTTPTransport(nil, config)

	_, err := transport.Fetch(context.Background(), srv.URL)
	if !errors.Is(err, ErrBodyTooLarge) {
		t.Errorf("Fetch() error = %v, want ErrBodyTooLarge", err)
	}
}

func TestHTTPTransport_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	transport := NewHTTPTransport(nil, testConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := transport.Fetch(ctx, srv.URL)
	if err == nil {
		t.Fatal("Fetch() expected timeout error")
	}
	if !IsTimeout(err) {
		t.Errorf("IsTimeout(%v) = false, want true", err)
	}
}

func TestHTTPTransport_RateLimited(t *testing.T) {
	var (
		mu     sync.Mutex
		stamps []time.Time
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		stamps = append(stamps, time.Now())
		mu.Unlock()
		fmt.Fprint(w, sampleRSS)
	}))
	defer srv.Close()

	interval := 100 * time.Millisecond
	transport := NewHTTPTransport(ratelimit.New(interval), testConfig())

	for i := 0; i < 2; i++ {
		if _, err := transport.Fetch(context.Background(), srv.URL); err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if gap := stamps[1].Sub(stamps[0]); gap < interval-10*time.Millisecond {
		t.Errorf("requests to the same host were %v apart, want at least %v", gap, interval)
	}
}

func TestHTTPTransport_InvalidURL(t *testing.T) {
	transport := NewHTTPTransport(nil, testConfig())

	_, err := transport.Fetch(context.Background(), "://bad")
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Errorf("Fetch() error = %v, want *FetchError", err)
	}
}

func TestDecodeBody(t *testing.T) {
	// "Café" in ISO-8859-1.
	latin1 := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><title>Caf\xe9</title>")
	latin1NoDecl := []byte("<title>Caf\xe9</title>")

	tests := []struct {
		name        string
		body        []byte
		contentType string
		want        string
	}{
		{
			name:        "utf-8 passthrough",
			body:        []byte("<title>Café</title>"),
			contentType: "application/xml",
			want:        "<title>Café</title>",
		},
		{
			name:        "xml declaration",
			body:        latin1,
			contentType: "application/rss+xml",
			want:        "<?xml version=\"1.0\" encoding=\"UTF-8\"?><title>Café</title>",
		},
		{
			name:        "content-type charset",
			body:        latin1NoDecl,
			contentType: "text/xml; charset=iso-8859-1",
			want:        "<title>Café</title>",
		},
		{
			name:        "header charset relabels declaration",
			body:        []byte("<?xml version='1.0' encoding='windows-1252'?><title>Caf\xe9</title>"),
			contentType: "text/xml; charset=windows-1252",
			want:        "<?xml version='1.0' encoding='UTF-8'?><title>Café</title>",
		},
		{
			name:        "unknown declared label passes through",
			body:        []byte(`<?xml version="1.0" encoding="x-made-up"?><title>ok</title>`),
			contentType: "",
			want:        `<?xml version="1.0" encoding="x-made-up"?><title>ok</title>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeBody(tt.body, tt.contentType)
			if err != nil {
				t.Fatalf("decodeBody() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("decodeBody() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeBody_FeedParserSeesUTF8(t *testing.T) {
	body := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<rss version=\"2.0\"><channel><title>Le Monde</title>" +
		"<item><title>Caf\xe9 cr\xe8me</title><link>https://www.lemonde.fr/1</link></item>" +
		"</channel></rss>")

	decoded, err := decodeBody(body, "application/rss+xml")
	if err != nil {
		t.Fatalf("decodeBody() error = %v", err)
	}

	items := extract.FeedParserStrategy{}.Extract(decoded, models.FeedSource{SourceName: "Le Monde"}, 30)
	if len(items) != 1 {
		t.Fatalf("Extract() = %d items, want 1", len(items))
	}
	if items[0].Title != "Café crème" {
		t.Errorf("Title = %q, want %q", items[0].Title, "Café crème")
	}
}

func TestFetchError(t *testing.T) {
	inner := errors.New("connection refused")
	err := &FetchError{URL: "https://example.com/rss", Err: inner}

	if !errors.Is(err, inner) {
		t.Error("FetchError should unwrap to its cause")
	}
	if got := err.Error(); got != "failed to fetch https://example.com/rss: connection refused" {
		t.Errorf("Error() = %q", got)
	}
	if IsTimeout(err) {
		t.Error("IsTimeout() = true for a non-timeout error")
	}
	if !IsTimeout(&FetchError{URL: "x", Err: context.DeadlineExceeded}) {
		t.Error("IsTimeout() = false for a deadline error")
	}
}
