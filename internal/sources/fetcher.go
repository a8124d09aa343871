package sources

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/zagzy8776/realssa-news-agg/internal/extract"
	"github.com/zagzy8776/realssa-news-agg/internal/ratelimit"
)

// Transport turns a feed URL into document bytes.
type Transport interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type FetcherConfig struct {
	Timeout      time.Duration
	MaxItems     int
	UserAgent    string
	MaxBodyBytes int64
	MaxRedirects int
}

func DefaultConfig() FetcherConfig {
	return FetcherConfig{
		Timeout:      30 * time.Second,
		MaxItems:     extract.DefaultMaxItems,
		UserAgent:    "Mozilla/5.0 (compatible; RealSSANews/1.0; +https://realssa.vercel.app)",
		MaxBodyBytes: 10 << 20,
		MaxRedirects: 10,
	}
}

// HTTPTransport fetches feeds over HTTP(S). It follows redirects, sends the
// configured User-Agent, spaces requests per host and decodes bodies to UTF-8.
type HTTPTransport struct {
	client  *http.Client
	limiter *ratelimit.Limiter
	config  FetcherConfig
}

func NewHTTPTransport(limiter *ratelimit.Limiter, config FetcherConfig) *HTTPTransport {
	maxRedirects := config.MaxRedirects
	return &HTTPTransport{
		limiter: limiter,
		config:  config,
		client: &http.Client{
			Timeout: config.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				req.Header.Set("User-Agent", config.UserAgent)
				return nil
			},
		},
	}
}

func (t *HTTPTransport) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: fmt.Errorf("failed to parse url: %w", err)}
	}

	if t.limiter != nil {
		if err := t.limiter.WaitContext(ctx, u.Host); err != nil {
			return nil, &FetchError{URL: rawURL, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("User-Agent", t.config.UserAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, text/xml;q=0.9, */*;q=0.8")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &FetchError{URL: rawURL, StatusCode: resp.StatusCode, Err: ErrUnexpectedStatus}
	}

	body, err := readLimited(resp.Body, t.config.MaxBodyBytes)
	if err != nil {
		return nil, &FetchError{URL: rawURL, StatusCode: resp.StatusCode, Err: err}
	}

	decoded, err := decodeBody(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, &FetchError{URL: rawURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode body: %w", err)}
	}
	return decoded, nil
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, ErrBodyTooLarge
	}
	return body, nil
}

// decodeBody converts body to UTF-8. A charset in the Content-Type header
// wins, then the XML declaration's encoding, then UTF-8 validity,
// then charset sniffing.
func decodeBody(body []byte, contentType string) ([]byte, error) {
	if _, name, certain := charset.DetermineEncoding(body, contentType); certain {
		return transcode(body, name)
	}
	if label, ok := xmlDeclaredEncoding(body); ok {
		return transcode(body, label)
	}
	if utf8.Valid(body) {
		return body, nil
	}

	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, err
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return declareUTF8(decoded), nil
}

func transcode(body []byte, label string) ([]byte, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		// Unknown labels are passed through rather than failing the source.
		return body, nil
	}
	if name, _ := htmlindex.Name(enc); name == "utf-8" {
		return body, nil
	}
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return nil, err
	}
	return declareUTF8(decoded), nil
}

// declareUTF8 rewrites the encoding named in a leading XML declaration to
// UTF-8, so parsers that honour the declaration do not decode a transcoded
// body a second time.
func declareUTF8(body []byte) []byte {
	start := len(body) - len(bytes.TrimLeft(body, "\xef\xbb\xbf \t\r\n"))
	if !bytes.HasPrefix(body[start:], []byte("<?xml")) {
		return body
	}
	end := bytes.Index(body[start:], []byte("?>"))
	if end < 0 {
		return body
	}
	decl := body[start : start+end]

	i := bytes.Index(decl, []byte("encoding="))
	if i < 0 {
		return body
	}
	q := i + len("encoding=")
	if q >= len(decl) || (decl[q] != '"' && decl[q] != '\'') {
		return body
	}
	n := bytes.IndexByte(decl[q+1:], decl[q])
	if n < 0 {
		return body
	}

	valueStart := start + q + 1
	valueEnd := valueStart + n
	out := make([]byte, 0, len(body))
	out = append(out, body[:valueStart]...)
	out = append(out, "UTF-8"...)
	return append(out, body[valueEnd:]...)
}

// xmlDeclaredEncoding reads encoding="..." from a leading <?xml ...?> declaration.
func xmlDeclaredEncoding(body []byte) (string, bool) {
	head := body
	if len(head) > 512 {
		head = head[:512]
	}
	head = bytes.TrimLeft(head, "\xef\xbb\xbf \t\r\n")
	if !bytes.HasPrefix(head, []byte("<?xml")) {
		return "", false
	}
	end := bytes.Index(head, []byte("?>"))
	if end < 0 {
		return "", false
	}
	label, ok := extract.ExtractAttribute(string(head[:end])+">", "?xml", "encoding")
	if !ok || label == "" {
		return "", false
	}
	return label, true
}

// IsTimeout reports whether err came from a deadline or client timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}
