package fetcher

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// Fetcher builds http requests and fetches JSON documents via http.
type Fetcher struct {
	client    *http.Client
	userAgent string
	origin    string
}

// NewFetcher returns new Fetcher. Origin is sent as Origin and Referer headers.
func NewFetcher(client *http.Client, userAgent, origin string) *Fetcher {
	return &Fetcher{
		client:    client,
		userAgent: userAgent,
		origin:    strings.TrimRight(origin, "/"),
	}
}

// FetchJSON returns ReadCloser with JSON document fetched from provided url or error.
// The caller is responsible for closing returned ReadCloser.
func (f *Fetcher) FetchJSON(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("can't build http request: %w", err)
	}

	req.Header.Add("Accept", "application/json, text/plain, */*")
	req.Header.Add("Accept-Encoding", "gzip")
	req.Header.Add("Accept-Language", "en-US,en;q=0.9")
	req.Header.Add("User-Agent", f.userAgent)
	if f.origin != "" {
		req.Header.Add("Origin", f.origin)
		req.Header.Add("Referer", f.origin+"/")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("can't get http response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %d", ErrStatusNotOK, resp.StatusCode)
	}

	if !isJSON(resp.Header.Get("Content-Type")) {
		_ = resp.Body.Close()
		return nil, ErrContentTypeNotSupported
	}

	if resp.Header.Get("Content-Encoding") == "gzip" {
		return decompressResponse(resp.Body)
	}

	return resp.Body, nil
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == "application/json" || mediaType == "text/json"
}

// decompressResponse returns io.ReadCloser with decompressed http response and error.
func decompressResponse(response io.ReadCloser) (io.ReadCloser, error) {
	decompressed, err := gzip.NewReader(response)
	if err != nil {
		_ = response.Close()
		return nil, fmt.Errorf("can't decompress response: %w", err)
	}

	return &decompressedReadCloser{
		compressed:   response,
		decompressed: decompressed,
	}, nil
}

// decompressedReadCloser wraps decompressed Reader and compressed ReadCloser.
// It reads from decompressed Reader, but closes compressed ReadCloser.
type decompressedReadCloser struct {
	compressed   io.ReadCloser
	decompressed io.Reader
}

// Read reads uncompressed bytes from underlying Reader into p.
func (r decompressedReadCloser) Read(p []byte) (n int, err error) {
	return r.decompressed.Read(p)
}

// Close closes underlying compressed ReadCloser.
func (r decompressedReadCloser) Close() error {
	return r.compressed.Close()
}
