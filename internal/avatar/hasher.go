package avatar

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"

	// Decoders for the formats GitHub serves avatars in.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/spiffcs/faceless/internal/constants"
	"github.com/spiffcs/faceless/internal/log"
)

// Hasher downloads images and computes their block-mean perceptual hash. The grid size
// is fixed for the lifetime of a Hasher so every hash it returns can be
// compared with every other.
type Hasher struct {
	client    *http.Client
	size      int
	userAgent string
	maxBytes  int64
}

// HasherOption configures a Hasher.
type HasherOption func(*Hasher)

// WithHTTPClient sets the HTTP client used to download images.
func WithHTTPClient(c *http.Client) HasherOption {
	return func(h *Hasher) {
		h.client = c
	}
}

// WithHashSize sets the edge length of the hash grid. size*size must be a
// multiple of 64.
func WithHashSize(size int) HasherOption {
	return func(h *Hasher) {
		h.size = size
	}
}

// WithUserAgent sets the User-Agent header sent with image requests.
func WithUserAgent(ua string) HasherOption {
	return func(h *Hasher) {
		h.userAgent = ua
	}
}

// WithMaxImageBytes caps the size of a downloaded image.
func WithMaxImageBytes(n int64) HasherOption {
	return func(h *Hasher) {
		h.maxBytes = n
	}
}

// NewHasher creates a Hasher. Without options it uses http.DefaultClient
// and a 16x16 grid.
func NewHasher(opts ...HasherOption) *Hasher {
	h := &Hasher{
		client:    http.DefaultClient,
		size:      constants.HashSize,
		userAgent: "faceless",
		maxBytes:  constants.MaxImageBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hash downloads the image at url and returns its perceptual hash. It makes
// exactly one request and never retries.
func (h *Hasher) Hash(ctx context.Context, url string) (Hash, error) {
	data, err := h.fetch(ctx, url)
	if err != nil {
		return Hash{}, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Hash{}, &HashError{URL: url, Err: fmt.Errorf("failed to decode image: %w", err)}
	}

	words, err := blockMeanHash(img, h.size)
	if err != nil {
		return Hash{}, &HashError{URL: url, Err: err}
	}

	hash := newHash(BlockMean, words)
	log.Debug("hashed image", "url", url, "format", format, "bits", hash.Bits(), "hash", hash.String())
	return hash, nil
}

func (h *Hasher) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}

	log.Trace("fetching image", "url", url)
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBytes+1))
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("failed to read body: %w", err)}
	}
	if int64(len(data)) > h.maxBytes {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("image larger than %d bytes", h.maxBytes)}
	}
	log.Trace("fetched image", "url", url, "bytes", len(data), "content_type", resp.Header.Get("Content-Type"))
	return data, nil
}
