package imagefetch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ytget/healthy-living/internal/platform"
)

// Fetch defaults
const (
	DefaultTimeout      = 15 * time.Second
	DefaultMaxBytes     = 10 * 1024 * 1024
	DefaultMaxRetries   = 1
	DefaultRetryBackoff = 2 * time.Second
	DefaultSVGWidth     = 512
	DefaultSVGHeight    = 512
	UserAgent           = "healthy-living/1.0 (image fetcher)"
)

// Options configures a Service
type Options struct {
	Timeout      time.Duration
	MaxBytes     int64
	MaxRetries   int
	RetryBackoff time.Duration
	SVGWidth     int
	SVGHeight    int
	Client       *http.Client
}

// Service fetches and decodes images by reference
type Service struct {
	client       *http.Client
	maxBytes     int64
	maxRetries   int
	retryBackoff time.Duration
	svgW, svgH   int

	group singleflight.Group

	cacheMutex sync.RWMutex
	cache      map[string]image.Image
}

// NewService creates a fetcher; zero option fields take the defaults
func NewService(opts Options) *Service {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = DefaultRetryBackoff
	}
	if opts.SVGWidth <= 0 || opts.SVGHeight <= 0 {
		opts.SVGWidth, opts.SVGHeight = DefaultSVGWidth, DefaultSVGHeight
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	return &Service{
		client:       client,
		maxBytes:     opts.MaxBytes,
		maxRetries:   opts.MaxRetries,
		retryBackoff: opts.RetryBackoff,
		svgW:         opts.SVGWidth,
		svgH:         opts.SVGHeight,
		cache:        make(map[string]image.Image),
	}
}

// Fetch returns the decoded image for reference. Successful results are
// cached; failures are not, so a later row with the same reference retries.
func (s *Service) Fetch(ctx context.Context, reference string) (image.Image, error) {
	if img, ok := s.cached(reference); ok {
		return img, nil
	}

	// The shared fetch is detached from any single caller, so one row being
	// deleted does not fail the others waiting on the same reference.
	ch := s.group.DoChan(reference, func() (interface{}, error) {
		img, err := s.fetchWithRetry(context.WithoutCancel(ctx), reference)
		if err != nil {
			return nil, err
		}
		s.store(reference, img)
		return img, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(image.Image), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// CacheLen returns the number of cached images
func (s *Service) CacheLen() int {
	s.cacheMutex.RLock()
	defer s.cacheMutex.RUnlock()
	return len(s.cache)
}

func (s *Service) cached(reference string) (image.Image, bool) {
	s.cacheMutex.RLock()
	defer s.cacheMutex.RUnlock()
	img, ok := s.cache[reference]
	return img, ok
}

func (s *Service) store(reference string, img image.Image) {
	s.cacheMutex.Lock()
	s.cache[reference] = img
	s.cacheMutex.Unlock()
}

// fetchWithRetry attempts the fetch with retry on transient failures
func (s *Service) fetchWithRetry(ctx context.Context, reference string) (image.Image, error) {
	var lastErr error

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			// Backoff delay
			select {
			case <-time.After(s.retryBackoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}

			log.Printf("Retrying image fetch for %s, attempt %d", reference, attempt+1)
		}

		data, err := s.read(ctx, reference)
		if err == nil {
			img, format, decodeErr := decodeImage(data, s.svgW, s.svgH)
			if decodeErr != nil {
				return nil, decodeErr
			}
			log.Printf("Image fetched: ref=%s format=%s size=%dx%d", reference, format, img.Bounds().Dx(), img.Bounds().Dy())
			return img, nil
		}

		lastErr = err
		log.Printf("Image fetch attempt %d failed for %s: %v", attempt+1, reference, err)

		if ctx.Err() != nil || !isTemporary(err) {
			return nil, err
		}
	}

	return nil, lastErr
}

// read loads the raw bytes behind a reference
func (s *Service) read(ctx context.Context, reference string) ([]byte, error) {
	switch platform.Scheme(reference) {
	case platform.SchemeHTTP, platform.SchemeHTTPS:
		return s.readHTTP(ctx, reference)
	}

	if path, ok := platform.ResolveLocalPath(reference); ok {
		data, err := platform.ReadLocalFile(path, s.maxBytes)
		if errors.Is(err, platform.ErrFileTooLarge) {
			return nil, fmt.Errorf("%w: %w", ErrTooLarge, err)
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return data, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedReference, reference)
}

func (s *Service) readHTTP(ctx context.Context, reference string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSpace(reference), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "image/*")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if resp.ContentLength > s.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, resp.ContentLength)
	}

	// read one byte past the limit to detect oversize bodies
	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, s.maxBytes)
	}
	return data, nil
}

// isTemporary reports whether a read error is worth retrying
func isTemporary(err error) bool {
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return errors.Is(err, io.ErrUnexpectedEOF)
}
