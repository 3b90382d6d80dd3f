// Package fetch downloads single sound files over HTTP.
//
// A fetch is one blocking GET with no retry. Every failure is reported to
// the operator and logged, then turned into a false result; callers never
// see an error.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/soundfetch/internal/log"
	"github.com/zjrosen/soundfetch/internal/tracing"
	"github.com/zjrosen/soundfetch/internal/ui/styles"
)

// Defaults used when Options leaves a field zero.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultChunkSize = 8192

	// FilePermissions is the mode of every downloaded file.
	FilePermissions = 0644
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL  string
	Code int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s for url: %s", e.Code, http.StatusText(e.Code), e.URL)
}

// ErrPreviouslyFailed is returned for URLs that already failed in this process.
var ErrPreviouslyFailed = errors.New("url already failed in this session")

// Options configures a Fetcher.
type Options struct {
	Timeout   time.Duration
	ChunkSize int
	// Client overrides the HTTP client. Its Timeout is left untouched.
	Client *http.Client
	// Out receives the human-readable progress lines. Defaults to os.Stdout.
	Out    io.Writer
	Tracer trace.Tracer
}

// Fetcher downloads files one at a time.
type Fetcher struct {
	client    *http.Client
	chunkSize int
	out       io.Writer
	palette   styles.Palette
	tracer    trace.Tracer
	failed    *cache.Cache
}

// New creates a Fetcher.
func New(opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Tracer == nil {
		opts.Tracer = tracing.Tracer()
	}
	return &Fetcher{
		client:    opts.Client,
		chunkSize: opts.ChunkSize,
		out:       opts.Out,
		palette:   styles.NewPalette(opts.Out),
		tracer:    opts.Tracer,
		failed:    cache.New(cache.NoExpiration, 0),
	}
}

// Fetch downloads url into dest and reports whether it succeeded.
func (f *Fetcher) Fetch(ctx context.Context, url, dest string) bool {
	name := filepath.Base(dest)
	f.printf("%s Downloading %s...\n", styles.MarkerDownload, name)

	if _, seen := f.failed.Get(url); seen {
		f.printf("%s\n", f.palette.Muted.Render(fmt.Sprintf("%s Skipping %s: %v", styles.MarkerSkipped, name, ErrPreviouslyFailed)))
		log.Debug(log.CatFetch, "Skipping failed url", "url", url, "dest", dest)
		return false
	}

	ctx, span := f.tracer.Start(ctx, "fetch.file", trace.WithAttributes(
		attribute.String("url", url),
		attribute.String("dest", dest),
	))
	defer span.End()

	start := time.Now()
	n, err := f.fetch(ctx, url, dest)
	if err != nil {
		f.failed.SetDefault(url, err.Error())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.ErrorErr(log.CatFetch, "Download failed", err, "url", url, "dest", dest)
		f.printf("%s\n", f.palette.Failure.Render(fmt.Sprintf("%s Error downloading %s: %v", styles.MarkerFailure, name, err)))
		return false
	}

	span.SetAttributes(attribute.Int64("bytes", n))
	log.Info(log.CatFetch, "Downloaded", "url", url, "dest", dest, "bytes", n, "elapsed", time.Since(start))
	f.printf("%s\n", f.palette.Success.Render(fmt.Sprintf("%s Successfully downloaded %s", styles.MarkerSuccess, name)))
	return true
}

// FetchFirst tries urls in order and stops at the first success. It
// returns the URL that succeeded.
func (f *Fetcher) FetchFirst(ctx context.Context, urls []string, dest string) (string, bool) {
	for _, u := range urls {
		if ctx.Err() != nil {
			return "", false
		}
		if f.Fetch(ctx, u, dest) {
			return u, true
		}
	}
	return "", false
}

// fetch streams the response body into a temporary file next to dest and
// renames it into place once the body has been fully written.
func (f *Fetcher) fetch(ctx context.Context, url, dest string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("building request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("status", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &StatusError{URL: url, Code: resp.StatusCode}
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*.part")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	n, err := writeChunks(tmp, resp.Body, f.chunkSize)
	if err != nil {
		return n, err
	}
	if err := tmp.Chmod(FilePermissions); err != nil {
		return n, fmt.Errorf("setting file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return n, fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return n, fmt.Errorf("moving file into place: %w", err)
	}
	committed = true
	return n, nil
}

// writeChunks copies src to dst through a buffer of chunkSize bytes.
func writeChunks(dst io.Writer, src io.Reader, chunkSize int) (int64, error) {
	buf := make([]byte, chunkSize)
	var total int64
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return total, fmt.Errorf("writing file: %w", werr)
			}
			total += int64(n)
		}
		if errors.Is(rerr, io.EOF) {
			return total, nil
		}
		if rerr != nil {
			return total, fmt.Errorf("reading response: %w", rerr)
		}
	}
}

func (f *Fetcher) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(f.out, format, args...)
}
