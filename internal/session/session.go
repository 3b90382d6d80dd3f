// Package session runs one operator session: instructions, the existing-file
// gate and the sequential fetch of every resolvable sound.
package session

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/soundfetch/internal/catalog"
	"github.com/zjrosen/soundfetch/internal/library"
	"github.com/zjrosen/soundfetch/internal/log"
	"github.com/zjrosen/soundfetch/internal/prompt"
	"github.com/zjrosen/soundfetch/internal/source"
	"github.com/zjrosen/soundfetch/internal/tracing"
	"github.com/zjrosen/soundfetch/internal/ui/styles"
)

// Title is printed at the top of every session.
const Title = "Mindshift Ambient Sounds Downloader"

// RedownloadQuestion is asked when sound files are already present.
const RedownloadQuestion = "\nDo you want to re-download? (y/N): "

// Downloader fetches one sound from a list of candidate URLs.
type Downloader interface {
	FetchFirst(ctx context.Context, urls []string, dest string) (string, bool)
}

// Options configures a Session.
type Options struct {
	SoundsDir string
	FolderID  string
	Catalog   *catalog.Catalog
	Resolver  source.Resolver
	Fetcher   Downloader
	Renderer  Renderer
	In        io.Reader
	Out       io.Writer
	Tracer    trace.Tracer
}

// Result describes what a session did.
type Result struct {
	// Existing lists sound files found before any download.
	Existing []string
	// Declined is set when the operator chose not to re-download.
	Declined bool
	// Manual is set when no sound had a usable source and only manual
	// instructions were printed.
	Manual     bool
	Downloaded []string
	Failed     []string
	// Skipped lists sounds without any candidate URL.
	Skipped []string
}

// Session is a single operator run.
type Session struct {
	opts    Options
	palette styles.Palette
}

// New creates a Session.
func New(opts Options) *Session {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.FolderID == "" {
		opts.FolderID = catalog.DriveFolderID
	}
	if opts.Renderer == nil {
		opts.Renderer = PlainRenderer{}
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Tracer == nil {
		opts.Tracer = tracing.Tracer()
	}
	return &Session{opts: opts, palette: styles.NewPalette(opts.Out)}
}

// Run executes the session. Per-file download failures are reported in the
// Result, never as an error; only a sounds directory that cannot be
// prepared or read is returned as an error.
func (s *Session) Run(ctx context.Context) (Result, error) {
	ctx, span := s.opts.Tracer.Start(ctx, "session.run",
		trace.WithAttributes(attribute.String("sounds_dir", s.opts.SoundsDir)))
	defer span.End()

	var res Result
	s.printHeader()

	if err := library.EnsureDir(s.opts.SoundsDir); err != nil {
		return res, err
	}

	existing, err := library.Existing(s.opts.SoundsDir, s.opts.Catalog.FileNames())
	if err != nil {
		return res, err
	}
	res.Existing = existing

	if len(existing) > 0 {
		s.printf("\nFound %d existing audio files:\n", len(existing))
		for _, name := range existing {
			s.printf("  %s\n", s.palette.Success.Render(styles.MarkerPresent+" "+name))
		}
		if !prompt.Confirm(s.opts.In, s.opts.Out, RedownloadQuestion) {
			s.printf("Skipping download.\n")
			log.Info(log.CatSession, "Operator declined re-download", "existing", len(existing))
			res.Declined = true
			return res, nil
		}
	}

	type job struct {
		sound catalog.Sound
		urls  []string
	}
	var jobs []job
	for _, snd := range s.opts.Catalog.Sounds() {
		urls := s.opts.Resolver.Candidates(snd)
		if len(urls) == 0 {
			res.Skipped = append(res.Skipped, snd.Name)
			continue
		}
		jobs = append(jobs, job{sound: snd, urls: urls})
	}

	if len(jobs) == 0 || s.opts.Fetcher == nil {
		s.printRule()
		s.printMarkdown(manualInstructions(s.opts.FolderID, filepath.ToSlash(s.opts.SoundsDir)))
		s.printRule()
		log.Info(log.CatSession, "No sources configured, printed manual instructions")
		res.Manual = true
		return res, nil
	}

	s.printf("\n")
	for _, j := range jobs {
		if ctx.Err() != nil {
			break
		}
		dest := filepath.Join(s.opts.SoundsDir, j.sound.FileName)
		if used, ok := s.opts.Fetcher.FetchFirst(ctx, j.urls, dest); ok {
			log.Debug(log.CatSession, "Sound fetched", "sound", j.sound.Name, "url", used)
			res.Downloaded = append(res.Downloaded, j.sound.Name)
		} else {
			res.Failed = append(res.Failed, j.sound.Name)
		}
	}

	span.SetAttributes(
		attribute.Int("downloaded", len(res.Downloaded)),
		attribute.Int("failed", len(res.Failed)),
		attribute.Int("skipped", len(res.Skipped)),
	)
	s.printf("\n%s\n", s.palette.Heading.Render(styles.FormatSummary(len(res.Downloaded), len(res.Failed), len(res.Skipped))))
	log.Info(log.CatSession, "Session finished",
		"downloaded", len(res.Downloaded), "failed", len(res.Failed), "skipped", len(res.Skipped))
	return res, nil
}

func (s *Session) printHeader() {
	s.printf("%s\n", s.palette.Banner.Render(styles.MarkerBanner+" "+Title))
	s.printRule()
	s.printMarkdown(setupInstructions(s.opts.FolderID))
	s.printRule()
}

func (s *Session) printRule() {
	s.printf("%s\n", s.palette.Rule.Render(styles.FormatRule()))
}

func (s *Session) printMarkdown(md string) {
	out, err := s.opts.Renderer.Render(md)
	if err != nil {
		log.Warn(log.CatSession, "Markdown rendering failed, printing raw text", "error", err)
		out = md
	}
	s.printf("%s\n", out)
}

func (s *Session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.opts.Out, format, args...)
}
