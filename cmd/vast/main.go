package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/alecthomas/kong"
	"github.com/courseaudit/vast"
	"github.com/courseaudit/vast/canvas"
	"github.com/courseaudit/vast/config"
	"github.com/courseaudit/vast/fs"
	"github.com/courseaudit/vast/goquery"
	"github.com/courseaudit/vast/scan"
	vastslog "github.com/courseaudit/vast/slog"
	"github.com/courseaudit/vast/youtube"
	"github.com/motemen/go-loghttp"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config preset for end-to-end testing. Loaded from the user's
	// configuration when nil.
	Config *config.Config

	// Scanner and Writer presets for end-to-end testing.
	Scanner *scan.Scanner
	Writer  vast.ReportWriter
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("vast"),
		kong.Description("Audits course media captions and page accessibility."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'vast --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cmd == "scan" {
		if err := m.wireScan(cli, deps, stderr); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

// wireScan assembles the scan command's dependency graph from the user's
// configuration, unless test presets are already in place.
func (m *Main) wireScan(cli *CLI, deps *Dependencies, stderr io.Writer) error {
	if m.Scanner != nil {
		deps.Scanner = m.Scanner
		deps.Writer = m.Writer
		return nil
	}

	cfg := m.Config
	if cfg == nil {
		var err error
		cfg, err = config.Load()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: run 'vast init' to create the configuration file")
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Scan.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	httpClient := http.DefaultClient
	if cli.Scan.DebugHTTP {
		transport := &loghttp.Transport{
			LogRequest: func(req *http.Request) {
				logger.Debug("HTTP request", "method", req.Method, "url", req.URL.String())
			},
			LogResponse: func(resp *http.Response) {
				logger.Debug("HTTP response",
					"method", resp.Request.Method,
					"url", resp.Request.URL.String(),
					"status_code", resp.StatusCode,
				)
			},
		}
		httpClient = &http.Client{Transport: transport}
	}

	canvasClient := canvas.NewClient(cfg.CanvasAPIURL, cfg.CanvasAPIKey, canvas.WithHTTPClient(httpClient))
	videoClient := youtube.NewClient(cfg.YouTubeAPIKey, youtube.WithHTTPClient(httpClient))

	var videos vast.VideoService = videoClient
	var inspector vast.MediaInspector = canvasClient
	if cli.Scan.Verbose {
		videos = vastslog.NewLoggingVideoService(videos, logger)
		inspector = vastslog.NewLoggingMediaInspector(inspector, logger)
	}

	deps.Scanner = &scan.Scanner{
		Courses:       canvasClient,
		Files:         canvasClient,
		Extractor:     goquery.NewExtractor(canvasClient),
		Checker:       goquery.NewChecker(),
		Inspector:     inspector,
		Videos:        videos,
		RateLimiter:   scan.NewDomainLimiter(apiRequestsPerSecond),
		VideoHost:     videoClient.Host(),
		InspectorHost: canvasClient.Host(),
		Concurrency:   cli.Scan.Concurrency,
	}
	deps.Writer = fs.NewWriter(cli.Scan.Out)

	return nil
}

// apiRequestsPerSecond caps lookups per external API host.
const apiRequestsPerSecond = 5.0
