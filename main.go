package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/haileyok/threadview/browser"
	"github.com/haileyok/threadview/thread"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		slog.Error("threadview failed", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "threadview",
		Usage: "sort comment pages by id and link every comment to its parent and replies",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				EnvVars: []string{"LOG_LEVEL"},
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "highlight",
				EnvVars: []string{"HIGHLIGHT_COLOR"},
				Value:   thread.DefaultHighlightColor,
			},
			&cli.StringFlag{
				Name:    "user-agent",
				EnvVars: []string{"USER_AGENT"},
				Value:   "threadview",
			},
			&cli.IntFlag{
				Name:    "page-cache-size",
				EnvVars: []string{"PAGE_CACHE_SIZE"},
				Value:   64,
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "render",
				Usage:     "rewrite one or more pages",
				ArgsUsage: "<file or url>...",
				Action:    runRender,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Usage: "output file for a single page, stdout when empty",
					},
					&cli.StringFlag{
						Name:  "out-dir",
						Usage: "output directory when rendering several pages",
					},
					&cli.IntFlag{
						Name:  "focus",
						Usage: "comment id to highlight in the output",
					},
					&cli.StringFlag{
						Name:    "db",
						EnvVars: []string{"THREADVIEW_DB"},
						Usage:   "sqlite file recording thread edges",
					},
				},
			},
			{
				Name:      "shot",
				Usage:     "render a page in headless chrome focused on one comment",
				ArgsUsage: "<file or url>",
				Action:    runShot,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "focus",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "out",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "pdf",
						Usage: "save a pdf instead of a png screenshot",
					},
					&cli.StringFlag{
						Name:    "chrome",
						EnvVars: []string{"CHROME_PATH"},
					},
					&cli.IntFlag{
						Name:  "width",
						Value: 1280,
					},
					&cli.IntFlag{
						Name:  "height",
						Value: 900,
					},
				},
			},
			{
				Name:   "edges",
				Usage:  "list recorded thread edges",
				Action: runEdges,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						EnvVars:  []string{"THREADVIEW_DB"},
						Required: true,
					},
					&cli.StringFlag{
						Name:     "source",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "parent",
						Usage: "only list direct replies of this comment",
					},
				},
			},
		},
	}
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func newThreadView(cmd *cli.Context) (*ThreadView, error) {
	// stdout may carry the rendered page
	logger := slog.New(slog.NewTextHandler(cmd.App.ErrWriter, &slog.HandlerOptions{
		Level:     parseLevel(cmd.String("log-level")),
		AddSource: true,
	}))

	pages, err := NewPageClient(cmd.String("user-agent"), cmd.Int("page-cache-size"), logger)
	if err != nil {
		return nil, err
	}

	return &ThreadView{
		logger:    logger,
		pages:     pages,
		highlight: cmd.String("highlight"),
	}, nil
}

var runRender = func(cmd *cli.Context) error {
	sources := cmd.Args().Slice()
	if len(sources) == 0 {
		return fmt.Errorf("at least one file or url is required")
	}
	if len(sources) > 1 && cmd.String("out-dir") == "" {
		return fmt.Errorf("--out-dir is required when rendering %d pages", len(sources))
	}

	tv, err := newThreadView(cmd)
	if err != nil {
		return err
	}

	if path := cmd.String("db"); path != "" {
		edges, err := OpenEdgeStore(path)
		if err != nil {
			return err
		}
		defer edges.Close()
		tv.edges = edges
	}

	for _, src := range sources {
		b, err := tv.loadSource(cmd.Context, src)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", src, err)
		}

		doc, _, err := tv.handlePage(cmd.Context, src, b, cmd.Int("focus"))
		if err != nil {
			return err
		}

		out, err := doc.Bytes()
		if err != nil {
			return fmt.Errorf("error rendering %s: %w", src, err)
		}

		dest := cmd.String("out")
		if dir := cmd.String("out-dir"); dir != "" {
			dest = filepath.Join(dir, outputName(src))
		}
		if dest == "" {
			if _, err := cmd.App.Writer.Write(out); err != nil {
				return err
			}
			continue
		}
		if err := os.WriteFile(dest, out, 0644); err != nil {
			return fmt.Errorf("error writing %s: %w", dest, err)
		}
		tv.logger.Info("page written", "source", src, "out", dest)
	}

	return nil
}

var runShot = func(cmd *cli.Context) error {
	src := cmd.Args().First()
	if src == "" {
		return fmt.Errorf("a file or url is required")
	}

	tv, err := newThreadView(cmd)
	if err != nil {
		return err
	}

	b, err := tv.loadSource(cmd.Context, src)
	if err != nil {
		return fmt.Errorf("error loading %s: %w", src, err)
	}

	doc, view, err := tv.handlePage(cmd.Context, src, b, 0)
	if err != nil {
		return err
	}

	page, err := doc.Bytes()
	if err != nil {
		return err
	}

	sess, err := browser.Open(cmd.Context, page, browser.Options{
		ExecPath: cmd.String("chrome"),
		Width:    cmd.Int("width"),
		Height:   cmd.Int("height"),
	}, tv.logger)
	if err != nil {
		return err
	}
	defer sess.Close()

	nav := thread.NewNavigator(view.Registry, sess.Surface(), tv.highlight, tv.logger)
	if state := nav.Activate(cmd.Int("focus")); state.Kind != thread.Highlighted {
		return fmt.Errorf("comment %d not found in %s", cmd.Int("focus"), src)
	}

	var out []byte
	if cmd.Bool("pdf") {
		out, err = sess.PDF()
	} else {
		out, err = sess.Screenshot()
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(cmd.String("out"), out, 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", cmd.String("out"), err)
	}
	tv.logger.Info("capture written", "source", src, "focus", cmd.Int("focus"), "out", cmd.String("out"))
	return nil
}

var runEdges = func(cmd *cli.Context) error {
	store, err := OpenEdgeStore(cmd.String("db"))
	if err != nil {
		return err
	}
	defer store.Close()

	source := cmd.String("source")
	if cmd.IsSet("parent") {
		ids, err := store.Replies(cmd.Context, source, cmd.Int("parent"))
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintln(cmd.App.Writer, id)
		}
		return nil
	}

	edges, err := store.Edges(cmd.Context, source)
	if err != nil {
		return err
	}
	for _, e := range edges {
		fmt.Fprintf(cmd.App.Writer, "%d\t%d\n", e.CommentID, e.ParentID)
	}
	return nil
}

// outputName turns a source path or url into a file name.
func outputName(src string) string {
	if !isRemote(src) {
		return filepath.Base(src)
	}

	_, rest, _ := strings.Cut(src, "://")
	var sb strings.Builder
	for _, r := range strings.TrimPrefix(rest, "www.") {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String() + ".html"
}
