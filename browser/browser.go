// Package browser drives a headless Chrome page so that navigation
// highlights and scrolls happen in a real viewport.
package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/haileyok/threadview/thread"
)

var ErrRowNotFound = errors.New("row not found in page")

// scrollSettle covers a smooth scroll started just before a capture.
const scrollSettle = 750 * time.Millisecond

type Options struct {
	// ExecPath overrides the Chrome binary chromedp looks up.
	ExecPath string
	Width    int
	Height   int
	Timeout  time.Duration
}

func (o Options) withDefaults() Options {
	if o.Width == 0 {
		o.Width = 1280
	}
	if o.Height == 0 {
		o.Height = 900
	}
	if o.Timeout == 0 {
		o.Timeout = 30 * time.Second
	}
	return o
}

// Session is a headless Chrome tab holding one rendered page.
type Session struct {
	ctx     context.Context
	cancels []context.CancelFunc
	logger  *slog.Logger
}

// Open starts headless Chrome and loads the given HTML into a blank tab.
func Open(ctx context.Context, html []byte, opts Options, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opts = opts.withDefaults()

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.WindowSize(opts.Width, opts.Height),
	)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	s := &Session{logger: logger.With("component", "browser")}

	timeoutCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	s.cancels = append(s.cancels, cancel)

	allocCtx, cancel := chromedp.NewExecAllocator(timeoutCtx, allocOpts...)
	s.cancels = append(s.cancels, cancel)

	taskCtx, cancel := chromedp.NewContext(allocCtx)
	s.cancels = append(s.cancels, cancel)
	s.ctx = taskCtx

	err := chromedp.Run(taskCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.WaitReady("body"),
	)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("error loading page in chrome: %w", err)
	}

	s.logger.Debug("page loaded", "bytes", len(html))
	return s, nil
}

func (s *Session) Close() {
	for i := len(s.cancels) - 1; i >= 0; i-- {
		s.cancels[i]()
	}
	s.cancels = nil
}

// Surface returns a thread.Surface that acts on the live page.
func (s *Session) Surface() *Surface {
	return &Surface{s: s}
}

func (s *Session) Screenshot() ([]byte, error) {
	var buf []byte
	err := chromedp.Run(s.ctx,
		chromedp.Sleep(scrollSettle),
		chromedp.CaptureScreenshot(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome screenshot failed: %w", err)
	}
	return buf, nil
}

func (s *Session) PDF() ([]byte, error) {
	var pdfData []byte
	err := chromedp.Run(s.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		pdfData, _, err = page.PrintToPDF().
			WithPrintBackground(true).
			WithPreferCSSPageSize(true).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("chrome pdf generation failed: %w", err)
	}
	return pdfData, nil
}

// Surface highlights and scrolls rows of a Session's page by id.
type Surface struct {
	s *Session
}

func (b *Surface) Highlight(r thread.Row, color string) error {
	return b.setBackground(r.RawID(), color)
}

func (b *Surface) ClearHighlight(r thread.Row) error {
	return b.setBackground(r.RawID(), "")
}

// ClearHighlights resets the background of every row in one round trip.
func (b *Surface) ClearHighlights(rows []thread.Row) error {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.RawID()
	}

	var missing []string
	if err := chromedp.Run(b.s.ctx, chromedp.Evaluate(clearScript(ids), &missing)); err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %q", ErrRowNotFound, missing)
	}
	return nil
}

// ScrollIntoView starts a smooth scroll to the row. The animation is left to
// the page; Screenshot waits for it to settle.
func (b *Surface) ScrollIntoView(r thread.Row) error {
	var found bool
	if err := chromedp.Run(b.s.ctx, chromedp.Evaluate(scrollScript(r.RawID()), &found)); err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %q", ErrRowNotFound, r.RawID())
	}
	return nil
}

func (b *Surface) setBackground(id, color string) error {
	var found bool
	if err := chromedp.Run(b.s.ctx, chromedp.Evaluate(backgroundScript(id, color), &found)); err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %q", ErrRowNotFound, id)
	}
	return nil
}

func backgroundScript(id, color string) string {
	return fmt.Sprintf(`(() => {
	const el = document.getElementById(%s);
	if (!el) return false;
	el.style.backgroundColor = %s;
	return true;
})()`, jsValue(id), jsValue(color))
}

func clearScript(ids []string) string {
	return fmt.Sprintf(`(() => {
	const missing = [];
	for (const id of %s) {
		const el = document.getElementById(id);
		if (el) el.style.backgroundColor = "";
		else missing.push(id);
	}
	return missing;
})()`, jsValue(ids))
}

func scrollScript(id string) string {
	return fmt.Sprintf(`(() => {
	const el = document.getElementById(%s);
	if (!el) return false;
	el.scrollIntoView({ behavior: "smooth" });
	return true;
})()`, jsValue(id))
}

func jsValue(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}
