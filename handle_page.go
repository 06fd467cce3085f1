package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/haileyok/threadview/htmldoc"
	"github.com/haileyok/threadview/thread"
)

type ThreadView struct {
	logger    *slog.Logger
	pages     *PageClient
	edges     *EdgeStore
	highlight string
}

func isRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

func (tv *ThreadView) loadSource(ctx context.Context, src string) ([]byte, error) {
	if isRemote(src) {
		if tv.pages == nil {
			return nil, fmt.Errorf("no page client configured for %s", src)
		}
		return tv.pages.Fetch(ctx, src)
	}
	return os.ReadFile(src)
}

// handlePage rebuilds the thread view of one page. When focus is non-zero
// the focused comment is activated on the rewritten page.
func (tv *ThreadView) handlePage(ctx context.Context, source string, b []byte, focus int) (*htmldoc.Document, *thread.View, error) {
	logger := tv.logger.With("source", source)

	doc, err := htmldoc.Parse(bytes.NewReader(b))
	if err != nil {
		return nil, nil, err
	}

	// parsing is complete, so the page structure is available
	ready := make(chan struct{})
	close(ready)

	view, err := thread.Start(ctx, ready, doc, thread.Options{
		HighlightColor: tv.highlight,
		Logger:         logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("error building thread view for %s: %w", source, err)
	}

	doc.InstallNavigator(tv.highlight)

	if focus != 0 {
		if state := view.Navigator.Activate(focus); state.Kind != thread.Highlighted {
			logger.Warn("focus comment not found", "id", focus)
		}
	}

	if tv.edges != nil {
		if err := tv.edges.Record(ctx, source, view.Graph); err != nil {
			logger.Error("error recording edges", "error", err)
		}
	}

	return doc, view, nil
}
