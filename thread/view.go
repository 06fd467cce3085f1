package thread

import (
	"context"
	"log/slog"
)

type Options struct {
	// HighlightColor defaults to DefaultHighlightColor.
	HighlightColor string
	// Surface receives highlight and scroll effects. When nil, the document
	// is used if it implements Surface.
	Surface Surface
	Logger  *slog.Logger
}

// View is a document whose comments have been sorted, linked and wired to
// a navigator.
type View struct {
	Registry  *Registry
	Graph     *Graph
	Navigator *Navigator
	Links     []*Link
}

// Build sorts the document's comments, derives the thread graph and renders
// navigation links. Only container lookup failures are returned; per-row
// problems are logged.
func Build(doc Document, opts Options) (*View, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	buildLogger := logger.With("component", "thread")

	reg, err := BuildRegistry(doc, buildLogger)
	if err != nil {
		buildLogger.Error("thread view not built", "error", err)
		return nil, err
	}

	graph := DeriveGraph(reg, buildLogger)

	surface := opts.Surface
	if surface == nil {
		if s, ok := doc.(Surface); ok {
			surface = s
		}
	}
	nav := NewNavigator(reg, surface, opts.HighlightColor, logger)

	r := NewRenderer(nav, logger)
	r.RenderAll(reg)

	buildLogger.Info("comments sorted and linked", "comments", reg.Len(), "links", len(r.Links()))
	return &View{
		Registry:  reg,
		Graph:     graph,
		Navigator: nav,
		Links:     r.Links(),
	}, nil
}

// Start waits for ready to be closed before building the view.
func Start(ctx context.Context, ready <-chan struct{}, doc Document, opts Options) (*View, error) {
	select {
	case <-ready:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return Build(doc, opts)
}
