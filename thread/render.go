package thread

import (
	"fmt"
	"log/slog"
)

const replySeparator = " | "

// Renderer attaches parent and reply links to each comment's content.
type Renderer struct {
	nav    *Navigator
	logger *slog.Logger
	links  []*Link
}

func NewRenderer(nav *Navigator, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		nav:    nav,
		logger: logger.With("component", "renderer"),
	}
}

// RenderParentLink inserts a "Parent ID" link as the first child of the
// comment's content. It returns nil when nothing was rendered.
func (r *Renderer) RenderParentLink(rec *Record) *Link {
	if !rec.HasParent {
		return nil
	}

	content, ok := rec.Row.Content()
	if !ok {
		r.logger.Warn("parent link not rendered", "id", rec.ID, "error", ErrMissingContentRegion)
		return nil
	}

	link := r.newLink(fmt.Sprintf("Parent ID: %d", rec.ParentID), rec.ParentID)
	content.Prepend(&Wrapper{Kind: ParentWrapper, Links: []*Link{link}})
	return link
}

// RenderReplyLinks appends one "Reply ID" link per direct reply, grouped in
// a single wrapper.
func (r *Renderer) RenderReplyLinks(rec *Record) []*Link {
	if len(rec.ReplyIDs) == 0 {
		return nil
	}

	content, ok := rec.Row.Content()
	if !ok {
		r.logger.Warn("reply links not rendered", "id", rec.ID, "error", ErrMissingContentRegion)
		return nil
	}

	links := make([]*Link, 0, len(rec.ReplyIDs))
	for _, childID := range rec.ReplyIDs {
		links = append(links, r.newLink(fmt.Sprintf("Reply ID: %d", childID), childID))
	}
	content.Append(&Wrapper{Kind: ReplyWrapper, Links: links, Separator: replySeparator})
	return links
}

// RenderAll renders the parent link and reply links of every comment.
func (r *Renderer) RenderAll(reg *Registry) {
	for _, rec := range reg.records {
		r.RenderParentLink(rec)
	}
	for _, rec := range reg.records {
		r.RenderReplyLinks(rec)
	}
}

// Links returns every link rendered so far.
func (r *Renderer) Links() []*Link {
	return r.links
}

func (r *Renderer) newLink(label string, target int) *Link {
	link := &Link{
		Label:    label,
		Href:     Href(target),
		TargetID: target,
		nav:      r.nav,
	}
	r.links = append(r.links, link)
	return link
}
