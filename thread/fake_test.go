package thread

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeDoc struct {
	container *fakeContainer
	err       error
}

func (d *fakeDoc) CommentContainer() (Container, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.container, nil
}

type fakeContainer struct {
	rows     []Row
	reorders int
}

func (c *fakeContainer) Rows() []Row { return c.rows }

func (c *fakeContainer) Reorder(rows []Row) {
	c.reorders++
	c.rows = append([]Row(nil), rows...)
}

func (c *fakeContainer) order() []string {
	ids := make([]string, len(c.rows))
	for i, r := range c.rows {
		ids[i] = r.RawID()
	}
	return ids
}

type fakeRow struct {
	id        string
	links     []NavLink
	noMarker  bool
	noContent bool
	flattened int
	content   fakeContent
}

func (r *fakeRow) RawID() string { return r.id }

func (r *fakeRow) NavLinks() ([]NavLink, bool) {
	if r.noMarker {
		return nil, false
	}
	return r.links, true
}

func (r *fakeRow) Content() (Content, bool) {
	if r.noContent {
		return nil, false
	}
	return &r.content, true
}

func (r *fakeRow) FlattenIndent() { r.flattened++ }

type fakeContent struct {
	wrappers []*Wrapper
}

func (c *fakeContent) Prepend(w *Wrapper) {
	c.wrappers = append([]*Wrapper{w}, c.wrappers...)
}

func (c *fakeContent) Append(w *Wrapper) {
	c.wrappers = append(c.wrappers, w)
}

func (c *fakeContent) find(kind WrapperKind) *Wrapper {
	for _, w := range c.wrappers {
		if w.Kind == kind {
			return w
		}
	}
	return nil
}

// text flattens a wrapper the way a document would render it.
func (w *Wrapper) text() string {
	var sb strings.Builder
	for i, l := range w.Links {
		if i > 0 {
			sb.WriteString(w.Separator)
		}
		sb.WriteString(l.Label)
	}
	return sb.String()
}

type fakeSurface struct {
	highlighted map[string]string
	scrolls     []string
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{highlighted: map[string]string{}}
}

func (s *fakeSurface) Highlight(row Row, color string) error {
	s.highlighted[row.RawID()] = color
	return nil
}

func (s *fakeSurface) ClearHighlight(row Row) error {
	delete(s.highlighted, row.RawID())
	return nil
}

func (s *fakeSurface) ScrollIntoView(row Row) error {
	s.scrolls = append(s.scrolls, row.RawID())
	return nil
}

func parentOfRef(id int) NavLink {
	return NavLink{Label: "parent", Href: fmt.Sprintf("item?id=%d#%d", id, id)}
}

// exampleDoc is the document [30, 10, 20] where 20 replies to 10.
func exampleDoc() (*fakeDoc, map[string]*fakeRow) {
	rows := map[string]*fakeRow{
		"30": {id: "30", links: []NavLink{{Label: "root", Href: "#1"}}},
		"10": {id: "10"},
		"20": {id: "20", links: []NavLink{{Label: "root", Href: "#10"}, parentOfRef(10)}},
	}
	doc := &fakeDoc{container: &fakeContainer{rows: []Row{rows["30"], rows["10"], rows["20"]}}}
	return doc, rows
}
