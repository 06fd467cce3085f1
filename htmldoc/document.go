// Package htmldoc hosts thread views over parsed HTML comment pages.
package htmldoc

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/haileyok/threadview/thread"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Selectors describe where the comment tree lives in a page. Each element
// is matched by tag and, when set, a class token.
type Selectors struct {
	ContainerTag   string
	ContainerClass string
	SectionTag     string
	RowTag         string
	MarkerTag      string
	MarkerClass    string
	ContentTag     string
	ContentClass   string
	SpacerSrc      string
}

// DefaultSelectors match Hacker News item pages.
func DefaultSelectors() Selectors {
	return Selectors{
		ContainerTag:   "table",
		ContainerClass: "comment-tree",
		SectionTag:     "tbody",
		RowTag:         "tr",
		MarkerTag:      "span",
		MarkerClass:    "navs",
		ContentTag:     "div",
		ContentClass:   "comment",
		SpacerSrc:      "s.gif",
	}
}

const (
	ParentWrapperClass = "threadview-parent"
	ReplyWrapperClass  = "threadview-replies"
	TargetAttr         = "data-target"
)

// Document is a parsed page. It implements thread.Document and, by
// rewriting inline styles, thread.Surface.
type Document struct {
	root    *html.Node
	sel     Selectors
	scrolls []string
}

func Parse(r io.Reader) (*Document, error) {
	return ParseWithSelectors(r, DefaultSelectors())
}

func ParseWithSelectors(r io.Reader, sel Selectors) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing document: %w", err)
	}
	return &Document{root: root, sel: sel}, nil
}

func (d *Document) CommentContainer() (thread.Container, error) {
	table := findFirst(d.root, func(n *html.Node) bool {
		return isElement(n, d.sel.ContainerTag) && hasClass(n, d.sel.ContainerClass)
	})
	if table == nil {
		return nil, thread.ErrContainerNotFound
	}

	section := findFirst(table, func(n *html.Node) bool {
		return isElement(n, d.sel.SectionTag)
	})
	if section == nil {
		return nil, thread.ErrRowSectionNotFound
	}

	return &container{doc: d, section: section}, nil
}

func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *Document) Highlight(r thread.Row, color string) error {
	n, err := d.node(r)
	if err != nil {
		return err
	}
	return setStyle(n, "background-color", color)
}

func (d *Document) ClearHighlight(r thread.Row) error {
	n, err := d.node(r)
	if err != nil {
		return err
	}
	return setStyle(n, "background-color", "")
}

// ScrollIntoView records the row as the scroll target. A static page has no
// viewport; callers read the target back with ScrollTarget.
func (d *Document) ScrollIntoView(r thread.Row) error {
	if _, err := d.node(r); err != nil {
		return err
	}
	d.scrolls = append(d.scrolls, r.RawID())
	return nil
}

// ScrollTarget returns the id of the most recently scrolled-to row.
func (d *Document) ScrollTarget() (string, bool) {
	if len(d.scrolls) == 0 {
		return "", false
	}
	return d.scrolls[len(d.scrolls)-1], true
}

func (d *Document) node(r thread.Row) (*html.Node, error) {
	hr, ok := r.(*row)
	if !ok || hr.doc != d {
		return nil, fmt.Errorf("row %q does not belong to this document", r.RawID())
	}
	return hr.n, nil
}

type container struct {
	doc     *Document
	section *html.Node
}

func (c *container) Rows() []thread.Row {
	var rows []thread.Row
	for n := c.section.FirstChild; n != nil; n = n.NextSibling {
		if isElement(n, c.doc.sel.RowTag) {
			rows = append(rows, &row{doc: c.doc, n: n})
		}
	}
	return rows
}

func (c *container) Reorder(rows []thread.Row) {
	for _, r := range rows {
		hr, ok := r.(*row)
		if !ok || hr.n.Parent != c.section {
			continue
		}
		c.section.RemoveChild(hr.n)
		c.section.AppendChild(hr.n)
	}
}

type row struct {
	doc *Document
	n   *html.Node
}

func (r *row) RawID() string {
	id, _ := attr(r.n, "id")
	return id
}

func (r *row) NavLinks() ([]thread.NavLink, bool) {
	sel := r.doc.sel
	marker := findFirst(r.n, func(n *html.Node) bool {
		return isElement(n, sel.MarkerTag) && hasClass(n, sel.MarkerClass)
	})
	if marker == nil {
		return nil, false
	}

	var links []thread.NavLink
	for _, a := range findAll(marker, func(n *html.Node) bool { return n.DataAtom == atom.A }) {
		href, _ := attr(a, "href")
		links = append(links, thread.NavLink{Label: textContent(a), Href: href})
	}
	return links, true
}

func (r *row) Content() (thread.Content, bool) {
	sel := r.doc.sel
	n := findFirst(r.n, func(n *html.Node) bool {
		return isElement(n, sel.ContentTag) && hasClass(n, sel.ContentClass)
	})
	if n == nil {
		return nil, false
	}
	return &content{n: n}, true
}

func (r *row) FlattenIndent() {
	spacers := findAll(r.n, func(n *html.Node) bool {
		if n.DataAtom != atom.Img {
			return false
		}
		src, _ := attr(n, "src")
		return src == r.doc.sel.SpacerSrc
	})
	for _, img := range spacers {
		// spacers with unparseable styles keep their width
		_ = setStyle(img, "width", "0")
	}
}

type content struct {
	n *html.Node
}

func (c *content) Prepend(w *thread.Wrapper) {
	c.n.InsertBefore(wrapperNode(w), c.n.FirstChild)
}

func (c *content) Append(w *thread.Wrapper) {
	c.n.AppendChild(wrapperNode(w))
}

func wrapperNode(w *thread.Wrapper) *html.Node {
	class := ParentWrapperClass
	if w.Kind == thread.ReplyWrapper {
		class = ReplyWrapperClass
	}

	span := newElement(atom.Span, html.Attribute{Key: "class", Val: class})
	for i, l := range w.Links {
		if i > 0 {
			span.AppendChild(newText(w.Separator))
		}
		a := newElement(atom.A,
			html.Attribute{Key: "href", Val: l.Href},
			html.Attribute{Key: TargetAttr, Val: strconv.Itoa(l.TargetID)},
		)
		a.AppendChild(newText(l.Label))
		span.AppendChild(a)
	}
	return span
}
