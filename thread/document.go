package thread

// Document is the hosting document a thread view is built over.
// CommentContainer reports ErrContainerNotFound or ErrRowSectionNotFound
// when the comment tree cannot be located.
type Document interface {
	CommentContainer() (Container, error)
}

// Container holds one row per comment.
type Container interface {
	// Rows returns the rows in document order.
	Rows() []Row
	// Reorder moves the given rows to the end of the row section in the
	// order given.
	Reorder(rows []Row)
}

// Row is a single rendered comment.
type Row interface {
	// RawID is the row's identifier attribute.
	RawID() string
	// NavLinks returns the links of the row's navigation marker, and false
	// when the row has no marker.
	NavLinks() ([]NavLink, bool)
	// Content returns the region that receives navigation wrappers.
	Content() (Content, bool)
	// FlattenIndent zeroes the width of indentation spacers.
	FlattenIndent()
}

// NavLink is a labelled reference link found in a navigation marker.
type NavLink struct {
	Label string
	Href  string
}

type Content interface {
	Prepend(w *Wrapper)
	Append(w *Wrapper)
}

type WrapperKind int

const (
	ParentWrapper WrapperKind = iota
	ReplyWrapper
)

func (k WrapperKind) String() string {
	switch k {
	case ParentWrapper:
		return "parent"
	case ReplyWrapper:
		return "replies"
	default:
		return "unknown"
	}
}

// Wrapper is a group of synthesized links inserted into a content region.
// Separator goes between consecutive links only.
type Wrapper struct {
	Kind      WrapperKind
	Links     []*Link
	Separator string
}

// Surface applies highlight and scroll effects to rows.
type Surface interface {
	Highlight(row Row, color string) error
	ClearHighlight(row Row) error
	ScrollIntoView(row Row) error
}

// HighlightClearer is implemented by surfaces that can clear the highlight
// of many rows in one step. The navigator prefers it over ClearHighlight.
type HighlightClearer interface {
	ClearHighlights(rows []Row) error
}

type nopSurface struct{}

func (nopSurface) Highlight(Row, string) error { return nil }
func (nopSurface) ClearHighlight(Row) error    { return nil }
func (nopSurface) ScrollIntoView(Row) error    { return nil }
