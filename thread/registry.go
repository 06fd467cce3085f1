package thread

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

// Record is one comment and its place in the thread.
type Record struct {
	ID        int
	ParentID  int
	HasParent bool
	// ReplyIDs holds direct replies in sorted order. Populated by DeriveGraph.
	ReplyIDs []int
	Row      Row
}

// Registry owns the comments of one document, ordered by id.
type Registry struct {
	records []*Record
	byID    map[int]*Record
}

// BuildRegistry reads every row of the document's comment tree, sorts the
// rows ascending by id and rewrites their order in the container.
func BuildRegistry(doc Document, logger *slog.Logger) (*Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	container, err := doc.CommentContainer()
	if err != nil {
		return nil, err
	}

	rows := container.Rows()
	records := make([]*Record, 0, len(rows))
	var unparsed []Row
	for _, row := range rows {
		id, err := strconv.Atoi(strings.TrimSpace(row.RawID()))
		if err != nil {
			logger.Warn("skipping row", "row", row.RawID(), "error", fmt.Errorf("%w: %q", ErrMalformedRowID, row.RawID()))
			unparsed = append(unparsed, row)
			continue
		}
		records = append(records, &Record{ID: id, Row: row})
	}

	slices.SortStableFunc(records, func(a, b *Record) int {
		return cmp.Compare(a.ID, b.ID)
	})

	sorted := make([]Row, 0, len(rows))
	reg := &Registry{
		records: records,
		byID:    make(map[int]*Record, len(records)),
	}
	for _, rec := range records {
		sorted = append(sorted, rec.Row)
		if _, ok := reg.byID[rec.ID]; !ok {
			reg.byID[rec.ID] = rec
		}
		rec.Row.FlattenIndent()
	}
	for _, row := range unparsed {
		row.FlattenIndent()
	}
	container.Reorder(append(sorted, unparsed...))

	logger.Debug("registry built", "comments", len(records), "skipped", len(unparsed))
	return reg, nil
}

// Records returns a copy of the comments, ascending by id.
func (r *Registry) Records() []*Record {
	return slices.Clone(r.records)
}

func (r *Registry) Lookup(id int) (*Record, bool) {
	rec, ok := r.byID[id]
	return rec, ok
}

func (r *Registry) Len() int {
	return len(r.records)
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []int {
	ids := make([]int, len(r.records))
	for i, rec := range r.records {
		ids[i] = rec.ID
	}
	return ids
}
