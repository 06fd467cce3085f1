package thread

import (
	"log/slog"
	"strings"
)

const parentLabel = "parent"

type Edge struct {
	ChildID  int
	ParentID int
}

// Graph summarizes the parent/reply forest of a registry.
type Graph struct {
	Edges []Edge
	// Roots are comments without a recorded parent.
	Roots []int
	// Orphans are comments whose parent is not in the registry.
	Orphans []int
}

// DeriveGraph records each comment's parent from its navigation marker and
// fills in the inverse reply lists. Replies are indexed by parent in a
// single pass, so each ReplyIDs list follows the registry's sorted order.
func DeriveGraph(reg *Registry, logger *slog.Logger) *Graph {
	if logger == nil {
		logger = slog.Default()
	}

	g := &Graph{}
	children := make(map[int][]int)
	for _, rec := range reg.records {
		parentID, ok := parentOf(rec, logger)
		if !ok {
			g.Roots = append(g.Roots, rec.ID)
			continue
		}

		rec.ParentID = parentID
		rec.HasParent = true
		g.Edges = append(g.Edges, Edge{ChildID: rec.ID, ParentID: parentID})
		children[parentID] = append(children[parentID], rec.ID)

		if _, found := reg.Lookup(parentID); !found {
			g.Orphans = append(g.Orphans, rec.ID)
		}
	}

	for _, rec := range reg.records {
		rec.ReplyIDs = children[rec.ID]
	}

	logger.Debug("thread graph derived", "edges", len(g.Edges), "roots", len(g.Roots), "orphans", len(g.Orphans))
	return g
}

// parentOf returns the target of the first well-formed "parent" link in the
// row's navigation marker.
func parentOf(rec *Record, logger *slog.Logger) (int, bool) {
	links, ok := rec.Row.NavLinks()
	if !ok {
		logger.Warn("no parent recorded", "id", rec.ID, "error", ErrMissingNavigationMarker)
		return 0, false
	}

	for _, link := range links {
		if !isParentLabel(link.Label) {
			continue
		}

		id, err := ParseRef(link.Href)
		if err != nil {
			logger.Warn("ignoring parent link", "id", rec.ID, "error", err)
			continue
		}
		return id, true
	}

	logger.Warn("no parent recorded", "id", rec.ID, "error", ErrMissingParentLink)
	return 0, false
}

func isParentLabel(label string) bool {
	return strings.ToLower(strings.TrimSpace(label)) == parentLabel
}
