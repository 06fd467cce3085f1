package htmldoc

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
)

func parseStyle(s string) ([]*css.Declaration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	// the last declaration only gets its value once terminated
	if !strings.HasSuffix(s, ";") {
		s += ";"
	}
	return parser.ParseDeclarations(s)
}

func formatStyle(decls []*css.Declaration) string {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.String()
	}
	return strings.Join(parts, " ")
}

// setStyle sets one inline style property, keeping the others. An empty
// value removes the property, and the style attribute once it is empty.
// A style that does not parse is left as it is.
func setStyle(n *html.Node, prop, value string) error {
	current, _ := attr(n, "style")
	decls, err := parseStyle(current)
	if err != nil {
		return fmt.Errorf("error parsing style %q: %w", current, err)
	}

	out := decls[:0]
	replaced := false
	for _, d := range decls {
		if !strings.EqualFold(d.Property, prop) {
			out = append(out, d)
			continue
		}
		if value != "" && !replaced {
			out = append(out, &css.Declaration{Property: prop, Value: value})
			replaced = true
		}
	}
	if value != "" && !replaced {
		out = append(out, &css.Declaration{Property: prop, Value: value})
	}

	if len(out) == 0 {
		removeAttr(n, "style")
		return nil
	}
	setAttr(n, "style", formatStyle(out))
	return nil
}

func styleValue(n *html.Node, prop string) string {
	current, _ := attr(n, "style")
	decls, err := parseStyle(current)
	if err != nil {
		return ""
	}
	for _, d := range decls {
		if strings.EqualFold(d.Property, prop) {
			return d.Value
		}
	}
	return ""
}
