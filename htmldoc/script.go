package htmldoc

import (
	"encoding/json"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const NavScriptID = "threadview-nav"

// InstallNavigator adds a script that makes the injected links navigate in
// a browser: a click clears every row's highlight, highlights the link's
// target row with color and scrolls it into view, without following the
// link. Installing again replaces the previous script.
func (d *Document) InstallNavigator(color string) {
	for _, old := range findAll(d.root, func(n *html.Node) bool {
		id, _ := attr(n, "id")
		return n.DataAtom == atom.Script && id == NavScriptID
	}) {
		old.Parent.RemoveChild(old)
	}

	parent := findFirst(d.root, func(n *html.Node) bool { return n.DataAtom == atom.Body })
	if parent == nil {
		parent = d.root
	}

	script := newElement(atom.Script, html.Attribute{Key: "id", Val: NavScriptID})
	script.AppendChild(newText(navScript(d.sel, color)))
	parent.AppendChild(script)
}

func (s Selectors) rowSelector() string {
	part := func(tag, class string) string {
		if class == "" {
			return tag
		}
		return tag + "." + class
	}
	return part(s.ContainerTag, s.ContainerClass) + " > " + s.SectionTag + " > " + s.RowTag
}

func navScript(sel Selectors, color string) string {
	return fmt.Sprintf(`
(function () {
	var color = %s;
	var rowSelector = %s;
	document.addEventListener("click", function (ev) {
		var link = ev.target instanceof Element ? ev.target.closest("a[%s]") : null;
		if (!link) return;
		ev.preventDefault();
		var target = parseInt(link.getAttribute("%s"), 10);
		var found = null;
		document.querySelectorAll(rowSelector).forEach(function (row) {
			row.style.backgroundColor = "";
			if (!found && parseInt(row.id, 10) === target) found = row;
		});
		if (!found) return;
		found.style.backgroundColor = color;
		found.scrollIntoView({ behavior: "smooth" });
	});
})();
`, jsString(color), jsString(sel.rowSelector()), TargetAttr, TargetAttr)
}

func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
