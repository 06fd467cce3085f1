package browser

import (
	"context"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/haileyok/threadview/htmldoc"
	"github.com/haileyok/threadview/thread"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScripts(t *testing.T) {
	s := scrollScript(`a"b`)
	assert.Contains(t, s, `document.getElementById("a\"b")`)
	assert.Contains(t, s, `el.scrollIntoView({ behavior: "smooth" });`)

	s = clearScript([]string{"10", "20"})
	assert.Contains(t, s, `for (const id of ["10","20"])`)
	assert.Contains(t, s, `el.style.backgroundColor = "";`)
}

func TestBackgroundScript(t *testing.T) {
	s := backgroundScript("20", "tan")
	assert.Contains(t, s, `document.getElementById("20")`)
	assert.Contains(t, s, `el.style.backgroundColor = "tan";`)

	s = backgroundScript("20", "")
	assert.Contains(t, s, `el.style.backgroundColor = "";`)
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{Width: 800}.withDefaults()
	assert.Equal(t, 800, o.Width)
	assert.Equal(t, 900, o.Height)
	assert.Equal(t, 30*time.Second, o.Timeout)
}

func chromePath(t *testing.T) string {
	t.Helper()
	for _, name := range []string{"chromium-browser", "chromium", "google-chrome"} {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	t.Skip("chrome not installed")
	return ""
}

const testPage = `<html><body><table class="comment-tree"><tbody>` +
	`<tr id="20"><td><span class="navs"><a href="#10">parent</a></span><div class="comment">b</div></td></tr>` +
	`<tr id="10"><td><span class="navs"></span><div class="comment">a</div></td></tr>` +
	`</tbody></table></body></html>`

func openTestPage(t *testing.T) (*Session, *thread.View) {
	t.Helper()
	execPath := chromePath(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	doc, err := htmldoc.Parse(strings.NewReader(testPage))
	require.NoError(t, err)
	view, err := thread.Build(doc, thread.Options{Logger: logger})
	require.NoError(t, err)
	doc.InstallNavigator("tan")
	out, err := doc.Bytes()
	require.NoError(t, err)

	s, err := Open(context.Background(), out, Options{ExecPath: execPath}, logger)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s, view
}

func TestSession_Navigate(t *testing.T) {
	s, view := openTestPage(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	nav := thread.NewNavigator(view.Registry, s.Surface(), "", logger)
	nav.Activate(10)
	state := nav.Activate(20)
	assert.Equal(t, thread.State{Kind: thread.Highlighted, Target: 20}, state)

	var backgrounds []string
	require.NoError(t, chromedp.Run(s.ctx, chromedp.Evaluate(
		`["10", "20"].map(id => document.getElementById(id).style.backgroundColor)`, &backgrounds)))
	assert.Equal(t, []string{"", "tan"}, backgrounds)

	shot, err := s.Screenshot()
	require.NoError(t, err)
	assert.NotEmpty(t, shot)
}

func TestSession_ClickRenderedLink(t *testing.T) {
	s, _ := openTestPage(t)

	var hash, background, other string
	err := chromedp.Run(s.ctx,
		chromedp.Click(`a[data-target="10"]`, chromedp.ByQuery),
		chromedp.Click(`a[data-target="20"]`, chromedp.ByQuery),
		chromedp.Evaluate(`location.hash`, &hash),
		chromedp.Evaluate(`document.getElementById("20").style.backgroundColor`, &background),
		chromedp.Evaluate(`document.getElementById("10").style.backgroundColor`, &other),
	)
	require.NoError(t, err)

	assert.Equal(t, "", hash)
	assert.Equal(t, "tan", background)
	assert.Equal(t, "", other)
}
