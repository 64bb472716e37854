package transcript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Assertions here avoid matching exact ANSI sequences: lipgloss degrades
// styling by color profile, so tests check visible text and the absence
// of consumed markers instead.

func TestRenderAgentPlainTextUnchanged(t *testing.T) {
	in := "Deployment complete. Revision 42 is serving traffic."
	assert.Equal(t, in, RenderAgent(in))
}

func TestRenderAgentParagraphs(t *testing.T) {
	out := RenderAgent("line one\nline two")
	assert.Equal(t, "line one\n\nline two", out)
}

func TestRenderAgentLinkify(t *testing.T) {
	out := RenderAgent("See https://console.cloud.google.com/run for details.")
	// OSC 8 framing around the URL, visible text preserved.
	assert.Contains(t, out, "\x1b]8;;https://console.cloud.google.com/run")
	assert.Contains(t, out, "See ")
	assert.Contains(t, out, " for details.")
}

func TestRenderAgentEmphasisConsumesMarkers(t *testing.T) {
	out := RenderAgent("Build **FAILED** for service-a.")
	assert.NotContains(t, out, "**")
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "Build ")
}

func TestRenderAgentOrderLinkifyBeforeEmphasis(t *testing.T) {
	// The URL is linkified first; the surrounding ** markers are then
	// consumed without corrupting the link target.
	out := RenderAgent("**see https://example.com/a now**")
	assert.Contains(t, out, "\x1b]8;;https://example.com/a")
	assert.NotContains(t, out, "**")
}

func TestRenderAgentUnterminatedEmphasisKept(t *testing.T) {
	out := RenderAgent("a ** lone marker")
	assert.Contains(t, out, "** lone marker")
}

func TestRenderUserIsLiteral(t *testing.T) {
	in := "look at **this** and https://example.com"
	out := RenderUser(in)
	assert.Equal(t, in, out, "user content gets no transformation passes")
}

func TestNeutralizeStripsControls(t *testing.T) {
	out := RenderUser("safe\x1b[31mred\x07bell\r\nline")
	assert.NotContains(t, out, "\x1b")
	assert.NotContains(t, out, "\x07")
	assert.NotContains(t, out, "\r")
	assert.Contains(t, out, "safe")
	assert.Contains(t, out, "\nline")
}

func TestNeutralizeKeepsMarkupLikeText(t *testing.T) {
	// Markup-looking text stays literal; nothing is interpreted.
	in := "<script>alert('x')</script>"
	assert.Equal(t, in, RenderUser(in))
	assert.Equal(t, in, RenderAgent(in))
}

func TestRenderAgentTabPreserved(t *testing.T) {
	out := RenderAgent("col1\tcol2")
	assert.True(t, strings.Contains(out, "\t"))
}
