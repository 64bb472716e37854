package transcript

import (
	"regexp"
	"strings"

	"github.com/muesli/termenv"

	"github.com/geminiflow/moa-tui/style"
)

// Agent and error content is transformed by three ordered passes:
//
//  1. line breaks become paragraph breaks,
//  2. URLs become OSC 8 hyperlinks (after paragraph conversion, so a URL
//     never spans a converted break; before emphasis),
//  3. **spans** become emphasized text (last, so markers inside a
//     hyperlink's visible text are still honored; the markers themselves
//     are consumed).
//
// Plain text with no URLs and no ** round-trips unchanged apart from the
// paragraph conversion. User content skips all three passes.

var (
	urlRe  = regexp.MustCompile(`https?://[^\s<>\[\]{}]+`)
	emphRe = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

// RenderUser produces the display form of operator input: control
// sequences are neutralized and nothing is ever interpreted as markup.
func RenderUser(content string) string {
	return neutralize(content)
}

// RenderAgent produces the display form of agent and error content.
func RenderAgent(content string) string {
	s := neutralize(content)
	s = paragraphs(s)
	s = linkify(s)
	s = emphasize(s)
	return s
}

// paragraphs converts each line break into a paragraph break. Carriage
// returns are already gone by the time this runs (neutralize strips them).
func paragraphs(s string) string {
	return strings.ReplaceAll(s, "\n", "\n\n")
}

// linkify wraps every URL in an OSC 8 hyperlink whose visible text is the
// URL itself.
func linkify(s string) string {
	return urlRe.ReplaceAllStringFunc(s, func(u string) string {
		return termenv.Hyperlink(u, style.Link.Render(u))
	})
}

// emphasize replaces **span** with an emphasized span, consuming the
// markers.
func emphasize(s string) string {
	return emphRe.ReplaceAllStringFunc(s, func(m string) string {
		inner := m[2 : len(m)-2]
		return style.Emphasis.Render(inner)
	})
}

// neutralize strips C0 control characters (except newline and tab) so
// received text cannot inject terminal control sequences into the
// viewport. This is the terminal analog of HTML escaping: the content is
// shown as literal text no matter what it contains.
func neutralize(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
