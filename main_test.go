package main

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/geminiflow/moa-tui/style"
)

func TestDisableColorStripsANSI(t *testing.T) {
	prev := lipgloss.ColorProfile()
	defer lipgloss.SetColorProfile(prev)

	disableColor()

	for name, s := range map[string]lipgloss.Style{
		"error":  style.ErrorText,
		"banner": style.BannerTitle,
		"link":   style.Link,
	} {
		out := s.Render("x")
		assert.Equal(t, "x", out, "style %q must render plain text", name)
		assert.False(t, strings.Contains(out, "\x1b["), "style %q must emit no escape sequences", name)
	}
}
