// Package style centralizes lipgloss colors and styles for the MOA
// console. Styles are rebuilt when the theme changes; packages reference
// the exported vars rather than constructing their own.
package style

import "github.com/charmbracelet/lipgloss"

// Colors, populated from the active theme by SetTheme.
var (
	Primary   lipgloss.TerminalColor
	Secondary lipgloss.TerminalColor
	Success   lipgloss.TerminalColor
	Warning   lipgloss.TerminalColor
	Error     lipgloss.TerminalColor
	Muted     lipgloss.TerminalColor
	Dim       lipgloss.TerminalColor
	Border    lipgloss.TerminalColor
)

// Styles, rebuilt by SetTheme.
var (
	Bold      lipgloss.Style
	Faint     lipgloss.Style
	ErrorText lipgloss.Style

	// Banner
	BannerTitle  lipgloss.Style
	BannerDetail lipgloss.Style

	// Prompt
	PromptChar lipgloss.Style

	// Chat labels
	UserLabel  lipgloss.Style
	AgentLabel lipgloss.Style
	ErrorLabel lipgloss.Style

	// In-progress status placeholder
	StatusText   lipgloss.Style
	SpinnerStyle lipgloss.Style

	// Content transformation
	Link     lipgloss.Style
	Emphasis lipgloss.Style

	// Status bar and hints
	StatusBar lipgloss.Style
	Hint      lipgloss.Style
	MsgMeta   lipgloss.Style

	// Toast notices
	ToastWarn lipgloss.Style
)

func init() {
	SetTheme("dark")
}

// SetTheme switches the active palette and rebuilds every exported style.
// Unknown names fall back to dark.
func SetTheme(name string) {
	t, ok := Themes[name]
	if !ok {
		t = Themes["dark"]
	}
	CurrentThemeName = t.Name

	Primary = t.Primary
	Secondary = t.Secondary
	Success = t.Success
	Warning = t.Warning
	Error = t.Error
	Muted = t.Muted
	Dim = t.Dim
	Border = t.Border

	Bold = lipgloss.NewStyle().Bold(true)
	Faint = lipgloss.NewStyle().Foreground(Muted)
	ErrorText = lipgloss.NewStyle().Foreground(Error).Bold(true)

	BannerTitle = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	BannerDetail = lipgloss.NewStyle().Foreground(Muted)

	PromptChar = lipgloss.NewStyle().Foreground(Primary).Bold(true)

	UserLabel = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	AgentLabel = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	ErrorLabel = lipgloss.NewStyle().Foreground(Error).Bold(true)

	StatusText = lipgloss.NewStyle().Foreground(Muted).Italic(true)
	SpinnerStyle = lipgloss.NewStyle().Foreground(Primary)

	Link = lipgloss.NewStyle().Foreground(Secondary).Underline(true)
	Emphasis = lipgloss.NewStyle().Bold(true)

	StatusBar = lipgloss.NewStyle().Foreground(Muted).PaddingLeft(1)
	Hint = lipgloss.NewStyle().Foreground(Dim)
	MsgMeta = lipgloss.NewStyle().Foreground(Muted).Italic(true)

	ToastWarn = lipgloss.NewStyle().Foreground(Warning)
}
