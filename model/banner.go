package model

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/geminiflow/moa-tui/style"
)

// BannerModel renders the one-line header:
//
//	MOA Console v1.2 · http://localhost:8000
//
// It is static after construction; Update handles no messages.
type BannerModel struct {
	version    string
	backendURL string
}

// NewBanner returns a BannerModel for the given version and backend.
func NewBanner(version, backendURL string) BannerModel {
	return BannerModel{version: version, backendURL: backendURL}
}

// Version returns the displayed version string.
func (m BannerModel) Version() string {
	return m.version
}

// Init satisfies tea.Model.
func (m BannerModel) Init() tea.Cmd {
	return nil
}

// Update satisfies tea.Model. The banner is static; messages pass through.
func (m BannerModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the banner line.
func (m BannerModel) View() string {
	title := style.BannerTitle.Render("MOA Console " + m.version)
	sep := style.Faint.Render(" · ")
	backend := style.BannerDetail.Render(m.backendURL)
	return title + sep + backend
}
