package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/dance-party/internal/models"
)

const (
	spotifyGreen = lipgloss.Color("#1DB954")
	red          = lipgloss.Color("#E22134")
	amber        = lipgloss.Color("#FFA42B")
	grey         = lipgloss.Color("#727272")
	black        = lipgloss.Color("#121212")
)

// theme holds the styles shared by every view.
type theme struct {
	heading lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
	muted   lipgloss.Style
	badges  map[models.Kind]lipgloss.Style
}

var styles = newTheme()

func newTheme() theme {
	badge := lipgloss.NewStyle().Foreground(black).Bold(true).Padding(0, 1)
	return theme{
		heading: lipgloss.NewStyle().Foreground(spotifyGreen).Bold(true).MarginBottom(1),
		success: lipgloss.NewStyle().Foreground(spotifyGreen).Bold(true),
		failure: lipgloss.NewStyle().Foreground(red).Bold(true),
		warning: lipgloss.NewStyle().Foreground(amber),
		muted:   lipgloss.NewStyle().Foreground(grey).Italic(true),
		badges: map[models.Kind]lipgloss.Style{
			models.KindAlbum:  badge.Background(amber),
			models.KindArtist: badge.Background(grey),
			models.KindTrack:  badge.Background(spotifyGreen),
		},
	}
}

// badge renders kind as an upper-case label, e.g. " TRACK ".
func (t theme) badge(kind models.Kind) string {
	style, ok := t.badges[kind]
	if !ok {
		style = t.muted
	}
	return style.Render(strings.ToUpper(string(kind)))
}
