package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/dance-party/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgResultsFetched MsgKind = iota
	MsgTrackQueued
)

type resultsFetched struct {
	rows []models.SearchRow
	err  error
}

type trackQueued struct {
	row models.SearchRow
	err error
}

// resultsFetchedMsg is the constructor for [MsgResultsFetched]
func resultsFetchedMsg(rows []models.SearchRow, err error) Msg {
	return Msg{kind: MsgResultsFetched, data: resultsFetched{rows, err}}
}

// trackQueuedMsg is the constructor for [MsgTrackQueued]
func trackQueuedMsg(row models.SearchRow, err error) Msg {
	return Msg{kind: MsgTrackQueued, data: trackQueued{row, err}}
}
