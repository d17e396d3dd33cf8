// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI browses one search and queues tracks from it:
//  1. [ResultsView] : Browse album, artist and track hits for the query
//  2. [ConfirmView] : Confirm queueing the selected track
//  3. [DoneView] : Show whether the track was queued
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// API calls run as [tea.Cmd] values so the interface never blocks on the network.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
