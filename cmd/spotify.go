package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/dance-party/internal/formatter"
	"github.com/desertthunder/dance-party/internal/models"
	"github.com/desertthunder/dance-party/internal/shared"
	"github.com/desertthunder/dance-party/internal/ui"
	"github.com/urfave/cli/v3"
)

// SpotifyMe prints the current user's profile.
func (r *Runner) SpotifyMe(ctx context.Context, cmd *cli.Command) error {
	if err := r.prepare(cmd); err != nil {
		return err
	}

	user, err := r.client.FetchProfile(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(user, true)
	}
	formatter.WriteProfile(r.output, models.NewProfile(user))
	return nil
}

// SpotifySearch searches albums, artists and tracks.
func (r *Runner) SpotifySearch(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}
	var kind models.Kind
	if name := cmd.String("kind"); name != "" {
		var ok bool
		if kind, ok = models.ParseKind(name); !ok {
			return fmt.Errorf("%w: kind %q, want album, artist or track", shared.ErrInvalidArgument, name)
		}
	}
	if err := r.prepare(cmd); err != nil {
		return err
	}

	result, err := r.client.Search(ctx, query)
	if err != nil {
		return err
	}
	rows := models.FlattenSearch(result)
	if kind != "" {
		rows = models.Filter(rows, kind)
	}

	if path := cmd.String("csv"); path != "" {
		if err := formatter.WriteSearchCSV(rows, path); err != nil {
			return err
		}
		r.logger.Info("wrote search results", "path", path, "rows", len(rows))
	}

	if cmd.Bool("json") {
		return r.writeJSON(rows, true)
	}
	formatter.WriteSearch(r.output, query, rows)
	return nil
}

// SpotifyBrowse opens the interactive search browser.
func (r *Runner) SpotifyBrowse(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}
	if err := r.prepare(cmd); err != nil {
		return err
	}

	model := ui.NewModel(ctx, r.client, query)
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if err := model.Err(); err != nil {
		return err
	}

	for _, uri := range model.Queued() {
		formatter.Success(r.output, "Queued %s", uri)
	}
	return nil
}

// SpotifyQueue adds a track to the active player's queue.
func (r *Runner) SpotifyQueue(ctx context.Context, cmd *cli.Command) error {
	uri := strings.TrimSpace(cmd.StringArg("uri"))
	if uri == "" {
		return fmt.Errorf("%w: track uri", shared.ErrMissingArgument)
	}
	if err := r.prepare(cmd); err != nil {
		return err
	}

	if err := r.client.EnqueueTrack(ctx, uri); err != nil {
		return err
	}
	formatter.Success(r.output, "Queued %s", uri)
	return nil
}
