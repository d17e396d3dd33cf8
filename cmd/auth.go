package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/dance-party/internal/formatter"
	"github.com/desertthunder/dance-party/internal/session"
	"github.com/desertthunder/dance-party/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthStatus reports whether an access token is stored.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.prepare(cmd); err != nil {
		return err
	}

	ok, err := r.manager.IsAuthenticated()
	if err != nil {
		return err
	}

	if ok {
		formatter.Success(r.output, "Authenticated")
	} else {
		formatter.Failure(r.output, "Not authenticated")
	}
	return nil
}

// AuthURL prints a fresh authorization URL. The nonce it carries is stored, so a later
// `auth callback` with the resulting redirect validates.
func (r *Runner) AuthURL(ctx context.Context, cmd *cli.Command) error {
	if err := r.prepare(cmd); err != nil {
		return err
	}

	url, err := r.manager.GenerateLoginURL()
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", url)
}

// AuthCallback validates a redirect URL (or just its fragment) pasted from the browser.
func (r *Runner) AuthCallback(ctx context.Context, cmd *cli.Command) error {
	raw := strings.TrimSpace(cmd.StringArg("url"))
	if raw == "" {
		return fmt.Errorf("%w: redirect URL or fragment", shared.ErrMissingArgument)
	}
	if err := r.prepare(cmd); err != nil {
		return err
	}

	var notices []string
	nav := &session.StaticNavigator{Fragment: fragmentOf(raw)}
	notifier := session.NotifierFunc(func(message string) {
		notices = append(notices, message)
	})

	ok, err := r.manager.With(nav, notifier).IsAuthenticated()
	if err != nil {
		return err
	}

	if len(notices) > 0 {
		for _, n := range notices {
			formatter.Failure(r.output, "%s", n)
		}
		return fmt.Errorf("%w: state mismatch", shared.ErrAuthFailed)
	}
	if !ok {
		formatter.Failure(r.output, "No access token in %q", raw)
		return shared.ErrNotAuthenticated
	}

	formatter.Success(r.output, "Authenticated")
	return nil
}

// AuthLogout forgets the stored access token.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.prepare(cmd); err != nil {
		return err
	}

	if err := r.manager.Logout(); err != nil {
		return err
	}
	formatter.Success(r.output, "Logged out")
	return nil
}

// fragmentOf returns what follows '#' in raw, or raw itself when it has none.
func fragmentOf(raw string) string {
	if _, fragment, found := strings.Cut(raw, "#"); found {
		return fragment
	}
	return raw
}
