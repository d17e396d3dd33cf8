package main

import (
	"context"
	"fmt"
	"net"

	"github.com/desertthunder/dance-party/internal/formatter"
	"github.com/desertthunder/dance-party/internal/models"
	"github.com/desertthunder/dance-party/internal/server"
	"github.com/desertthunder/dance-party/internal/shared"
	"github.com/desertthunder/dance-party/internal/web"
	"github.com/urfave/cli/v3"
)

func (r *Runner) newWebApp() (*web.App, error) {
	app, err := web.New(web.Options{
		Manager: r.manager,
		Client:  r.client,
		Logger:  shared.WithLogger(r.logger, "component", "web"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create web app: %w", err)
	}
	return app, nil
}

// Serve runs the web front-end until the context is cancelled (Ctrl-C).
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if err := r.prepare(cmd); err != nil {
		return err
	}

	app, err := r.newWebApp()
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", r.config.Server.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", r.config.Server.Addr(), err)
	}

	home := r.config.Server.BaseURL() + "/"
	formatter.Success(r.output, "Serving on %s", home)
	if cmd.Bool("open") {
		if err := r.openBrowser(home); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
		}
	}

	srv := server.NewHTTPServer(r.config.Server.Addr(), app.Handler())
	return server.ServeListener(ctx, srv, ln, r.logger)
}

// Login serves the front-end just long enough for one browser handshake, then prints the profile.
//
// The configured redirect_uri must point at this server for the provider to send the browser back.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	if err := r.prepare(cmd); err != nil {
		return err
	}

	app, err := r.newWebApp()
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", r.config.Server.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", r.config.Server.Addr(), err)
	}

	serveCtx, stop := context.WithCancel(ctx)
	defer stop()

	srv := server.NewHTTPServer(ln.Addr().String(), app.Handler())
	served := make(chan error, 1)
	go func() { served <- server.ServeListener(serveCtx, srv, ln, r.logger) }()

	loginURL := r.config.Server.BaseURL() + "/login"
	r.logger.Info("waiting for browser login", "url", loginURL, "timeout", cmd.Duration("timeout"))
	if err := r.openBrowser(loginURL); err != nil {
		r.logger.Warn("failed to open browser, visit the URL manually", "url", loginURL, "error", err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
	defer cancel()

	select {
	case <-app.Authenticated():
	case <-waitCtx.Done():
		stop()
		<-served
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: no login within %s", shared.ErrTimeout, cmd.Duration("timeout"))
	}

	stop()
	if err := <-served; err != nil {
		r.logger.Warn("server did not shut down cleanly", "error", err)
	}

	formatter.Success(r.output, "Logged in")

	user, err := r.client.FetchProfile(ctx)
	if err != nil {
		return err
	}
	formatter.WriteProfile(r.output, models.NewProfile(user))
	return nil
}
