package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/dance-party/internal/repositories"
	"github.com/desertthunder/dance-party/internal/services"
	"github.com/desertthunder/dance-party/internal/session"
	"github.com/desertthunder/dance-party/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The store, session manager and API client are opened lazily by [Runner.prepare], so commands like
// setup never touch them.
type Runner struct {
	config      *shared.Config
	store       session.Store
	db          *sql.DB
	manager     *session.Manager
	client      services.Client
	logger      *log.Logger
	output      io.Writer
	openBrowser func(url string) error
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Tests pass a Store and Client directly; main leaves both nil.
type RunnerOpts struct {
	Config      *shared.Config
	Store       session.Store
	Client      services.Client
	Logger      *log.Logger
	Output      io.Writer
	OpenBrowser func(url string) error
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.OpenBrowser == nil {
		opts.OpenBrowser = shared.OpenBrowser
	}

	return &Runner{
		config:      opts.Config,
		store:       opts.Store,
		client:      opts.Client,
		logger:      opts.Logger,
		output:      opts.Output,
		openBrowser: opts.OpenBrowser,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, serveCommand, loginCommand, authCommand, spotifyCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before resolves the configuration and log level for every command.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if r.config == nil {
		config, err := shared.ResolveConfig(cmd.String("config"))
		if err != nil {
			return ctx, err
		}
		r.config = config
	}

	if err := shared.SetLogLevel(r.logger, r.config.Log.Level); err != nil {
		return ctx, err
	}
	if cmd.Bool("verbose") {
		r.logger.SetLevel(log.DebugLevel)
	}

	return ctx, r.config.Validate()
}

// After closes the database opened by [Runner.prepare], if any.
func (r *Runner) After(ctx context.Context, cmd *cli.Command) error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// prepare opens the session store and builds the manager and API client on first use.
func (r *Runner) prepare(cmd *cli.Command) error {
	if r.manager != nil {
		return nil
	}
	if r.config == nil {
		r.config = shared.DefaultConfig()
	}

	if r.store == nil {
		if cmd.Bool("ephemeral") {
			r.logger.Debug("using in-memory session store")
			r.store = session.NewMemoryStore()
		} else {
			r.logger.Debug("opening database", "path", r.config.Database.Path)
			db, err := shared.OpenDatabase(r.config.Database)
			if err != nil {
				return fmt.Errorf("%w: %w", shared.ErrStorage, err)
			}
			r.db = db
			r.store = repositories.NewLocalStorage(db)
		}
	}

	r.manager = session.NewManager(session.Options{
		ClientID:    r.config.Credentials.Spotify.ClientID,
		RedirectURI: r.config.Credentials.Spotify.RedirectURI,
		Store:       r.store,
		Logger:      shared.WithLogger(r.logger, "component", "session"),
	})

	if r.client == nil {
		client, err := services.NewSpotifyService(services.SpotifyServiceOpts{
			TokenSource: r.manager.TokenSource(),
			BaseURL:     r.config.API.BaseURL,
			Logger:      shared.WithLogger(r.logger, "component", "spotify"),
		})
		if err != nil {
			return fmt.Errorf("failed to create Spotify client: %w", err)
		}
		r.client = client
	}

	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
