// submodule cmd contains command definitions
package main

import (
	"time"

	"github.com/urfave/cli/v3"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Enable debug logging",
		},
		&cli.BoolFlag{
			Name:  "ephemeral",
			Usage: "Keep session state in memory instead of the database",
		},
	}
}

// setupCommand creates the config file and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create config.toml, initialize the database and run migrations",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "reset",
				Usage: "Roll back every migration and re-apply them, forgetting the stored session",
			},
		},
		Action: r.Setup,
	}
}

// serveCommand runs the web front-end.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web front-end until interrupted",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the home page in the default browser",
			},
		},
		Action: r.Serve,
	}
}

// loginCommand runs the browser handshake once and exits.
func loginCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Log in through the browser, then print your profile",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "How long to wait for the browser to come back",
				Value: 2 * time.Minute,
			},
		},
		Action: r.Login,
	}
}

// authCommand handles session state without a browser.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the stored session",
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Report whether an access token is stored",
				Action: r.AuthStatus,
			},
			{
				Name:   "url",
				Usage:  "Print a fresh authorization URL (stores its state)",
				Action: r.AuthURL,
			},
			{
				Name:  "callback",
				Usage: "Complete a login from a pasted redirect URL or fragment",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "url"},
				},
				Action: r.AuthCallback,
			},
			{
				Name:   "logout",
				Usage:  "Forget the stored access token",
				Action: r.AuthLogout,
			},
		},
	}
}

// spotifyCommand handles Web API calls
func spotifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "spotify",
		Aliases: []string{"spot"},
		Usage:   "Call the Spotify Web API with the stored token",
		Commands: []*cli.Command{
			{
				Name:  "me",
				Usage: "Show the current user's profile",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SpotifyMe,
			},
			{
				Name:  "search",
				Usage: "Search albums, artists and tracks",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.StringFlag{
						Name:  "kind",
						Usage: "Only keep results of this kind (album, artist or track)",
					},
					&cli.StringFlag{
						Name:  "csv",
						Usage: "Also write the results to this CSV file",
					},
				},
				Action: r.SpotifySearch,
			},
			{
				Name:  "browse",
				Usage: "Browse search results interactively and queue tracks",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Action: r.SpotifyBrowse,
			},
			{
				Name:  "queue",
				Usage: "Add a track to the active player's queue",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "uri"},
				},
				Action: r.SpotifyQueue,
			},
		},
	}
}
