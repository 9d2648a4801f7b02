// Command oppsearch searches the opportunity marketplace from a terminal.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dalemusser/opportunityhub/internal/client/cliconfig"
	"github.com/dalemusser/opportunityhub/internal/client/searchapi"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	app := &cli.Command{
		Name:  "oppsearch",
		Usage: "Search internships and volunteer opportunities",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path",
				Value: defaultConfigPathOrExit(),
			},
			&cli.StringFlag{
				Name:  "url",
				Usage: "API base URL (overrides the config file)",
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "Bearer token for saved searches",
				Sources: cli.EnvVars("OPPHUB_TOKEN"),
			},
		},
		Commands: []*cli.Command{
			searchCommand(),
			suggestCommand(),
			savedCommand(),
			initCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func defaultConfigPathOrExit() string {
	path, err := cliconfig.DefaultPath()
	if err != nil {
		log.Fatalf("Failed to get default config path: %v", err)
	}
	return path
}

// newLogger returns a development logger with --debug and a no-op one
// otherwise.
func newLogger(cmd *cli.Command) (*zap.Logger, error) {
	if !cmd.Bool("debug") {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

// newClient builds the API client from the config file and global flags.
func newClient(cmd *cli.Command, logger *zap.Logger) (*searchapi.Client, *cliconfig.Config, error) {
	cfg, err := cliconfig.Load(cmd.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if u := cmd.String("url"); u != "" {
		cfg.BaseURL = u
	}
	if tok := cmd.String("token"); tok != "" {
		cfg.Token = tok
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	client, err := searchapi.New(cfg.BaseURL,
		searchapi.WithToken(cfg.Token),
		searchapi.WithLogger(logger),
		searchapi.WithHTTPClient(httpClient(cfg.Timeout.Duration)),
	)
	if err != nil {
		return nil, nil, err
	}
	return client, cfg, nil
}

func initCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a default configuration file",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force", Usage: "Overwrite an existing file"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.String("config")
			if _, err := os.Stat(path); err == nil && !cmd.Bool("force") {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			cfg := cliconfig.Default()
			if u := cmd.String("url"); u != "" {
				cfg.BaseURL = u
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.Save(path); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	}
}
