package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dalemusser/opportunityhub/internal/client/searchapi"
	"github.com/dalemusser/opportunityhub/internal/client/searchctl"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

var errNoToken = errors.New("saved searches need a token (--token or OPPHUB_TOKEN)")

// withController runs fn with a controller over a configured client. fn
// is not called for anonymous clients; the controller would ignore it.
func withController(ctx context.Context, cmd *cli.Command, fn func(*searchctl.Controller, *zap.Logger) error) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	client, _, err := newClient(cmd, logger)
	if err != nil {
		return err
	}
	if !client.Authenticated() {
		return errNoToken
	}
	ctrl := searchctl.New(client, searchctl.Options{Logger: logger})
	defer ctrl.Close()
	return fn(ctrl, logger)
}

func savedCommand() *cli.Command {
	return &cli.Command{
		Name:  "saved",
		Usage: "Manage saved searches",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List saved searches, newest first",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withController(ctx, cmd, func(c *searchctl.Controller, _ *zap.Logger) error {
						if err := c.LoadSavedSearches(ctx); err != nil {
							return fmt.Errorf("list saved searches: %w", err)
						}
						fmt.Print(renderSaved(c.Snapshot().SavedSearches))
						return nil
					})
				},
			},
			{
				Name:      "save",
				Usage:     "Save a search under a name",
				ArgsUsage: "<name> [words...]",
				Flags:     filterFlags(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					name := strings.TrimSpace(cmd.Args().First())
					if name == "" {
						return errors.New("a name is required")
					}
					return withController(ctx, cmd, func(c *searchctl.Controller, _ *zap.Logger) error {
						m := modelFromFlags(cmd, 0)
						m.Query = strings.Join(cmd.Args().Tail(), " ")
						if err := c.Load(ctx, m); err != nil {
							return fmt.Errorf("search: %w", err)
						}
						saved, err := c.SaveSearch(ctx, name)
						if err != nil {
							return fmt.Errorf("save search: %w", err)
						}
						fmt.Printf("Saved %q (%s), %d matching now\n", saved.Name, saved.ID.Hex(), c.Snapshot().Pagination.Total)
						return nil
					})
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a saved search",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id := strings.TrimSpace(cmd.Args().First())
					if id == "" {
						return errors.New("an id is required")
					}
					return withController(ctx, cmd, func(c *searchctl.Controller, _ *zap.Logger) error {
						err := c.DeleteSavedSearch(ctx, id)
						if errors.Is(err, searchapi.ErrNotFound) {
							return fmt.Errorf("no saved search with id %s", id)
						}
						if err != nil {
							return fmt.Errorf("delete saved search: %w", err)
						}
						fmt.Println("Deleted.")
						return nil
					})
				},
			},
			{
				Name:      "run",
				Usage:     "Run a saved search",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id := strings.TrimSpace(cmd.Args().First())
					return withController(ctx, cmd, func(c *searchctl.Controller, logger *zap.Logger) error {
						if err := c.LoadSavedSearches(ctx); err != nil {
							return fmt.Errorf("list saved searches: %w", err)
						}
						for _, ss := range c.Snapshot().SavedSearches {
							if ss.ID.Hex() != id {
								continue
							}
							logger.Debug("applying saved search", zap.String("name", ss.Name))
							if err := c.ApplySavedSearch(ctx, ss); err != nil {
								return fmt.Errorf("search: %w", err)
							}
							fmt.Print(renderResults(c.Snapshot()))
							return nil
						}
						return fmt.Errorf("no saved search with id %s", id)
					})
				},
			},
		},
	}
}
