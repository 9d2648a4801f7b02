package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dalemusser/opportunityhub/internal/client/searchctl"
	"github.com/dalemusser/opportunityhub/internal/domain/filter"
	"github.com/urfave/cli/v3"
)

func httpClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// filterFlags are shared by search and saved save.
func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "type", Usage: "internship or volunteer"},
		&cli.StringFlag{Name: "category", Usage: "Category, e.g. technology"},
		&cli.StringFlag{Name: "state", Usage: "State"},
		&cli.StringFlag{Name: "lga", Usage: "Local government area"},
		&cli.BoolFlag{Name: "remote", Usage: "Remote opportunities only"},
		&cli.StringFlag{Name: "min-stipend", Usage: "Minimum stipend amount"},
		&cli.StringFlag{Name: "max-stipend", Usage: "Maximum stipend amount"},
		&cli.StringFlag{Name: "start-date", Usage: "Starting on or after (YYYY-MM-DD)"},
		&cli.StringFlag{Name: "end-date", Usage: "Ending on or before (YYYY-MM-DD)"},
		&cli.StringFlag{Name: "education", Usage: "Required education level"},
		&cli.StringFlag{Name: "experience", Usage: "Required experience level"},
		&cli.StringFlag{Name: "skills", Usage: "Comma-separated skills (any match)"},
		&cli.StringFlag{Name: "sort", Usage: "newest, deadline, stipend or popularity", Value: string(filter.SortNewest)},
		&cli.StringFlag{Name: "order", Usage: "asc or desc", Value: string(filter.Desc)},
	}
}

// modelFromFlags maps flags and positional words onto the querystring form
// and parses it, so the command coerces values exactly as the server does.
func modelFromFlags(cmd *cli.Command, limit int) filter.Model {
	v := url.Values{}
	set := func(key, val string) {
		if val = strings.TrimSpace(val); val != "" {
			v.Set(key, val)
		}
	}
	set(filter.KeySearch, strings.Join(cmd.Args().Slice(), " "))
	set(filter.KeyType, cmd.String("type"))
	set(filter.KeyCategory, cmd.String("category"))
	set(filter.KeyState, cmd.String("state"))
	set(filter.KeyLGA, cmd.String("lga"))
	if cmd.Bool("remote") {
		v.Set(filter.KeyRemote, "true")
	}
	set(filter.KeyMinStipend, cmd.String("min-stipend"))
	set(filter.KeyMaxStipend, cmd.String("max-stipend"))
	set(filter.KeyStartDate, cmd.String("start-date"))
	set(filter.KeyEndDate, cmd.String("end-date"))
	set(filter.KeyEducation, cmd.String("education"))
	set(filter.KeyExperience, cmd.String("experience"))
	set(filter.KeySkills, cmd.String("skills"))
	set(filter.KeySortBy, cmd.String("sort"))
	set(filter.KeySortOrder, cmd.String("order"))
	v.Set(filter.KeyLimit, strconv.Itoa(limit))
	return filter.FromValues(v)
}

func searchCommand() *cli.Command {
	flags := append(filterFlags(),
		&cli.IntFlag{Name: "limit", Usage: "Results per page (default from config)"},
		&cli.IntFlag{Name: "pages", Usage: "How many pages to load", Value: 1},
		&cli.BoolFlag{Name: "json", Usage: "Print raw JSON"},
	)
	return &cli.Command{
		Name:      "search",
		Usage:     "Search opportunities",
		ArgsUsage: "[words...]",
		Flags:     flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			client, cfg, err := newClient(cmd, logger)
			if err != nil {
				return err
			}
			limit := cfg.Limit
			if n := cmd.Int("limit"); n > 0 {
				limit = n
			}

			ctrl := searchctl.New(client, searchctl.Options{Logger: logger})
			defer ctrl.Close()

			if err := ctrl.Load(ctx, modelFromFlags(cmd, limit)); err != nil {
				return fmt.Errorf("search: %w", err)
			}
			for i := 1; i < cmd.Int("pages") && ctrl.Snapshot().HasMore; i++ {
				if err := ctrl.LoadMore(ctx); err != nil {
					return fmt.Errorf("load page %d: %w", i+1, err)
				}
			}

			s := ctrl.Snapshot()
			if cmd.Bool("json") {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"opportunities": s.Opportunities,
					"pagination":    s.Pagination,
				})
			}
			fmt.Print(renderResults(s))
			return nil
		},
	}
}

func suggestCommand() *cli.Command {
	return &cli.Command{
		Name:      "suggest",
		Usage:     "Show title suggestions for a prefix",
		ArgsUsage: "<prefix>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			prefix, ok := suggestPrefix(cmd.Args().Slice())
			if !ok {
				fmt.Print(renderSuggestions(nil))
				return nil
			}
			client, _, err := newClient(cmd, logger)
			if err != nil {
				return err
			}
			list, err := client.Suggest(ctx, prefix)
			if err != nil {
				return fmt.Errorf("suggest: %w", err)
			}
			fmt.Print(renderSuggestions(list))
			return nil
		},
	}
}

// suggestPrefix joins the arguments into a prefix and reports whether it is
// long enough to ask the server about.
func suggestPrefix(args []string) (string, bool) {
	prefix := strings.TrimSpace(strings.Join(args, " "))
	return prefix, utf8.RuneCountInString(prefix) >= searchctl.MinSuggestRunes
}
