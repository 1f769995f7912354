// Package sources implements the source inventory command.
package sources

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/snipfeed/internal/config"
)

// Command returns the sources command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the configured sources",
		Long:  `Print a table of every configured source adapter and its units of work.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			renderTable(cfg)
			return nil
		},
	}
}

// renderTable prints the source inventory.
func renderTable(cfg *config.Config) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Adapter", "Type", "Source", "Units", "Limit", "Delay"})

	if cfg.Sources.API.Enabled {
		api := cfg.Sources.API
		t.AppendRow(table.Row{
			api.Name,
			"api",
			api.Source,
			strings.Join(api.Tags, ", "),
			api.PerTagLimit,
			api.Delay,
		})
	}

	for i := range cfg.Sources.Feeds {
		feed := cfg.Sources.Feeds[i]
		urls := make([]string, 0, len(feed.Feeds))
		for _, entry := range feed.Feeds {
			if entry.Source != "" {
				urls = append(urls, fmt.Sprintf("%s (%s)", entry.URL, entry.Source))
				continue
			}
			urls = append(urls, entry.URL)
		}

		t.AppendRow(table.Row{
			feed.Name,
			"rss",
			feed.Source,
			strings.Join(urls, "\n"),
			feed.ItemLimit,
			feed.Delay,
		})
	}

	t.Render()
}
