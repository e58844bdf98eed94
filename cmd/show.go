package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cineparadis/detail"
	"github.com/s0up4200/cineparadis/filter"
	"github.com/s0up4200/cineparadis/render"
)

var concurrency int

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <kind>/<id> [<kind>/<id>...]",
	Short: "Show the detail page of one or more titles",
	Long: `Fetch one or more movies or TV shows and print the selected tab.

Titles are given as kind/id, for example movie/949 or tv/1438. Recommendations
on the "More Like This" tab (--tab 4) can be narrowed with --filter or --preset.`,
	Example: `  cineparadis show movie/949
  cineparadis show movie/949 tv/1438 --tab 4 --filter 'VoteAverage >= 7.5'
  cineparadis show movie/949 --tab 4 --filter 'isSeries() and containsFold(Overview, "detective")'
  cineparadis show tv/1438 --tab 4 --preset series --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().IntVarP(&tabIndex, "tab", "t", 0, "tab to show (0 Top Cast, 1 Details, 2 Photos, 3 Videos, 4 More Like This)")
	showCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression for recommendations")
	showCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	showCmd.Flags().BoolVar(&jsonOutput, "json", false, "print pages as JSON")
	showCmd.Flags().IntVar(&concurrency, "concurrency", detail.DefaultBatchConcurrency, "maximum titles fetched at once")
}

func runShow(cmd *cobra.Command, args []string) error {
	keys := make([]detail.Key, 0, len(args))
	for _, arg := range args {
		key, err := parseKey(arg)
		if err != nil {
			return err
		}
		keys = append(keys, key)
	}

	tab := detail.Tab(tabIndex)
	if !tab.Valid() {
		return fmt.Errorf("%w: %d", detail.ErrInvalidTab, tabIndex)
	}

	f, err := filters.Resolve(filterExpr, preset)
	if err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}

	logger.Info().Int("titles", len(keys)).Str("tab", tab.String()).Msg("Fetching titles")

	views, err := detail.LoadMany(cmd.Context(), keys, tab, concurrency, newCoordinator)
	if err != nil {
		return err
	}

	pages := make([]render.Page, 0, len(views))
	var failed int
	for _, v := range views {
		if v.State == detail.StateFailed {
			failed++
		}
		var recs detail.RecommendationList
		if v.Loaded() {
			recs = filter.Apply(f, v.Views.Recommendations)
		}
		pages = append(pages, render.BuildPage(v, recs, imgBuilder))
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if len(pages) == 1 {
			err = enc.Encode(pages[0])
		} else {
			err = enc.Encode(pages)
		}
		if err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
	} else {
		formatter := render.NewConsoleFormatter()
		for _, p := range pages {
			fmt.Print(formatter.FormatPage(p))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d titles failed to load", failed, len(views))
	}
	return nil
}

// parseKey accepts "movie/949", "tv/1438" or "movie:949"
func parseKey(arg string) (detail.Key, error) {
	kind, id, ok := strings.Cut(arg, "/")
	if !ok {
		kind, id, ok = strings.Cut(arg, ":")
	}
	if !ok {
		return detail.Key{}, fmt.Errorf("invalid title %q: expected kind/id, e.g. movie/949", arg)
	}
	key, err := detail.NewKey(kind, id)
	if err != nil {
		return detail.Key{}, fmt.Errorf("invalid title %q: %w", arg, err)
	}
	return key, nil
}
