package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cineparadis/detail"
	"github.com/s0up4200/cineparadis/filter"
	"github.com/s0up4200/cineparadis/images"
	"github.com/s0up4200/cineparadis/render"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse [<kind>/<id>]",
	Short: "Browse titles interactively",
	Long: `Open an interactive session with a single detail page.

Commands:
  open <kind>/<id>   navigate to a title
  tab <0-4>          switch tab
  filter [expr]      filter recommendations, empty to clear
  preset [name]      use a preset filter, empty to clear
  refresh            fetch the current title again
  close              leave the current title
  quit               exit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	c := newCoordinator()
	defer c.Close()

	b := &browser{
		coord:     c,
		filters:   filters,
		images:    imgBuilder,
		formatter: render.NewConsoleFormatter(),
		out:       os.Stdout,
	}

	if len(args) == 1 {
		if err := b.exec(cmd.Context(), "open "+args[0]); err != nil {
			return err
		}
	}
	return b.run(cmd.Context(), os.Stdin)
}

// browser drives one coordinator from line commands
type browser struct {
	coord     *detail.Coordinator
	filters   *filter.Manager
	images    *images.Builder
	formatter *render.ConsoleFormatter
	out       io.Writer

	expression string
	preset     string
}

var errQuit = errors.New("quit")

func (b *browser) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(b.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(b.out)
			return scanner.Err()
		}

		err := b.exec(ctx, scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(b.out, "error: %v\n", err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (b *browser) exec(ctx context.Context, line string) error {
	command, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch command {
	case "":
		return nil
	case "quit", "exit", "q":
		return errQuit
	case "open":
		key, err := parseKey(arg)
		if err != nil {
			return err
		}
		if !b.coord.Activate(ctx, key) {
			b.print()
			return nil
		}
		fmt.Fprint(b.out, b.formatter.FormatPage(b.page()))
		return b.waitAndPrint(ctx)
	case "tab":
		index, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("%w: %q", detail.ErrInvalidTab, arg)
		}
		if _, err := b.coord.Select(index); err != nil {
			return err
		}
		b.print()
		return nil
	case "filter":
		if _, err := b.filters.Resolve(arg, ""); err != nil {
			return err
		}
		b.expression, b.preset = arg, ""
		b.print()
		return nil
	case "preset":
		if _, err := b.filters.Resolve("", arg); err != nil {
			return err
		}
		b.expression, b.preset = "", arg
		b.print()
		return nil
	case "refresh":
		if !b.coord.Refresh(ctx) {
			return fmt.Errorf("nothing to refresh")
		}
		return b.waitAndPrint(ctx)
	case "close":
		b.coord.Deactivate()
		b.print()
		return nil
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func (b *browser) waitAndPrint(ctx context.Context) error {
	if err := b.coord.Wait(ctx); err != nil {
		return err
	}
	b.print()
	return nil
}

func (b *browser) print() {
	fmt.Fprint(b.out, b.formatter.FormatPage(b.page()))
}

func (b *browser) page() render.Page {
	v := b.coord.Snapshot()

	var recs detail.RecommendationList
	if v.Loaded() {
		// Both were validated when set
		f, err := b.filters.Resolve(b.expression, b.preset)
		if err != nil {
			f = filter.MatchAll()
		}
		recs = filter.Apply(f, v.Views.Recommendations)
	}
	return render.BuildPage(v, recs, b.images)
}
