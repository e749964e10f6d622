package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/renderwave/internal/config"
	"github.com/rshade/renderwave/internal/tui"
	listview "github.com/rshade/renderwave/internal/tui/list"
)

// Terminal size used when stdout reports none.
const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// browseRecord is one row of non-interactive browse output.
type browseRecord struct {
	Index int    `json:"index"`
	Group string `json:"group,omitempty"`
	Item  string `json:"item"`
}

// NewBrowseCmd creates the browse command, which shows the lines of a file
// as a progressively revealed virtual list.
func NewBrowseCmd() *cobra.Command {
	var (
		groupSep string
		plain    bool
	)

	cmd := &cobra.Command{
		Use:   "browse [FILE]",
		Short: "Browse lines as a progressively revealed list",
		Long: `Opens the lines of FILE (or standard input) in a full-screen virtual list. Rows are
revealed batch by batch using the configured batch size and interval, and the
keyboard scrolls by item and by page. With --group-sep, the text before the first
separator on each line is its group, shown in a sticky header.

When stdout is not a terminal the lines are printed instead.`,
		Example: `  # Browse a file
  renderwave browse items.txt

  # Group "fruit:apple" style lines by their prefix
  renderwave browse items.txt --group-sep :`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			items, err := readLines(cmd, path)
			if err != nil {
				return err
			}
			return runBrowse(cmd, items, path == "-", groupSep, plain)
		},
	}

	cmd.Flags().StringVar(&groupSep, "group-sep", "", "separator ending the group prefix of each line")
	cmd.Flags().BoolVar(&plain, "plain", false, "print the lines instead of opening the interactive list")

	return cmd
}

func runBrowse(cmd *cobra.Command, items []string, fromStdin bool, groupSep string, plain bool) error {
	groupOf := groupFunc(groupSep)

	term := tui.CurrentTerminal()
	if fromStdin {
		// Keys are read from the controlling terminal while stdin carries the items.
		term.StdinTTY = true
	}
	mode := tui.DetectOutputModeFor(term, os.LookupEnv, plain, false)
	logger.Debug().Ctx(cmd.Context()).
		Int("items", len(items)).
		Str("mode", mode.String()).
		Msg("browse starting")

	if mode != tui.OutputModeInteractive || cmd.OutOrStdout() != io.Writer(os.Stdout) {
		return printBrowse(cmd, items, groupOf)
	}

	cfg := configFromContext(cmd.Context())
	width, height := tui.TerminalSize(fallbackWidth, fallbackHeight)
	model := newBrowseModel(items, width, height, cfg.List, groupOf)

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(cmd.Context())}
	if fromStdin {
		opts = append(opts, tea.WithInputTTY())
	}
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run interactive list: %w", err)
	}
	return nil
}

// groupFunc returns the prefix grouping for sep, or nil without one.
func groupFunc(sep string) listview.GroupFunc[string] {
	if sep == "" {
		return nil
	}
	return func(item string) string {
		group, _, found := strings.Cut(item, sep)
		if !found {
			return ""
		}
		return group
	}
}

func printBrowse(cmd *cobra.Command, items []string, groupOf listview.GroupFunc[string]) error {
	records := make([]any, len(items))
	rows := make([]browseRecord, len(items))
	for i, item := range items {
		rows[i] = browseRecord{Index: i, Item: item}
		if groupOf != nil {
			rows[i].Group = groupOf(item)
		}
		records[i] = rows[i]
	}

	return render(cmd, rows, records, func(w io.Writer) error {
		for _, r := range rows {
			if groupOf != nil {
				fmt.Fprintf(w, "%d\t%s\t%s\n", r.Index, r.Group, r.Item)
				continue
			}
			fmt.Fprintf(w, "%d\t%s\n", r.Index, r.Item)
		}
		return nil
	})
}

// browseModel wraps the virtual list with quit handling.
type browseModel struct {
	list *listview.VirtualListModel[string]
	quit key.Binding
}

func newBrowseModel(
	items []string,
	width, height int,
	lc config.ListConfig,
	groupOf listview.GroupFunc[string],
) browseModel {
	opts := []listview.Option[string]{
		listview.WithReveal[string](lc.BatchSize, time.Duration(lc.IntervalMS)*time.Millisecond),
	}
	if lc.SnapToBatch {
		opts = append(opts, listview.WithSnapToBatch[string](lc.BatchSize))
	}
	if !lc.KeyboardNavigation {
		opts = append(opts, listview.WithKeyMap[string](listview.KeyMap{}))
	}
	if groupOf != nil {
		opts = append(opts, listview.WithGroupFunc(groupOf))
	}

	return browseModel{
		list: listview.NewVirtualListModel(items, height, width, renderLine, opts...),
		quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func renderLine(item string, index int) string {
	return fmt.Sprintf("%5d  %s", index, item)
}

func (m browseModel) Init() tea.Cmd {
	return m.list.Init()
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.quit) {
		return m, tea.Quit
	}
	_, cmd := m.list.Update(msg)
	return m, cmd
}

func (m browseModel) View() string {
	return m.list.View()
}
