package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/renderwave/internal/wave"
)

// groupRecord is one NDJSON line of the group command.
type groupRecord struct {
	Label string `json:"label"`
	Index int    `json:"index"`
}

// NewGroupCmd creates the group command, which maps each distinct label to
// the index of its first occurrence.
func NewGroupCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "group [labels...]",
		Short: "Map each label to its first index",
		Long: `Prints every distinct label with the index of its first occurrence, in order of
first appearance. Labels come from the arguments or from --file, one label per
line ("-" reads standard input). An empty line is the default (empty) label.`,
		Example: `  # fruit -> 0, veg -> 1, dairy -> 3
  renderwave group fruit veg fruit dairy

  # Labels from a file as JSON
  renderwave group --file labels.txt --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			labels := args
			if file != "" {
				if len(args) > 0 {
					return errors.New("pass labels as arguments or --file, not both")
				}
				var err error
				if labels, err = readLines(cmd, file); err != nil {
					return err
				}
			}
			return runGroup(cmd, labels)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", `file with one label per line ("-" for stdin)`)

	return cmd
}

func runGroup(cmd *cobra.Command, labels []string) error {
	index := wave.GroupIndexes(labels)
	logger.Debug().Ctx(cmd.Context()).
		Int("labels", len(labels)).
		Int("groups", index.Len()).
		Msg("labels grouped")

	records := make([]any, 0, index.Len())
	for label, i := range index.All() {
		records = append(records, groupRecord{Label: label, Index: i})
	}

	return render(cmd, index, records, func(w io.Writer) error {
		if index.Len() == 0 {
			fmt.Fprintln(w, "No labels.")
			return nil
		}
		fmt.Fprintln(w, "LABEL\tFIRST INDEX")
		for label, i := range index.All() {
			if label == wave.DefaultLabel {
				label = "(default)"
			}
			fmt.Fprintf(w, "%s\t%d\n", label, i)
		}
		return nil
	})
}

// readLines reads the lines of path, or of the command's input for "-".
func readLines(cmd *cobra.Command, path string) ([]string, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}
