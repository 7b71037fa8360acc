package cli

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	builtindocs "github.com/coretravis/refwire-cli/docs"
	"github.com/coretravis/refwire-cli/internal/ui"
)

type docsTopic struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Browse the bundled guides",
	Long: `Browse long-form documentation bundled into the refwire binary.

Run without arguments to list topics; name a topic to read it. For
command-level usage, use 'refwire help <command>'.

Examples:
  refwire docs
  refwire docs importing`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, err := listDocsTopics()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		if len(args) == 0 {
			if isJSONOutput() {
				outputSuccess(topics, &Meta{Count: len(topics)})
				return nil
			}
			fmt.Println(ui.Header("Guides:"))
			tbl := ui.NewTable(2)
			for _, t := range topics {
				tbl.AddRow("refwire docs "+t.ID, t.Title)
			}
			fmt.Print(tbl.String())
			fmt.Println(ui.Hint("For command docs, use: refwire help <command>"))
			return nil
		}

		id := strings.TrimSuffix(strings.ToLower(args[0]), ".md")
		for _, t := range topics {
			if t.ID == id {
				return showDocsTopic(t)
			}
		}
		available := make([]string, len(topics))
		for i, t := range topics {
			available[i] = t.ID
		}
		return handleErrorMsg(ErrInvalidInput,
			fmt.Sprintf("unknown docs topic %q", args[0]),
			"Available topics: "+strings.Join(available, ", "))
	},
}

func listDocsTopics() ([]docsTopic, error) {
	entries, err := fs.Glob(builtindocs.FS, "*.md")
	if err != nil {
		return nil, err
	}
	sort.Strings(entries)

	topics := make([]docsTopic, 0, len(entries))
	for _, name := range entries {
		id := strings.TrimSuffix(name, ".md")
		topics = append(topics, docsTopic{ID: id, Title: docsTopicTitle(name, id)})
	}
	return topics, nil
}

// docsTopicTitle takes the first "# " heading, falling back to the filename.
func docsTopicTitle(name, id string) string {
	content, err := fs.ReadFile(builtindocs.FS, name)
	if err != nil {
		return id
	}
	for _, line := range strings.Split(string(content), "\n") {
		if title := strings.TrimSpace(strings.TrimPrefix(line, "# ")); strings.HasPrefix(line, "# ") && title != "" {
			return title
		}
	}
	return id
}

func showDocsTopic(t docsTopic) error {
	content, err := fs.ReadFile(builtindocs.FS, t.ID+".md")
	if err != nil {
		return handleError(ErrInternal, err, "")
	}

	if isJSONOutput() {
		outputSuccess(map[string]string{"topic": t.ID, "title": t.Title, "content": string(content)}, nil)
		return nil
	}

	out := string(content)
	display := ui.NewDisplayContext()
	if display.IsTTY {
		if rendered, err := ui.RenderMarkdown(out, display.TermWidth); err == nil {
			out = rendered
		}
	}
	fmt.Print(out)
	if !strings.HasSuffix(out, "\n") {
		fmt.Println()
	}
	return nil
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
