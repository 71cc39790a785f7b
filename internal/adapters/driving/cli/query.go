package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/helicon-labs/ragview-cli/internal/core/domain"
)

var (
	queryLLM     bool
	queryJSON    bool
	queryResults int
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Query the document collection",
	Long: `Runs a vector search across the uploaded documents and prints the
ranked passages. With --llm the backend composes an answer from the
retrieved passages and cites its sources.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryResults, "results", "n", 3, "number of passages to retrieve")
	queryCmd.Flags().BoolVar(&queryLLM, "llm", false, "compose an answer with the LLM")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if querySession == nil {
		return errors.New("query session not configured")
	}

	querySession.SetResultCount(queryResults)

	result, err := querySession.Execute(cmd.Context(), args[0], queryLLM)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		return outputQueryJSON(cmd, result)
	}

	switch result.Kind {
	case domain.KindLLM:
		outputAnswer(cmd, result)
	default:
		outputHits(cmd, result)
	}
	return nil
}

func outputQueryJSON(cmd *cobra.Command, result *domain.QueryResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAnswer(cmd *cobra.Command, result *domain.QueryResult) {
	cmd.Println(result.Answer)

	if len(result.Sources) == 0 {
		return
	}

	cmd.Println("\nSources:")
	for i := range result.Sources {
		src := &result.Sources[i]
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, src.ID, src.Score)
		if src.Text != "" {
			cmd.Printf("      %s\n", snippet(src.Text, displayWidth()-6))
		}
	}
}

func outputHits(cmd *cobra.Command, result *domain.QueryResult) {
	if len(result.Hits) == 0 {
		cmd.Println("No results found.")
		return
	}

	cmd.Printf("Found %d results\n\n", len(result.Hits))
	for i := range result.Hits {
		hit := &result.Hits[i]
		cmd.Printf("  [%d] (distance %.4f)\n", i+1, hit.Distance)
		cmd.Printf("      %s\n", snippet(hit.Text, displayWidth()-6))
		if src, ok := hit.Metadata["source"].(string); ok && src != "" {
			cmd.Printf("      Source: %s\n", src)
		}
		cmd.Println()
	}
}

// displayWidth returns the terminal width, or a sane default when
// stdout is not a terminal.
func displayWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 100
	}
	return width
}

// snippet truncates s to max runes on a single line.
func snippet(s string, max int) string {
	if max < 10 {
		max = 10
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
