// ABOUTME: CLI command to answer many questions from a file in parallel
// ABOUTME: Each question gets its own pipeline run; output keeps input order
package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"

	"github.com/harper/legal-crew/internal/crew"
	"github.com/harper/legal-crew/internal/models"
)

var batchConcurrency int

// NewBatchCmd creates the batch command
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Answer every question in a file",
		Long: `Answer every question in a file, one question per line.

Blank lines and lines starting with # are skipped. Questions run in
parallel (see --concurrency); results are printed in file order.

Examples:
  legalcrew batch questions.txt
  legalcrew batch questions.txt -c 8 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: runBatch,
	}

	cmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 4, "Number of questions answered at the same time")

	return cmd
}

type asker interface {
	Run(ctx context.Context, q models.Question) crew.Result
}

// readQuestions parses one question per line
func readQuestions(r io.Reader) ([]string, error) {
	var questions []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		questions = append(questions, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading questions: %w", err)
	}
	return questions, nil
}

// runAll answers the questions with at most concurrency runs in flight.
// Results are indexed like the input.
func runAll(ctx context.Context, asker asker, questions []string, concurrency int) []crew.Result {
	results := make([]crew.Result, len(questions))
	p := pool.New().WithMaxGoroutines(concurrency)
	for i, q := range questions {
		p.Go(func() {
			results[i] = asker.Run(ctx, models.Question{Text: q})
		})
	}
	p.Wait()
	return results
}

func runBatch(cmd *cobra.Command, args []string) error {
	if batchConcurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", batchConcurrency)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening questions: %w", err)
	}
	questions, err := readQuestions(f)
	_ = f.Close()
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return fmt.Errorf("no questions found in %s", args[0])
	}

	a, err := buildApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	pipeline, err := a.RequirePipeline()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results := runAll(ctx, pipeline, questions, batchConcurrency)

	if wantJSON() {
		reports := make([]crew.Report, len(results))
		for i, r := range results {
			reports[i] = r.Report()
		}
		return printJSON(cmd.OutOrStdout(), reports)
	}

	tw := newTable(cmd.OutOrStdout(), table.Row{"#", "Question", "Status", "Decision", "Response"})
	failed := 0
	for i, r := range results {
		decision := ""
		if r.Status == crew.StatusDecided || r.Status == crew.StatusUndecided {
			decision = string(r.Decision.Outcome)
		}
		if r.Status == crew.StatusFailed {
			failed++
		}
		tw.AppendRow(table.Row{i + 1, truncate(questions[i], 40), r.Status.APIStatus(), decision, truncate(firstLine(r.Response()), 60)})
	}
	tw.Render()

	if failed > 0 && !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d questions failed\n", failed, len(results))
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
