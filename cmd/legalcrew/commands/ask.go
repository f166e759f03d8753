// ABOUTME: CLI command to ask one legal question
// ABOUTME: Runs the pipeline and prints the answer, the votes and the arguments
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/harper/legal-crew/internal/crew"
	"github.com/harper/legal-crew/internal/models"
)

var (
	askDocument string
	askTrace    bool
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a tenancy law question",
		Long: `Ask a tenancy law question.

With --document the rental contract is read first and the answer is
based on the contract alone. Without it the question goes through the
fast answer, law selection, advocacy and the judges' vote.

Examples:
  legalcrew ask "Can my landlord increase the rent by 5%?"
  legalcrew ask "Who pays for the boiler repair?" --document contract.txt
  legalcrew ask "Is a huurverhoging of 3% allowed?" --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().StringVarP(&askDocument, "document", "d", "", "Path to the rental contract text")
	cmd.Flags().BoolVar(&askTrace, "trace", false, "Print the stages the run went through")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return fmt.Errorf("question must not be empty")
	}

	q := models.Question{Text: question}
	if askDocument != "" {
		data, err := os.ReadFile(askDocument)
		if err != nil {
			return fmt.Errorf("reading document: %w", err)
		}
		q.Document = string(data)
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

	result := pipeline.Run(ctx, q)

	if wantJSON() {
		if err := printJSON(cmd.OutOrStdout(), result.Report()); err != nil {
			return err
		}
	} else {
		printResult(cmd.OutOrStdout(), result, askTrace)
	}

	if result.Status == crew.StatusFailed {
		return result.Err
	}
	return nil
}

// printResult writes a human readable rendering of a run
func printResult(w io.Writer, result crew.Result, trace bool) {
	switch result.Status {
	case crew.StatusAnswered:
		fmt.Fprintln(w, result.Answer)
	case crew.StatusNeedsContext:
		fmt.Fprintf(w, "Contract needed: %s\n", result.Message)
	case crew.StatusFailed:
		fmt.Fprintf(w, "The question could not be answered (run %s).\n", result.RunID)
	case crew.StatusDecided, crew.StatusUndecided:
		if result.Status == crew.StatusDecided {
			fmt.Fprintf(w, "Decision: in favour of the %s (round %d)\n\n", result.Decision.Outcome, result.Decision.Round)
		} else {
			fmt.Fprint(w, "Decision: the panel could not agree\n\n")
		}
		if len(result.Votes) > 0 {
			tw := newTable(w, table.Row{"Judge", "Judgment"})
			for _, v := range result.Votes {
				tw.AppendRow(table.Row{v.Adjudicator, v.Judgment})
			}
			tw.Render()
		}
		for _, arg := range result.Arguments {
			fmt.Fprintf(w, "\n[%s]\n%s\n", arg.Advocate, arg.Text)
		}
	}

	if trace {
		stages := make([]string, len(result.Stages))
		for i, s := range result.Stages {
			stages[i] = string(s)
		}
		fmt.Fprintf(w, "\nStages: %s\n", strings.Join(stages, " -> "))
	}
}
