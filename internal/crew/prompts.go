// ABOUTME: Task text handed to each role of the pipeline
// ABOUTME: Builders take the run's inputs and return plain prompt strings
package crew

import (
	"fmt"
	"strings"

	"github.com/harper/legal-crew/internal/models"
)

func contractScanTask(q models.Question) string {
	return fmt.Sprintf(`Answer the question using only the rental contract below.
If the contract does not contain the information needed, reply with %s followed by what is missing.

Question: %s

Contract:
%s`, MarkerNeedMoreContext, q.Text, q.Document)
}

func fastAnswerTask(q models.Question, overview string) string {
	return fmt.Sprintf(`Check if the following question can be answered directly from the overview document.
If you find a clear answer, return it. If not, return '%s'.

Question: %s

Overview Document:
%s`, EscapeToken, q.Text, overview)
}

func topicSelectionTask(q models.Question, titles []string) string {
	return fmt.Sprintf(`Select the laws needed to answer the question, most relevant first.
Reply with a list of titles in the form ["Title one", "Title two"] and nothing else.
Only use titles from this catalog:
- %s

Question: %s`, strings.Join(titles, "\n- "), q.Text)
}

func domainAnalysisTask(q models.Question, bundle models.TopicBundle, cpi, cao, legalIncrease float64) string {
	return fmt.Sprintf(`Determine whether the rent increase in the question is legal.
Current CPI: %.2f%%
Current CAO wage index: %.2f%%
Maximum legal increase (CPI plus base): %.2f%%

Use the calculator tools for every percentage. If the question lacks the amounts
and they would be in the rental contract, reply with %s.
If you can decide, end with a line "VERDICT: LEGAL" or "VERDICT: ILLEGAL".

Question: %s

Relevant laws:
%s`, cpi, cao, legalIncrease, MarkerNeedContract, q.Text, bundle.Render())
}

func advocacyTask(q models.Question, side models.Side, bundle models.TopicBundle, analysis string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Argue the %s's position on the question below. Cite the sections you rely on.\n", side))
	sb.WriteString(fmt.Sprintf("If the answer depends on the rental contract and it was not provided, reply with %s.\n\n", MarkerNeedContract))
	sb.WriteString(fmt.Sprintf("Question: %s\n\n", q.Text))
	if analysis != "" {
		sb.WriteString("Specialist analysis:\n")
		sb.WriteString(analysis)
		sb.WriteString("\n\n")
	}
	sb.WriteString("Relevant laws:\n")
	sb.WriteString(bundle.Render())
	return sb.String()
}

func adjudicationTask(q models.Question, bundle models.TopicBundle, args []models.Argument, previous []models.Vote, round int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Round %d. Decide which party the law favours.\n", round))
	sb.WriteString("Reply with exactly one of: ")
	names := make([]string, 0, len(models.Judgments))
	for _, j := range models.Judgments {
		names = append(names, string(j))
	}
	sb.WriteString(strings.Join(names, ", "))
	sb.WriteString(fmt.Sprintf(".\nIf the case cannot be decided without the rental contract, reply with %s.\n\n", MarkerNeedContract))
	sb.WriteString(fmt.Sprintf("Question: %s\n\n", q.Text))
	sb.WriteString("Relevant laws:\n")
	sb.WriteString(bundle.Render())
	sb.WriteString("\nArguments:\n")
	for _, a := range args {
		sb.WriteString(fmt.Sprintf("[%s] %s\n\n", a.Advocate, a.Text))
	}
	if len(previous) > 0 {
		sb.WriteString(fmt.Sprintf("The panel did not reach a decision in round %d. Votes were:\n", round-1))
		for _, v := range previous {
			sb.WriteString(fmt.Sprintf("%s: %s\n", v.Adjudicator, v.Judgment))
		}
	}
	return sb.String()
}
