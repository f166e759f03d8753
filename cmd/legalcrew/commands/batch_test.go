// ABOUTME: Tests for the batch command
// ABOUTME: Covers question file parsing and ordered parallel runs

package commands

import (
	"context"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/harper/legal-crew/internal/crew"
	"github.com/harper/legal-crew/internal/models"
)

func TestReadQuestions(t *testing.T) {
	input := `# rent questions
Can my rent go up by 5%?

   Who repairs the boiler?   
#skipped
Can the landlord end my lease?
`
	got, err := readQuestions(strings.NewReader(input))
	if err != nil {
		t.Fatalf("readQuestions() error = %v", err)
	}
	want := []string{
		"Can my rent go up by 5%?",
		"Who repairs the boiler?",
		"Can the landlord end my lease?",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("readQuestions() = %q, want %q", got, want)
	}
}

func TestReadQuestions_Empty(t *testing.T) {
	got, err := readQuestions(strings.NewReader("\n# only comments\n"))
	if err != nil {
		t.Fatalf("readQuestions() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("readQuestions() = %q, want none", got)
	}
}

// echoAsker answers with the question text after a delay that shrinks with
// the input position, so later questions tend to finish first
type echoAsker struct {
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (a *echoAsker) Run(ctx context.Context, q models.Question) crew.Result {
	n := a.inFlight.Add(1)
	defer a.inFlight.Add(-1)
	for {
		p := a.peak.Load()
		if n <= p || a.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(time.Duration(10-len(q.Text)%10) * time.Millisecond)
	return crew.Result{Status: crew.StatusAnswered, Answer: "answer: " + q.Text}
}

func TestRunAll_KeepsInputOrder(t *testing.T) {
	questions := []string{"q", "qq", "qqq", "qqqq", "qqqqq", "qqqqqq", "qqqqqqq", "qqqqqqqq"}
	a := &echoAsker{}

	results := runAll(context.Background(), a, questions, 3)

	if len(results) != len(questions) {
		t.Fatalf("got %d results, want %d", len(results), len(questions))
	}
	for i, r := range results {
		if want := "answer: " + questions[i]; r.Answer != want {
			t.Errorf("results[%d].Answer = %q, want %q", i, r.Answer, want)
		}
	}
	if peak := a.peak.Load(); peak > 3 {
		t.Errorf("peak concurrency = %d, want at most 3", peak)
	}
}

func TestBatch_Validation(t *testing.T) {
	isolate(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing file", []string{"batch", "nope.txt"}, "opening questions"},
		{"bad concurrency", []string{"batch", "nope.txt", "-c", "0"}, "concurrency must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
