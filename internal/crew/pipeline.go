// ABOUTME: Stage pipeline that turns a legal question into an answer or a panel decision
// ABOUTME: Runs one stage at a time and checks every hand-off against the transition table
package crew

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/harper/legal-crew/internal/calc"
	"github.com/harper/legal-crew/internal/facts"
	"github.com/harper/legal-crew/internal/laws"
	"github.com/harper/legal-crew/internal/llm"
	"github.com/harper/legal-crew/internal/models"
	"github.com/harper/legal-crew/internal/voting"
)

var (
	// ErrPipelineFailed marks runs that stopped because a stage had no usable input
	ErrPipelineFailed = errors.New("pipeline failed")

	// ErrCollaboratorUnavailable marks runs that stopped because the role invoker failed
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
)

// MaxRoundsLimit bounds how many adjudication rounds a run may take
const MaxRoundsLimit = 3

// Options tune a Pipeline
type Options struct {
	// MaxRounds is the number of adjudication rounds before giving up (1 to 3)
	MaxRounds int
	// BaseIncrease is added to CPI to get the legal rent increase
	BaseIncrease float64
	// Panel overrides the default adjudicators
	Panel []Adjudicator
}

// Result is the terminal state of one run
type Result struct {
	RunID     string
	Status    Status
	Answer    string
	Message   string
	Err       error
	Decision  models.Decision
	Summary   string
	Votes     []models.Vote
	Arguments []models.Argument
	Stages    []Stage
}

// Response returns the text a caller should show for the result
func (r Result) Response() string {
	switch r.Status {
	case StatusAnswered:
		return r.Answer
	case StatusNeedsContext:
		return r.Message
	case StatusFailed:
		if r.Err != nil {
			return r.Err.Error()
		}
		return ErrPipelineFailed.Error()
	case StatusDecided:
		return fmt.Sprintf("The panel finds in favour of the %s (round %d).\n\n%s", r.Decision.Outcome, r.Decision.Round, r.Summary)
	default:
		return "The panel could not reach a decision.\n\n" + r.Summary
	}
}

// Pipeline wires the collaborators of a deliberation. It holds no per-run
// state and may serve concurrent runs.
type Pipeline struct {
	invoker      llm.Invoker
	lookup       *laws.Lookup
	indicators   facts.Provider
	calculator   *calc.Calculator
	logger       *log.Logger
	maxRounds    int
	baseIncrease float64
	panel        []Adjudicator
	stages       map[Stage]stageFunc
}

// New creates a pipeline
func New(invoker llm.Invoker, lookup *laws.Lookup, indicators facts.Provider, calculator *calc.Calculator, logger *log.Logger, opts Options) *Pipeline {
	if opts.MaxRounds < 1 {
		opts.MaxRounds = 1
	}
	if opts.MaxRounds > MaxRoundsLimit {
		opts.MaxRounds = MaxRoundsLimit
	}
	if len(opts.Panel) == 0 {
		opts.Panel = DefaultPanel()
	}
	p := &Pipeline{
		invoker:      invoker,
		lookup:       lookup,
		indicators:   indicators,
		calculator:   calculator,
		logger:       logger,
		maxRounds:    opts.MaxRounds,
		baseIncrease: opts.BaseIncrease,
		panel:        opts.Panel,
	}
	p.stages = map[Stage]stageFunc{
		StageContractScan:    p.contractScan,
		StageFastAnswer:      p.fastAnswer,
		StageTopicSelection:  p.topicSelection,
		StageTopicResolution: p.topicResolution,
		StageDomainAnalysis:  p.domainAnalysis,
		StageAdvocacy:        p.advocacy,
		StageAdjudication:    p.adjudication,
		StageDeliberation:    p.deliberation,
	}
	return p
}

// run is the state of a single question's trip through the pipeline
type run struct {
	id       string
	question models.Question
	tracker  *voting.Tracker
	facts    *facts.Snapshot
	logger   *log.Logger
	trace    []Stage
	topics   models.TopicRequest
	bundle   models.TopicBundle
	analysis string
	round    int
}

// outcome is what a stage returns: either the next stage or a terminal status
type outcome struct {
	next   Stage
	status Status
	text   string
	err    error
}

func (o outcome) terminal() bool {
	return o.status != ""
}

func goTo(next Stage) outcome {
	return outcome{next: next}
}

func finish(status Status, text string) outcome {
	return outcome{status: status, text: text}
}

func fail(err error) outcome {
	return outcome{status: StatusFailed, err: err}
}

type stageFunc func(ctx context.Context, r *run) outcome

// Run takes the question through the pipeline and always returns a terminal result
func (p *Pipeline) Run(ctx context.Context, q models.Question) Result {
	r := &run{
		id:       uuid.New().String(),
		question: q,
		tracker:  voting.NewTracker(),
		facts:    facts.Take(p.indicators),
	}
	r.logger = p.logger.With("run_id", r.id)
	r.logger.Info("run started", "document", q.HasDocument())

	stage := StageFastAnswer
	if q.HasDocument() {
		stage = StageContractScan
	}
	if !Allowed(stageStart, stage) {
		return p.result(r, fail(fmt.Errorf("%w: no transition from start to %s", ErrPipelineFailed, stage)))
	}

	for {
		if err := ctx.Err(); err != nil {
			return p.result(r, fail(fmt.Errorf("%w: %w", ErrPipelineFailed, err)))
		}

		r.trace = append(r.trace, stage)
		fn, ok := p.stages[stage]
		if !ok {
			return p.result(r, fail(fmt.Errorf("%w: unknown stage %s", ErrPipelineFailed, stage)))
		}

		r.logger.Debug("entering stage", "stage", stage)
		out := fn(ctx, r)

		if out.terminal() {
			if !CanExit(stage, out.status) {
				return p.result(r, fail(fmt.Errorf("%w: stage %s cannot end a run as %s", ErrPipelineFailed, stage, out.status)))
			}
			return p.result(r, out)
		}
		if !Allowed(stage, out.next) {
			return p.result(r, fail(fmt.Errorf("%w: undeclared transition %s -> %s", ErrPipelineFailed, stage, out.next)))
		}
		stage = out.next
	}
}

func (p *Pipeline) result(r *run, out outcome) Result {
	res := Result{
		RunID:     r.id,
		Status:    out.status,
		Err:       out.err,
		Votes:     r.tracker.LatestVotes(),
		Arguments: r.tracker.Arguments(),
		Stages:    r.trace,
	}
	switch out.status {
	case StatusAnswered:
		res.Answer = out.text
	case StatusNeedsContext:
		res.Message = out.text
	case StatusDecided, StatusUndecided:
		res.Decision, _ = r.tracker.Decision()
		res.Summary = r.tracker.Summary()
	}

	if out.err != nil {
		r.logger.Error("run failed", "err", out.err, "stages", len(r.trace))
	} else {
		r.logger.Info("run finished", "status", out.status, "stages", len(r.trace))
	}
	return res
}

// invoke calls the role invoker and wraps its failure
func (p *Pipeline) invoke(ctx context.Context, r *run, stage Stage, role llm.Role, task string, tools ...llm.Tool) (string, error) {
	output, err := p.invoker.Invoke(ctx, role, task, tools...)
	if err != nil {
		return "", fmt.Errorf("%w: %s (%s): %w", ErrCollaboratorUnavailable, stage, role.Name, err)
	}
	r.logger.Debug("role answered", "stage", stage, "role", role.ID, "chars", len(output))
	return output, nil
}

func (p *Pipeline) contractScan(ctx context.Context, r *run) outcome {
	output, err := p.invoke(ctx, r, StageContractScan, contractScanner, contractScanTask(r.question))
	if err != nil {
		return fail(err)
	}
	if HasMarker(output, MarkerNeedMoreContext) {
		return finish(StatusNeedsContext, contextMessage(output, MarkerNeedMoreContext))
	}
	return finish(StatusAnswered, output)
}

func (p *Pipeline) fastAnswer(ctx context.Context, r *run) outcome {
	output, err := p.invoke(ctx, r, StageFastAnswer, fastAnswerer, fastAnswerTask(r.question, p.lookup.Catalog().Overview()))
	if err != nil {
		return fail(err)
	}
	if trimmed := strings.TrimSpace(output); trimmed != "" && !IsEscape(trimmed) {
		return finish(StatusAnswered, output)
	}
	r.logger.Info("fast answer escalated")
	return goTo(StageTopicSelection)
}

func (p *Pipeline) topicSelection(ctx context.Context, r *run) outcome {
	output, err := p.invoke(ctx, r, StageTopicSelection, topicSelector, topicSelectionTask(r.question, p.lookup.Catalog().Titles()))
	if err != nil {
		return fail(err)
	}
	r.topics = ParseTopics(output)
	if len(r.topics) == 0 {
		return fail(fmt.Errorf("%w: topic selection returned no law titles", ErrPipelineFailed))
	}
	r.logger.Info("topics selected", "titles", []string(r.topics))
	return goTo(StageTopicResolution)
}

func (p *Pipeline) topicResolution(_ context.Context, r *run) outcome {
	r.bundle = p.lookup.Resolve(r.topics)
	if r.bundle.IsEmpty() {
		return fail(fmt.Errorf("%w: knowledge lookup returned nothing", ErrPipelineFailed))
	}
	if IsRentIncrease(r.question.Text) {
		return goTo(StageDomainAnalysis)
	}
	return goTo(StageAdvocacy)
}

func (p *Pipeline) domainAnalysis(ctx context.Context, r *run) outcome {
	cpi := r.facts.CPI()
	cao := r.facts.CAOIndex()
	limit := cpi + p.baseIncrease

	task := domainAnalysisTask(r.question, r.bundle, cpi, cao, limit)
	output, err := p.invoke(ctx, r, StageDomainAnalysis, domainAnalyst, task, p.calculator.Tools()...)
	if err != nil {
		return fail(err)
	}
	if HasMarker(output, MarkerNeedContract) {
		return finish(StatusNeedsContext, contextMessage(output, MarkerNeedContract))
	}
	if verdict, ok := ParseVerdict(output); ok {
		r.logger.Info("domain analysis was dispositive", "verdict", verdict)
		return finish(StatusAnswered, output)
	}
	r.analysis = output
	return goTo(StageAdvocacy)
}

func (p *Pipeline) advocacy(ctx context.Context, r *run) outcome {
	for _, side := range []models.Side{models.SideTenant, models.SideLandlord} {
		role := advocates[side]
		output, err := p.invoke(ctx, r, StageAdvocacy, role, advocacyTask(r.question, side, r.bundle, r.analysis))
		if err != nil {
			return fail(err)
		}
		if HasMarker(output, MarkerNeedContract) {
			return finish(StatusNeedsContext, contextMessage(output, MarkerNeedContract))
		}
		r.tracker.AddArgument(models.Argument{Side: side, Advocate: role.Name, Text: output})
	}
	return goTo(StageAdjudication)
}

func (p *Pipeline) adjudication(ctx context.Context, r *run) outcome {
	previous := r.tracker.LatestVotes()
	r.round = r.tracker.StartRound()
	args := r.tracker.Arguments()

	for _, adj := range p.panel {
		task := adjudicationTask(r.question, r.bundle, args, previous, r.round)
		output, err := p.invoke(ctx, r, StageAdjudication, adjudicatorRole(adj), task)
		if err != nil {
			return fail(err)
		}
		if HasMarker(output, MarkerNeedContract) {
			return finish(StatusNeedsContext, contextMessage(output, MarkerNeedContract))
		}
		judgment, ok := models.ParseJudgment(output)
		if !ok {
			r.logger.Warn("unparseable judgment, counting as not_sure",
				"err", laws.ErrMalformedInput, "adjudicator", adj.Name, "output", truncate(output, 80))
		}
		if err := r.tracker.RecordVote(r.round, adj.Name, judgment); err != nil {
			return fail(fmt.Errorf("%w: %w", ErrPipelineFailed, err))
		}
	}
	return goTo(StageDeliberation)
}

func (p *Pipeline) deliberation(_ context.Context, r *run) outcome {
	if decision, ok := r.tracker.Evaluate(r.round); ok {
		r.tracker.Conclude(decision)
		r.logger.Info("panel decided", "outcome", decision.Outcome, "round", decision.Round)
		return finish(StatusDecided, "")
	}
	if r.round < p.maxRounds {
		r.logger.Info("no quorum, starting another round", "round", r.round)
		return goTo(StageAdjudication)
	}
	r.tracker.Conclude(models.Decision{Outcome: models.Undecided})
	return finish(StatusUndecided, "")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
