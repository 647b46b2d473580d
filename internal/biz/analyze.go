package biz

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/press_radar/internal/conf"
	"github.com/iWorld-y/press_radar/pkg/advice"
	"github.com/iWorld-y/press_radar/pkg/judge"
)

// Judge produces raw output for a draft. Satisfied by *judge.Client.
type Judge interface {
	Judge(ctx context.Context, in judge.Input) (string, error)
	Schema() judge.Schema
}

// AnalysisRecord is one persisted analysis run.
type AnalysisRecord struct {
	ID           int
	Title        string
	Suggestions  []string
	MissingCount int
	CreatedAt    string
}

// AnalysisRepo stores analysis history and looks up similar past titles.
type AnalysisRepo interface {
	SaveAnalysis(ctx context.Context, rec *AnalysisRecord) error
	ListAnalyses(ctx context.Context, limit int) ([]*AnalysisRecord, error)
	SimilarTitles(ctx context.Context, title string, limit int) ([]string, error)
}

// AnalyzeOptions are per-request knobs.
type AnalyzeOptions struct {
	HooksThreshold int
	Limit          int
}

// AnalyzeRequest is a resolved analyze call.
type AnalyzeRequest struct {
	Draft   DraftInput
	Options AnalyzeOptions
}

// AnalyzeReply is the judgment-flow response payload.
type AnalyzeReply struct {
	AI            *judge.Result
	Suggestions   []string
	SimilarTitles []string
}

// AnalyzeUsecase orchestrates the judgment flow: resolve input, judge,
// normalize, rank, persist.
type AnalyzeUsecase struct {
	judge Judge
	repo  AnalysisRepo
	cfg   *conf.Judge
	log   *log.Helper
}

func NewAnalyzeUsecase(j Judge, repo AnalysisRepo, c *conf.Judge, logger log.Logger) *AnalyzeUsecase {
	return &AnalyzeUsecase{judge: j, repo: repo, cfg: c, log: log.NewHelper(logger)}
}

const (
	defaultTargetHooks     = 3
	defaultSuggestionLimit = 5
	similarTitleLimit      = 5
	historyListLimit       = 20
)

func (uc *AnalyzeUsecase) targetHooks(opts AnalyzeOptions) int {
	if opts.HooksThreshold > 0 {
		return opts.HooksThreshold
	}
	if uc.cfg != nil && uc.cfg.TargetHooks > 0 {
		return int(uc.cfg.TargetHooks)
	}
	return defaultTargetHooks
}

func (uc *AnalyzeUsecase) suggestionLimit(opts AnalyzeOptions) int {
	if opts.Limit > 0 {
		return opts.Limit
	}
	if uc.cfg != nil && uc.cfg.SuggestionLimit > 0 {
		return int(uc.cfg.SuggestionLimit)
	}
	return defaultSuggestionLimit
}

// Analyze runs the full judgment flow for one draft.
func (uc *AnalyzeUsecase) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeReply, error) {
	secs, err := resolveSections(req.Draft)
	if err != nil {
		uc.log.WithContext(ctx).Errorf("resolve input failed: %v", err)
		return nil, ErrMissingInput
	}
	if secs.empty() {
		return nil, ErrMissingInput
	}

	target := uc.targetHooks(req.Options)

	raw, err := uc.judge.Judge(ctx, judge.Input{
		Title:       secs.title,
		Lead:        secs.lead,
		Body:        secs.body,
		Contact:     secs.contact,
		TargetHooks: target,
	})
	if err != nil {
		uc.log.WithContext(ctx).Errorf("judge call failed: %v", err)
		return nil, aiError(err.Error())
	}

	normalizer := judge.Normalizer{Schema: uc.judge.Schema(), TargetHooks: target}
	result, err := normalizer.Normalize(raw)
	if err != nil {
		uc.log.WithContext(ctx).Errorf("judge output rejected: %v", err)
		return nil, aiError(err.Error())
	}

	gaps := advice.Gaps{
		Elements:       result.MissingElements(),
		Hooks:          result.MissingHooks(),
		ContactMissing: !result.ContactExists(),
	}
	suggestions := advice.Build(gaps, uc.suggestionLimit(req.Options))

	reply := &AnalyzeReply{AI: result, Suggestions: suggestions}

	// History and similarity lookups are best-effort: a storage hiccup must
	// not fail an otherwise successful analysis.
	if uc.repo != nil {
		if similar, err := uc.repo.SimilarTitles(ctx, secs.title, similarTitleLimit); err != nil {
			uc.log.WithContext(ctx).Warnf("similar-title lookup failed: %v", err)
		} else {
			reply.SimilarTitles = similar
		}

		rec := &AnalysisRecord{
			Title:        secs.title,
			Suggestions:  suggestions,
			MissingCount: len(gaps.Elements),
		}
		if err := uc.repo.SaveAnalysis(ctx, rec); err != nil {
			uc.log.WithContext(ctx).Warnf("save analysis failed: %v", err)
		}
	}

	return reply, nil
}

// History returns recent analysis runs.
func (uc *AnalyzeUsecase) History(ctx context.Context) ([]*AnalysisRecord, error) {
	if uc.repo == nil {
		return []*AnalysisRecord{}, nil
	}
	return uc.repo.ListAnalyses(ctx, historyListLimit)
}
