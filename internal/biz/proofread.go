package biz

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/press_radar/internal/conf"
	"github.com/iWorld-y/press_radar/pkg/shodo"
)

// Linter submits and polls proofreading jobs. Satisfied by *shodo.Client.
type Linter interface {
	Lint(ctx context.Context, text, lintType string) (string, error)
	Fetch(ctx context.Context, lintID string) (map[string]any, error)
}

// ProofreadOptions are per-request knobs for the bounded wait.
type ProofreadOptions struct {
	Type           string
	MaxWaitMs      int
	PollIntervalMs int
}

// ProofreadRequest is a resolved proofread call.
type ProofreadRequest struct {
	Draft   DraftInput
	Options ProofreadOptions
}

// ProofreadReply is the proofreading-flow response payload. When Status is
// "processing" the job is still running remotely: TaskID and RetryAfterMs let
// the client resume polling on its own.
type ProofreadReply struct {
	Status       string
	TaskID       string
	RetryAfterMs int
	Result       *shodo.Result
}

// ProofreadUsecase orchestrates composite submission, the bounded polling
// loop, and result reconciliation.
type ProofreadUsecase struct {
	client Linter
	cfg    *conf.Shodo
	log    *log.Helper
}

func NewProofreadUsecase(client Linter, c *conf.Shodo, logger log.Logger) *ProofreadUsecase {
	return &ProofreadUsecase{client: client, cfg: c, log: log.NewHelper(logger)}
}

const (
	defaultMaxWaitMs      = 6000
	defaultPollIntervalMs = 500
)

func (uc *ProofreadUsecase) waitBounds(opts ProofreadOptions) (maxWait, interval int) {
	maxWait = opts.MaxWaitMs
	if maxWait <= 0 {
		if uc.cfg != nil && uc.cfg.MaxWaitMs > 0 {
			maxWait = int(uc.cfg.MaxWaitMs)
		} else {
			maxWait = defaultMaxWaitMs
		}
	}
	interval = opts.PollIntervalMs
	if interval <= 0 {
		if uc.cfg != nil && uc.cfg.PollIntervalMs > 0 {
			interval = int(uc.cfg.PollIntervalMs)
		} else {
			interval = defaultPollIntervalMs
		}
	}
	return maxWait, interval
}

// Run submits the draft and waits synchronously for up to maxWaitMs.
// Exceeding the bound is not an error: the job keeps running remotely and the
// reply tells the caller how to resume.
func (uc *ProofreadUsecase) Run(ctx context.Context, req ProofreadRequest) (*ProofreadReply, error) {
	secs, err := resolveSections(req.Draft)
	if err != nil {
		uc.log.WithContext(ctx).Errorf("resolve input failed: %v", err)
		return nil, ErrMissingInput
	}
	if secs.empty() {
		return nil, ErrMissingInput
	}

	composite := shodo.BuildComposite(secs.title, secs.lead, secs.body, secs.contact)

	lintID, err := uc.client.Lint(ctx, composite, req.Options.Type)
	if err != nil {
		uc.log.WithContext(ctx).Errorf("shodo lint failed: %v", err)
		return nil, shodoError(err.Error())
	}

	maxWait, interval := uc.waitBounds(req.Options)

	var result map[string]any
	waited := 0
	for waited < maxWait {
		result, err = uc.client.Fetch(ctx, lintID)
		if err != nil {
			uc.log.WithContext(ctx).Errorf("shodo fetch failed: %v", err)
			return nil, shodoError(err.Error())
		}
		status := stringField(result, "status")
		if status == "done" || status == "failed" {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(interval) * time.Millisecond):
		}
		waited += interval
	}

	switch stringField(result, "status") {
	case "done":
		return &ProofreadReply{Status: "done", Result: shodo.Decorate(result, composite)}, nil
	case "failed":
		return nil, shodoError("Shodo failed")
	default:
		return &ProofreadReply{Status: "processing", TaskID: lintID, RetryAfterMs: interval}, nil
	}
}

// Status looks up a job by id. The composite is unknown here, so section
// inference is skipped; clients that kept the composite can attribute
// sections themselves.
func (uc *ProofreadUsecase) Status(ctx context.Context, lintID string) (*ProofreadReply, error) {
	result, err := uc.client.Fetch(ctx, lintID)
	if err != nil {
		uc.log.WithContext(ctx).Errorf("shodo fetch failed: %v", err)
		return nil, shodoError(err.Error())
	}

	status := stringField(result, "status")
	if status == "done" {
		return &ProofreadReply{Status: "done", Result: shodo.Decorate(result, "")}, nil
	}
	return &ProofreadReply{Status: status}, nil
}

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}
