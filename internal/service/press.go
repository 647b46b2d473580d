package service

import (
	nethttp "net/http"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/press_radar/internal/biz"
)

// PressService exposes the analysis and proofreading flows over HTTP.
type PressService struct {
	ucAnalyze   *biz.AnalyzeUsecase
	ucProofread *biz.ProofreadUsecase
	log         *log.Helper
}

func NewPressService(ucAnalyze *biz.AnalyzeUsecase, ucProofread *biz.ProofreadUsecase, logger log.Logger) *PressService {
	return &PressService{
		ucAnalyze:   ucAnalyze,
		ucProofread: ucProofread,
		log:         log.NewHelper(logger),
	}
}

// RegisterRoutes mounts the API on the kratos HTTP server.
func (s *PressService) RegisterRoutes(srv *http.Server) {
	r := srv.Route("/")
	r.POST("/api/analyze", s.analyze)
	r.POST("/api/shodo", s.proofread)
	r.GET("/api/shodo/{id}", s.proofreadStatus)
	r.GET("/api/analyses", s.listAnalyses)
	r.GET("/up", s.health)
}

// AnalyzeRequest is the analyze endpoint body. Split fields are preferred;
// markdown and url are fallbacks.
type AnalyzeRequest struct {
	Markdown string             `json:"markdown"`
	Title    string             `json:"title"`
	Lead     string             `json:"lead"`
	Body     []biz.BodySection  `json:"body"`
	Contact  string             `json:"contact"`
	URL      string             `json:"url"`
	Options  *AnalyzeReqOptions `json:"options"`
}

type AnalyzeReqOptions struct {
	HooksThreshold int `json:"hooksThreshold"`
	Limit          int `json:"limit"`
}

// ShodoRequest is the proofread endpoint body.
type ShodoRequest struct {
	Markdown string            `json:"markdown"`
	Title    string            `json:"title"`
	Lead     string            `json:"lead"`
	Body     []biz.BodySection `json:"body"`
	Contact  string            `json:"contact"`
	Options  *ShodoReqOptions  `json:"options"`
}

type ShodoReqOptions struct {
	Type           string `json:"type"`
	MaxWaitMs      int    `json:"maxWaitMs"`
	PollIntervalMs int    `json:"pollIntervalMs"`
}

func (s *PressService) analyze(ctx http.Context) error {
	var req AnalyzeRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.New(nethttp.StatusBadRequest, "BadRequest", err.Error())
	}

	bizReq := biz.AnalyzeRequest{
		Draft: biz.DraftInput{
			Title:    req.Title,
			Lead:     req.Lead,
			Body:     req.Body,
			Contact:  req.Contact,
			Markdown: req.Markdown,
			URL:      req.URL,
		},
	}
	if req.Options != nil {
		bizReq.Options = biz.AnalyzeOptions{
			HooksThreshold: req.Options.HooksThreshold,
			Limit:          req.Options.Limit,
		}
	}

	reply, err := s.ucAnalyze.Analyze(ctx, bizReq)
	if err != nil {
		return err
	}

	body := map[string]any{
		"ai":          reply.AI,
		"suggestions": reply.Suggestions,
	}
	if len(reply.SimilarTitles) > 0 {
		body["similarTitles"] = reply.SimilarTitles
	}
	return ctx.Result(nethttp.StatusOK, body)
}

func (s *PressService) proofread(ctx http.Context) error {
	var req ShodoRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.New(nethttp.StatusBadRequest, "BadRequest", err.Error())
	}

	bizReq := biz.ProofreadRequest{
		Draft: biz.DraftInput{
			Title:    req.Title,
			Lead:     req.Lead,
			Body:     req.Body,
			Contact:  req.Contact,
			Markdown: req.Markdown,
		},
	}
	if req.Options != nil {
		bizReq.Options = biz.ProofreadOptions{
			Type:           req.Options.Type,
			MaxWaitMs:      req.Options.MaxWaitMs,
			PollIntervalMs: req.Options.PollIntervalMs,
		}
	}

	reply, err := s.ucProofread.Run(ctx, bizReq)
	if err != nil {
		return err
	}

	if reply.Status == "processing" {
		return ctx.Result(nethttp.StatusAccepted, map[string]any{
			"shodo": map[string]any{
				"status":       "processing",
				"task_id":      reply.TaskID,
				"retryAfterMs": reply.RetryAfterMs,
			},
		})
	}
	return ctx.Result(nethttp.StatusOK, map[string]any{"shodo": reply.Result})
}

func (s *PressService) proofreadStatus(ctx http.Context) error {
	id := ctx.Vars().Get("id")
	if id == "" {
		return errors.New(nethttp.StatusBadRequest, "BadRequest", "missing job id")
	}

	reply, err := s.ucProofread.Status(ctx, id)
	if err != nil {
		return err
	}

	if reply.Status == "done" {
		return ctx.Result(nethttp.StatusOK, map[string]any{"shodo": reply.Result})
	}
	return ctx.Result(nethttp.StatusOK, map[string]any{
		"shodo": map[string]any{"status": reply.Status},
	})
}

func (s *PressService) listAnalyses(ctx http.Context) error {
	records, err := s.ucAnalyze.History(ctx)
	if err != nil {
		return err
	}

	list := make([]map[string]any, 0, len(records))
	for _, r := range records {
		list = append(list, map[string]any{
			"id":           r.ID,
			"title":        r.Title,
			"suggestions":  r.Suggestions,
			"missingCount": r.MissingCount,
			"createdAt":    r.CreatedAt,
		})
	}
	return ctx.Result(nethttp.StatusOK, map[string]any{"analyses": list})
}

func (s *PressService) health(ctx http.Context) error {
	return ctx.Result(nethttp.StatusOK, map[string]string{"status": "ok"})
}
