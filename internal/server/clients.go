package server

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/press_radar/internal/biz"
	"github.com/iWorld-y/press_radar/internal/conf"
	"github.com/iWorld-y/press_radar/pkg/judge"
	"github.com/iWorld-y/press_radar/pkg/shodo"
)

// NewJudgeClient builds the LLM judge from bootstrap configuration.
func NewJudgeClient(c *conf.Judge, logger log.Logger) (biz.Judge, error) {
	cfg := judge.Config{Schema: judge.Schema(c.Schema)}
	if c.Llm != nil {
		cfg.BaseURL = c.Llm.BaseUrl
		cfg.APIKey = c.Llm.ApiKey
		cfg.Model = c.Llm.Model
	}
	if c.Concurrency != nil {
		cfg.QPS = int(c.Concurrency.Qps)
		cfg.RPM = int(c.Concurrency.Rpm)
	}

	client, err := judge.NewClient(context.Background(), cfg)
	if err != nil {
		log.NewHelper(logger).Errorf("failed to init judge client: %v", err)
		return nil, err
	}
	return client, nil
}

// NewShodoClient builds the proofreading client from bootstrap configuration.
func NewShodoClient(c *conf.Shodo) biz.Linter {
	timeout := 10 * time.Second
	if c.TimeoutSec > 0 {
		timeout = time.Duration(c.TimeoutSec) * time.Second
	}
	return shodo.NewClient(c.BaseUrl, c.Token, timeout)
}
