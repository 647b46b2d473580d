package judge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/press_radar/pkg/logger"
)

// Input is one press-release draft to judge.
type Input struct {
	Title       string
	Lead        string
	Body        string
	Contact     string
	TargetHooks int
}

// Config configures the judge client.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Schema  Schema
	// QPS and RPM bound the request rate against the model endpoint.
	QPS int
	RPM int
}

// Client calls an OpenAI-compatible endpoint and returns the raw judge
// output. Normalization is a separate step so callers can decide how to
// surface contract violations.
type Client struct {
	chatModel  model.ChatModel
	schema     Schema
	limiter    *rate.Limiter
	maxRetries int
}

// NewClient builds a judge client from configuration.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("init chat model: %w", err)
	}

	rpm := cfg.RPM
	if rpm <= 0 {
		rpm = 60
	}
	burst := cfg.QPS
	if burst <= 0 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst)

	sch := cfg.Schema
	if sch == "" {
		sch = SchemaScored
	}

	return &Client{
		chatModel:  chatModel,
		schema:     sch,
		limiter:    limiter,
		maxRetries: 3,
	}, nil
}

// Schema reports which judge contract this client prompts for.
func (c *Client) Schema() Schema {
	return c.schema
}

// Judge sends the draft to the model and returns its raw text output.
// 429 responses are retried with exponential backoff.
func (c *Client) Judge(ctx context.Context, in Input) (string, error) {
	messages := []*schema.Message{
		{Role: schema.System, Content: systemPrompt(c.schema)},
		{Role: schema.User, Content: userPayload(in)},
	}

	baseDelay := 2 * time.Second
	var lastErr error

	for i := 0; i <= c.maxRetries; i++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}

		resp, err := c.chatModel.Generate(ctx, messages)
		if err != nil {
			lastErr = err
			if isRateLimited(err) && i < c.maxRetries {
				logger.Log.Warnf("judge rate limited, retrying: %v", err)
				select {
				case <-ctx.Done():
					return "", ctx.Err()
				case <-time.After(baseDelay * time.Duration(1<<i)):
				}
				continue
			}
			return "", err
		}
		return resp.Content, nil
	}
	return "", lastErr
}

func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "too many requests")
}
