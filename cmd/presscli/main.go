// presscli runs the press-release judgment flow against a local markdown
// draft, for editors who want feedback without deploying the server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/iWorld-y/press_radar/pkg/advice"
	"github.com/iWorld-y/press_radar/pkg/config"
	"github.com/iWorld-y/press_radar/pkg/judge"
	"github.com/iWorld-y/press_radar/pkg/logger"
	"github.com/iWorld-y/press_radar/pkg/markdown"
)

var (
	flagConfig string
	flagHooks  int
	flagLimit  int
)

func main() {
	root := &cobra.Command{
		Use:   "presscli",
		Short: "Analyze Japanese press-release drafts for completeness and hooks",
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze <draft.md>",
		Short: "Judge a markdown draft and print improvement suggestions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), args[0])
		},
	}
	analyzeCmd.Flags().StringVarP(&flagConfig, "config", "c", "configs/config.yaml", "config file path")
	analyzeCmd.Flags().IntVar(&flagHooks, "hooks", 0, "target hook count (overrides config)")
	analyzeCmd.Flags().IntVar(&flagLimit, "limit", 0, "max suggestions (overrides config)")
	root.AddCommand(analyzeCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runAnalyze(ctx context.Context, path string) error {
	// Secrets come from .env or the environment; missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		return err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read draft: %w", err)
	}

	parts := markdown.ExtractSections(string(raw))
	input := judge.Input{
		Title:   markdown.Plain(parts["title"]),
		Lead:    markdown.Plain(parts["lead"]),
		Body:    markdown.Plain(parts["body"]),
		Contact: markdown.Plain(parts["contact"]),
	}
	if input.Title == "" && input.Lead == "" && input.Body == "" && input.Contact == "" {
		return fmt.Errorf("draft has no content: %s", path)
	}

	target := flagHooks
	if target <= 0 {
		target = cfg.Judge.TargetHooks
	}
	if target <= 0 {
		target = 3
	}
	input.TargetHooks = target

	limit := flagLimit
	if limit <= 0 {
		limit = cfg.Judge.SuggestionLimit
	}
	if limit <= 0 {
		limit = 5
	}

	client, err := judge.NewClient(ctx, judge.Config{
		BaseURL: cfg.Judge.BaseURL,
		APIKey:  cfg.Judge.APIKey,
		Model:   cfg.Judge.Model,
		Schema:  judge.Schema(cfg.Judge.Schema),
		QPS:     cfg.Judge.QPS,
		RPM:     cfg.Judge.RPM,
	})
	if err != nil {
		return err
	}

	logger.Log.Infof("judging draft %s (target hooks: %d)", path, target)

	rawOut, err := client.Judge(ctx, input)
	if err != nil {
		return fmt.Errorf("judge: %w", err)
	}

	normalizer := judge.Normalizer{Schema: client.Schema(), TargetHooks: target}
	result, err := normalizer.Normalize(rawOut)
	if err != nil {
		return fmt.Errorf("normalize: %w", err)
	}

	suggestions := advice.Build(advice.Gaps{
		Elements:       result.MissingElements(),
		Hooks:          result.MissingHooks(),
		ContactMissing: !result.ContactExists(),
	}, limit)

	out, err := json.MarshalIndent(map[string]any{
		"ai":          result,
		"suggestions": suggestions,
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
