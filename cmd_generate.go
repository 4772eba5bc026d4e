package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"trendmindAPI/internal/composer"
	ctypes "trendmindAPI/internal/types/composer"
	"trendmindAPI/services"
)

var genReq ctypes.GenerateRequest

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one LinkedIn post and print the result envelope",
	Long: `Builds the ghostwriter prompt from the given fields and makes a single
call to the configured model. Nothing is saved.

Example:
  trendmind generate --topic "remote work productivity" --tone "Data-Driven & Blunt"`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genReq.Topic, "topic", "", "Post topic (required)")
	generateCmd.Flags().StringVar(&genReq.ContentType, "content-type", ctypes.DefaultContentType, "Content format")
	generateCmd.Flags().StringVar(&genReq.Industry, "industry", ctypes.DefaultIndustry, "Industry focus")
	generateCmd.Flags().StringVar(&genReq.Tone, "tone", ctypes.DefaultTone, "Tone of voice")
	generateCmd.MarkFlagRequired("topic")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(commandContext(cmd), 30*time.Second)
	defer cancel()

	gen, err := newGenerator(ctx, cfg)
	if err != nil {
		return err
	}

	svc := services.NewGenerateService(composer.New(gen, cfg.LLM.ModelName(), logger), nil, logger)
	result, err := svc.Generate(ctx, genReq)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
