package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Wajihx/News-Article-Classifier/internal/adapter/extract"
	"github.com/Wajihx/News-Article-Classifier/internal/adapter/feed"
	"github.com/Wajihx/News-Article-Classifier/internal/adapter/onnx"
	"github.com/Wajihx/News-Article-Classifier/internal/adapter/repository/filesystem"
	"github.com/Wajihx/News-Article-Classifier/internal/inference"
	"github.com/Wajihx/News-Article-Classifier/internal/infrastructure/config"
	"github.com/Wajihx/News-Article-Classifier/internal/infrastructure/logger"
	"github.com/Wajihx/News-Article-Classifier/internal/usecase"
)

// options are the persistent flags shared by every subcommand
type options struct {
	checkpoint string
	backend    string
	wordBudget int
	samplesDir string
	output     string
}

// openFunc builds a ready usecase and a func releasing what it holds
type openFunc func(ctx context.Context, opts *options) (usecase.ClassifyUsecase, func(), error)

func newRootCmd(open openFunc) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "classify",
		Short:         "Classify news articles as World, Sports, Business or Sci/Tech",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return validateFormat(opts.output)
		},
	}

	root.PersistentFlags().StringVar(&opts.checkpoint, "checkpoint", "", "checkpoint directory (config.json, tokenizer.json, model.onnx)")
	root.PersistentFlags().StringVar(&opts.backend, "backend", "", "inference backend: onnx or remote")
	root.PersistentFlags().IntVar(&opts.wordBudget, "word-budget", 0, "number of leading words to classify")
	root.PersistentFlags().StringVar(&opts.samplesDir, "samples-dir", "", "directory of sample articles")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", formatText, "output format: text, json or yaml")

	run := func(fn func(ctx context.Context, uc usecase.ClassifyUsecase, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			uc, closeFn, err := open(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeFn()
			return fn(cmd.Context(), uc, cmd, args)
		}
	}

	root.AddCommand(&cobra.Command{
		Use:   "text [words...]",
		Short: "Classify text given as arguments or on stdin",
		RunE: run(func(ctx context.Context, uc usecase.ClassifyUsecase, cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				text = string(data)
			}

			output, err := uc.Classify(ctx, &usecase.ClassifyInput{Text: text})
			if err != nil {
				return userError(err)
			}
			return writeClassification(cmd.OutOrStdout(), opts.output, output)
		}),
	})

	root.AddCommand(&cobra.Command{
		Use:   "file <path>",
		Short: "Classify a PDF, text or HTML file",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, uc usecase.ClassifyUsecase, cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			output, err := uc.ClassifyDocument(ctx, filepath.Base(args[0]), "", data)
			if err != nil {
				return userError(err)
			}
			return writeClassification(cmd.OutOrStdout(), opts.output, output)
		}),
	})

	root.AddCommand(&cobra.Command{
		Use:   "sample <name>",
		Short: "Classify a file from the samples directory",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, uc usecase.ClassifyUsecase, cmd *cobra.Command, args []string) error {
			output, err := uc.ClassifySample(ctx, args[0])
			if err != nil {
				return userError(err)
			}
			return writeClassification(cmd.OutOrStdout(), opts.output, output)
		}),
	})

	root.AddCommand(&cobra.Command{
		Use:   "samples",
		Short: "List the sample articles",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, uc usecase.ClassifyUsecase, cmd *cobra.Command, args []string) error {
			names, err := uc.ListSamples(ctx)
			if err != nil {
				return userError(err)
			}
			return writeSamples(cmd.OutOrStdout(), opts.output, names)
		}),
	})

	var limit int
	feedCmd := &cobra.Command{
		Use:   "feed <url>",
		Short: "Classify the items of an RSS or Atom feed",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, uc usecase.ClassifyUsecase, cmd *cobra.Command, args []string) error {
			output, err := uc.ClassifyFeed(ctx, args[0], limit)
			if err != nil {
				return userError(err)
			}
			return writeFeed(cmd.OutOrStdout(), opts.output, output)
		}),
	}
	feedCmd.Flags().IntVar(&limit, "limit", 0, "maximum number of items to classify")
	root.AddCommand(feedCmd)

	return root
}

// userError replaces recoverable usecase errors with the message a user should see
func userError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrEmptyArticle):
		return errors.New("please provide a news article using one of the input methods")
	case errors.Is(err, usecase.ErrSampleDirMissing), errors.Is(err, usecase.ErrNoSamples):
		return fmt.Errorf("no sample files found: %w", err)
	default:
		return err
	}
}

// openUsecase loads configuration, applies flag overrides and loads the checkpoint
func openUsecase(ctx context.Context, opts *options) (usecase.ClassifyUsecase, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.checkpoint != "" {
		cfg.Model.CheckpointDir = opts.checkpoint
	}
	if opts.backend != "" {
		cfg.Model.Backend = opts.backend
	}
	if opts.wordBudget > 0 {
		cfg.Model.WordBudget = opts.wordBudget
	}
	if opts.samplesDir != "" {
		cfg.Samples.Dir = opts.samplesDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log := logger.NewStderrLogger(&cfg.Log)

	predictor, err := inference.LoadCheckpoint(ctx, &cfg.Model)
	if err != nil {
		_ = log.Sync()
		return nil, nil, fmt.Errorf("failed to load model: %w", err)
	}
	log.Debug("Model loaded", zap.String("model_version", predictor.ModelVersion()))

	uc := usecase.NewClassifyUsecase(usecase.ClassifyDeps{
		Classifier: predictor,
		Extractors: extract.NewRegistry(),
		Samples:    filesystem.NewSampleRepository(cfg.Samples.Dir, nil),
		Feeds:      feed.NewReader(cfg.Feed.Timeout, extract.NewHTMLExtractor()),
		Logger:     log,
		FeedItems:  cfg.Feed.MaxItems,
	})

	closeFn := func() {
		if err := predictor.Close(); err != nil {
			log.Warn("Failed to release model", zap.Error(err))
		}
		if cfg.Model.Backend == config.BackendONNX {
			_ = onnx.Shutdown()
		}
		_ = log.Sync()
	}
	return uc, closeFn, nil
}
