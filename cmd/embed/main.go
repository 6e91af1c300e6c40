package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	config "portrait-backend/configs"
	ai "portrait-backend/internal/pkg/ai-connector"
	database "portrait-backend/internal/pkg/db"
	"portrait-backend/internal/pkg/logger"
	s3aws "portrait-backend/internal/pkg/storage/s3"
	"portrait-backend/internal/repository"
	postRepo "portrait-backend/internal/repository/post"
	embeddingService "portrait-backend/internal/service/embedding"
	"syscall"

	"github.com/spf13/cobra"
)

type embedFlags struct {
	limit    int
	order    string
	snapshot bool
	dryRun   bool
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	flags := &embedFlags{}

	cmd := &cobra.Command{
		Use:          "embed",
		Short:        "Embed published blog posts with Gemini",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), flags)
		},
	}

	cmd.Flags().IntVarP(&flags.limit, "limit", "n", 50, "maximum number of posts to embed")
	cmd.Flags().StringVarP(&flags.order, "order", "o", "asc", "created_at order: asc or desc")
	cmd.Flags().BoolVar(&flags.snapshot, "snapshot", false, "archive the embedded vectors to S3")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "embed without writing to the database")

	return cmd
}

func run(parent context.Context, flags *embedFlags) error {
	logger.Setup()
	env, err := config.GetEnv()
	if err != nil {
		return fmt.Errorf("load environment: %w", err)
	}
	logger.Setup(env.AppEnv)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Setup(&database.Config{
		Host:     env.DBHost,
		Port:     env.DBPort,
		User:     env.DBUser,
		Password: env.DBPass,
		Database: env.DBName,
		SSLMode:  env.DBSSLMode,
		Driver:   database.DriverEnum(env.DBDriver),
	})
	if err != nil {
		return fmt.Errorf("setup database: %w", err)
	}
	defer func() { _ = db.Close() }()

	aiClient, err := ai.NewAiClient(ctx, &ai.Config{
		GeminiAPIKey: env.GeminiAPIKey,
		GeminiModel:  env.GeminiModel,
	})
	if err != nil {
		return fmt.Errorf("setup gemini: %w", err)
	}
	defer func() { _ = aiClient.Close() }()

	var archive s3aws.Is3
	if flags.snapshot && env.AWSBucketName != "" {
		client, err := s3aws.NewS3Client(s3aws.S3Config{
			AWSRegion:          env.AWSRegion,
			AWSAccessKeyID:     env.AWSAccessKeyID,
			AWSSecretAccessKey: env.AWSSecretAccessKey,
		}, env.AWSBucketName, nil)
		if err != nil {
			logger.Warning.Println("S3 unavailable, snapshot disabled:", err)
		} else {
			archive = client
		}
	}

	svc := embeddingService.NewService(repository.IRepository{
		Post: postRepo.NewRepo(db),
	}, aiClient, archive)

	report, err := svc.Run(ctx, &embeddingService.RunOptions{
		Limit:     flags.limit,
		Direction: database.DirectionEnum(flags.order),
		Snapshot:  flags.snapshot,
		DryRun:    flags.dryRun,
	})
	if err != nil {
		return fmt.Errorf("embedding run: %w", err)
	}

	logger.With(
		"total", report.Total,
		"embedded", report.Embedded,
		"failed", report.Failed,
		"snapshot", report.SnapshotKey,
	).Info("embedding run finished")

	return nil
}
