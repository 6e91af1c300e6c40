package embedding

import (
	"context"
	"fmt"
	"portrait-backend/internal/common/models"
	"portrait-backend/internal/pkg/logger"
	"strings"

	"github.com/samber/lo"
)

// Run embeds published posts that have no vector yet, one request per post.
// A failed post is counted and skipped; only listing the posts can fail the
// run.
func (s *Service) Run(ctx context.Context, opts *RunOptions) (*Report, error) {
	posts, err := s.rp.Post.FindPendingEmbedding(ctx, opts.Limit, opts.Direction)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	report := &Report{Total: len(posts)}
	if len(posts) == 0 {
		logger.Info.Println("No posts pending embedding")
		return report, nil
	}

	texts := lo.Map(posts, func(p models.Post, _ int) string {
		return documentText(p)
	})
	results := s.embedder.EmbedTexts(ctx, texts)

	var snapshot []SnapshotEntry
	for i, res := range results {
		post := posts[i]
		log := logger.With("action", "embed_post", "post_id", post.ID, "slug", post.Slug)

		if res.Err != nil {
			report.Failed++
			log.Warn("embedding failed", "error", res.Err)
			continue
		}

		if !opts.DryRun {
			if err := s.rp.Post.SaveEmbedding(ctx, post.ID, res.Vector); err != nil {
				report.Failed++
				log.Error("failed to store embedding", "error", err)
				continue
			}
		}

		report.Embedded++
		snapshot = append(snapshot, SnapshotEntry{
			ID:         post.ID,
			Slug:       post.Slug,
			Locale:     post.Locale,
			Dimensions: len(res.Vector),
			Vector:     res.Vector,
		})
	}

	if opts.Snapshot && s.archive != nil && len(snapshot) > 0 {
		key := fmt.Sprintf("embeddings/%s.json", s.now().UTC().Format("20060102T150405Z"))
		if err := s.archive.UploadJSON(ctx, key, snapshot); err != nil {
			logger.Error.Printf("failed to archive embedding snapshot: %v", err)
		} else {
			report.SnapshotKey = key
		}
	}

	return report, nil
}

func documentText(p models.Post) string {
	return strings.TrimSpace(p.Title + "\n\n" + p.Content)
}
