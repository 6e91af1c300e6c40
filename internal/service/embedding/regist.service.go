package embedding

import (
	"context"
	ai "portrait-backend/internal/pkg/ai-connector"
	database "portrait-backend/internal/pkg/db"
	s3aws "portrait-backend/internal/pkg/storage/s3"
	"portrait-backend/internal/repository"
	"time"
)

type Service struct {
	rp       repository.IRepository
	embedder ai.Embedder
	archive  s3aws.Is3
	now      func() time.Time
}

type IService interface {
	Run(ctx context.Context, opts *RunOptions) (*Report, error)
}

// NewService builds the embedding job. archive may be nil when snapshots
// are not configured.
func NewService(rp repository.IRepository, embedder ai.Embedder, archive s3aws.Is3) IService {
	return &Service{
		rp:       rp,
		embedder: embedder,
		archive:  archive,
		now:      time.Now,
	}
}

type RunOptions struct {
	Limit     int
	Direction database.DirectionEnum
	Snapshot  bool
	DryRun    bool
}

type Report struct {
	Total       int    `json:"total"`
	Embedded    int    `json:"embedded"`
	Failed      int    `json:"failed"`
	SnapshotKey string `json:"snapshot_key,omitempty"`
}

// SnapshotEntry is one line of the archived snapshot.
type SnapshotEntry struct {
	ID         string    `json:"id"`
	Slug       string    `json:"slug"`
	Locale     string    `json:"locale"`
	Dimensions int       `json:"dimensions"`
	Vector     []float32 `json:"vector"`
}
