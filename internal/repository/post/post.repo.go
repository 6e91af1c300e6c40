package post

import (
	"context"
	"portrait-backend/internal/common/models"
	database "portrait-backend/internal/pkg/db"
	"time"
)

type IRepository interface {
	FindPendingEmbedding(ctx context.Context, limit int, direction database.DirectionEnum) ([]models.Post, error)
	SaveEmbedding(ctx context.Context, id string, vector []float32) error
}

type Repository struct {
	db *database.Database
}

func NewRepo(db *database.Database) IRepository {
	return &Repository{db: db.Cached()}
}

// FindPendingEmbedding returns published posts without an embedding.
func (r *Repository) FindPendingEmbedding(ctx context.Context, limit int, direction database.DirectionEnum) ([]models.Post, error) {
	var posts []models.Post
	q := r.db.WithContext(ctx).
		Where("published = ? AND embedded_at IS NULL", true).
		Order(direction.OrderBy("created_at"))
	if limit > 0 {
		q = q.Limit(limit)
	}

	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// SaveEmbedding stores the vector and stamps embedded_at.
func (r *Repository) SaveEmbedding(ctx context.Context, id string, vector []float32) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"embedding":   models.Vector(vector),
			"embedded_at": time.Now(),
		}).Error
}
