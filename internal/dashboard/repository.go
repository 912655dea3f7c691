package dashboard

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"hangwa-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]*Content, error)
	Upsert(ctx context.Context, key, content string) (*Content, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]*Content, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key, content, updated_at FROM dashboard_content ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list dashboard content: %w", err)
	}
	defer rows.Close()

	items := make([]*Content, 0)
	for rows.Next() {
		var c Content
		if err := rows.Scan(&c.Key, &c.Content, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan dashboard content: %w", err)
		}
		items = append(items, &c)
	}
	return items, rows.Err()
}

func (r *repository) Upsert(ctx context.Context, key, content string) (*Content, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrKeyRequired
	}

	var c Content
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO dashboard_content (key, content, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET content = EXCLUDED.content, updated_at = NOW()
		RETURNING key, content, updated_at
	`, key, content).Scan(&c.Key, &c.Content, &c.UpdatedAt)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to upsert dashboard content",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, fmt.Errorf("upsert dashboard content: %w", err)
	}
	return &c, nil
}
