package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lexgrep/lexgrep-cli/internal/core/domain"
	"github.com/lexgrep/lexgrep-cli/internal/core/ports/driven"
)

// catalogStore implements driven.CatalogStore.
type catalogStore struct {
	store *Store
}

var _ driven.CatalogStore = (*catalogStore)(nil)

// SaveBuild replaces the catalog content with one build's corpus. The
// whole write happens in a single transaction so readers never see a
// half-recorded build.
func (c *catalogStore) SaveBuild(
	ctx context.Context, info domain.BuildInfo, articles []domain.Article, chunks []domain.Chunk,
) error {
	tx, err := c.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// One build at a time; cascade clears articles and chunks.
	if _, err := tx.ExecContext(ctx, "DELETE FROM builds"); err != nil {
		return fmt.Errorf("clearing previous build: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO builds (id, source, article_count, chunk_count, vocabulary_size, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, info.ID, info.Source, info.ArticleCount, info.ChunkCount, info.VocabularySize, info.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving build: %w", err)
	}

	articleStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO articles (build_id, position, label, title, chapter, section, body)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing article insert: %w", err)
	}
	defer articleStmt.Close()

	for i, a := range articles {
		if _, err := articleStmt.ExecContext(ctx, info.ID, i, a.Label, a.Title, a.Chapter, a.Section, a.Text); err != nil {
			return fmt.Errorf("saving article %s: %w", a.Label, err)
		}
	}

	chunkStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (build_id, position, chunk_id, article_label, title, chapter, section, body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing chunk insert: %w", err)
	}
	defer chunkStmt.Close()

	for i, ch := range chunks {
		if _, err := chunkStmt.ExecContext(ctx, info.ID, i, ch.ChunkID, ch.Article, ch.Title, ch.Chapter, ch.Section, ch.Text); err != nil {
			return fmt.Errorf("saving chunk %s: %w", ch.ChunkID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing build: %w", err)
	}
	return nil
}

// LatestBuild returns the most recent recorded build.
func (c *catalogStore) LatestBuild(ctx context.Context) (*domain.BuildInfo, error) {
	row := c.store.db.QueryRowContext(ctx, `
		SELECT id, source, article_count, chunk_count, vocabulary_size, created_at
		FROM builds
		ORDER BY created_at DESC
		LIMIT 1
	`)

	var info domain.BuildInfo
	err := row.Scan(&info.ID, &info.Source, &info.ArticleCount, &info.ChunkCount,
		&info.VocabularySize, &info.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no build recorded", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest build: %w", err)
	}
	return &info, nil
}

// GetArticle returns the article with the given canonical label from
// the latest build.
func (c *catalogStore) GetArticle(ctx context.Context, label string) (*domain.Article, error) {
	row := c.store.db.QueryRowContext(ctx, `
		SELECT label, title, chapter, section, body
		FROM articles
		WHERE label = ?
		ORDER BY position
		LIMIT 1
	`, label)

	var a domain.Article
	err := row.Scan(&a.Label, &a.Title, &a.Chapter, &a.Section, &a.Text)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: article %q", domain.ErrNotFound, label)
	}
	if err != nil {
		return nil, fmt.Errorf("querying article %q: %w", label, err)
	}
	return &a, nil
}

// ListArticles returns all articles of the latest build in document order.
func (c *catalogStore) ListArticles(ctx context.Context) ([]domain.Article, error) {
	rows, err := c.store.db.QueryContext(ctx, `
		SELECT label, title, chapter, section, body
		FROM articles
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying articles: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(&a.Label, &a.Title, &a.Chapter, &a.Section, &a.Text); err != nil {
			return nil, fmt.Errorf("scanning article: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// ChunksByArticle returns the chunks derived from one article in
// split order.
func (c *catalogStore) ChunksByArticle(ctx context.Context, label string) ([]domain.Chunk, error) {
	rows, err := c.store.db.QueryContext(ctx, `
		SELECT chunk_id, article_label, title, chapter, section, body
		FROM chunks
		WHERE article_label = ?
		ORDER BY position
	`, label)
	if err != nil {
		return nil, fmt.Errorf("querying chunks for %q: %w", label, err)
	}
	defer rows.Close()

	var chunks []domain.Chunk
	for rows.Next() {
		var ch domain.Chunk
		if err := rows.Scan(&ch.ChunkID, &ch.Article, &ch.Title, &ch.Chapter, &ch.Section, &ch.Text); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		chunks = append(chunks, ch)
	}
	return chunks, rows.Err()
}

// Close closes the underlying store.
func (c *catalogStore) Close() error {
	return c.store.Close()
}
