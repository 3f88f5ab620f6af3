// Package postgres archives emitted receipt documents so they stay
// downloadable after the session that produced them is gone. Orders and
// users are never persisted; only the emitted artifact is.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"refuel-rescue/internal/docs"
	"refuel-rescue/internal/domain"
)

const receiptInsertSQL = `
INSERT INTO receipts (id, filename, mime_type, content, created_at)
VALUES ($1, $2, $3, $4, $5)
`

const receiptSelectByIDSQL = `
SELECT id, filename, mime_type, content, created_at
FROM receipts
WHERE id = $1
`

type ReceiptStore struct {
	pool *pgxpool.Pool
}

func NewReceiptStore(pool *pgxpool.Pool) *ReceiptStore {
	return &ReceiptStore{pool: pool}
}

func (s *ReceiptStore) Save(ctx context.Context, doc docs.Document) error {
	_, err := s.pool.Exec(ctx, receiptInsertSQL,
		doc.ID, doc.Filename, doc.MimeType, doc.Content, doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert receipt: %w", err)
	}
	return nil
}

func (s *ReceiptStore) Get(ctx context.Context, id string) (docs.Document, error) {
	row := s.pool.QueryRow(ctx, receiptSelectByIDSQL, id)
	var doc docs.Document
	err := row.Scan(&doc.ID, &doc.Filename, &doc.MimeType, &doc.Content, &doc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return docs.Document{}, domain.ErrNotFound
		}
		return docs.Document{}, fmt.Errorf("select receipt: %w", err)
	}
	return doc, nil
}

var _ docs.Store = (*ReceiptStore)(nil)
