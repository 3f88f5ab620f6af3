package docs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"refuel-rescue/internal/domain"
)

// FSStore writes each document into its own directory under Dir, named
// by document id. The default sink when no database is configured.
type FSStore struct {
	Dir string
}

func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create document dir: %w", err)
	}
	return &FSStore{Dir: dir}, nil
}

func (s *FSStore) Save(ctx context.Context, doc Document) error {
	dir := filepath.Join(s.Dir, doc.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create document dir: %w", err)
	}
	path := filepath.Join(dir, doc.Filename)
	if err := os.WriteFile(path, []byte(doc.Content), 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

func (s *FSStore) Get(ctx context.Context, id string) (Document, error) {
	dir := filepath.Join(s.Dir, id)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, domain.ErrNotFound
		}
		return Document{}, fmt.Errorf("read document dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return Document{}, fmt.Errorf("read document: %w", err)
		}
		info, err := entry.Info()
		createdAt := time.Time{}
		if err == nil {
			createdAt = info.ModTime().UTC()
		}
		return Document{
			ID:        id,
			Filename:  entry.Name(),
			MimeType:  "text/plain",
			Content:   string(content),
			CreatedAt: createdAt,
		}, nil
	}
	return Document{}, domain.ErrNotFound
}

var _ Store = (*FSStore)(nil)
