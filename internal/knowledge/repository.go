// internal/knowledge/repository.go
package knowledge

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"chatbot-workers/internal/engine"
)

// Repository reads knowledge entries from PostgreSQL. The table is the
// editable source of truth; the engine only ever sees immutable snapshots of
// it.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const listQuery = `
SELECT keywords, required_keywords, category, response
FROM knowledge_entries
WHERE enabled = true
ORDER BY position ASC`

// List returns all enabled entries in their catalog order.
func (r *Repository) List(ctx context.Context) ([]engine.KnowledgeEntry, error) {
	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		return nil, fmt.Errorf("query knowledge entries: %w", err)
	}
	defer rows.Close()

	var entries []engine.KnowledgeEntry
	for rows.Next() {
		var (
			entry    engine.KnowledgeEntry
			category string
		)
		if err := rows.Scan(
			pq.Array(&entry.Keywords),
			pq.Array(&entry.RequiredKeywords),
			&category,
			&entry.Response,
		); err != nil {
			return nil, fmt.Errorf("scan knowledge entry: %w", err)
		}
		entry.Category = engine.Category(category)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate knowledge entries: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("knowledge_entries table is empty")
	}

	return entries, nil
}
