package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/webext"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ webext.NamespaceService = (*NamespaceService)(nil)

// NamespaceService implements webext.NamespaceService using SQLite. The
// schema is stored as JSON.
type NamespaceService struct {
	db *DB
}

// NewNamespaceService creates a new NamespaceService.
func NewNamespaceService(db *DB) *NamespaceService {
	return &NamespaceService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content []byte) string {
	var b [8]byte
	h := xxhash.Sum64(content)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b[:])
}

const namespaceColumns = "id, name, source_url, content_hash, schema, skipped, extracted_at"

// SaveNamespace inserts rec or replaces the stored namespace with the same
// name, keeping its ID. The ID is set on rec. A missing ContentHash
// defaults to the hash of the encoded schema and a zero ExtractedAt to now.
func (s *NamespaceService) SaveNamespace(ctx context.Context, rec *webext.NamespaceRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	schema, err := json.Marshal(rec.Namespace)
	if err != nil {
		return err
	}
	skipped := rec.Skipped
	if skipped == nil {
		skipped = []string{}
	}
	skippedJSON, err := json.Marshal(skipped)
	if err != nil {
		return err
	}

	if rec.ExtractedAt.IsZero() {
		rec.ExtractedAt = time.Now().UTC()
	}
	if rec.ContentHash == "" {
		rec.ContentHash = hashContent(schema)
	}

	var id string
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO namespaces (`+namespaceColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			source_url = excluded.source_url,
			content_hash = excluded.content_hash,
			schema = excluded.schema,
			skipped = excluded.skipped,
			extracted_at = excluded.extracted_at
		RETURNING id
	`, uuid.New().String(), rec.Name, rec.SourceURL, rec.ContentHash, string(schema),
		string(skippedJSON), rec.ExtractedAt.UTC().Format(time.RFC3339)).Scan(&id)
	if err != nil {
		return err
	}

	rec.ID = id
	return nil
}

// FindNamespaceByName retrieves a namespace by name.
func (s *NamespaceService) FindNamespaceByName(ctx context.Context, name string) (*webext.NamespaceRecord, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+namespaceColumns+" FROM namespaces WHERE name = ?", name)
	rec, err := scanNamespace(row)
	if err == sql.ErrNoRows {
		return nil, webext.Errorf(webext.ENOTFOUND, "namespace %q not found", name)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// FindNamespaces retrieves namespaces matching the filter, ordered by name.
func (s *NamespaceService) FindNamespaces(ctx context.Context, filter webext.NamespaceFilter) ([]*webext.NamespaceRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + namespaceColumns + " FROM namespaces WHERE 1=1")

	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY name ASC")
	paginate(&query, &args, filter)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*webext.NamespaceRecord
	for rows.Next() {
		rec, err := scanNamespace(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

// DeleteNamespace permanently removes a namespace.
func (s *NamespaceService) DeleteNamespace(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM namespaces WHERE name = ?", name)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return webext.Errorf(webext.ENOTFOUND, "namespace %q not found", name)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanNamespace decodes one namespaces row. Columns that fail to decode are
// EINTERNAL and name the namespace they belong to.
func scanNamespace(row scanner) (*webext.NamespaceRecord, error) {
	var rec webext.NamespaceRecord
	var schema, skipped, extractedAt string

	if err := row.Scan(&rec.ID, &rec.Name, &rec.SourceURL, &rec.ContentHash,
		&schema, &skipped, &extractedAt); err != nil {
		return nil, err
	}

	rec.Namespace = &webext.Namespace{}
	if err := json.Unmarshal([]byte(schema), rec.Namespace); err != nil {
		return nil, webext.Errorf(webext.EINTERNAL, "namespace %q: decode schema: %v", rec.Name, err)
	}
	if err := json.Unmarshal([]byte(skipped), &rec.Skipped); err != nil {
		return nil, webext.Errorf(webext.EINTERNAL, "namespace %q: decode skipped: %v", rec.Name, err)
	}
	if len(rec.Skipped) == 0 {
		rec.Skipped = nil
	}

	t, err := time.Parse(time.RFC3339, extractedAt)
	if err != nil {
		return nil, webext.Errorf(webext.EINTERNAL, "namespace %q: parse extracted_at %q: %v", rec.Name, extractedAt, err)
	}
	rec.ExtractedAt = t

	return &rec, nil
}

// paginate appends the filter's LIMIT and OFFSET, skipping zero values.
// SQLite only accepts OFFSET after a LIMIT, so an offset alone uses LIMIT -1.
func paginate(query *strings.Builder, args *[]any, filter webext.NamespaceFilter) {
	switch {
	case filter.Limit > 0:
		query.WriteString(" LIMIT ?")
		*args = append(*args, filter.Limit)
	case filter.Offset > 0:
		query.WriteString(" LIMIT -1")
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, filter.Offset)
	}
}
