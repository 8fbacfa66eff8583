package webext

import (
	"context"
	"io"
	"time"
)

// NamespaceRecord is an extracted namespace together with where it came
// from and what was skipped while extracting it.
type NamespaceRecord struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	SourceURL   string     `json:"sourceUrl" yaml:"sourceUrl"`
	ContentHash string     `json:"contentHash" yaml:"contentHash"`
	Namespace   *Namespace `json:"namespace" yaml:"namespace"`
	Skipped     []string   `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	ExtractedAt time.Time  `json:"extractedAt" yaml:"extractedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *NamespaceRecord) Validate() error {
	if r.Name == "" {
		return Errorf(EINVALID, "namespace name required")
	}
	if r.Namespace == nil {
		return Errorf(EINVALID, "namespace schema required")
	}
	return nil
}

// NamespaceWriter persists extracted namespaces.
type NamespaceWriter interface {
	// SaveNamespace stores the record, replacing any earlier record with
	// the same name.
	SaveNamespace(ctx context.Context, rec *NamespaceRecord) error
}

// NamespaceService represents a service for managing stored namespaces.
type NamespaceService interface {
	NamespaceWriter

	// FindNamespaceByName retrieves a namespace by name.
	// Returns ENOTFOUND if the namespace does not exist.
	FindNamespaceByName(ctx context.Context, name string) (*NamespaceRecord, error)

	// FindNamespaces retrieves namespaces matching the filter, ordered by name.
	FindNamespaces(ctx context.Context, filter NamespaceFilter) ([]*NamespaceRecord, error)

	// DeleteNamespace permanently removes a namespace.
	// Returns ENOTFOUND if the namespace does not exist.
	DeleteNamespace(ctx context.Context, name string) error
}

// NamespaceFilter represents a filter for FindNamespaces.
type NamespaceFilter struct {
	Name      *string `json:"name"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// BindingGenerator writes host-language bindings for a namespace.
type BindingGenerator interface {
	Generate(w io.Writer, ns *Namespace) error
}
