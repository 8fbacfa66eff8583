package mock

import (
	"context"
	"io"

	"github.com/fwojciec/webext"
)

var _ webext.NamespaceService = (*NamespaceService)(nil)

// NamespaceService is a mock implementation of webext.NamespaceService.
type NamespaceService struct {
	SaveNamespaceFn       func(ctx context.Context, rec *webext.NamespaceRecord) error
	FindNamespaceByNameFn func(ctx context.Context, name string) (*webext.NamespaceRecord, error)
	FindNamespacesFn      func(ctx context.Context, filter webext.NamespaceFilter) ([]*webext.NamespaceRecord, error)
	DeleteNamespaceFn     func(ctx context.Context, name string) error
}

func (s *NamespaceService) SaveNamespace(ctx context.Context, rec *webext.NamespaceRecord) error {
	return s.SaveNamespaceFn(ctx, rec)
}

func (s *NamespaceService) FindNamespaceByName(ctx context.Context, name string) (*webext.NamespaceRecord, error) {
	return s.FindNamespaceByNameFn(ctx, name)
}

func (s *NamespaceService) FindNamespaces(ctx context.Context, filter webext.NamespaceFilter) ([]*webext.NamespaceRecord, error) {
	return s.FindNamespacesFn(ctx, filter)
}

func (s *NamespaceService) DeleteNamespace(ctx context.Context, name string) error {
	return s.DeleteNamespaceFn(ctx, name)
}

var _ webext.NamespaceWriter = (*NamespaceWriter)(nil)

// NamespaceWriter is a mock implementation of webext.NamespaceWriter.
type NamespaceWriter struct {
	SaveNamespaceFn func(ctx context.Context, rec *webext.NamespaceRecord) error
}

func (w *NamespaceWriter) SaveNamespace(ctx context.Context, rec *webext.NamespaceRecord) error {
	return w.SaveNamespaceFn(ctx, rec)
}

var _ webext.BindingGenerator = (*BindingGenerator)(nil)

// BindingGenerator is a mock implementation of webext.BindingGenerator.
type BindingGenerator struct {
	GenerateFn func(w io.Writer, ns *webext.Namespace) error
}

func (g *BindingGenerator) Generate(w io.Writer, ns *webext.Namespace) error {
	return g.GenerateFn(w, ns)
}
