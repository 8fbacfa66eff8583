package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webext"
)

// Ensure LoggingNamespaceService implements webext.NamespaceService.
var _ webext.NamespaceService = (*LoggingNamespaceService)(nil)

// LoggingNamespaceService wraps a NamespaceService with logging.
type LoggingNamespaceService struct {
	next   webext.NamespaceService
	logger *slog.Logger
}

// NewLoggingNamespaceService creates a new LoggingNamespaceService.
func NewLoggingNamespaceService(next webext.NamespaceService, logger *slog.Logger) *LoggingNamespaceService {
	return &LoggingNamespaceService{next: next, logger: logger}
}

// SaveNamespace delegates to the wrapped service and logs the operation.
func (s *LoggingNamespaceService) SaveNamespace(ctx context.Context, rec *webext.NamespaceRecord) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save namespace",
			"namespace", rec.Name,
			"hash", rec.ContentHash,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveNamespace(ctx, rec)
}

// FindNamespaceByName delegates to the wrapped service.
func (s *LoggingNamespaceService) FindNamespaceByName(ctx context.Context, name string) (rec *webext.NamespaceRecord, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find namespace",
			"namespace", name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindNamespaceByName(ctx, name)
}

// FindNamespaces delegates to the wrapped service.
func (s *LoggingNamespaceService) FindNamespaces(ctx context.Context, filter webext.NamespaceFilter) (recs []*webext.NamespaceRecord, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find namespaces",
			"count", len(recs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindNamespaces(ctx, filter)
}

// DeleteNamespace delegates to the wrapped service and logs the operation.
func (s *LoggingNamespaceService) DeleteNamespace(ctx context.Context, name string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete namespace",
			"namespace", name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteNamespace(ctx, name)
}
