package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/webext"
)

// Ensure LoggingParser implements webext.Parser.
var _ webext.Parser = (*LoggingParser)(nil)

// LoggingParser wraps a Parser, logging each parsed page and every child
// that was skipped.
type LoggingParser struct {
	next   webext.Parser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next webext.Parser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// ParseNamespace delegates to the wrapped parser and logs the outcome.
func (p *LoggingParser) ParseNamespace(name, html string) (ext *webext.Extraction, err error) {
	defer func(begin time.Time) {
		if err != nil {
			p.logger.Error("parse namespace",
				"namespace", name,
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		for _, s := range ext.Skipped {
			p.logger.Warn("skipped",
				"namespace", name,
				"section", s.Section,
				"index", s.Index,
				"err", s.Err,
			)
		}
		ns := ext.Namespace
		p.logger.Info("parse namespace",
			"namespace", name,
			"types", len(ns.Types),
			"properties", len(ns.Properties),
			"methods", len(ns.Methods),
			"skipped", len(ext.Skipped),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return p.next.ParseNamespace(name, html)
}
