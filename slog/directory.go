// Package slog provides logging decorators for crmfill services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/crmfill"
)

// Ensure LoggingDirectory implements crmfill.DirectoryService.
var _ crmfill.DirectoryService = (*LoggingDirectory)(nil)

// LoggingDirectory wraps a DirectoryService with logging.
type LoggingDirectory struct {
	next   crmfill.DirectoryService
	logger *slog.Logger
}

// NewLoggingDirectory creates a new LoggingDirectory.
func NewLoggingDirectory(next crmfill.DirectoryService, logger *slog.Logger) *LoggingDirectory {
	return &LoggingDirectory{next: next, logger: logger}
}

// SearchContacts delegates to the wrapped service and logs the operation.
func (d *LoggingDirectory) SearchContacts(ctx context.Context, req crmfill.SearchRequest) (contacts []*crmfill.Contact, err error) {
	defer func(begin time.Time) {
		d.logger.Info("contact search",
			"query", req.Query,
			"limit", req.Limit,
			"count", len(contacts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.SearchContacts(ctx, req)
}
