package slog

import (
	"log/slog"

	"github.com/fwojciec/crmfill"
)

// Ensure LoggingForm implements crmfill.Form.
var _ crmfill.Form = (*LoggingForm)(nil)

// LoggingForm wraps a Form with debug logging of every write.
type LoggingForm struct {
	next   crmfill.Form
	logger *slog.Logger
}

// NewLoggingForm creates a new LoggingForm.
func NewLoggingForm(next crmfill.Form, logger *slog.Logger) *LoggingForm {
	return &LoggingForm{next: next, logger: logger}
}

// FieldIDs delegates to the wrapped form.
func (f *LoggingForm) FieldIDs() []string {
	return f.next.FieldIDs()
}

// Value delegates to the wrapped form.
func (f *LoggingForm) Value(id string) (string, error) {
	return f.next.Value(id)
}

// SetValue delegates to the wrapped form and logs the write.
// Missing fields are logged without an error since callers skip them.
func (f *LoggingForm) SetValue(id, value string) (err error) {
	defer func() {
		if crmfill.ErrorCode(err) == crmfill.ENOTFOUND {
			f.logger.Debug("form field missing", "field", id)
			return
		}
		f.logger.Debug("form field set",
			"field", id,
			"value", value,
			"err", err,
		)
	}()
	return f.next.SetValue(id, value)
}
