package logging

import (
	"context"
	"time"
)

// AuditEntry records one CLI operation.
type AuditEntry struct {
	Command    string
	TraceID    string
	Parameters map[string]string
	Success    bool
	Results    int
	Error      string
	Duration   time.Duration
}

// NewAuditEntry starts an entry for command.
func NewAuditEntry(command, traceID string) *AuditEntry {
	return &AuditEntry{Command: command, TraceID: traceID}
}

// WithParameters sets the operation parameters.
func (e *AuditEntry) WithParameters(params map[string]string) *AuditEntry {
	e.Parameters = params
	return e
}

// WithSuccess marks the entry successful with the number of results produced.
func (e *AuditEntry) WithSuccess(results int) *AuditEntry {
	e.Success = true
	e.Results = results
	return e
}

// WithError marks the entry failed.
func (e *AuditEntry) WithError(msg string) *AuditEntry {
	e.Success = false
	e.Error = msg
	return e
}

// WithDuration sets the duration measured from start.
func (e *AuditEntry) WithDuration(start time.Time) *AuditEntry {
	e.Duration = time.Since(start)
	return e
}

// LogAudit writes e through the logger attached to ctx.
func LogAudit(ctx context.Context, e AuditEntry) {
	log := FromContext(ctx)
	ev := log.Info()
	if !e.Success {
		ev = log.Warn()
	}
	dict := ev.Str("audit_command", e.Command).
		Bool("success", e.Success).
		Int("results", e.Results).
		Dur("duration", e.Duration)
	for k, v := range e.Parameters {
		dict = dict.Str("param_"+k, v)
	}
	if TraceIDFromContext(ctx) == "" && e.TraceID != "" {
		dict = dict.Str(FieldTraceID, e.TraceID)
	}
	if e.Error != "" {
		dict = dict.Str("error", e.Error)
	}
	dict.Msg("audit")
}
