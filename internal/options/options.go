package options

import (
	"context"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultProtocol is used when no protocol name is supplied.
const DefaultProtocol = "dtm0660"

type loggerKey struct{}

var discard = newDiscardLogger()

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// WithLogger stores the diagnostic sink inside the context.
func WithLogger(ctx context.Context, logger logrus.Ext1FieldLogger) context.Context {
	if logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// Logger retrieves the diagnostic sink from context. Decoders never depend on
// what the sink does, so a silent logger is returned when none was set.
func Logger(ctx context.Context) logrus.Ext1FieldLogger {
	if ctx != nil {
		if v := ctx.Value(loggerKey{}); v != nil {
			if l, ok := v.(logrus.Ext1FieldLogger); ok {
				return l
			}
		}
	}
	return discard
}

// NormalizeProtocol lower-cases and trims a protocol name, falling back to
// DefaultProtocol.
func NormalizeProtocol(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultProtocol
	}
	return name
}
