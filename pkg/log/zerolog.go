package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	xaierrors "github.com/robsdavis/Explainability/pkg/errors"
)

// NewZerologLogger creates a zerolog logger writing structured JSON to w.
// When w is nil, os.Stderr is used.
func NewZerologLogger(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// InitZerologWarnings routes library warnings (errors.Warn) through the given
// zerolog logger. Warning types implementing zerolog.LogObjectMarshaler are
// emitted as structured objects.
func InitZerologWarnings(logger zerolog.Logger) {
	xaierrors.SetZerologWarnFunc(func(warning error) {
		event := logger.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			event.EmbedObject(obj).Msg("explainability warning")
			return
		}
		event.Err(warning).Msg("explainability warning")
	})
}

// ResetZerologWarnings detaches the zerolog warning sink, restoring the
// default handler in pkg/errors.
func ResetZerologWarnings() {
	xaierrors.SetZerologWarnFunc(nil)
}
