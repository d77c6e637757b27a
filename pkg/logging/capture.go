package logging

import (
	"bytes"

	"github.com/arthur-debert/omniharness/pkg/errors"
	"github.com/rs/zerolog"
)

// Capture runs fn with an in-memory logger installed and returns exactly what
// was written to it. The previous logger and zerolog's global level are put
// back even when fn fails or panics. On failure the partial output is dropped
// and fn's error is returned.
//
// If fn swapped the process-wide logger without restoring it, the original is
// still reinstalled and an ErrLoggerRestore error is returned.
func Capture(fn func() error) (output string, err error) {
	var buf bytes.Buffer
	substitute := New(&buf)

	original := Set(substitute)
	globalLevel := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	defer func() {
		zerolog.SetGlobalLevel(globalLevel)
		if leaked := Set(original); leaked != substitute && err == nil {
			output = ""
			err = errors.New(errors.ErrLoggerRestore, "logger replaced inside capture block was not restored")
		}
	}()

	if err := fn(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
