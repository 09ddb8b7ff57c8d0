package demos

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/reusee/lambdas/modes"
)

// Stdout receives the transcript.
type Stdout io.Writer

func (Module) Stdout(
	mode modes.Mode,
	t *testing.T,
) Stdout {
	if mode == modes.ModeDevelopment && t != nil {
		return testWriter{t}
	}
	return os.Stdout
}

type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
