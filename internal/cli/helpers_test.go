package cli

import (
	"bytes"
	"testing"
)

// captureStdout runs fn with command output redirected to a buffer.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	prev := stdout
	var buf bytes.Buffer
	stdout = &buf
	t.Cleanup(func() {
		stdout = prev
	})

	fn()
	stdout = prev
	return buf.String()
}
