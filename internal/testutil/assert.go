package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// AssertFileExists fails the test if the file does not exist.
func (v *TestVault) AssertFileExists(relPath string) {
	v.t.Helper()
	fullPath := filepath.Join(v.Path, relPath)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		v.t.Errorf("expected file to exist: %s", relPath)
	}
}

// AssertFileContains fails the test if the file does not contain the substring.
func (v *TestVault) AssertFileContains(relPath, substr string) {
	v.t.Helper()
	content := v.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		v.t.Errorf("expected file %s to contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertUnchanged fails the test if the file's content differs from what
// the builder wrote. The auditor must never modify the vault.
func (v *TestVault) AssertUnchanged(relPath string) {
	v.t.Helper()
	want, ok := v.files[relPath]
	if !ok {
		v.t.Fatalf("file %s was not added to the test vault", relPath)
	}
	got, err := os.ReadFile(v.File(relPath))
	if err != nil {
		v.t.Fatalf("failed to read file %s: %v", relPath, err)
	}
	if string(got) != string(want) {
		v.t.Errorf("expected file %s to be unchanged, got:\n%s", relPath, got)
	}
}

// AssertFindings runs an analysis command and verifies the number of
// reported items and the exit status that goes with it.
func (v *TestVault) AssertFindings(expectedCount int, args ...string) *CLIResult {
	v.t.Helper()
	result := v.RunCLI(args...)
	result.MustSucceed(v.t)

	items := result.DataList("items")
	if len(items) != expectedCount {
		v.t.Errorf("%v: expected %d items, got %d\nRaw: %s", args, expectedCount, len(items), result.RawJSON)
	}
	wantExit := 0
	if expectedCount > 0 {
		wantExit = 1
	}
	if result.ExitCode != wantExit {
		v.t.Errorf("%v: expected exit code %d, got %d", args, wantExit, result.ExitCode)
	}
	return result
}

// AssertHasWarning checks that the result contains a warning with the given code.
func (r *CLIResult) AssertHasWarning(t *testing.T, code string) {
	t.Helper()
	for _, w := range r.Warnings {
		if w.Code == code {
			return
		}
	}
	t.Errorf("expected warning with code %s, got warnings: %+v", code, r.Warnings)
}

// AssertNoWarnings checks that the result has no warnings.
func (r *CLIResult) AssertNoWarnings(t *testing.T) {
	t.Helper()
	if len(r.Warnings) > 0 {
		t.Errorf("expected no warnings, got: %+v", r.Warnings)
	}
}

// AssertResultCount checks that a result list has the expected length.
func (r *CLIResult) AssertResultCount(t *testing.T, key string, expected int) {
	t.Helper()
	results := r.DataList(key)
	if len(results) != expected {
		t.Errorf("expected %d %s, got %d\nRaw: %s", expected, key, len(results), r.RawJSON)
	}
}
