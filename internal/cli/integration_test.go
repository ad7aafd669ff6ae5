//go:build integration

package cli_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aidanlsb/vaudit/internal/testutil"
)

func body(links ...string) string {
	var b strings.Builder
	for _, l := range links {
		b.WriteString("[[" + l + "]] ")
	}
	b.WriteString(strings.TrimSpace(strings.Repeat("word ", 120)))
	return b.String()
}

// cleanVault has no findings for any analysis.
func cleanVault(t *testing.T) *testutil.TestVault {
	return testutil.NewTestVault(t).
		WithFile("Home.md", "---\ncreated: 2024-01-01\n---\n"+body("A", "B", "C")).
		WithFile("Notes/A.md", testutil.Note("Home", body("B", "C", "Home"))).
		WithFile("Notes/B.md", testutil.Note("Home", body("A", "C", "Home"))).
		WithFile("Notes/C.md", testutil.Note("Home", body("A", "B", "Home")))
}

func TestIntegration_CleanVault(t *testing.T) {
	v := cleanVault(t).Build()

	for _, cmd := range []string{"broken", "orphans", "bloat", "stale", "squeeze", "frontmatter"} {
		t.Run(cmd, func(t *testing.T) {
			result := v.AssertFindings(0, cmd)
			result.AssertNoWarnings(t)
		})
	}

	result := v.RunCLI("audit")
	result.MustSucceed(t)
	if result.ExitCode != 0 {
		t.Errorf("audit exit code = %d, want 0\nRaw: %s", result.ExitCode, result.RawJSON)
	}
	if got := result.Data["documents"]; got != float64(4) {
		t.Errorf("documents = %v, want 4", got)
	}
}

func TestIntegration_BrokenLinks(t *testing.T) {
	v := cleanVault(t).
		WithFile("Notes/D.md", testutil.Note("Home", body("A", "Notes/B.md", "Missing Note"))).
		Build()

	result := v.AssertFindings(1, "broken")
	item := result.DataList("items")[0].(map[string]interface{})
	if item["source_path"] != "Notes/D.md" || item["target"] != "Missing Note" {
		t.Errorf("unexpected item: %v", item)
	}

	// D is not linked from anywhere.
	v.AssertFindings(1, "orphans")
}

func TestIntegration_Suggestion(t *testing.T) {
	v := cleanVault(t).
		WithFile("Notes/Deep Work.md", testutil.Note("Home", body("A", "B", "C"))).
		WithFile("Notes/E.md", testutil.Note("Home", body("deep-work", "Deep Work", "A"))).
		Build()

	result := v.AssertFindings(1, "broken")
	item := result.DataList("items")[0].(map[string]interface{})
	if item["suggestion"] != "Deep Work" {
		t.Errorf("suggestion = %v, want Deep Work", item["suggestion"])
	}
}

func TestIntegration_Stale(t *testing.T) {
	old := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	v := cleanVault(t).
		WithModTime("Notes/A.md", old).
		Build()

	// Flag names accept underscores.
	result := v.AssertFindings(1, "stale", "--as_of", "2025-06-01")
	item := result.DataList("items")[0].(map[string]interface{})
	if item["path"] != "Notes/A.md" {
		t.Errorf("path = %v, want Notes/A.md", item["path"])
	}
	if item["staleness_score"] != float64(40) {
		t.Errorf("staleness_score = %v, want 40", item["staleness_score"])
	}

	v.AssertFindings(0, "stale", "--as-of", "2025-06-01", "--days", "1000")
	v.RunCLI("stale", "--as-of", "2025-06-01", "--days", "0").MustSucceed(t)
	v.RunCLI("stale", "--days", "-1").MustFail(t, "INVALID_INPUT")

	v.RunCLI("stale", "--as-of", "June").MustFail(t, "INVALID_INPUT")
}

func TestIntegration_Thresholds(t *testing.T) {
	var hub strings.Builder
	for i := 0; i < 12; i++ {
		hub.WriteString("- [[Topic " + strings.Repeat("x", i+1) + "]]\n")
	}
	v := cleanVault(t).
		WithFile("Maps/Topics MOC.md", testutil.Note("Home", hub.String())).
		Build()

	v.AssertFindings(0, "bloat")
	result := v.AssertFindings(1, "bloat", "--threshold", "12")
	item := result.DataList("items")[0].(map[string]interface{})
	if item["status"] != "bloated" {
		t.Errorf("status = %v, want bloated", item["status"])
	}
	v.AssertFindings(1, "bloat", "--threshold", "15")

	v.RunCLI("bloat", "--threshold", "0").MustFail(t, "INVALID_INPUT")
}

func TestIntegration_VaultConfig(t *testing.T) {
	v := cleanVault(t).
		WithFile("Inbox/Loose.md", testutil.Note("Home", body("A", "B", "C"))).
		WithVaultYAML("root_notes: [Home, Loose]\n").
		Build()

	v.AssertFindings(0, "orphans")

	bad := cleanVault(t).
		WithVaultYAML("thresholds:\n  bloat: -1\n").
		Build()
	result := bad.RunCLI("orphans")
	result.MustFail(t, "CONFIG_INVALID")
	if result.ExitCode != 1 {
		t.Errorf("exit code = %d, want 1", result.ExitCode)
	}
}

func TestIntegration_Exclusions(t *testing.T) {
	v := cleanVault(t).
		WithFile(".gitignore", "Drafts/\n").
		WithFile("Drafts/Scratch.md", "[[Nowhere]]").
		WithFile(".obsidian/Plugin.md", "[[Nowhere]]").
		Build()

	v.AssertFindings(0, "broken")
	v.AssertFindings(0, "orphans")
}

func TestIntegration_Warnings(t *testing.T) {
	v := cleanVault(t).
		WithBytes("Notes/Bad.md", []byte{0xff, 0xfe, 'x'}).
		WithFile("Archive/A.md", testutil.Note("Home", body("B", "C", "Home"))).
		WithFile("Notes/Index.md", testutil.Note("Home", body("Bad", "A", "B"))).
		WithFile("Notes/Links.md", testutil.Note("Home", body("Index", "A", "B"))).
		WithFile("Notes/More.md", testutil.Note("Home", body("Links", "More", "A"))).
		Build()

	result := v.RunCLI("broken")
	result.MustSucceed(t)
	result.AssertHasWarning(t, "READ_FAILED")
	result.AssertHasWarning(t, "NAME_COLLISION")
}

func TestIntegration_VaultResolution(t *testing.T) {
	v := cleanVault(t).
		WithFile("Notes/D.md", testutil.Note("Home", body("Missing"))).
		Build()

	t.Run("positional path", func(t *testing.T) {
		result := v.RunCLIWithEnv([]string{}, "broken", v.Path)
		result.MustSucceed(t)
		result.AssertResultCount(t, "items", 1)
	})

	t.Run("environment", func(t *testing.T) {
		result := v.RunCLIWithEnv([]string{"VAUDIT_VAULT=" + v.Path}, "broken")
		result.MustSucceed(t)
		result.AssertResultCount(t, "items", 1)
	})

	t.Run("missing vault", func(t *testing.T) {
		result := v.RunCLI("--vault-path", v.File("no-such-dir"), "broken")
		result.MustFail(t, "VAULT_NOT_FOUND")
		if result.ExitCode != 1 {
			t.Errorf("exit code = %d, want 1", result.ExitCode)
		}
	})

	t.Run("unknown named vault", func(t *testing.T) {
		result := v.RunCLIWithEnv([]string{}, "--vault", "nope", "broken")
		result.MustFail(t, "VAULT_NOT_FOUND")
	})

	t.Run("too many arguments", func(t *testing.T) {
		result := v.RunCLI("broken", "a", "b")
		result.MustFail(t, "INVALID_INPUT")
	})
}

func TestIntegration_AuditOutput(t *testing.T) {
	v := cleanVault(t).
		WithFile("Notes/D.md", testutil.Note("Home", body("Missing"))).
		Build()

	result := v.RunCLI("audit", "--format", "html", "--output", v.File("report.html"))
	result.MustSucceed(t)
	if result.ExitCode != 1 {
		t.Errorf("exit code = %d, want 1", result.ExitCode)
	}
	v.AssertFileContains("report.html", "<html")
	v.AssertFileContains("report.html", "Missing")

	result = v.RunCLI("audit", "--format", "pdf")
	result.MustFail(t, "INVALID_INPUT")
}

func TestIntegration_MCPInstall(t *testing.T) {
	v := cleanVault(t).Build()
	home := t.TempDir()
	env := []string{"HOME=" + home, "USERPROFILE=" + home}

	result := v.RunCLIWithEnv(env, "mcp", "install", "--client", "cursor", v.Path)
	result.MustSucceed(t)
	if result.DataString("result") != "added" {
		t.Errorf("result = %q, want added", result.DataString("result"))
	}

	result = v.RunCLIWithEnv(env, "mcp", "install", "--client", "cursor", v.Path)
	result.MustSucceed(t)
	if result.DataString("result") != "unchanged" {
		t.Errorf("result = %q, want unchanged", result.DataString("result"))
	}

	result = v.RunCLIWithEnv(env, "mcp", "status")
	result.MustSucceed(t)
	if result.Meta == nil || result.Meta.Count != 1 {
		t.Errorf("expected one installed client\nRaw: %s", result.RawJSON)
	}

	v.RunCLIWithEnv(env, "mcp", "remove", "--client", "cursor").MustSucceed(t)
	v.RunCLIWithEnv(env, "mcp", "install", "--client", "vim", v.Path).MustFail(t, "INVALID_INPUT")
}
