package graph

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanlsb/vaudit/internal/paths"
	"github.com/aidanlsb/vaudit/internal/testutil"
	"github.com/aidanlsb/vaudit/internal/vault"
	"github.com/aidanlsb/vaudit/internal/wikilink"
)

func buildGraph(t *testing.T, v *testutil.TestVault) *Graph {
	t.Helper()
	batch, err := vault.Load(v.Path, paths.LoadRules(v.Path), nil)
	require.NoError(t, err)
	return Build(batch)
}

func sources(g *Graph, id string) []string {
	out := []string{}
	for src := range g.Incoming[id] {
		out = append(out, src)
	}
	sort.Strings(out)
	return out
}

func TestBuild(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("Home.md", "---\nup:\n---\n[[Atlas/Notes/Note.md|Note]] [[Missing]] [[Home]]\n").
		WithFile("Atlas/Notes/Note.md", "---\nup:\n  - \"[[Home]]\"\n---\nSee [[Other#Section]] and [[#local]].\n").
		WithFile("Other.md", "no links").
		WithFile(".agents/skills/notes.md", "[[Home]]").
		WithFile("node_modules/x/README.md", "[[Home]]").
		Build()

	g := buildGraph(t, v)

	assert.Equal(t, []string{"Home", "Note", "Other"}, g.IDs())
	assert.False(t, g.Exists("notes"), "hidden file must not enter the graph")
	assert.False(t, g.Exists("README"), "dependency file must not enter the graph")

	assert.Equal(t, "Atlas/Notes/Note.md", g.Paths["Note"])

	assert.Equal(t, []string{"Home", "Note"}, sources(g, "Home"), "self-incoming is recorded")
	assert.Equal(t, []string{"Home"}, sources(g, "Note"))
	assert.Equal(t, []string{"Note"}, sources(g, "Other"))
	assert.Equal(t, 2, g.InDegree("Home"))

	require.Len(t, g.References["Missing"], 1, "unresolved targets are retained")
	assert.Equal(t, "Missing", g.References["Missing"][0].Raw)
	assert.Equal(t, "Home.md", g.References["Missing"][0].SourcePath)

	require.Len(t, g.References["Note"], 1)
	assert.Equal(t, "Atlas/Notes/Note.md", g.References["Note"][0].Raw)

	_, hasEmpty := g.References[""]
	assert.False(t, hasEmpty, "empty normalized targets are discarded")

	assert.Len(t, g.Edges, 5)
	require.Len(t, g.References["Home"], 2)
	assert.False(t, g.References["Home"][0].SelfReference())
	assert.True(t, g.References["Home"][1].SelfReference())
	assert.Empty(t, g.Collisions)
	assert.Empty(t, g.Failures)
}

func TestBuildFilterAndGraphMembershipAgree(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("A.md", "a").
		WithFile("dist/B.md", "b").
		WithFile("src/build/C.md", "c").
		WithFile("Private/D.md", "d").
		WithFile("Notes/E.md", "e").
		WithFile(".gitignore", "Private/\n").
		Build()

	g := buildGraph(t, v)
	rules := paths.LoadRules(v.Path)

	for _, rel := range []string{"A.md", "dist/B.md", "src/build/C.md", "Private/D.md", "Notes/E.md"} {
		id := paths.Stem(rel)
		assert.Equal(t, paths.IsContent(v.File(rel), v.Path, rules), g.Exists(id), rel)
	}
}

func TestBuildSoftFailures(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("Home.md", "[[Broken]] [[Bad]]").
		WithBytes("Bad.md", []byte{0xff, 0xfe, '[', '[', 'H', 'o', 'm', 'e', ']', ']'}).
		Build()

	g := buildGraph(t, v)

	assert.True(t, g.Exists("Bad"), "unreadable files still exist")
	require.Len(t, g.Failures, 1)
	assert.Equal(t, "Bad.md", g.Failures[0].File.RelativePath)
	assert.Empty(t, sources(g, "Home"), "unreadable files contribute no references")
	assert.Equal(t, []string{"Home"}, sources(g, "Bad"))

	_, ok := g.Document("Bad")
	assert.False(t, ok)
}

func TestBuildCollisions(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("A/Topic.md", "[[Home]]").
		WithFile("B/Topic.md", "nothing").
		WithFile("Home.md", "[[Topic]]").
		Build()

	g := buildGraph(t, v)

	assert.Equal(t, map[string][]string{"Topic": {"A/Topic.md", "B/Topic.md"}}, g.Collisions)
	assert.Equal(t, "B/Topic.md", g.Paths["Topic"], "last path wins")
	assert.Equal(t, []string{"Topic"}, sources(g, "Home"), "both colliding documents contribute references")

	doc, ok := g.Document("Topic")
	require.True(t, ok)
	assert.Equal(t, "B/Topic.md", doc.RelativePath)
}

func TestHeaderInclusionRoundTrip(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("Child.md", "---\nup: [\"[[Home]]\"]\n---\nNo other references here.\n").
		WithFile("Home.md", "home").
		Build()

	g := buildGraph(t, v)
	doc, ok := g.Document("Child")
	require.True(t, ok)

	assert.Equal(t, []string{"Home"}, wikilink.NormalizeAll(wikilink.Extract(doc.Content)))
	assert.Empty(t, wikilink.Extract(doc.Body))
	assert.Equal(t, []string{"Child"}, sources(g, "Home"))
}
