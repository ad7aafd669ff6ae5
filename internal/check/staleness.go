package check

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/aidanlsb/vaudit/internal/dates"
	"github.com/aidanlsb/vaudit/internal/graph"
	"github.com/aidanlsb/vaudit/internal/vault"
	"github.com/aidanlsb/vaudit/internal/wikilink"
)

// Staleness score weights.
const (
	maxAgeScore      = 40
	ageStepScore     = 10
	ageStepDays      = 30
	noLinksScore     = 30
	fewLinksScore    = 15
	fewLinksBelow    = 3
	minimalScore     = 20
	minimalBelow     = 50
	shortScore       = 10
	shortBelow       = 100
	inProgressScore  = 10
	archivedFragment = "archive"
)

var markupChars = regexp.MustCompile("[#*`~\\[\\]()]")

// ArchivalCandidate is a document that looks abandoned.
type ArchivalCandidate struct {
	Path              string   `json:"path"`
	Name              string   `json:"name"`
	DaysSinceModified int      `json:"days_since_modified"`
	LastModified      string   `json:"last_modified"`
	WordCount         int      `json:"word_count"`
	OutgoingLinks     int      `json:"outgoing_links"`
	InProgress        bool     `json:"in_progress"`
	Score             int      `json:"staleness_score"`
	Reasons           []string `json:"reasons"`
}

// SuggestArchival scores every document for staleness and reports those
// scoring at least opts.StaleScore, highest score first.
//
// Documents whose relative path mentions an archive (any case) or contains
// one of opts.SkipMarkers are not scored.
func SuggestArchival(g *graph.Graph, opts Options) []ArchivalCandidate {
	now := opts.now()

	var candidates []ArchivalCandidate
	for _, doc := range g.Documents {
		if skipStaleness(doc.RelativePath, opts.SkipMarkers) {
			continue
		}
		c := scoreDocument(doc, opts, now)
		if c.Score >= opts.StaleScore {
			candidates = append(candidates, c)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Path < candidates[j].Path
	})
	return candidates
}

func skipStaleness(rel string, markers []string) bool {
	if strings.Contains(strings.ToLower(rel), archivedFragment) {
		return true
	}
	for _, m := range markers {
		if m != "" && strings.Contains(rel, m) {
			return true
		}
	}
	return false
}

func scoreDocument(doc *vault.Document, opts Options, now time.Time) ArchivalCandidate {
	days := dates.DaysSince(doc.ModTime, now)
	c := ArchivalCandidate{
		Path:              doc.RelativePath,
		Name:              doc.ID,
		DaysSinceModified: days,
		LastModified:      dates.Format(doc.ModTime),
		WordCount:         CountWords(doc.Body),
		OutgoingLinks:     len(wikilink.ExtractSet(doc.Content)),
		InProgress:        opts.InProgressDir != "" && strings.HasPrefix(doc.RelativePath, opts.InProgressDir),
		Reasons:           []string{},
	}

	if days > opts.StaleDays {
		c.Score += min(maxAgeScore, ((days-opts.StaleDays)/ageStepDays)*ageStepScore)
		c.Reasons = append(c.Reasons, fmt.Sprintf("stale (%d days)", days))
	}

	switch {
	case c.OutgoingLinks == 0:
		c.Score += noLinksScore
		c.Reasons = append(c.Reasons, "no outgoing links")
	case c.OutgoingLinks < fewLinksBelow:
		c.Score += fewLinksScore
		c.Reasons = append(c.Reasons, "few links")
	}

	switch {
	case c.WordCount < minimalBelow:
		c.Score += minimalScore
		c.Reasons = append(c.Reasons, "minimal content")
	case c.WordCount < shortBelow:
		c.Score += shortScore
		c.Reasons = append(c.Reasons, "short content")
	}

	if c.InProgress {
		c.Score += inProgressScore
		c.Reasons = append(c.Reasons, fmt.Sprintf("in %s/", opts.InProgressDir))
	}

	return c
}

// CountWords counts the words of a document body. Links count as their
// visible text and markdown punctuation is ignored.
func CountWords(body string) int {
	text := wikilink.StripLinks(body)
	text = markupChars.ReplaceAllString(text, "")
	return len(strings.Fields(text))
}
