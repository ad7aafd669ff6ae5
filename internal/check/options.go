package check

import "time"

// Default thresholds.
const (
	DefaultBloatThreshold   = 50
	DefaultStaleDays        = 180
	DefaultStaleScore       = 30
	DefaultSqueezeThreshold = 10
	DefaultInProgressDir    = "Efforts"
)

// DefaultRootNotes are the vault entry points. They are never orphans and
// need no parent link.
var DefaultRootNotes = []string{"Home", "Home Basic", "Ideaverse Map"}

// DefaultSkipMarkers exclude templates and archives from staleness scoring.
var DefaultSkipMarkers = []string{"Templates", "templates", "Archive", "archive", "Archived"}

// Options configures the analyses.
type Options struct {
	RootNotes []string
	Hubs      HubRules

	BloatThreshold int

	StaleDays  int
	StaleScore int
	// InProgressDir is the relative-path prefix of work in progress.
	InProgressDir string
	// SkipMarkers are substrings of relative paths skipped by staleness scoring.
	SkipMarkers []string
	// Now is the reference time for staleness. Zero means time.Now().
	Now time.Time

	SqueezeThreshold int

	// Strict enables the hub membership check in CheckFrontmatter.
	Strict bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		RootNotes:        append([]string(nil), DefaultRootNotes...),
		Hubs:             DefaultHubRules(),
		BloatThreshold:   DefaultBloatThreshold,
		StaleDays:        DefaultStaleDays,
		StaleScore:       DefaultStaleScore,
		InProgressDir:    DefaultInProgressDir,
		SkipMarkers:      append([]string(nil), DefaultSkipMarkers...),
		SqueezeThreshold: DefaultSqueezeThreshold,
	}
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

func (o Options) rootSet() map[string]bool {
	roots := make(map[string]bool, len(o.RootNotes))
	for _, r := range o.RootNotes {
		roots[r] = true
	}
	return roots
}
