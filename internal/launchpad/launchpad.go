// Package launchpad defines the questions plugins ask about the Ubuntu
// archive and bug tracker. The engine itself never performs network
// fetches: the default client answers from static data, and a remote
// implementation can be injected by the embedding application.
package launchpad

import "strings"

// QueueItem is one entry of a distribution upload queue.
type QueueItem struct {
	Package string
	Version string
	Suite   string
	Status  string
}

// Queue states that mean a package is still waiting for review.
var ReviewStates = map[string]bool{
	"New":        true,
	"Unapproved": true,
}

// Client answers archive and bug-tracker queries on behalf of plugins.
type Client interface {
	// IsValidDistribution reports whether a changelog suite name
	// (e.g. "jammy" or "jammy-proposed") names a known Ubuntu series.
	IsValidDistribution(suite string) bool

	// BugTargeted reports whether a bug has a task for the given
	// source package and series.
	BugTargeted(bug int, pkg, suite string) (bool, error)

	// HasSRUTemplate reports whether the bug description carries the
	// SRU justification template.
	HasSRUTemplate(bug int) (bool, error)

	// PublishedVersions lists source versions of pkg already published
	// in a series.
	PublishedVersions(pkg, suite string) ([]string, error)

	// UploadQueue lists queue entries for pkg in a suite.
	UploadQueue(pkg, suite string) ([]QueueItem, error)
}

// ubuntuSeries are the series the offline client recognizes.
var ubuntuSeries = []string{
	"trusty", "xenial", "bionic", "focal", "impish", "jammy",
	"kinetic", "lunar", "mantic", "noble", "oracular", "plucky",
	"questing",
}

var validPockets = map[string]bool{
	"":          true,
	"proposed":  true,
	"updates":   true,
	"security":  true,
	"backports": true,
}

// Static is an offline Client seeded with the known Ubuntu series and
// whatever archive facts the caller provides. Lookups it has no data
// for answer negatively rather than erroring.
type Static struct {
	Series       []string
	TargetedBugs map[int][]string      // bug -> "pkg/series"
	SRUTemplates map[int]bool          // bug -> template present
	Published    map[string][]string   // "pkg/series" -> versions
	Queues       map[string][]QueueItem // "pkg/suite" -> entries
}

// NewStatic returns a Static client seeded with the Ubuntu series list.
func NewStatic() *Static {
	return &Static{
		Series:       ubuntuSeries,
		TargetedBugs: make(map[int][]string),
		SRUTemplates: make(map[int]bool),
		Published:    make(map[string][]string),
		Queues:       make(map[string][]QueueItem),
	}
}

// IsValidDistribution implements Client. A suite is valid when its
// base is a known series and its pocket suffix, if any, is one of the
// archive pockets.
func (s *Static) IsValidDistribution(suite string) bool {
	base := suite
	pocket := ""
	if idx := strings.IndexByte(suite, '-'); idx > 0 {
		base = suite[:idx]
		pocket = suite[idx+1:]
	}
	if !validPockets[pocket] {
		return false
	}
	for _, known := range s.Series {
		if known == base {
			return true
		}
	}
	return false
}

// BugTargeted implements Client.
func (s *Static) BugTargeted(bug int, pkg, suite string) (bool, error) {
	key := pkg + "/" + baseOf(suite)
	for _, t := range s.TargetedBugs[bug] {
		if t == key {
			return true, nil
		}
	}
	return false, nil
}

// HasSRUTemplate implements Client.
func (s *Static) HasSRUTemplate(bug int) (bool, error) {
	return s.SRUTemplates[bug], nil
}

// PublishedVersions implements Client.
func (s *Static) PublishedVersions(pkg, suite string) ([]string, error) {
	return s.Published[pkg+"/"+baseOf(suite)], nil
}

// UploadQueue implements Client.
func (s *Static) UploadQueue(pkg, suite string) ([]QueueItem, error) {
	return s.Queues[pkg+"/"+suite], nil
}

func baseOf(suite string) string {
	if idx := strings.IndexByte(suite, '-'); idx > 0 {
		return suite[:idx]
	}
	return suite
}
