// Package doi finds DOIs in identifiers and describes open access data
// about them.
package doi

import (
	"regexp"
	"strings"
)

var doiRe = regexp.MustCompile(`10\.\d{4,9}/\S+`)

// Extract returns the first DOI found in an identifier. It works for bare
// DOIs as well as for doi.org and dx.doi.org URLs, with or without scheme.
func Extract(identifier string) (string, bool) {
	res := doiRe.FindString(strings.TrimSpace(identifier))
	return res, res != ""
}

// OA is the open access status of a DOI.
type OA struct {
	// DOI as it was found in identifiers.
	DOI string

	// IsOA is true if there is a free copy of the work.
	IsOA bool

	// Status is the OA status label (gold, green, hybrid, bronze, closed).
	Status string

	// Journal is the name of the journal.
	Journal string

	// Publisher is the name of the publisher.
	Publisher string

	// Err is set when the lookup failed, such results do not count as
	// closed access.
	Err error

	// Datasets are names of datasets that reference the DOI.
	Datasets []string
}
