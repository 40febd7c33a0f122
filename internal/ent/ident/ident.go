// Package ident normalizes reference identifiers to URLs and classifies the
// outcome of resolving them.
package ident

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Status is the classified outcome of a resolution.
type Status string

const (
	StatusOK         Status = "ok"
	StatusRedirectOK Status = "redirect_ok"
	StatusRedirect   Status = "redirect"
	StatusNotFound   Status = "not_found"
	StatusError      Status = "error"
)

// StatusHTTP returns the status for an unexpected HTTP code.
func StatusHTTP(code int) Status {
	return Status("http_" + strconv.Itoa(code))
}

// UnknownDomain is used when a host cannot be found in a URL.
const UnknownDomain = "(unknown)"

// Result is an outcome of resolving one identifier.
type Result struct {
	// Identifier is the raw string from the dataset.
	Identifier string

	// URL is the Identifier with a scheme.
	URL string

	// Code is the HTTP status code, 0 if no response was received.
	Code int

	// FinalURL is the effective URL after redirects.
	FinalURL string

	// Status is the classification of the outcome.
	Status Status

	// Datasets are names of datasets that contain the Identifier.
	Datasets []string
}

var (
	schemeRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]*:`)
	portRe   = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]*:\d+(?:[/?#]|$)`)
)

// HasScheme reports if a string starts with a URL scheme. A host followed
// by a port ("localhost:8080/path") does not count as a scheme.
func HasScheme(s string) bool {
	return schemeRe.MatchString(s) && !portRe.MatchString(s)
}

// EnsureScheme prepends "https://" to strings without a scheme.
func EnsureScheme(s string) string {
	if HasScheme(s) {
		return s
	}
	return "https://" + s
}

// Candidates returns URLs to try in order: the URL itself and, for HTTPS,
// the same URL with the HTTP scheme.
func Candidates(u string) []string {
	res := []string{u}
	if strings.HasPrefix(u, "https://") {
		res = append(res, "http://"+u[len("https://"):])
	}
	return res
}

// Classify turns a response into a Status. The url is the normalized URL
// that was requested first, err is the transport error of the last attempt.
func Classify(u string, code int, finalURL string, err error) Status {
	switch {
	case err != nil:
		return StatusError
	case code == 200 && finalURL == u:
		return StatusOK
	case code == 200:
		return StatusRedirectOK
	case code == 301, code == 302, code == 303, code == 307, code == 308:
		return StatusRedirect
	case code == 404:
		return StatusNotFound
	default:
		return StatusHTTP(code)
	}
}

// Domain returns the host of a URL or UnknownDomain.
func Domain(u string) string {
	pu, err := url.Parse(u)
	if err != nil {
		return UnknownDomain
	}
	host := pu.Hostname()
	if host == "" {
		return UnknownDomain
	}
	return host
}
