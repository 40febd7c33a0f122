// Package unpaywallio queries the Unpaywall (oaDOI) API for open access
// status of DOIs.
package unpaywallio

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gnames/dwcacheck/internal/ent/doi"
	"github.com/gnames/dwcacheck/pkg/config"
	"github.com/gnames/gnfmt"
)

// response keeps the fields of an Unpaywall DOI object used in reports.
type response struct {
	IsOA        *bool  `json:"is_oa"`
	OAStatus    string `json:"oa_status"`
	JournalName string `json:"journal_name"`
	Publisher   string `json:"publisher"`
}

type unpaywallio struct {
	client    *http.Client
	baseURL   string
	email     string
	userAgent string
	delay     time.Duration
	enc       gnfmt.Encoder

	mu   sync.Mutex
	last time.Time
}

// New creates an OAChecker for the API endpoint from the config.
func New(cfg config.Config) doi.OAChecker {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}

	res := unpaywallio{
		client:    &http.Client{Transport: tr, Timeout: cfg.OATimeout},
		baseURL:   cfg.OAURL,
		email:     cfg.OAEmail,
		userAgent: cfg.UserAgent,
		delay:     cfg.OADelay,
		enc:       gnfmt.GNjson{},
	}
	return &res
}

// Check queries the API for a DOI. Requests are spaced by the configured
// delay.
func (u *unpaywallio) Check(ctx context.Context, d string) doi.OA {
	res := doi.OA{DOI: d}
	u.wait(ctx)

	body, err := u.get(ctx, d)
	if err != nil {
		res.Err = err
		return res
	}

	var r response
	if err = u.enc.Decode(body, &r); err != nil {
		res.Err = fmt.Errorf("cannot decode response: %w", err)
		return res
	}
	if r.IsOA == nil {
		res.Err = errors.New("response has no is_oa field")
		return res
	}

	res.IsOA = *r.IsOA
	res.Status = r.OAStatus
	res.Journal = r.JournalName
	res.Publisher = r.Publisher
	return res
}

func (u *unpaywallio) get(ctx context.Context, d string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.url(d), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", u.userAgent)

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected HTTP status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, errors.New("empty response")
	}
	return body, nil
}

// url builds a request URL for a lower-cased DOI. Path segments are
// escaped, slashes of the DOI are kept.
func (u *unpaywallio) url(d string) string {
	parts := strings.Split(strings.ToLower(d), "/")
	for i := range parts {
		parts[i] = url.PathEscape(parts[i])
	}
	return u.baseURL + strings.Join(parts, "/") +
		"?email=" + url.QueryEscape(u.email)
}

func (u *unpaywallio) wait(ctx context.Context) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.last.IsZero() {
		if pause := u.delay - time.Since(u.last); pause > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(pause):
			}
		}
	}
	u.last = time.Now()
}
