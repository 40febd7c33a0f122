// Package webio resolves identifiers over HTTP.
package webio

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gnames/dwcacheck/internal/ent/ident"
	"github.com/gnames/dwcacheck/internal/ent/kv"
	"github.com/gnames/dwcacheck/pkg/config"
	"github.com/gnames/gnfmt"
)

// methods are tried in order for every candidate URL.
var methods = []string{http.MethodHead, http.MethodGet}

type webio struct {
	client    *http.Client
	userAgent string
	store     kv.KeyVal
	enc       gnfmt.Encoder
}

// cached is the part of a Result shared by identifiers with the same URL.
type cached struct {
	Code     int
	FinalURL string
	Status   ident.Status
}

// New creates a Resolver. If store is not nil, it keeps results by
// normalized URL, so identifiers that differ only by a scheme are requested
// once. The store must be open.
func New(cfg config.Config, store kv.KeyVal) ident.Resolver {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	// Many hosts of bibliographic identifiers serve broken certificate chains.
	tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}

	maxRedirects := cfg.MaxRedirects
	client := &http.Client{
		Transport: tr,
		Timeout:   cfg.CheckTimeout,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) > maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}

	res := webio{
		client:    client,
		userAgent: cfg.UserAgent,
		store:     store,
		enc:       gnfmt.GNgob{},
	}
	return &res
}

// Resolve tries HEAD and then GET for the normalized URL and, for HTTPS,
// for its HTTP twin. The first attempt that gets any HTTP response wins.
func (w *webio) Resolve(ctx context.Context, identifier string) ident.Result {
	u := ident.EnsureScheme(identifier)
	res := ident.Result{Identifier: identifier, URL: u, FinalURL: u}

	if c, ok := w.load(u); ok {
		res.Code, res.FinalURL, res.Status = c.Code, c.FinalURL, c.Status
		return res
	}

	var err error
loop:
	for _, cand := range ident.Candidates(u) {
		for _, method := range methods {
			res.Code, res.FinalURL, err = w.request(ctx, method, cand)
			if err == nil {
				break loop
			}
			slog.Debug("Request failed",
				"method", method, "url", cand, "error", err)
		}
	}
	res.Status = ident.Classify(u, res.Code, res.FinalURL, err)

	if ctx.Err() != nil {
		return res
	}
	w.save(u, cached{Code: res.Code, FinalURL: res.FinalURL, Status: res.Status})
	return res
}

func (w *webio) request(
	ctx context.Context,
	method, u string,
) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return 0, u, err
	}
	req.Header.Set("User-Agent", w.userAgent)

	resp, err := w.client.Do(req)
	if err != nil {
		return 0, u, err
	}
	defer resp.Body.Close()

	// Without redirects the final URL is the requested one as written.
	final := resp.Request.URL.String()
	if final == req.URL.String() {
		final = u
	}
	return resp.StatusCode, final, nil
}

func (w *webio) load(u string) (cached, bool) {
	var res cached
	if w.store == nil {
		return res, false
	}
	val, err := w.store.GetValue([]byte(u))
	if err != nil {
		slog.Warn("Cannot read resolution store", "url", u, "error", err)
		return res, false
	}
	if val == nil {
		return res, false
	}
	if err = w.enc.Decode(val, &res); err != nil {
		slog.Warn("Cannot decode stored result", "url", u, "error", err)
		return res, false
	}
	return res, true
}

func (w *webio) save(u string, c cached) {
	if w.store == nil {
		return
	}
	val, err := w.enc.Encode(c)
	if err != nil {
		slog.Warn("Cannot encode result", "url", u, "error", err)
		return
	}
	if err = w.store.SetValue([]byte(u), val); err != nil {
		slog.Warn("Cannot save result", "url", u, "error", err)
	}
}
