package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gnames/gnsys"
)

// Config is a struct that holds configuration parameters for the package.
type Config struct {
	// BaseDir is a directory that contains dataset directories.
	BaseDir string

	// OutputDir is a directory for TSV reports.
	OutputDir string

	// CacheDir keeps the key-value store with resolution results of the
	// current run. It is cleaned at the start of every run.
	CacheDir string

	// JobsNum is a number of concurrent resolution requests.
	JobsNum int

	// UserAgent is sent with every HTTP request.
	UserAgent string

	// CheckTimeout limits one identifier request.
	CheckTimeout time.Duration

	// MaxRedirects is the number of redirects to follow.
	MaxRedirects int

	// OAURL is the endpoint of the open access API, the DOI is appended to
	// it.
	OAURL string

	// OAEmail identifies the user for the open access API.
	OAEmail string

	// OATimeout limits one open access API request.
	OATimeout time.Duration

	// OADelay is a pause between open access API requests.
	OADelay time.Duration

	// WithCanonical adds canonical forms and name-string IDs to taxa.
	WithCanonical bool

	// PgHost is a host name for PostgreSQL.
	PgHost string

	// PgUser is a user name for PostgreSQL.
	PgUser string

	// PgPass is a password for PostgreSQL.
	PgPass string

	// PgDB is a database name for PostgreSQL.
	PgDB string
}

// Option type allows to change settings for Config.
type Option func(*Config)

// OptBaseDir sets a directory with datasets.
func OptBaseDir(d string) Option {
	return func(cfg *Config) {
		cfg.BaseDir = d
	}
}

// OptOutputDir sets a directory for TSV reports.
func OptOutputDir(d string) Option {
	return func(cfg *Config) {
		cfg.OutputDir = d
	}
}

// OptCacheDir sets a directory for the key-value store.
func OptCacheDir(d string) Option {
	return func(cfg *Config) {
		cfg.CacheDir = d
	}
}

// OptJobsNum sets parallelism number for resolution requests.
func OptJobsNum(j int) Option {
	return func(cfg *Config) {
		cfg.JobsNum = j
	}
}

// OptUserAgent sets User-Agent header for HTTP requests.
func OptUserAgent(s string) Option {
	return func(cfg *Config) {
		cfg.UserAgent = s
	}
}

// OptCheckTimeout sets timeout for identifier requests.
func OptCheckTimeout(d time.Duration) Option {
	return func(cfg *Config) {
		cfg.CheckTimeout = d
	}
}

// OptMaxRedirects sets the number of redirects to follow.
func OptMaxRedirects(i int) Option {
	return func(cfg *Config) {
		cfg.MaxRedirects = i
	}
}

// OptOAURL sets the open access API endpoint.
func OptOAURL(s string) Option {
	return func(cfg *Config) {
		cfg.OAURL = s
	}
}

// OptOAEmail sets email sent to the open access API.
func OptOAEmail(s string) Option {
	return func(cfg *Config) {
		cfg.OAEmail = s
	}
}

// OptOATimeout sets timeout for open access API requests.
func OptOATimeout(d time.Duration) Option {
	return func(cfg *Config) {
		cfg.OATimeout = d
	}
}

// OptOADelay sets a pause between open access API requests.
func OptOADelay(d time.Duration) Option {
	return func(cfg *Config) {
		cfg.OADelay = d
	}
}

// OptWithCanonical toggles parsing of scientific names.
func OptWithCanonical(b bool) Option {
	return func(cfg *Config) {
		cfg.WithCanonical = b
	}
}

// OptPgHost sets host name for PostgreSQL
func OptPgHost(h string) Option {
	return func(cfg *Config) {
		cfg.PgHost = h
	}
}

// OptPgUser sets user for PostgreSQL
func OptPgUser(u string) Option {
	return func(cfg *Config) {
		cfg.PgUser = u
	}
}

// OptPgPass sets password for PostgreSQL
func OptPgPass(p string) Option {
	return func(cfg *Config) {
		cfg.PgPass = p
	}
}

// OptPgDB sets database name for PostgreSQL
func OptPgDB(d string) Option {
	return func(cfg *Config) {
		cfg.PgDB = d
	}
}

// New creates Config with default values modified by options.
func New(opts ...Option) Config {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	cacheDir = filepath.Join(cacheDir, "dwcacheck", "resolved")

	res := Config{
		BaseDir:      ".",
		OutputDir:    ".",
		CacheDir:     cacheDir,
		JobsNum:      1,
		UserAgent:    fmt.Sprintf("Mozilla/5.0 (compatible; dwcacheck/%s)", Version),
		CheckTimeout: 10 * time.Second,
		MaxRedirects: 10,
		OAURL:        "https://api.oadoi.org/v2/",
		OAEmail:      "unpaywall@impactstory.org",
		OATimeout:    15 * time.Second,
		OADelay:      100 * time.Millisecond,
		PgHost:       "0.0.0.0",
		PgUser:       "postgres",
		PgPass:       "postgres",
		PgDB:         "dwcacheck",
	}

	for _, opt := range opts {
		opt(&res)
	}

	for _, dir := range []*string{&res.BaseDir, &res.OutputDir, &res.CacheDir} {
		if d, err := gnsys.ConvertTilda(*dir); err == nil {
			*dir = d
		}
	}

	if res.JobsNum < 1 {
		res.JobsNum = 1
	}

	return res
}
