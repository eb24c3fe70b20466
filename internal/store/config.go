package store

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	// URL selects the driver by scheme: postgres://, postgresql:// or sqlite://<dir|:memory:>.
	URL string
	// Name is the database name; for sqlite it names the file or the shared in-memory database.
	Name string

	SSLMode         string // postgres only; default "require"
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
}

func (c *Config) withDefaults() *Config {
	out := *c
	if out.SSLMode == "" {
		out.SSLMode = "require"
	}
	if out.MaxIdleConns <= 0 {
		out.MaxIdleConns = 10
	}
	if out.MaxOpenConns <= 0 {
		out.MaxOpenConns = 100
	}
	if out.ConnMaxLifetime <= 0 {
		out.ConnMaxLifetime = time.Minute
	}
	if out.ConnectTimeout <= 0 {
		out.ConnectTimeout = 10 * time.Second
	}
	return &out
}

// Validate reports the missing required values as a connectivity error.
func (c *Config) Validate() error {
	if c == nil {
		return apperrors.NewConnectivityError("store is not configured", nil)
	}

	var missing []string
	if strings.TrimSpace(c.URL) == "" {
		missing = append(missing, "store URL")
	}
	if strings.TrimSpace(c.Name) == "" {
		missing = append(missing, "store database name")
	}
	if len(missing) > 0 {
		return apperrors.NewConnectivityError(
			fmt.Sprintf("missing store configuration: %s", strings.Join(missing, ", ")), nil)
	}
	return nil
}

func (c *Config) Driver() string {
	scheme, _, _ := strings.Cut(strings.TrimSpace(c.URL), "://")
	switch strings.ToLower(scheme) {
	case "postgres", "postgresql":
		return DriverPostgres
	case "sqlite":
		return DriverSQLite
	default:
		return ""
	}
}

// Dialector builds the gorm dialector for the configured URL and database name.
func (c *Config) Dialector() (gorm.Dialector, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	cfg := c.withDefaults()
	raw := strings.TrimSpace(cfg.URL)

	switch cfg.Driver() {
	case DriverPostgres:
		u, err := url.Parse(raw)
		if err != nil {
			return nil, apperrors.NewConnectivityError("invalid store URL", err)
		}
		u.Path = "/" + cfg.Name
		q := u.Query()
		if q.Get("sslmode") == "" {
			q.Set("sslmode", cfg.SSLMode)
		}
		u.RawQuery = q.Encode()
		return postgres.Open(u.String()), nil

	case DriverSQLite:
		_, location, _ := strings.Cut(raw, "://")
		if location == "" || location == ":memory:" {
			return sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", cfg.Name)), nil
		}
		return sqlite.Open(filepath.Join(location, cfg.Name+".db")), nil

	default:
		return nil, apperrors.NewConnectivityError(
			fmt.Sprintf("unsupported store URL scheme in %q", redact(raw)), nil)
	}
}

// redact hides credentials so the URL can be logged.
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		if i := strings.Index(raw, "@"); i >= 0 {
			return "***" + raw[i:]
		}
		return raw
	}
	return u.Redacted()
}
