// Package dburl edits Postgres connection strings. Both URL form
// (postgres://...) and lib/pq key/value form are accepted where noted.
package dburl

import (
	"net/url"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

const preparedBinaryParam = "disable_prepared_binary_result"

// DisablePreparedBinary sets disable_prepared_binary_result=yes unless the
// connection string already chooses a value. Poolers in transaction mode
// break on pq's binary prepared results. Unparseable input is returned as is.
func DisablePreparedBinary(raw string) string {
	raw = strings.TrimSpace(raw)
	if !isURL(raw) {
		if raw == "" || strings.Contains(raw, preparedBinaryParam+"=") {
			return raw
		}
		return raw + " " + preparedBinaryParam + "=yes"
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	query := parsed.Query()
	if query.Get(preparedBinaryParam) != "" {
		return raw
	}
	query.Set(preparedBinaryParam, "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// Name returns the database name, or "" when there is none.
func Name(raw string) string {
	dsn := strings.TrimSpace(raw)
	if isURL(dsn) {
		converted, err := pq.ParseURL(dsn)
		if err != nil {
			return ""
		}
		dsn = converted
	}
	for _, field := range strings.Fields(dsn) {
		key, value, ok := strings.Cut(field, "=")
		if ok && key == "dbname" {
			return strings.Trim(value, `'"`)
		}
	}
	return ""
}

// WithDatabase points a postgres:// URL at another database on the same
// server, keeping credentials and query parameters.
func WithDatabase(raw, database string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !isURL(raw) {
		return "", crerr.Newf("database url %q must be a postgres:// url", raw)
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", crerr.Wrap(err, "parse database url")
	}
	if parsed.Host == "" {
		return "", crerr.Newf("database url %q has no host", raw)
	}
	parsed.Path = "/" + strings.TrimPrefix(database, "/")
	parsed.RawPath = ""
	return parsed.String(), nil
}

func isURL(raw string) bool {
	return strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://")
}
