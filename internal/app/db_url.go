package app

import (
	"net/url"
	"strings"
)

const preparedBinaryParam = "disable_prepared_binary_result"

// normalizeDBURL appends disable_prepared_binary_result=yes when requested,
// which pgbouncer-style poolers need for lib/pq prepared statements. Both
// postgres:// URLs and key=value DSNs are handled; an explicit setting in
// the connection string wins.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult || strings.Contains(raw, preparedBinaryParam) {
		return raw
	}

	if isConnURL(raw) {
		parsed, err := url.Parse(raw)
		if err != nil {
			return raw
		}
		query := parsed.Query()
		query.Set(preparedBinaryParam, "yes")
		parsed.RawQuery = query.Encode()
		return parsed.String()
	}

	return strings.TrimSpace(raw) + " " + preparedBinaryParam + "=yes"
}

// dbNameFromURL extracts the database name for span attribution.
func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)

	if isConnURL(trimmed) {
		parsed, err := url.Parse(trimmed)
		if err != nil {
			return ""
		}
		return strings.TrimPrefix(parsed.Path, "/")
	}

	for _, field := range strings.Fields(trimmed) {
		if key, value, ok := strings.Cut(field, "="); ok && key == "dbname" {
			return strings.Trim(value, `"'`)
		}
	}
	return ""
}

func isConnURL(s string) bool {
	return strings.Contains(s, "://")
}
