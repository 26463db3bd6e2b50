package scrub

import "database/sql"

// defaultLocale is the platform's historical default content language.
const defaultLocale = "fr"

// locale returns the language of a row, or the platform default when the
// column is NULL or empty.
func locale(lang sql.NullString) string {
	if lang.Valid && lang.String != "" {
		return lang.String
	}
	return defaultLocale
}
