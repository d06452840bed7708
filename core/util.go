package core

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

// DateLayout is the format of dates sent by the dashboard forms.
const DateLayout = "2006-01-02"

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// NullString returns a null.String that is only valid when `s` is not blank.
func NullString(s string) null.String {
	s = CleanString(s)
	return null.NewString(s, s != "")
}

// ParseDate parses a YYYY-MM-DD (or RFC3339) date. Blank input yields an invalid null.Time.
func ParseDate(s string) (null.Time, error) {
	s = CleanString(s)
	if s == "" {
		return null.Time{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, s); err != nil {
			return null.Time{}, errors.Wrapf(err, "parsing date %q", s)
		}
	}
	return null.TimeFrom(t.UTC()), nil
}

// NullInt returns a valid null.Int only for positive ids.
func NullInt(id int) null.Int {
	return null.NewInt(id, id > 0)
}
