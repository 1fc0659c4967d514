package canvas

import (
	"fmt"
	"net/url"
	"time"
)

// maxCourseBatch caps how many course IDs a single announcement fetch
// may name.
const maxCourseBatch = 50

// ValidateBaseURL checks that raw is an https URL whose host is exactly
// allowedHost. It is a boundary security control: any other scheme or
// host is rejected before a request is issued.
func ValidateBaseURL(raw, allowedHost string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return &ValidationError{
			Field:   "base URL",
			Message: fmt.Sprintf("unparseable URL %q", raw),
		}
	}

	if u.Scheme != "https" {
		return &ValidationError{
			Field:   "base URL",
			Message: fmt.Sprintf("scheme %q not allowed, https required", u.Scheme),
		}
	}

	if u.Host != allowedHost {
		return &ValidationError{
			Field:   "base URL",
			Message: fmt.Sprintf("host %q is not the allowed host %q", u.Host, allowedHost),
		}
	}

	return nil
}

// ValidateCourseIDs checks that every ID is a positive integer and the
// batch stays under the announcement batch cap.
func ValidateCourseIDs(ids []int) error {
	if len(ids) > maxCourseBatch {
		return &ValidationError{
			Field:   "course IDs",
			Message: fmt.Sprintf("batch of %d exceeds the limit of %d", len(ids), maxCourseBatch),
		}
	}

	for _, id := range ids {
		if id <= 0 {
			return &ValidationError{
				Field:   "course IDs",
				Message: fmt.Sprintf("course ID %d is not a positive integer", id),
			}
		}
	}

	return nil
}

// ValidateDate checks that s matches YYYY-MM-DD and names a real
// calendar date.
func ValidateDate(s string) error {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return &ValidationError{
			Field:   "date",
			Message: fmt.Sprintf("%q is not a valid YYYY-MM-DD date", s),
		}
	}
	return nil
}
