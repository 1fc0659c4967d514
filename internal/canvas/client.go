package canvas

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// perPage is the page size requested from every paginated listing.
const perPage = 100

// maxPages bounds how many rel="next" links a single listing call will
// follow. Canvas never legitimately needs this many pages at per_page=100;
// the cap protects against a buggy or malicious server returning an
// unterminated link chain.
const maxPages = 50

// requestTimeout is the per-request HTTP timeout.
const requestTimeout = 30 * time.Second

// Session carries the user-supplied credentials for one Canvas account.
type Session struct {
	Token   string
	BaseURL string
}

// Client is a thin HTTP client for the Canvas LMS REST API. It handles
// Bearer token authentication, Link-header pagination, and maps failures
// onto the auth/upstream/network error taxonomy.
type Client struct {
	baseURL     string
	allowedHost string
	token       string
	httpClient  *http.Client
}

// NewClient creates a Canvas client for the given session. The session's
// base URL is validated against allowedHost before the client is handed
// out, so no request can ever target another host.
func NewClient(session Session, allowedHost string) (*Client, error) {
	if err := ValidateBaseURL(session.BaseURL, allowedHost); err != nil {
		return nil, err
	}

	return &Client{
		baseURL:     strings.TrimRight(session.BaseURL, "/"),
		allowedHost: allowedHost,
		token:       session.Token,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}, nil
}

// FetchSelf validates the token by fetching the user's own profile.
func (c *Client) FetchSelf(ctx context.Context) (*Self, error) {
	var self Self
	if _, err := c.getJSON(ctx, c.baseURL+"/api/v1/users/self", &self); err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}
	return &self, nil
}

// FetchFavoriteCourses retrieves the user's favorited courses.
func (c *Client) FetchFavoriteCourses(ctx context.Context) ([]RawCourse, error) {
	courses, err := fetchAllPages[RawCourse](
		ctx, c, c.baseURL+"/api/v1/users/self/favorites/courses",
	)
	if err != nil {
		return nil, fmt.Errorf("fetching favorite courses: %w", err)
	}
	return courses, nil
}

// FetchAssignments retrieves every assignment of a course, submission
// included, following pagination until the last page.
func (c *Client) FetchAssignments(ctx context.Context, courseID int) ([]RawAssignment, error) {
	if err := ValidateCourseIDs([]int{courseID}); err != nil {
		return nil, err
	}

	first := fmt.Sprintf(
		"%s/api/v1/courses/%d/assignments?include[]=submission&per_page=%d",
		c.baseURL, courseID, perPage,
	)

	assignments, err := fetchAllPages[RawAssignment](ctx, c, first)
	if err != nil {
		return nil, fmt.Errorf("fetching assignments for course %d: %w", courseID, err)
	}
	return assignments, nil
}

// FetchAnnouncements retrieves announcements for the given course IDs in
// one batched, paginated call, bounded by the [start, end] date window.
func (c *Client) FetchAnnouncements(
	ctx context.Context,
	courseIDs []int,
	start time.Time,
	end time.Time,
) ([]RawAnnouncement, error) {
	if err := ValidateCourseIDs(courseIDs); err != nil {
		return nil, err
	}

	startDate := start.Format("2006-01-02")
	endDate := end.Format("2006-01-02")
	if err := ValidateDate(startDate); err != nil {
		return nil, err
	}
	if err := ValidateDate(endDate); err != nil {
		return nil, err
	}

	params := url.Values{}
	for _, id := range courseIDs {
		params.Add("context_codes[]", "course_"+strconv.Itoa(id))
	}
	params.Set("start_date", startDate)
	params.Set("end_date", endDate)
	params.Set("per_page", strconv.Itoa(perPage))

	first := c.baseURL + "/api/v1/announcements?" + params.Encode()

	announcements, err := fetchAllPages[RawAnnouncement](ctx, c, first)
	if err != nil {
		return nil, fmt.Errorf("fetching announcements: %w", err)
	}
	return announcements, nil
}

// fetchAllPages follows the rel="next" chain of a paginated listing,
// concatenating every page into a single slice.
func fetchAllPages[T any](ctx context.Context, c *Client, firstURL string) ([]T, error) {
	var all []T
	next := firstURL

	for page := 0; next != ""; page++ {
		if page >= maxPages {
			return nil, fmt.Errorf("pagination chain exceeded %d pages", maxPages)
		}

		var items []T
		nextLink, err := c.getJSON(ctx, next, &items)
		if err != nil {
			return nil, err
		}

		all = append(all, items...)
		next = nextLink
	}

	return all, nil
}

// getJSON performs an authenticated GET against a fully-formed URL,
// unmarshals the JSON response into result, and returns the rel="next"
// link from the Link response header, if any. Continuation URLs are
// re-checked against the allowed host before being followed.
func (c *Client) getJSON(
	ctx context.Context,
	rawURL string,
	result interface{},
) (string, error) {
	if err := ValidateBaseURL(rawURL, c.allowedHost); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &NetworkError{Err: err}
	}

	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	resp.Body.Close()
	if readErr != nil {
		return "", &NetworkError{Err: readErr}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return "", &AuthError{
			Message: fmt.Sprintf("check your access token for %s", c.baseURL),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    extractErrorMessage(respBody),
		}
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.Unmarshal(respBody, result); err != nil {
			return "", fmt.Errorf("unmarshaling response from %s: %w", rawURL, err)
		}
	}

	return nextLink(resp.Header.Get("Link")), nil
}

// nextLink extracts the rel="next" URL from a Link response header.
// Canvas formats the header as a comma-separated list of
// <url>; rel="kind" entries.
func nextLink(header string) string {
	if header == "" {
		return ""
	}

	for _, part := range strings.Split(header, ",") {
		segments := strings.Split(strings.TrimSpace(part), ";")
		if len(segments) < 2 {
			continue
		}

		target := strings.Trim(strings.TrimSpace(segments[0]), "<>")

		for _, attr := range segments[1:] {
			if strings.TrimSpace(attr) == `rel="next"` {
				return target
			}
		}
	}

	return ""
}

// extractErrorMessage pulls a best-effort human-readable message out of
// a Canvas error response body.
func extractErrorMessage(body []byte) string {
	var cErr canvasError
	if json.Unmarshal(body, &cErr) == nil {
		if len(cErr.Errors) > 0 && cErr.Errors[0].Message != "" {
			msgs := make([]string, 0, len(cErr.Errors))
			for _, e := range cErr.Errors {
				msgs = append(msgs, e.Message)
			}
			return strings.Join(msgs, "; ")
		}
		if cErr.Message != "" {
			return cErr.Message
		}
	}

	msg := strings.TrimSpace(string(body))
	if len(msg) > 300 {
		msg = msg[:300]
	}
	return msg
}
