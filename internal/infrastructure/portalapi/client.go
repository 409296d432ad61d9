// Package portalapi is the HTTP client for the reading portal REST API, the
// external collaborator behind every admission command and snapshot fetch.
package portalapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/example/reading-portal/internal/domain/reading"
	"github.com/example/reading-portal/internal/domain/user"
	"github.com/example/reading-portal/internal/internaltypes"
	"github.com/example/reading-portal/internal/logger"
)

// TokenSource yields the current bearer token, empty when logged out.
type TokenSource func() string

type Client struct {
	hc    *http.Client
	base  string
	token TokenSource
}

func New(baseURL string, timeout time.Duration, token TokenSource) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		hc:    &http.Client{Timeout: timeout},
		base:  strings.TrimRight(baseURL, "/"),
		token: token,
	}
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var res loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &res); err != nil {
		return "", err
	}
	if res.AccessToken == "" {
		return "", fmt.Errorf("login: empty access token in response")
	}
	return res.AccessToken, nil
}

// Profile returns the acting user, or nil when the server reports no
// authenticated profile. It never returns a decode error: an unparseable
// profile means unauthenticated, matching the auth collaborator contract.
func (c *Client) Profile(ctx context.Context) (*user.User, error) {
	var res userJSON
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, nil, &res); err != nil {
		if internaltypes.IsUnauthorized(err) {
			return nil, nil
		}
		return nil, err
	}
	if res.ID == 0 {
		return nil, nil
	}
	u := res.toDomain()
	return &u, nil
}

// Departments lists all departments.
func (c *Client) Departments(ctx context.Context) ([]Department, error) {
	var res []Department
	if err := c.do(ctx, http.MethodGet, "/departments/", nil, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// ReadingsForDepartment fetches the slot snapshots for one department. A
// payload that fails to parse is "no data yet", not an error: the evaluator
// tolerates an empty snapshot, a toast would be wrong.
func (c *Client) ReadingsForDepartment(ctx context.Context, departmentID int64, status string) ([]reading.Snapshot, error) {
	if status == "" {
		status = "active"
	}
	params := url.Values{
		"departmentId": {strconv.FormatInt(departmentID, 10)},
		"status":       {status},
	}
	var groups []dateGroup
	if err := c.do(ctx, http.MethodGet, "/readings/list", params, nil, &groups); err != nil {
		var decErr *decodeError
		if errors.As(err, &decErr) {
			logger.L().Warn("snapshot payload failed to parse; treating as no data",
				"department", departmentID, "err", decErr)
			return nil, nil
		}
		return nil, err
	}
	return toSnapshots(groups, departmentID), nil
}

// ReadingsForUser fetches the acting user's own readings in [from, to].
func (c *Client) ReadingsForUser(ctx context.Context, from, to reading.Date) ([]reading.Snapshot, error) {
	params := url.Values{
		"from": {from.String()},
		"to":   {to.String()},
	}
	var groups []dateGroup
	if err := c.do(ctx, http.MethodGet, "/readings/user", params, nil, &groups); err != nil {
		var decErr *decodeError
		if errors.As(err, &decErr) {
			logger.L().Warn("my-readings payload failed to parse; treating as no data", "err", decErr)
			return nil, nil
		}
		return nil, err
	}
	return toSnapshots(groups, 0), nil
}

// CreateReading reserves a slot for userID. A 409 from the server is the
// expected outcome of losing a capacity or quota race.
func (c *Client) CreateReading(ctx context.Context, userID int64, date reading.Date, departmentID int64) error {
	body := createReadingRequest{UserID: userID, Date: date.String(), DepartmentID: departmentID}
	return c.do(ctx, http.MethodPost, "/readings", nil, body, nil)
}

// DeleteReading cancels a reading by id.
func (c *Client) DeleteReading(ctx context.Context, readingID int64) error {
	return c.do(ctx, http.MethodDelete, "/readings/"+strconv.FormatInt(readingID, 10), nil, nil, nil)
}

// CreateReport attaches a report to a past reading.
func (c *Client) CreateReport(ctx context.Context, readingID int64, title, description string) error {
	body := reportRequest{ReadingID: readingID, Title: title, Description: description}
	return c.do(ctx, http.MethodPost, "/reports", nil, body, nil)
}

// UpdateReport rewrites an existing report.
func (c *Client) UpdateReport(ctx context.Context, reportID int64, title, description string) error {
	body := reportRequest{Title: title, Description: description}
	return c.do(ctx, http.MethodPatch, "/reports/"+strconv.FormatInt(reportID, 10), nil, body, nil)
}

// Users lists all portal users (admin only server-side).
func (c *Client) Users(ctx context.Context) ([]user.User, error) {
	var res []userJSON
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &res); err != nil {
		return nil, err
	}
	out := make([]user.User, 0, len(res))
	for _, u := range res {
		out = append(out, u.toDomain())
	}
	return out, nil
}

// Events lists upcoming activities.
func (c *Client) Events(ctx context.Context) ([]Event, error) {
	var res []Event
	if err := c.do(ctx, http.MethodGet, "/events", nil, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// SignUpForEvent joins an event.
func (c *Client) SignUpForEvent(ctx context.Context, id int64) error {
	params := url.Values{"id": {strconv.FormatInt(id, 10)}}
	return c.do(ctx, http.MethodPost, "/events/signUp", params, struct{}{}, nil)
}

// SignOffEvent leaves an event.
func (c *Client) SignOffEvent(ctx context.Context, id int64) error {
	params := url.Values{"id": {strconv.FormatInt(id, 10)}}
	return c.do(ctx, http.MethodPost, "/events/signOff", params, struct{}{}, nil)
}

// decodeError marks a 2xx response whose body did not match the expected
// schema. Snapshot callers downgrade it to "no data yet".
type decodeError struct {
	path string
	err  error
}

func (e *decodeError) Error() string { return fmt.Sprintf("decode %s: %v", e.path, e.err) }
func (e *decodeError) Unwrap() error { return e.err }

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	u := c.base + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	if resp.StatusCode >= 400 {
		return apiError(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &decodeError{path: path, err: err}
	}
	return nil
}

// apiError extracts the server message from the common error body shapes.
func apiError(status int, raw []byte) error {
	var parsed struct {
		Message string `json:"message"`
		Err     string `json:"error"`
		Detail  string `json:"detail"`
	}
	_ = json.Unmarshal(raw, &parsed)
	msg := parsed.Message
	if msg == "" {
		msg = parsed.Err
	}
	if msg == "" {
		msg = parsed.Detail
	}
	return &internaltypes.APIError{Status: status, Message: msg}
}
