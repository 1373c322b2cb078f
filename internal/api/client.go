// Package api talks to the daily_tasks work-log server.
//
// The server only routes GET and POST, so mutating calls are POSTs that carry
// the intended verb in a "_method" body field.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/Tiliavir/bitacora/internal/logger"
	"github.com/Tiliavir/bitacora/internal/model"
)

const tasksPath = "/daily_tasks"

// Client is an authenticated daily_tasks API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client for baseURL. Requests carry a bearer token from
// ts when it is non-nil.
func NewClient(ctx context.Context, baseURL string, ts oauth2.TokenSource, timeout time.Duration) *Client {
	hc := &http.Client{}
	if ts != nil {
		hc = oauth2.NewClient(ctx, ts)
	}
	hc.Timeout = timeout
	return &Client{
		httpClient: hc,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// StaticToken returns a TokenSource for a long-lived API token.
func StaticToken(token string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("daily_tasks API error %d on %s %s: %s", e.StatusCode, e.Method, e.Path, e.Body)
}

// overrideBody is a request body carrying the emulated HTTP verb.
type overrideBody struct {
	Method string `json:"_method"`
	model.EventPatch
}

// eventBody is the server representation of an event's editable fields.
type eventBody struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Project     string     `json:"project"`
	Activity    string     `json:"activity"`
	RelatedURL  string     `json:"relatedURL"`
	Billable    bool       `json:"billable"`
	Start       *time.Time `json:"start,omitempty"`
	End         *time.Time `json:"end,omitempty"`
}

// wireEvent is an event as listed by the server, whose ids may be numeric.
type wireEvent struct {
	ID flexID `json:"id"`
	eventBody
	Editable bool `json:"editable"`
}

// flexID accepts both JSON strings and numbers.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		unq, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("invalid id %s: %w", s, err)
		}
		*f = flexID(unq)
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("invalid id %s", s)
	}
	*f = flexID(s)
	return nil
}

// toModel keeps the server's editable flag; a missing field reads as false.
func (w wireEvent) toModel() model.Event {
	return model.Event{
		ID:          string(w.ID),
		Editable:    w.Editable,
		Title:       w.Title,
		Description: w.Description,
		Project:     w.Project,
		Activity:    w.Activity,
		RelatedURL:  w.RelatedURL,
		Billable:    w.Billable,
		Start:       w.Start,
		End:         w.End,
	}
}

// ExtractLogData lists the events between the already formatted from and to
// bounds, inclusive.
func (c *Client) ExtractLogData(ctx context.Context, from, to string) ([]model.Event, error) {
	q := url.Values{}
	q.Set("from", from)
	q.Set("to", to)

	var page []wireEvent
	if err := c.do(ctx, http.MethodGet, tasksPath, q, nil, &page); err != nil {
		return nil, err
	}

	events := make([]model.Event, 0, len(page))
	for _, w := range page {
		events = append(events, w.toModel())
	}
	return events, nil
}

// CreateEvent stores a new event.
func (c *Client) CreateEvent(ctx context.Context, e model.Event) error {
	body := eventBody{
		Title:       e.Title,
		Description: e.Description,
		Project:     e.Project,
		Activity:    e.Activity,
		RelatedURL:  e.RelatedURL,
		Billable:    e.Billable,
		Start:       e.Start,
		End:         e.End,
	}
	return c.do(ctx, http.MethodPost, tasksPath, nil, body, nil)
}

// UpdateEvent saves the fields set in patch on the event with the given id.
func (c *Client) UpdateEvent(ctx context.Context, id string, patch model.EventPatch) error {
	body := overrideBody{Method: "put", EventPatch: patch}
	return c.do(ctx, http.MethodPost, eventPath(id), nil, body, nil)
}

// DeleteEvent removes the event with the given id.
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	body := overrideBody{Method: "delete"}
	return c.do(ctx, http.MethodPost, eventPath(id), nil, body, nil)
}

func eventPath(id string) string {
	return tasksPath + "/" + url.PathEscape(id)
}

// do sends one request and decodes a JSON response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := sonic.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Debug("api request", "method", method, "path", path, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("daily_tasks API request failed: %w", err)
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding daily_tasks response: %w", err)
	}
	return nil
}
