package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"storefront/internal/models"
	"storefront/internal/session"
)

// TokenStore is where the client reads and rotates credentials.
type TokenStore interface {
	Tokens(ctx context.Context) (models.AuthTokens, error)
	SaveTokens(ctx context.Context, tokens models.AuthTokens) error
	Clear(ctx context.Context) error
}

type Client struct {
	baseURL      string
	httpClient   *http.Client
	tokens       TokenStore
	logger       log.FieldLogger
	onExpired    func()
	nowFunc      func() time.Time
	refreshGroup singleflight.Group
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func WithLogger(logger log.FieldLogger) Option {
	return func(c *Client) { c.logger = logger }
}

// OnSessionExpired registers a hook run after credentials were cleared
// because a refresh failed.
func OnSessionExpired(fn func()) Option {
	return func(c *Client) { c.onExpired = fn }
}

func New(baseURL string, tokens TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		tokens:     tokens,
		logger:     log.WithField("component", "API"),
		onExpired:  func() {},
		nowFunc:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type request struct {
	method string
	path   string
	query  url.Values
	body   interface{}
	out    interface{}
	auth   bool
	header http.Header
}

func (c *Client) send(ctx context.Context, r request) error {
	var access string
	if r.auth {
		tokens, err := c.tokens.Tokens(ctx)
		if err != nil {
			return errors.Wrap(err, "load credentials")
		}
		if tokens.Empty() {
			return ErrNotAuthenticated
		}
		access = tokens.Access
		if tokens.Refresh != "" && session.Expired(access, c.nowFunc()) {
			if access, err = c.refresh(ctx, access); err != nil {
				return err
			}
		}
	}

	resp, err := c.roundTrip(ctx, r, access)
	if err != nil {
		return err
	}

	if r.auth && resp.StatusCode == http.StatusUnauthorized {
		drain(resp)
		c.logger.WithField("path", r.path).Info("access token rejected, refreshing")
		if access, err = c.refresh(ctx, access); err != nil {
			return err
		}
		if resp, err = c.roundTrip(ctx, r, access); err != nil {
			return err
		}
	}
	defer drain(resp)

	return decodeResponse(resp, r.out)
}

func (c *Client) roundTrip(ctx context.Context, r request, access string) (*http.Response, error) {
	endpoint := c.baseURL + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return nil, errors.Wrapf(err, "encode %s %s", r.method, r.path)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, body)
	if err != nil {
		return nil, errors.Wrapf(err, "build %s %s", r.method, r.path)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}
	for key, values := range r.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	started := c.nowFunc()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("path", r.path).Error("request failed")
		return nil, &RequestError{Message: "Unable to reach the store. Please check your connection.", Err: err}
	}
	c.logger.WithFields(log.Fields{
		"method":   r.method,
		"path":     r.path,
		"status":   resp.StatusCode,
		"duration": c.nowFunc().Sub(started),
	}).Debug("request completed")
	return resp, nil
}

// refresh swaps the stale access token for a new one. Concurrent callers
// share a single refresh call.
func (c *Client) refresh(ctx context.Context, stale string) (string, error) {
	value, err, _ := c.refreshGroup.Do("refresh", func() (interface{}, error) {
		tokens, err := c.tokens.Tokens(ctx)
		if err != nil {
			return "", errors.Wrap(err, "load credentials")
		}
		if tokens.Access != "" && tokens.Access != stale && !session.Expired(tokens.Access, c.nowFunc()) {
			return tokens.Access, nil
		}
		if tokens.Refresh == "" {
			return "", c.expire(ctx, errors.New("no refresh token"))
		}

		var out models.RefreshResponse
		err = c.send(ctx, request{
			method: http.MethodPost,
			path:   "/token/refresh/",
			body:   models.RefreshRequest{Refresh: tokens.Refresh},
			out:    &out,
		})
		if err != nil {
			return "", c.expire(ctx, err)
		}
		if out.Access == "" {
			return "", c.expire(ctx, errors.New("refresh response without access token"))
		}

		if err := c.tokens.SaveTokens(ctx, models.AuthTokens{Access: out.Access, Refresh: out.Refresh}); err != nil {
			return "", errors.Wrap(err, "save refreshed tokens")
		}
		c.logger.Info("access token refreshed")
		return out.Access, nil
	})
	if err != nil {
		return "", err
	}
	return value.(string), nil
}

func (c *Client) expire(ctx context.Context, cause error) error {
	c.logger.WithError(cause).Warn("token refresh failed, clearing credentials")
	if err := c.tokens.Clear(ctx); err != nil {
		c.logger.WithError(err).Error("clear credentials failed")
	}
	c.onExpired()
	return ErrSessionExpired
}

func decodeResponse(resp *http.Response, out interface{}) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Status: resp.StatusCode, Message: "Unable to read the store response.", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, data)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

// errorMessage pulls a human readable message out of an error body. It
// understands {"error": ...}, {"detail": ...}, {"message": ...} and field
// error maps like {"quantity": ["Ensure this value is greater than 0."]}.
func errorMessage(status int, data []byte) string {
	var body map[string]interface{}
	if err := json.Unmarshal(data, &body); err != nil {
		return statusMessage(status)
	}
	for _, key := range []string{"error", "detail", "message"} {
		if text, ok := body[key].(string); ok && text != "" {
			return text
		}
	}

	fields := make([]string, 0, len(body))
	for field := range body {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		switch value := body[field].(type) {
		case string:
			return field + ": " + value
		case []interface{}:
			if len(value) > 0 {
				if text, ok := value[0].(string); ok {
					return field + ": " + text
				}
			}
		}
	}
	return statusMessage(status)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
