package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caedis/fabric-mod-manager/internal/logging"
	"github.com/go-resty/resty/v2"
)

// EnvURL names the environment variable holding the repository base URL.
const EnvURL = "FABRIC_MOD_MANAGER_URL"

var ErrRemote = errors.New("repository error")

// RemoteError is a failure reported by the repository, or a response that
// could not be understood as one of its replies.
type RemoteError struct {
	Message    string
	StatusCode int
}

func (e *RemoteError) Error() string {
	return "repository: " + e.Message
}

func (e *RemoteError) Unwrap() error { return ErrRemote }

// Version is the newest build of one mod for a game version.
type Version struct {
	Version     string `json:"version"`
	DownloadURL string `json:"downloadUrl"`
}

// Latest is the payload of a successful latestVersion query.
type Latest struct {
	Versions        map[string]Version `json:"versions"`
	NotInRepository []string           `json:"notInRepository"`
}

func (l *Latest) Lookup(id string) (Version, bool) {
	if l == nil {
		return Version{}, false
	}
	v, ok := l.Versions[id]
	return v, ok
}

func (l *Latest) Has(id string) bool {
	_, ok := l.Lookup(id)
	return ok
}

type envelope struct {
	Successful bool            `json:"successful"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
}

// Client talks to a mod repository server.
type Client struct {
	baseURL string
	http    *resty.Client
}

type Option func(*Client)

// WithTimeout bounds every request made by the client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithHTTPClient replaces the underlying resty client.
func WithHTTPClient(rc *resty.Client) Option {
	return func(c *Client) {
		c.http = rc
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    resty.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// LatestVersions asks the repository for the newest version of each id built
// for gameVersion.
func (c *Client) LatestVersions(ctx context.Context, gameVersion string, ids []string) (*Latest, error) {
	logging.Debugf("Verbose: repository query mc_version=%s mods=%s\n", gameVersion, strings.Join(ids, ","))

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("mc_version", gameVersion).
		SetQueryParam("mods", strings.Join(ids, ",")).
		Get(c.baseURL + "/latestVersion")
	if err != nil {
		return nil, fmt.Errorf("querying repository: %w", err)
	}

	env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}

	latest := &Latest{}
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, latest); err != nil {
			return nil, &RemoteError{Message: fmt.Sprintf("malformed data: %v", err), StatusCode: resp.StatusCode()}
		}
	}
	if latest.Versions == nil {
		latest.Versions = make(map[string]Version)
	}
	logging.Debugf("Verbose: repository answered versions=%d notInRepository=%d\n", len(latest.Versions), len(latest.NotInRepository))
	return latest, nil
}

// Ping fetches the repository banner.
func (c *Client) Ping(ctx context.Context) (string, error) {
	resp, err := c.http.R().SetContext(ctx).Get(c.baseURL + "/")
	if err != nil {
		return "", fmt.Errorf("contacting repository: %w", err)
	}
	if resp.IsError() {
		return "", &RemoteError{Message: "HTTP " + resp.Status(), StatusCode: resp.StatusCode()}
	}
	return strings.TrimSpace(resp.String()), nil
}

func decodeEnvelope(resp *resty.Response) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, &RemoteError{
			Message:    fmt.Sprintf("unexpected response (HTTP %d)", resp.StatusCode()),
			StatusCode: resp.StatusCode(),
		}
	}
	if !env.Successful {
		msg := env.Error
		if msg == "" {
			msg = fmt.Sprintf("request failed (HTTP %d)", resp.StatusCode())
		}
		return nil, &RemoteError{Message: msg, StatusCode: resp.StatusCode()}
	}
	return &env, nil
}
