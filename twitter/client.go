// Package twitter talks to the web client endpoints of twitter/x.com and
// turns their responses into typed values.
package twitter

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/net/http2"
)

const (
	DefaultBaseURL = "https://x.com"

	bearerToken = "AAAAAAAAAAAAAAAAAAAAANRILgAAAAAAnNwIzUejRCOuH5E6I8xnZz4puTs%3D1Zv7ttfk8LF81IUq16cHjhLTvJu4FA33AGWWjCpTnA"
	userAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/129.0.0.0 Safari/537.36"
)

var (
	regExtractXCsrfToken = regexp.MustCompile(`ct0=([^;]+)`)
)

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// Cookie is the browser cookie string of a logged in session. It must
	// contain the ct0 cookie.
	Cookie string
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string
	// Proxy is an optional proxy URL. Ignored when HTTPClient is set.
	Proxy string
	// HTTPClient is used for all requests when set.
	HTTPClient *http.Client
	// Logger defaults to a logger that discards everything.
	Logger *slog.Logger
}

// Client sends authenticated requests on behalf of one session and decodes
// the responses.
type Client struct {
	baseURL          string
	cookie           string
	cookieXCsrfToken string

	httpClient *http.Client
	logger     *slog.Logger

	now func() time.Time

	userCacheLock sync.Mutex
	userCache     []userCache
}

func NewClient(config ClientConfig) (*Client, error) {
	m := regExtractXCsrfToken.FindStringSubmatch(config.Cookie)
	if len(m) < 2 {
		return nil, ErrMissingCsrfToken
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("twitter: invalid base url %q: %w", baseURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		transport, err := newTransport(config.Proxy)
		if err != nil {
			return nil, err
		}
		httpClient = &http.Client{
			Transport: transport,
		}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL:          strings.TrimRight(baseURL, "/"),
		cookie:           config.Cookie,
		cookieXCsrfToken: m[1],
		httpClient:       httpClient,
		logger:           logger,
		now:              time.Now,
		userCache:        make([]userCache, 0, MaxUserCacheCount),
	}, nil
}

func newTransport(proxy string) (*http.Transport, error) {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConnsPerHost: 32,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}

	if proxy != "" {
		u, err := url.Parse(proxy)
		if err != nil {
			return nil, fmt.Errorf("twitter: invalid proxy url %q: %w", proxy, err)
		}
		transport.Proxy = http.ProxyURL(u)
	}

	// A custom TLSClientConfig turns off the built-in HTTP/2 support.
	if err := http2.ConfigureTransport(transport); err != nil {
		return nil, fmt.Errorf("twitter: configuring http2: %w", err)
	}

	return transport, nil
}

// CreateRequest builds a request carrying the session's credentials.
func (c *Client) CreateRequest(ctx context.Context, method string, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	req.Header = http.Header{
		"Authorization":             []string{"Bearer " + bearerToken},
		"Cookie":                    []string{c.cookie},
		"User-Agent":                []string{userAgent},
		"X-Csrf-Token":              []string{c.cookieXCsrfToken},
		"X-Twitter-Auth-Type":       []string{"OAuth2Session"},
		"X-Twitter-Active-User":     []string{"yes"},
		"X-Twitter-Client-Language": []string{"en"},
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// Request sends body, if not nil, as JSON and decodes the response into v.
// v may be nil, a *[]byte for the raw body, a *jsoniter.Any, or anything
// jsoniter can decode into. A non-2xx response is returned as an *APIError
// together with its metadata.
func (c *Client) Request(ctx context.Context, method string, url string, body interface{}, v interface{}) (meta ResponseMeta, err error) {
	var reqBody io.Reader
	if body != nil {
		buff := BytesPool.Get().(*bytes.Buffer)
		defer BytesPool.Put(buff)
		buff.Reset()

		if err := jsonTwitter.NewEncoder(buff).Encode(body); err != nil {
			return meta, fmt.Errorf("twitter: encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(buff.Bytes())
	}

	req, err := c.CreateRequest(ctx, method, url, reqBody)
	if err != nil {
		return meta, fmt.Errorf("twitter: creating request: %w", err)
	}

	c.logger.Debug("request", "method", method, "url", req.URL.Path)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return meta, fmt.Errorf("twitter: %s %s: %w", method, req.URL.Path, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return meta, fmt.Errorf("twitter: reading response: %w", err)
	}

	meta = newResponseMeta(res)
	c.logger.Debug("response",
		"method", method,
		"url", req.URL.Path,
		"status", res.StatusCode,
		"rate_limit_remaining", meta.RateLimit.Remaining,
	)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return meta, &APIError{StatusCode: res.StatusCode, Body: data}
	}

	switch v := v.(type) {
	case nil:
	case *[]byte:
		*v = data
	case *jsoniter.Any:
		*v = jsonTwitter.Get(data)
	default:
		if err := jsonTwitter.Unmarshal(data, v); err != nil {
			return meta, fmt.Errorf("twitter: decoding response: %w", err)
		}
	}

	return meta, nil
}
