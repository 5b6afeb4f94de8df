package spider

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/dszqbsm/dikicrawler/proxy"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var ErrStatus = errors.New("unexpected status code")

type FetchType int

const (
	BaseFetchType FetchType = iota
	BrowserFetchType
)

// ParseFetchType maps the config names "base" and "browser" onto a FetchType.
func ParseFetchType(s string) FetchType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "base":
		return BaseFetchType
	default:
		return BrowserFetchType
	}
}

type Fetcher interface {
	/*
	   Input: a context and a request. Output: the UTF-8 body and an error.

	   Fails on network errors and on any status other than 200.
	*/
	Get(ctx context.Context, req *Request) ([]byte, error)
}

type fetchOptions struct {
	timeout time.Duration
	proxy   proxy.ProxyFunc
	logger  *zap.Logger
}

var defaultFetchOptions = fetchOptions{
	timeout: 5 * time.Second,
	logger:  zap.NewNop(),
}

type FetchOption func(opts *fetchOptions)

func WithFetchTimeout(timeout time.Duration) FetchOption {
	return func(opts *fetchOptions) {
		opts.timeout = timeout
	}
}

func WithProxy(p proxy.ProxyFunc) FetchOption {
	return func(opts *fetchOptions) {
		opts.proxy = p
	}
}

func WithFetchLogger(logger *zap.Logger) FetchOption {
	return func(opts *fetchOptions) {
		opts.logger = logger
	}
}

/*
Input: a fetch type and options. Output: a Fetcher.

The base fetcher sends plain GET requests. The browser fetcher adds the task cookie, a
random browser User-Agent, a timeout and the proxy switcher.
*/
func NewFetchService(typ FetchType, opts ...FetchOption) Fetcher {
	options := defaultFetchOptions
	for _, opt := range opts {
		opt(&options)
	}

	switch typ {
	case BaseFetchType:
		return &baseFetch{client: &http.Client{Timeout: options.timeout}, logger: options.logger}
	default:
		client := &http.Client{Timeout: options.timeout}
		if options.proxy != nil {
			transport := http.DefaultTransport.(*http.Transport).Clone()
			transport.Proxy = options.proxy
			client.Transport = transport
		}
		return &browserFetch{client: client, logger: options.logger}
	}
}

type baseFetch struct {
	client *http.Client
	logger *zap.Logger
}

func (b *baseFetch) Get(ctx context.Context, req *Request) ([]byte, error) {
	r, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("get url failed:%w", err)
	}
	return do(b.client, r, b.logger)
}

type browserFetch struct {
	client *http.Client
	logger *zap.Logger
}

func (b *browserFetch) Get(ctx context.Context, req *Request) ([]byte, error) {
	r, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("get url failed:%w", err)
	}

	if req.Task != nil && len(req.Task.Cookie) > 0 {
		r.Header.Set("Cookie", req.Task.Cookie)
	}
	r.Header.Set("User-Agent", RandomUserAgent())

	return do(b.client, r, b.logger)
}

func do(client *http.Client, r *http.Request, logger *zap.Logger) ([]byte, error) {
	resp, err := client.Do(r)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w:%d", ErrStatus, resp.StatusCode)
	}

	bodyReader := bufio.NewReader(resp.Body)
	e := DeterminEncoding(bodyReader, logger)
	utf8Reader := transform.NewReader(bodyReader, e.NewDecoder())

	return io.ReadAll(utf8Reader)
}

// DeterminEncoding sniffs the charset from the first kilobyte and falls back to UTF-8.
func DeterminEncoding(r *bufio.Reader, logger *zap.Logger) encoding.Encoding {
	bytes, err := r.Peek(1024)

	if err != nil && !errors.Is(err, io.EOF) {
		logger.Error("fetch failed", zap.Error(err))

		return unicode.UTF8
	}

	e, _, _ := charset.DetermineEncoding(bytes, "")

	return e
}

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36 Edg/124.0.0.0",
}

func RandomUserAgent() string {
	return userAgents[rand.Intn(len(userAgents))]
}
