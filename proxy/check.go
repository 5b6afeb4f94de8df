package proxy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DefaultCheckTarget = "https://www.diki.pl/slownik-angielskiego?q=the"

type checkOptions struct {
	target  string
	jobs    int
	timeout time.Duration
	logger  *zap.Logger
}

var defaultCheckOptions = checkOptions{
	target:  DefaultCheckTarget,
	jobs:    10,
	timeout: 7 * time.Second,
	logger:  zap.NewNop(),
}

type CheckOption func(opts *checkOptions)

func WithTarget(target string) CheckOption {
	return func(opts *checkOptions) {
		opts.target = target
	}
}

func WithJobs(jobs int) CheckOption {
	return func(opts *checkOptions) {
		opts.jobs = jobs
	}
}

func WithTimeout(timeout time.Duration) CheckOption {
	return func(opts *checkOptions) {
		opts.timeout = timeout
	}
}

func WithLogger(logger *zap.Logger) CheckOption {
	return func(opts *checkOptions) {
		opts.logger = logger
	}
}

/*
Input: a context, candidate proxy URLs and options. Output: the working proxies.

Every candidate fetches the target page through itself, at most jobs at a time. A proxy
works when the page answers 200 within the timeout. The result keeps the input order.
*/
func Check(ctx context.Context, proxies []string, opts ...CheckOption) ([]string, error) {
	options := defaultCheckOptions
	for _, opt := range opts {
		opt(&options)
	}

	ok := make([]bool, len(proxies))
	g, gctx := errgroup.WithContext(ctx)
	if options.jobs > 0 {
		g.SetLimit(options.jobs)
	}

	for i, p := range proxies {
		i, p := i, p
		g.Go(func() error {
			if err := checkOne(gctx, p, options); err != nil {
				options.logger.Info("proxy fail", zap.String("proxy", p), zap.Error(err))
				return nil
			}
			options.logger.Info("proxy ok", zap.String("proxy", p))
			ok[i] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	working := make([]string, 0, len(proxies))
	for i, p := range proxies {
		if ok[i] {
			working = append(working, p)
		}
	}
	return working, nil
}

func checkOne(ctx context.Context, proxyURL string, options checkOptions) error {
	u, err := url.Parse(proxyURL)
	if err != nil {
		return fmt.Errorf("parse proxy url:%w", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = http.ProxyURL(u)
	defer transport.CloseIdleConnections()
	client := &http.Client{Transport: transport, Timeout: options.timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, options.target, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status code:%d", resp.StatusCode)
	}
	return nil
}

// WriteFile stores proxies as a JSON array, ready for the [fetcher] proxy setting.
func WriteFile(path string, proxies []string) error {
	if proxies == nil {
		proxies = []string{}
	}
	data, err := json.MarshalIndent(proxies, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
