package spider

import (
	"sync/atomic"

	"github.com/dszqbsm/dikicrawler/limiter"
	"go.uber.org/zap"
)

// TaskConfig is one [[Tasks]] table of the config file.
type TaskConfig struct {
	Name        string
	URLs        []string
	Cookie      string
	WaitTime    int64
	Reload      bool
	MaxDepth    int
	MaxRequests int64
	Fetcher     string
	Limits      []LimitConfig
}

type LimitConfig struct {
	EventCount int
	EventDur   int // seconds
	Bucket     int
}

// Task is a named crawl over a fixed list of seed pages.
type Task struct {
	requests atomic.Int64
	Options
}

/*
Input: options. Output: a task.

Options that are not given keep the defaults: a 5 second wait, no reload, depth 5 and no
request limit.
*/
func NewTask(opts ...Option) *Task {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}

	t := &Task{}
	t.Options = options

	return t
}

// Seeds builds one depth 0 request per seed URL.
func (t *Task) Seeds() []*Request {
	reqs := make([]*Request, 0, len(t.URLs))
	for _, u := range t.URLs {
		reqs = append(reqs, NewRequest(t, u))
	}
	return reqs
}

// Allow counts a fetch against MaxRequests and reports whether it may go ahead.
func (t *Task) Allow() bool {
	n := t.requests.Add(1)
	return t.MaxRequests <= 0 || n <= t.MaxRequests
}

type Options struct {
	Name        string   `json:"name"`
	URLs        []string `json:"urls"`
	Cookie      string   `json:"cookie"`
	WaitTime    int64    `json:"wait_time"` // seconds
	Reload      bool     `json:"reload"`
	MaxDepth    int      `json:"max_depth"`
	MaxRequests int64    `json:"max_requests"` // 0 means unlimited
	Fetcher     Fetcher
	Limit       limiter.RateLimiter
	logger      *zap.Logger
}

var defaultOptions = Options{
	logger:   zap.NewNop(),
	WaitTime: 5,
	Reload:   false,
	MaxDepth: 5,
}

type Option func(opts *Options)

func WithLogger(logger *zap.Logger) Option {
	return func(opts *Options) {
		opts.logger = logger
	}
}

func WithName(name string) Option {
	return func(opts *Options) {
		opts.Name = name
	}
}

func WithURLs(urls ...string) Option {
	return func(opts *Options) {
		opts.URLs = append(opts.URLs, urls...)
	}
}

func WithCookie(cookie string) Option {
	return func(opts *Options) {
		opts.Cookie = cookie
	}
}

func WithWaitTime(waitTime int64) Option {
	return func(opts *Options) {
		opts.WaitTime = waitTime
	}
}

func WithReload(reload bool) Option {
	return func(opts *Options) {
		opts.Reload = reload
	}
}

func WithFetcher(f Fetcher) Option {
	return func(opts *Options) {
		opts.Fetcher = f
	}
}

func WithMaxDepth(maxDepth int) Option {
	return func(opts *Options) {
		opts.MaxDepth = maxDepth
	}
}

func WithMaxRequests(n int64) Option {
	return func(opts *Options) {
		opts.MaxRequests = n
	}
}

func WithLimit(l limiter.RateLimiter) Option {
	return func(opts *Options) {
		opts.Limit = l
	}
}
