package engine

import (
	"github.com/dszqbsm/dikicrawler/diki"
	"github.com/dszqbsm/dikicrawler/spider"
	"go.uber.org/zap"
)

type Option func(opts *options)

type options struct {
	WorkCount          int
	Fetcher            spider.Fetcher
	Storage            spider.DataRepository
	Logger             *zap.Logger
	Seeds              []*spider.Task
	scheduler          Scheduler
	reqRepository      spider.ReqHistoryRepository
	reporter           diki.Reporter
	skipBrokenEntities bool
	minBodySize        int
}

var defaultOptions = options{
	WorkCount: 5,
	Logger:    zap.NewNop(),
}

func WithReqRepository(reqRepository spider.ReqHistoryRepository) Option {
	return func(opts *options) {
		opts.reqRepository = reqRepository
	}
}

func WithStorage(s spider.DataRepository) Option {
	return func(opts *options) {
		opts.Storage = s
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		opts.Logger = logger
	}
}

// WithFetcher is used by every seed task that has no fetcher of its own.
func WithFetcher(fetcher spider.Fetcher) Option {
	return func(opts *options) {
		opts.Fetcher = fetcher
	}
}

func WithWorkCount(workCount int) Option {
	return func(opts *options) {
		opts.WorkCount = workCount
	}
}

func WithSeeds(seed []*spider.Task) Option {
	return func(opts *options) {
		opts.Seeds = seed
	}
}

func WithScheduler(scheduler Scheduler) Option {
	return func(opts *options) {
		opts.scheduler = scheduler
	}
}

// WithReporter receives the markup no parser recognized. It defaults to the engine logger.
func WithReporter(reporter diki.Reporter) Option {
	return func(opts *options) {
		opts.reporter = reporter
	}
}

// WithSkipBrokenEntities stores the rest of a page when some of its entities fail to
// parse. Without it such a page is not stored at all.
func WithSkipBrokenEntities(skip bool) Option {
	return func(opts *options) {
		opts.skipBrokenEntities = skip
	}
}

// WithMinBodySize treats shorter bodies as failed fetches.
func WithMinBodySize(size int) Option {
	return func(opts *options) {
		opts.minBodySize = size
	}
}
