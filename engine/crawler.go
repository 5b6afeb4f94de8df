package engine

import (
	"context"
	"errors"
	"io"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/dszqbsm/dikicrawler/diki"
	"github.com/dszqbsm/dikicrawler/spider"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	ErrNoFetcher = errors.New("no fetcher configured")
	ErrNoStorage = errors.New("no storage configured")
)

// Crawler fetches the seed pages of its tasks, parses them and saves the entities.
type Crawler struct {
	out     chan *spider.DataCell
	pending atomic.Int64
	cancel  context.CancelFunc
	options
}

/*
Input: options. Output: a crawler and an error.

Seed tasks without a fetcher of their own get the crawler's fetcher. Scheduler, request
history and reporter fall back to the in-memory scheduler, a fresh history and the
crawler logger.
*/
func NewCrawler(opts ...Option) (*Crawler, error) {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}

	if options.Storage == nil {
		return nil, ErrNoStorage
	}
	for _, task := range options.Seeds {
		if task.Fetcher != nil {
			continue
		}
		if options.Fetcher == nil {
			return nil, ErrNoFetcher
		}
		task.Fetcher = options.Fetcher
	}
	if options.WorkCount < 1 {
		options.WorkCount = 1
	}
	if options.scheduler == nil {
		options.scheduler = NewSchedule(options.Logger)
	}
	if options.reqRepository == nil {
		options.reqRepository = spider.NewReqHistoryRepository()
	}
	if options.reporter == nil {
		options.reporter = diki.NewZapReporter(options.Logger)
	}

	c := &Crawler{}
	c.out = make(chan *spider.DataCell)
	c.options = options

	return c, nil
}

/*
Input: a context. Output: an error.

Run returns once every seed request has been stored, skipped or has failed for good, or
when ctx is done; in the latter case it returns ctx.Err(). A crawler runs once.
*/
func (c *Crawler) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	c.cancel = cancel

	seeds := c.handleSeeds()
	if len(seeds) == 0 {
		c.Logger.Info("no seed requests")
		return nil
	}
	c.pending.Add(int64(len(seeds)))

	go c.scheduler.Schedule(runCtx)

	var workers sync.WaitGroup
	for i := 0; i < c.WorkCount; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			c.CreateWork(runCtx)
		}()
	}

	handled := make(chan struct{})
	go func() {
		defer close(handled)
		c.HandleResult()
	}()

	go c.scheduler.Push(seeds...)

	<-runCtx.Done()
	workers.Wait()
	close(c.out)
	<-handled

	return ctx.Err()
}

func (c *Crawler) handleSeeds() []*spider.Request {
	var reqs []*spider.Request
	for _, task := range c.Seeds {
		reqs = append(reqs, task.Seeds()...)
	}
	return reqs
}

// CreateWork pulls requests until ctx is done.
func (c *Crawler) CreateWork(ctx context.Context) {
	for {
		req := c.scheduler.Pull(ctx)
		if req == nil {
			return
		}
		c.handle(ctx, req)
	}
}

// handle settles one request. Every path ends in done, except a retry, which hands the
// request back to the scheduler still pending.
func (c *Crawler) handle(ctx context.Context, req *spider.Request) {
	defer func() {
		if err := recover(); err != nil {
			c.Logger.Error("worker panic",
				zap.Any("err", err),
				zap.String("url", req.URL),
				zap.String("stack", string(debug.Stack())))
			c.done()
		}
	}()

	if err := req.Check(); err != nil {
		c.Logger.Debug("check failed",
			zap.String("url", req.URL),
			zap.Error(err),
		)
		c.done()
		return
	}

	if !req.Task.Reload && c.reqRepository.HasVisited(req) {
		c.Logger.Debug("request has visited",
			zap.String("url", req.URL),
		)
		c.done()
		return
	}

	if !req.Task.Allow() {
		c.Logger.Info("max requests reached",
			zap.String("task", req.Task.Name),
			zap.String("url", req.URL),
		)
		c.done()
		return
	}

	c.reqRepository.AddVisited(req)

	body, err := req.Fetch(ctx)
	if err != nil {
		c.Logger.Error("can't fetch",
			zap.Error(err),
			zap.String("url", req.URL),
		)
		c.SetFailure(ctx, req)
		return
	}

	if len(body) < c.minBodySize {
		c.Logger.Error("can't fetch",
			zap.Int("length", len(body)),
			zap.String("url", req.URL),
		)
		c.SetFailure(ctx, req)
		return
	}

	c.reqRepository.Succeed(req)

	sctx := &spider.Context{Body: body, Req: req}
	if cell, ok := c.parse(sctx); ok {
		select {
		case c.out <- cell:
		case <-ctx.Done():
		}
	}
	c.done()
}

func (c *Crawler) parse(sctx *spider.Context) (*spider.DataCell, bool) {
	url := sctx.Req.URL

	page, err := sctx.Page(diki.WithReporter(c.reporter))
	if err != nil {
		c.Logger.Error("parse page failed", zap.String("url", url), zap.Error(err))
		return nil, false
	}

	if !page.Found() {
		c.Logger.Info("no entry", zap.String("url", url))
		return nil, false
	}

	entities, err := diki.Collect(page, c.skipBrokenEntities)
	if err != nil {
		if !c.skipBrokenEntities {
			c.Logger.Error("page not stored",
				zap.String("url", url),
				zap.Error(err),
			)
			return nil, false
		}
		for _, e := range multierr.Errors(err) {
			c.Logger.Warn("entity skipped",
				zap.String("url", url),
				zap.Error(e),
			)
		}
	}

	c.Logger.Info("page parsed",
		zap.String("url", url),
		zap.Int("entities", len(entities)),
	)

	return sctx.Output(entities), true
}

// HandleResult saves parsed pages until the output channel is closed.
func (c *Crawler) HandleResult() {
	for cell := range c.out {
		if err := c.Storage.Save(cell); err != nil {
			c.Logger.Error("save failed",
				zap.String("url", cell.URL),
				zap.Error(err),
			)
		}
	}
}

// SetFailure hands a failed request back to the scheduler while the request history allows
// a retry. After that it is given up.
func (c *Crawler) SetFailure(ctx context.Context, req *spider.Request) {
	if ctx.Err() == nil && c.reqRepository.Fail(req) {
		go c.scheduler.Push(req)
		return
	}

	c.done()
}

func (c *Crawler) done() {
	if c.pending.Add(-1) == 0 && c.cancel != nil {
		c.cancel()
	}
}

// Close closes the storage, and the fetcher too if it holds resources.
func (c *Crawler) Close() error {
	var err error
	if closer, ok := c.Storage.(io.Closer); ok {
		err = multierr.Append(err, closer.Close())
	}
	if closer, ok := c.Fetcher.(io.Closer); ok {
		err = multierr.Append(err, closer.Close())
	}
	return err
}
