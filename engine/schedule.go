package engine

import (
	"context"

	"github.com/dszqbsm/dikicrawler/spider"
	"go.uber.org/zap"
)

type Scheduler interface {
	// Schedule runs the dispatch loop until ctx is done.
	Schedule(ctx context.Context)
	Push(reqs ...*spider.Request)
	// Pull blocks for the next request. It returns nil once ctx is done.
	Pull(ctx context.Context) *spider.Request
}

// Schedule hands requests to workers, requests with a positive priority first.
type Schedule struct {
	requestCh   chan *spider.Request
	workerCh    chan *spider.Request
	done        chan struct{}
	priReqQueue []*spider.Request
	reqQueue    []*spider.Request
	Logger      *zap.Logger
}

func NewSchedule(logger *zap.Logger) *Schedule {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Schedule{
		requestCh: make(chan *spider.Request),
		workerCh:  make(chan *spider.Request),
		done:      make(chan struct{}),
		Logger:    logger,
	}
}

// Push drops the requests once the dispatch loop has stopped.
func (s *Schedule) Push(reqs ...*spider.Request) {
	for _, req := range reqs {
		select {
		case s.requestCh <- req:
		case <-s.done:
			return
		}
	}
}

func (s *Schedule) Pull(ctx context.Context) *spider.Request {
	select {
	case r := <-s.workerCh:
		return r
	case <-ctx.Done():
		return nil
	}
}

/*
Input: a context. No output.

The loop keeps two queues. While a request is waiting to be handed out, it is offered to
the workers and new requests are still accepted. Checking the request is left to the
worker that pulls it.
*/
func (s *Schedule) Schedule(ctx context.Context) {
	defer close(s.done)

	var ch chan *spider.Request
	var req *spider.Request

	for {
		if req == nil && len(s.priReqQueue) > 0 {
			req = s.priReqQueue[0]
			s.priReqQueue = s.priReqQueue[1:]
			ch = s.workerCh
		}

		if req == nil && len(s.reqQueue) > 0 {
			req = s.reqQueue[0]
			s.reqQueue = s.reqQueue[1:]
			ch = s.workerCh
		}

		select {
		case r := <-s.requestCh:
			if r.Priority > 0 {
				s.priReqQueue = append(s.priReqQueue, r)
			} else {
				s.reqQueue = append(s.reqQueue, r)
			}
		case ch <- req:
			req = nil
			ch = nil
		case <-ctx.Done():
			s.Logger.Debug("scheduler stopped",
				zap.Int("pending", len(s.priReqQueue)+len(s.reqQueue)),
			)
			return
		}
	}
}
