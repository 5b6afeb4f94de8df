package spider

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"go.uber.org/zap"
)

var ErrMaxDepth = errors.New("max depth limit reached")

// Request is one page to fetch on behalf of a task.
type Request struct {
	Task     *Task
	URL      string
	Method   string
	Depth    int
	Priority int
}

func NewRequest(task *Task, url string) *Request {
	return &Request{
		Task:   task,
		URL:    url,
		Method: http.MethodGet,
	}
}

// Check rejects requests deeper than the task allows.
func (r *Request) Check() error {
	if r.Depth > r.Task.MaxDepth {
		return ErrMaxDepth
	}
	return nil
}

// Unique identifies the request in the visited set.
func (r *Request) Unique() string {
	block := md5.Sum([]byte(r.URL + r.Method))
	return hex.EncodeToString(block[:])
}

/*
Input: a context. Output: the page body and an error.

Before the task's fetcher is called, the request waits for every rate limiter of the task
and then sleeps for a random part of the task's wait time.
*/
func (r *Request) Fetch(ctx context.Context) ([]byte, error) {
	if r.Task.Limit != nil {
		if err := r.Task.Limit.Wait(ctx); err != nil {
			return nil, err
		}
	}

	if r.Task.WaitTime > 0 {
		sleep := time.Duration(rand.Int63n(r.Task.WaitTime*1000)) * time.Millisecond
		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	r.Task.logger.Debug("fetch", zap.String("task", r.Task.Name), zap.String("url", r.URL))

	return r.Task.Fetcher.Get(ctx, r)
}
