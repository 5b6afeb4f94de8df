package limiter

import (
	"context"
	"sort"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter is satisfied by *rate.Limiter.
type RateLimiter interface {
	Wait(context.Context) error
	Limit() rate.Limit
}

// Multi combines limiters, strictest first. A wait passes only once every limiter allows it.
func Multi(limiters ...RateLimiter) *multiLimiter {
	byLimit := func(i, j int) bool {
		return limiters[i].Limit() < limiters[j].Limit()
	}
	sort.Slice(limiters, byLimit)
	return &multiLimiter{limiters: limiters}
}

type multiLimiter struct {
	limiters []RateLimiter
}

func (l *multiLimiter) Wait(ctx context.Context) error {
	for _, l := range l.limiters {
		if err := l.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Limit is the strictest limit, or rate.Inf when there is none.
func (l *multiLimiter) Limit() rate.Limit {
	if len(l.limiters) == 0 {
		return rate.Inf
	}
	return l.limiters[0].Limit()
}

// Per allows eventCount events per duration, e.g. Per(1, 2*time.Second).
func Per(eventCount int, duration time.Duration) rate.Limit {
	if eventCount <= 0 {
		return rate.Inf
	}
	return rate.Every(duration / time.Duration(eventCount))
}

/*
Input: the event count, the window in seconds and the bucket size. Output: a limiter.

A bucket smaller than one is raised to one, so the first event is never blocked.
*/
func New(eventCount, eventDur, bucket int) *rate.Limiter {
	if bucket < 1 {
		bucket = 1
	}
	return rate.NewLimiter(Per(eventCount, time.Duration(eventDur)*time.Second), bucket)
}
