package diki

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Reporter receives markup that no parser recognized. Implementations must not fail.
type Reporter interface {
	Warn(section, markup, pageURL string)
}

type ReporterFunc func(section, markup, pageURL string)

func (f ReporterFunc) Warn(section, markup, pageURL string) {
	f(section, markup, pageURL)
}

type zapReporter struct {
	logger *zap.Logger
}

func NewZapReporter(logger *zap.Logger) Reporter {
	return &zapReporter{logger: logger}
}

func (r *zapReporter) Warn(section, markup, pageURL string) {
	r.logger.Warn("unknown item",
		zap.String("section", section),
		zap.String("markup", markup),
		zap.String("url", pageURL),
	)
}

// CountingReporter forwards to Next and counts the reports.
type CountingReporter struct {
	Next  Reporter
	count atomic.Int64
}

func (r *CountingReporter) Warn(section, markup, pageURL string) {
	r.count.Add(1)
	if r.Next != nil {
		r.Next.Warn(section, markup, pageURL)
	}
}

func (r *CountingReporter) Count() int64 {
	return r.count.Load()
}
