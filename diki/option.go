package diki

import "go.uber.org/zap"

type options struct {
	reporter Reporter
}

var defaultOptions = options{
	reporter: NewZapReporter(zap.NewNop()),
}

type Option func(opts *options)

func WithReporter(r Reporter) Option {
	return func(opts *options) {
		opts.reporter = r
	}
}

// WithLogger reports unknown items to logger at warn level.
func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		opts.reporter = NewZapReporter(logger)
	}
}
