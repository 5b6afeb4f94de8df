package sqlstorage

import (
	"go.uber.org/zap"
)

type options struct {
	logger     *zap.Logger
	sqlURL     string
	BatchCount int
	Table      string
}

var defaultOptions = options{
	logger:     zap.NewNop(),
	BatchCount: 10,
	Table:      "diki_pages",
}

type Option func(opts *options)

func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

func WithSqlURL(sqlURL string) Option {
	return func(opts *options) {
		opts.sqlURL = sqlURL
	}
}

// WithBatchCount sets how many pages are buffered before one multi-row insert.
func WithBatchCount(batchCount int) Option {
	return func(opts *options) {
		opts.BatchCount = batchCount
	}
}

func WithTable(table string) Option {
	return func(opts *options) {
		opts.Table = table
	}
}
