package sqlstorage

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/dszqbsm/dikicrawler/spider"
	"github.com/dszqbsm/dikicrawler/sqldb"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const timeLayout = "2006-01-02 15:04:05"

var columnNames = []sqldb.Field{
	{Title: "page_key", Type: "CHAR(32) NOT NULL"},
	{Title: "url", Type: "VARCHAR(2048)"},
	{Title: "task", Type: "VARCHAR(255)"},
	{Title: "fetched_at", Type: "VARCHAR(32)"},
	{Title: "data", Type: "MEDIUMTEXT"},
}

// SqlStore buffers parsed pages and writes them in batches, one row per page keyed by
// the md5 of its URL.
type SqlStore struct {
	mu         sync.Mutex
	dataDocker []*spider.DataCell
	db         sqldb.DBer
	created    bool
	options
}

func New(opts ...Option) (*SqlStore, error) {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}

	db, err := sqldb.New(
		sqldb.WithConnURL(options.sqlURL),
		sqldb.WithLogger(options.logger),
	)
	if err != nil {
		return nil, err
	}

	return NewWithDB(db, opts...), nil
}

// NewWithDB builds a store over an already opened database.
func NewWithDB(db sqldb.DBer, opts ...Option) *SqlStore {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	s := &SqlStore{db: db}
	s.options = options
	return s
}

/*
Input: parsed pages. Output: an error.

The table is created on the first call. Pages are buffered and flushed every BatchCount
pages.
*/
func (s *SqlStore) Save(dataCells ...*spider.DataCell) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.created {
		if err := s.db.CreateTable(s.tableData()); err != nil {
			return fmt.Errorf("create table %s:%w", s.Table, err)
		}
		s.created = true
	}

	for _, cell := range dataCells {
		s.dataDocker = append(s.dataDocker, cell)
		if len(s.dataDocker) >= s.BatchCount {
			if err := s.flush(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *SqlStore) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.flush()
}

func (s *SqlStore) flush() error {
	if len(s.dataDocker) == 0 {
		return nil
	}
	defer func() {
		s.dataDocker = nil
	}()

	args := make([]interface{}, 0, len(s.dataDocker)*len(columnNames))
	for _, cell := range s.dataDocker {
		data, err := json.Marshal(cell.Entities)
		if err != nil {
			return fmt.Errorf("marshal %s:%w", cell.URL, err)
		}
		args = append(args, cell.Key, cell.URL, cell.Task, cell.Time.Format(timeLayout), string(data))
	}

	t := s.tableData()
	t.Args = args
	t.DataCount = len(s.dataDocker)
	if err := s.db.Insert(t); err != nil {
		s.logger.Error("insert data failed", zap.Int("count", t.DataCount), zap.Error(err))
		return err
	}
	return nil
}

// Close flushes what is buffered and closes the database.
func (s *SqlStore) Close() error {
	err := s.Flush()
	if c, ok := s.db.(io.Closer); ok {
		err = multierr.Append(err, c.Close())
	}
	return err
}

func (s *SqlStore) tableData() sqldb.TableData {
	return sqldb.TableData{
		TableName:   s.Table,
		ColumnNames: columnNames,
		PrimaryKey:  "page_key",
	}
}
