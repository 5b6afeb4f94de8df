package jsonstorage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dszqbsm/dikicrawler/diki"
	"github.com/dszqbsm/dikicrawler/spider"
	"go.uber.org/zap"
)

type options struct {
	dir    string
	logger *zap.Logger
}

var defaultOptions = options{
	dir:    "data",
	logger: zap.NewNop(),
}

type Option func(opts *options)

func WithDir(dir string) Option {
	return func(opts *options) {
		opts.dir = dir
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// JSONStore writes the entities of every page to <dir>/<md5(url)>.json.
type JSONStore struct {
	options
}

func New(opts ...Option) *JSONStore {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	s := &JSONStore{}
	s.options = options
	return s
}

func (s *JSONStore) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

/*
Input: parsed pages. Output: an error.

Each page goes to a temp file in the target directory that is then renamed over the final
name, so a rerun replaces the file and a reader never sees half of it.
*/
func (s *JSONStore) Save(cells ...*spider.DataCell) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s:%w", s.dir, err)
	}

	for _, cell := range cells {
		key := cell.Key
		if key == "" {
			key = spider.Key(cell.URL)
		}
		if err := s.write(s.Path(key), cell.Entities); err != nil {
			return fmt.Errorf("save %s:%w", cell.URL, err)
		}
		s.logger.Debug("page saved", zap.String("url", cell.URL), zap.String("key", key), zap.Int("entities", len(cell.Entities)))
	}
	return nil
}

func (s *JSONStore) write(path string, entities []*diki.DictionaryEntity) error {
	if entities == nil {
		entities = []*diki.DictionaryEntity{}
	}
	data, err := json.MarshalIndent(entities, "", "    ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".page-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
