package config

import (
	"fmt"

	"github.com/dszqbsm/dikicrawler/spider"
	"github.com/go-micro/plugins/v4/config/encoder/toml"
	microconfig "go-micro.dev/v4/config"
	"go-micro.dev/v4/config/reader"
	"go-micro.dev/v4/config/reader/json"
	"go-micro.dev/v4/config/source"
	"go-micro.dev/v4/config/source/file"
)

const DefaultPath = "config.toml"

type Config struct {
	LogLevel string
	Log      Log
	Fetcher  Fetcher
	Storage  Storage
	Engine   Engine
	Tasks    []spider.TaskConfig
}

type Log struct {
	Level string
	File  string // empty means stdout only
}

type Fetcher struct {
	Timeout int // milliseconds
	Proxy   []string
	Type    string // base or browser
}

type Storage struct {
	Type       string // json or mysql
	Dir        string
	SqlURL     string
	BatchCount int
	Table      string
}

type Engine struct {
	Workers            int
	SkipBrokenEntities bool
	MinBodySize        int
}

/*
Input: the path of a toml file. Output: the config and an error.

The file is read once through the go-micro json reader with the toml encoder. Keys that
are missing take their defaults.
*/
func Load(path string) (*Config, error) {
	enc := toml.NewEncoder()
	cfg, err := microconfig.NewConfig(microconfig.WithReader(json.NewReader(reader.WithEncoder(enc))))
	if err != nil {
		return nil, fmt.Errorf("new config:%w", err)
	}
	defer cfg.Close()

	if err := cfg.Load(file.NewSource(
		file.WithPath(path),
		source.WithEncoder(enc),
	)); err != nil {
		return nil, fmt.Errorf("load config %s:%w", path, err)
	}

	c := &Config{
		LogLevel: cfg.Get("logLevel").String("INFO"),
		Log: Log{
			File: cfg.Get("log", "file").String(""),
		},
		Fetcher: Fetcher{
			Timeout: cfg.Get("fetcher", "timeout").Int(5000),
			Proxy:   cfg.Get("fetcher", "proxy").StringSlice([]string{}),
			Type:    cfg.Get("fetcher", "type").String("browser"),
		},
		Storage: Storage{
			Type:       cfg.Get("storage", "type").String("json"),
			Dir:        cfg.Get("storage", "dir").String("data"),
			SqlURL:     cfg.Get("storage", "sqlURL").String(""),
			BatchCount: cfg.Get("storage", "batchCount").Int(10),
			Table:      cfg.Get("storage", "table").String("diki_pages"),
		},
		Engine: Engine{
			Workers:            cfg.Get("engine", "workers").Int(5),
			SkipBrokenEntities: cfg.Get("engine", "skipBrokenEntities").Bool(false),
			MinBodySize:        cfg.Get("engine", "minBodySize").Int(0),
		},
	}
	c.Log.Level = c.LogLevel

	if err := cfg.Get("Tasks").Scan(&c.Tasks); err != nil {
		return nil, fmt.Errorf("scan tasks:%w", err)
	}

	return c, nil
}
