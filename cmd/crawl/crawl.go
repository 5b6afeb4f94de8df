package crawl

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dszqbsm/dikicrawler/config"
	"github.com/dszqbsm/dikicrawler/diki"
	"github.com/dszqbsm/dikicrawler/engine"
	"github.com/dszqbsm/dikicrawler/limiter"
	"github.com/dszqbsm/dikicrawler/log"
	"github.com/dszqbsm/dikicrawler/proxy"
	"github.com/dszqbsm/dikicrawler/spider"
	"github.com/dszqbsm/dikicrawler/storage/jsonstorage"
	"github.com/dszqbsm/dikicrawler/storage/sqlstorage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// DefaultWord is crawled when neither the config nor the command line names a page.
const DefaultWord = "the"

var CrawlCmd = &cobra.Command{
	Use:   "crawl [word|url...]",
	Short: "crawl diki result pages.",
	Long:  "crawl the pages of the configured tasks, plus one page per word or url argument.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), args)
	},
}

var configPath string

func init() {
	CrawlCmd.Flags().StringVar(
		&configPath, "config", config.DefaultPath, "set config file")
}

func Run(ctx context.Context, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, logCloser, err := log.Setup(cfg.Log)
	if err != nil {
		return err
	}
	defer logCloser.Close()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	logger.Info("log init end")

	fetchOpts := []spider.FetchOption{
		spider.WithFetchTimeout(time.Duration(cfg.Fetcher.Timeout) * time.Millisecond),
		spider.WithFetchLogger(logger.Named("fetcher")),
	}
	logger.Info("fetcher config",
		zap.Strings("proxy", cfg.Fetcher.Proxy),
		zap.Int("timeout", cfg.Fetcher.Timeout),
		zap.String("type", cfg.Fetcher.Type),
	)
	if len(cfg.Fetcher.Proxy) > 0 {
		p, err := proxy.RoundRobinProxySwitcher(cfg.Fetcher.Proxy...)
		if err != nil {
			return fmt.Errorf("proxy switcher:%w", err)
		}
		fetchOpts = append(fetchOpts, spider.WithProxy(p))
	}
	f := spider.NewFetchService(spider.ParseFetchType(cfg.Fetcher.Type), fetchOpts...)

	storage, err := NewStorage(cfg.Storage, logger)
	if err != nil {
		return err
	}

	seeds := ParseTaskConfig(logger, fetchOpts, cfg.Tasks)
	if extra := SeedURLs(args); len(extra) > 0 || len(seeds) == 0 {
		if len(extra) == 0 {
			extra = SeedURLs([]string{DefaultWord})
		}
		seeds = append(seeds, spider.NewTask(
			spider.WithName("cli"),
			spider.WithURLs(extra...),
			spider.WithLogger(logger),
		))
	}

	c, err := engine.NewCrawler(
		engine.WithFetcher(f),
		engine.WithStorage(storage),
		engine.WithLogger(logger),
		engine.WithWorkCount(cfg.Engine.Workers),
		engine.WithSeeds(seeds),
		engine.WithReporter(diki.NewZapReporter(logger.Named("diki"))),
		engine.WithSkipBrokenEntities(cfg.Engine.SkipBrokenEntities),
		engine.WithMinBodySize(cfg.Engine.MinBodySize),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Error("close crawler", zap.Error(err))
		}
	}()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := c.Run(ctx); err != nil {
		logger.Warn("crawl interrupted", zap.Error(err))
	}
	return nil
}

// NewStorage builds the sink named by the storage section.
func NewStorage(cfg config.Storage, logger *zap.Logger) (spider.DataRepository, error) {
	switch strings.ToLower(cfg.Type) {
	case "", "json":
		return jsonstorage.New(
			jsonstorage.WithDir(cfg.Dir),
			jsonstorage.WithLogger(logger.Named("jsonStore")),
		), nil
	case "mysql":
		s, err := sqlstorage.New(
			sqlstorage.WithSqlURL(cfg.SqlURL),
			sqlstorage.WithLogger(logger.Named("sqlDB")),
			sqlstorage.WithBatchCount(cfg.BatchCount),
			sqlstorage.WithTable(cfg.Table),
		)
		if err != nil {
			return nil, fmt.Errorf("create sqlstorage:%w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}

// ParseTaskConfig turns the [[Tasks]] tables into tasks. A task naming a fetcher type
// gets its own fetcher; the others share the crawler's.
func ParseTaskConfig(logger *zap.Logger, fetchOpts []spider.FetchOption, cfgs []spider.TaskConfig) []*spider.Task {
	tasks := make([]*spider.Task, 0, len(cfgs))
	for _, cfg := range cfgs {
		t := spider.NewTask(
			spider.WithName(cfg.Name),
			spider.WithURLs(SeedURLs(cfg.URLs)...),
			spider.WithReload(cfg.Reload),
			spider.WithCookie(cfg.Cookie),
			spider.WithMaxRequests(cfg.MaxRequests),
			spider.WithLogger(logger),
		)

		if cfg.WaitTime > 0 {
			t.WaitTime = cfg.WaitTime
		}

		if cfg.MaxDepth > 0 {
			t.MaxDepth = cfg.MaxDepth
		}

		if len(cfg.Limits) > 0 {
			var limits []limiter.RateLimiter
			for _, lcfg := range cfg.Limits {
				limits = append(limits, limiter.New(lcfg.EventCount, lcfg.EventDur, lcfg.Bucket))
			}
			t.Limit = limiter.Multi(limits...)
		}

		if cfg.Fetcher != "" {
			t.Fetcher = spider.NewFetchService(spider.ParseFetchType(cfg.Fetcher), fetchOpts...)
		}
		tasks = append(tasks, t)
	}
	return tasks
}

// SeedURLs keeps http(s) URLs as they are and turns anything else into a search for
// that word.
func SeedURLs(args []string) []string {
	urls := make([]string, 0, len(args))
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
			urls = append(urls, arg)
			continue
		}
		urls = append(urls, diki.QueryURL(arg))
	}
	return urls
}
