package parse

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dszqbsm/dikicrawler/diki"
	"github.com/dszqbsm/dikicrawler/log"
	"github.com/dszqbsm/dikicrawler/spider"
	"github.com/dszqbsm/dikicrawler/storage/jsonstorage"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var ParseCmd = &cobra.Command{
	Use:   "parse file.html...",
	Short: "parse saved diki pages.",
	Long:  "parse result pages saved to disk and write their entities as json.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := log.NewLogger(log.NewStderrPlugin(zapcore.InfoLevel))
		defer logger.Sync()
		return Run(cmd.OutOrStdout(), logger, args)
	},
}

var (
	pageURL    string
	outDir     string
	skipBroken bool
)

func init() {
	ParseCmd.Flags().StringVar(
		&pageURL, "url", "https://www.diki.pl/slownik-angielskiego", "set the url the pages were fetched from")
	ParseCmd.Flags().StringVar(
		&outDir, "out", "", "write one json file per page into this directory instead of stdout")
	ParseCmd.Flags().BoolVar(
		&skipBroken, "skip-broken", false, "keep the other entities of a page when one fails")
}

/*
Input: the output writer, a logger and the page files. Output: an error.

Without an output directory the entities of each page are printed as a json array. A page
that fails is logged and the remaining files are still parsed; the failures are returned
together.
*/
func Run(w io.Writer, logger *zap.Logger, files []string) error {
	var store *jsonstorage.JSONStore
	if outDir != "" {
		store = jsonstorage.New(jsonstorage.WithDir(outDir), jsonstorage.WithLogger(logger))
	}
	reporter := diki.NewZapReporter(logger)

	var errs error
	for _, file := range files {
		entities, err := ParseFile(file, pageURL, skipBroken, reporter)
		if err != nil {
			logger.Error("parse failed", zap.String("file", file), zap.Error(err))
			errs = multierr.Append(errs, err)
			if !skipBroken || entities == nil {
				continue
			}
		}

		if store != nil {
			cell := &spider.DataCell{
				Task:     "parse",
				URL:      pageURL,
				Key:      strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)),
				Time:     time.Now(),
				Entities: entities,
			}
			if err := store.Save(cell); err != nil {
				errs = multierr.Append(errs, err)
			}
			continue
		}

		if err := Write(w, entities); err != nil {
			return err
		}
	}
	return errs
}

// ParseFile reads every entity of a saved page. A page without results gives no entities
// and no error.
func ParseFile(file, pageURL string, skipBroken bool, reporter diki.Reporter) ([]*diki.DictionaryEntity, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	page, err := diki.NewPage(f, pageURL, diki.WithReporter(reporter))
	if err != nil {
		return nil, fmt.Errorf("%s:%w", file, err)
	}
	if !page.Found() {
		return []*diki.DictionaryEntity{}, nil
	}

	entities, err := diki.Collect(page, skipBroken)
	if err != nil {
		return entities, fmt.Errorf("%s:%w", file, err)
	}
	return entities, nil
}

// Write prints entities as an indented json array.
func Write(w io.Writer, entities []*diki.DictionaryEntity) error {
	if entities == nil {
		entities = []*diki.DictionaryEntity{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(entities)
}
