package proxycheck

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dszqbsm/dikicrawler/log"
	"github.com/dszqbsm/dikicrawler/proxy"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var ProxyCheckCmd = &cobra.Command{
	Use:   "proxycheck [proxy...]",
	Short: "keep the proxies that can reach diki.",
	Long:  "try every proxy against a diki page and write the working ones as a json array.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := log.NewLogger(log.NewStderrPlugin(zapcore.InfoLevel))
		defer logger.Sync()

		proxies := args
		if inFile != "" {
			f, err := os.Open(inFile)
			if err != nil {
				return err
			}
			defer f.Close()
			read, err := ReadList(f)
			if err != nil {
				return fmt.Errorf("read %s:%w", inFile, err)
			}
			proxies = append(proxies, read...)
		}
		return Run(cmd.Context(), logger, proxies)
	},
}

var (
	target  string
	jobs    int
	timeout int
	inFile  string
	outFile string
)

func init() {
	ProxyCheckCmd.Flags().StringVar(
		&target, "target", proxy.DefaultCheckTarget, "set the page fetched through each proxy")
	ProxyCheckCmd.Flags().IntVar(
		&jobs, "jobs", 10, "set how many proxies are checked at once")
	ProxyCheckCmd.Flags().IntVar(
		&timeout, "timeout", 7000, "set the timeout of one check in milliseconds")
	ProxyCheckCmd.Flags().StringVar(
		&inFile, "in", "", "read more proxies from this file, one per line")
	ProxyCheckCmd.Flags().StringVar(
		&outFile, "out", "proxies.json", "set the output file")
}

func Run(ctx context.Context, logger *zap.Logger, proxies []string) error {
	if len(proxies) == 0 {
		return proxy.ErrEmptyProxyList
	}

	alive, err := proxy.Check(ctx, proxies,
		proxy.WithTarget(target),
		proxy.WithJobs(jobs),
		proxy.WithTimeout(time.Duration(timeout)*time.Millisecond),
		proxy.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	logger.Info("proxy check done",
		zap.Int("checked", len(proxies)),
		zap.Int("alive", len(alive)),
		zap.String("out", outFile),
	)
	return proxy.WriteFile(outFile, alive)
}

// ReadList reads one proxy per line, skipping blank lines and # comments.
func ReadList(r io.Reader) ([]string, error) {
	var proxies []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		proxies = append(proxies, line)
	}
	return proxies, scanner.Err()
}
