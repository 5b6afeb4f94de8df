package cmd

import (
	"os"

	"github.com/dszqbsm/dikicrawler/cmd/crawl"
	"github.com/dszqbsm/dikicrawler/cmd/parse"
	"github.com/dszqbsm/dikicrawler/cmd/proxycheck"
	"github.com/dszqbsm/dikicrawler/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print version.",
	Long:  "print version.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		version.Printer()
	},
}

func Execute() {
	var rootCmd = &cobra.Command{
		Use:          "dikicrawler",
		Short:        "scrape English-Polish entries from diki.pl.",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(crawl.CrawlCmd, parse.ParseCmd, proxycheck.ProxyCheckCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
