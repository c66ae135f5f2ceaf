// Package cmd implements the tagparser command line using Cobra.
package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tenqz/tagparser/core/fetch"
	"github.com/tenqz/tagparser/core/render"
	"github.com/tenqz/tagparser/crawl"
)

const usage = `Usage: tagparser <html> <tag> [attr_name] [attr_value]
       tagparser <html> <tag> --content
       tagparser <html> <tag> <attr_name> --attr-values
       tagparser --file <path> <tag> [attr_name] [attr_value]
       tagparser --url <url> [--crawl] <tag> [attr_name] [attr_value]
`

// options holds the raw flag values of one invocation.
type options struct {
	file       string
	url        string
	crawl      bool
	content    bool
	attrValues bool
	configPath string
	cfg        Config
}

func newRootCmd() *cobra.Command {
	opts := &options{cfg: DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "tagparser <html> <tag> [attr_name] [attr_value]",
		Short: "Extract tags, inner text and attribute values from HTML with regular expressions",
		Long: `tagparser finds the occurrences of a tag in an HTML fragment, a file or a
web page and prints them, optionally filtered by an attribute, reduced to
their inner text or to the values of one attribute.

Examples:
  tagparser "<a href='https://example.com'>Link</a>" a
  tagparser "<a class='button'>B</a><a class='link'>L</a>" a class button
  tagparser "<a href='#'>Home</a>" a --content
  tagparser --url https://example.com a href --attr-values
  tagparser --url https://example.com --crawl h1 --format json --output_dir ./out`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(opts.cfg, opts.configPath, cmd.Flags())
			if err != nil {
				return err
			}
			opts.cfg = cfg
			setupLogging(cmd.ErrOrStderr(), cfg.Verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.file, "file", "", "Read markup from a file instead of the first argument")
	f.StringVar(&opts.url, "url", "", "Fetch markup from a URL instead of the first argument")
	f.BoolVar(&opts.crawl, "crawl", false, "With --url, extract from every same-domain page discovered")
	f.BoolVar(&opts.content, "content", false, "Print the inner text of paired tags")
	f.BoolVar(&opts.attrValues, "attr-values", false, "Print the values of the given attribute")
	f.StringVar(&opts.cfg.Format, "format", render.DefaultFormat, "Output format: debug, json, lines, text, markdown or pdf")
	f.StringVar(&opts.cfg.OutputDir, "output_dir", "", "Write results to files in this directory instead of stdout")
	f.IntVar(&opts.cfg.MaxPages, "max_pages", crawl.DefaultMaxPages, "Upper bound on pages visited with --crawl")
	f.DurationVar(&opts.cfg.Timeout, "timeout", fetch.DefaultTimeout, "HTTP request timeout")
	f.StringVar(&opts.cfg.UserAgent, "user_agent", fetch.DefaultUserAgent, "User-Agent header for HTTP requests")
	f.StringVar(&opts.configPath, "config", "", "Path to a YAML or JSON config file")
	f.BoolVarP(&opts.cfg.Verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

// setupLogging points the global logger at w.
func setupLogging(w io.Writer, verbose bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	setupLogging(os.Stderr, false)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("tagparser failed")
		stop()
		os.Exit(1)
	}
}
