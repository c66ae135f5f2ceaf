package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tenqz/tagparser/core"
	"github.com/tenqz/tagparser/core/extract"
	"github.com/tenqz/tagparser/core/fetch"
	"github.com/tenqz/tagparser/core/output"
	"github.com/tenqz/tagparser/core/render"
	"github.com/tenqz/tagparser/crawl"
)

// request is one extraction as described by the positional arguments.
type request struct {
	op    core.Operation
	tag   string
	attr  string
	value *string
}

func runExtract(cmd *cobra.Command, opts *options, args []string) error {
	if err := validateFlags(opts); err != nil {
		return err
	}

	// The --file or --url value stands in for the markup argument.
	positional := args
	if opts.file == "" && opts.url == "" {
		if len(args) < 2 {
			fmt.Fprint(cmd.OutOrStdout(), usage)
			return nil
		}
		positional = args[1:]
	} else if len(args) < 1 {
		fmt.Fprint(cmd.OutOrStdout(), usage)
		return nil
	}

	req, err := parseRequest(opts, positional)
	if err != nil {
		return err
	}
	warnInvalidNames(req)

	renderer, err := render.New(opts.cfg.Format)
	if err != nil {
		return err
	}
	writer, err := output.New(opts.cfg.OutputDir, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var source string
	var matches []string
	switch {
	case opts.crawl:
		source = opts.url
		matches, err = crawlAndExtract(ctx, opts, req)
	case opts.url != "":
		source = opts.url
		matches, err = loadAndExtract(ctx, newHTTPFetcher(opts.cfg), opts.url, req)
	case opts.file != "":
		source = opts.file
		matches, err = loadAndExtract(ctx, fetch.NewFileLoader(), opts.file, req)
	default:
		matches = apply(args[0], req)
	}
	if err != nil {
		return err
	}

	res := core.Result{
		Source:      source,
		Operation:   req.op,
		Tag:         req.tag,
		Attribute:   req.attr,
		Value:       req.value,
		Matches:     matches,
		ExtractedAt: time.Now().UTC().Format(time.RFC3339),
	}
	data, err := renderer.Render(res)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	path, err := writer.Write(source, req.tag, data, renderer.Extension(), render.IsBinary(renderer))
	if err != nil {
		return err
	}
	log.Debug().Str("source", source).Str("tag", req.tag).Int("matches", len(matches)).Msg("extraction done")
	if path != "" {
		log.Info().Str("path", path).Msg("written")
	}
	return nil
}

// validateFlags rejects contradictory flag combinations.
func validateFlags(opts *options) error {
	if opts.content && opts.attrValues {
		return errors.New("--content and --attr-values are mutually exclusive")
	}
	if opts.file != "" && opts.url != "" {
		return errors.New("--file and --url are mutually exclusive")
	}
	if opts.crawl && opts.url == "" {
		return errors.New("--crawl requires --url")
	}
	if opts.url != "" {
		parsed, err := url.Parse(opts.url)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("invalid URL: %s (must include scheme, e.g. https://example.com)", opts.url)
		}
	}
	return nil
}

// parseRequest maps <tag> [attr_name] [attr_value] and the mode flags to an
// extraction.
func parseRequest(opts *options, positional []string) (request, error) {
	if len(positional) > 3 {
		return request{}, fmt.Errorf("too many arguments: %q", positional[3:])
	}
	req := request{op: core.OpTags, tag: positional[0]}
	if len(positional) > 1 {
		req.attr = positional[1]
	}

	switch {
	case opts.content:
		req.op = core.OpContent
		req.attr = ""
	case opts.attrValues:
		if req.attr == "" {
			return request{}, errors.New("--attr-values requires an attribute name")
		}
		req.op = core.OpAttributeValues
	case req.attr != "":
		req.op = core.OpTagsWithAttribute
		if len(positional) > 2 {
			v := positional[2]
			req.value = &v
		}
	}
	return req, nil
}

// warnInvalidNames logs names the engine will refuse to match.
func warnInvalidNames(req request) {
	if err := extract.ValidateName(req.tag); err != nil {
		log.Warn().Err(err).Str("tag", req.tag).Msg("tag name can never match")
	}
	if req.attr != "" {
		if err := extract.ValidateName(req.attr); err != nil {
			log.Warn().Err(err).Str("attribute", req.attr).Msg("attribute name can never match")
		}
	}
}

// apply runs the extraction selected by req over markup.
func apply(markup string, req request) []string {
	switch req.op {
	case core.OpContent:
		return extract.TagText(markup, req.tag)
	case core.OpAttributeValues:
		return extract.AttributeValues(markup, req.tag, req.attr)
	case core.OpTagsWithAttribute:
		q := extract.Any(req.attr)
		if req.value != nil {
			q = extract.Equals(req.attr, *req.value)
		}
		return extract.TagsWithAttribute(markup, req.tag, q)
	default:
		return extract.Tags(markup, req.tag)
	}
}

func newHTTPFetcher(cfg Config) *fetch.HTTPFetcher {
	return fetch.New(fetch.Options{Timeout: cfg.Timeout, UserAgent: cfg.UserAgent})
}

// loadAndExtract loads one location and extracts from it.
func loadAndExtract(ctx context.Context, fetcher core.Fetcher, location string, req request) ([]string, error) {
	result, err := fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	log.Debug().Str("source", result.Source).Int("status", result.StatusCode).Int("bytes", len(result.HTML)).Msg("loaded")
	return apply(result.HTML, req), nil
}

// crawlAndExtract extracts from every page discovered from opts.url and
// concatenates the matches in discovery order. Pages that fail to load are
// logged and skipped.
func crawlAndExtract(ctx context.Context, opts *options, req request) ([]string, error) {
	fetcher := newHTTPFetcher(opts.cfg)

	log.Info().Str("url", opts.url).Msg("discovering pages")
	urls, err := crawl.DiscoverAll(ctx, opts.url, fetcher, opts.cfg.MaxPages)
	if err != nil {
		return nil, fmt.Errorf("discovering pages: %w", err)
	}
	log.Info().Int("pages", len(urls)).Msg("pages to process")

	matches := []string{}
	var failed int
	for i, pageURL := range urls {
		found, err := loadAndExtract(ctx, fetcher, pageURL, req)
		if err != nil {
			log.Warn().Err(err).Str("url", pageURL).Msg("page skipped")
			failed++
			continue
		}
		log.Debug().Str("url", pageURL).Int("page", i+1).Int("matches", len(found)).Msg("page processed")
		matches = append(matches, found...)
	}
	if failed > 0 {
		log.Warn().Int("failed", failed).Int("pages", len(urls)).Msg("some pages failed")
	}
	return matches, nil
}
