// Package crawl discovers the same-domain pages an extraction should visit
// in --crawl mode. It reads sitemap.xml first and falls back to following
// <a href> values found by the extract package.
package crawl

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/tenqz/tagparser/core"
	"github.com/tenqz/tagparser/core/extract"
)

// DefaultMaxPages bounds a crawl when no limit is configured.
const DefaultMaxPages = 100

// sitemapURL holds a URL from a sitemap.xml.
type sitemapURL struct {
	Loc string `xml:"loc"`
}

// sitemapIndex is the root element of a sitemap.xml.
type sitemapIndex struct {
	URLs []sitemapURL `xml:"url"`
}

// DiscoverAll finds up to maxPages internal URLs starting from baseURL.
// It first tries sitemap.xml, then falls back to link crawling.
// The baseURL itself is always included first.
func DiscoverAll(ctx context.Context, baseURL string, fetcher core.Fetcher, maxPages int) ([]string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("parsing base URL %q: invalid", baseURL)
	}
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	domain := parsed.Host

	sitemapURLStr := fmt.Sprintf("%s://%s/sitemap.xml", parsed.Scheme, domain)
	urls, err := discoverFromSitemap(ctx, sitemapURLStr, baseURL, domain, fetcher, maxPages)
	if err == nil && len(urls) > 0 {
		log.Debug().Str("sitemap", sitemapURLStr).Int("pages", len(urls)).Msg("discovered from sitemap")
		return urls, nil
	}
	if err != nil {
		log.Debug().Err(err).Msg("sitemap unavailable; crawling links")
	}

	return discoverFromLinks(ctx, baseURL, domain, fetcher, maxPages)
}

// discoverFromSitemap fetches and parses sitemap.xml for internal URLs.
func discoverFromSitemap(ctx context.Context, sitemapURL, baseURL, domain string, fetcher core.Fetcher, maxPages int) ([]string, error) {
	result, err := fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	var sitemap sitemapIndex
	if err := xml.Unmarshal([]byte(result.HTML), &sitemap); err != nil {
		return nil, fmt.Errorf("parsing sitemap: %w", err)
	}
	if len(sitemap.URLs) == 0 {
		return nil, nil
	}

	queue := NewQueue()
	queue.Add(NormalizeURL(baseURL))
	for _, u := range sitemap.URLs {
		if queue.Visited() >= maxPages {
			break
		}
		loc := strings.TrimSpace(u.Loc)
		if IsSameDomain(loc, domain) && !IsStaticAsset(loc) {
			queue.Add(NormalizeURL(loc))
		}
	}
	return queue.All(), nil
}

// discoverFromLinks performs BFS crawling to find internal links.
func discoverFromLinks(ctx context.Context, startURL, domain string, fetcher core.Fetcher, maxPages int) ([]string, error) {
	queue := NewQueue()
	queue.Add(NormalizeURL(startURL))

	for queue.HasNext() {
		if err := ctx.Err(); err != nil {
			return queue.All(), err
		}
		currentURL := queue.Next()

		result, err := fetcher.Fetch(ctx, currentURL)
		if err != nil {
			log.Debug().Err(err).Str("url", currentURL).Msg("skipping page")
			continue
		}

		for _, link := range ExtractLinks(result.HTML, currentURL) {
			if queue.Visited() >= maxPages {
				return queue.All(), nil
			}
			if IsSameDomain(link, domain) && !IsStaticAsset(link) {
				queue.Add(NormalizeURL(link))
			}
		}
	}

	return queue.All(), nil
}

// ExtractLinks returns the href values of <a> tags in html, resolved
// against baseURL. Non-navigational links are dropped.
func ExtractLinks(html string, baseURL string) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}
	var links []string
	for _, href := range extract.AttributeValues(html, "a", "href") {
		if resolved := resolveURL(href, base); resolved != "" {
			links = append(links, resolved)
		}
	}
	return links
}

// resolveURL resolves a potentially relative URL against a base.
func resolveURL(href string, base *url.URL) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "tel:") || strings.HasPrefix(href, "#") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(parsed)
	resolved.Fragment = ""
	return resolved.String()
}
