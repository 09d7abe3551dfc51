package discovery

import (
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/rs/zerolog"

	"github.com/anfieldrd/kopwatch/internal/config"
	"github.com/anfieldrd/kopwatch/internal/urlhandler"
)

// LinkDiscoverer expands a discovery-enabled site into the list of page
// URLs its anchors point at.
type LinkDiscoverer struct {
	cfg    config.MonitorConfig
	logger zerolog.Logger
}

// NewLinkDiscoverer creates a new LinkDiscoverer instance.
func NewLinkDiscoverer(logger zerolog.Logger, cfg config.MonitorConfig) *LinkDiscoverer {
	return &LinkDiscoverer{
		cfg:    cfg,
		logger: logger.With().Str("component", "LinkDiscoverer").Logger(),
	}
}

// DiscoverLinks fetches pageURL and collects anchor hrefs containing
// pattern as a substring, deduplicated in document order. Hrefs beginning
// with "/" are resolved against the page URL before matching; other
// relative forms are kept as found. Any fetch or parse failure yields an
// empty list so a broken discovery page never aborts the run.
func (ld *LinkDiscoverer) DiscoverLinks(pageURL string, pattern string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		ld.logger.Error().Err(err).Str("url", pageURL).Msg("Failed to parse discovery page URL")
		return nil
	}

	collector := colly.NewCollector(
		colly.UserAgent(ld.cfg.UserAgent),
		colly.IgnoreRobotsTxt(),
	)
	collector.SetRequestTimeout(time.Duration(ld.cfg.HTTPTimeoutSeconds) * time.Second)

	seen := make(map[string]bool)
	var links []string

	collector.OnHTML("a[href]", func(e *colly.HTMLElement) {
		href := e.Attr("href")
		if href == "" {
			return
		}

		resolved := urlhandler.ResolveHref(href, base)
		if strings.Contains(resolved, pattern) && !seen[resolved] {
			seen[resolved] = true
			links = append(links, resolved)
		}
	})

	collector.OnError(func(r *colly.Response, err error) {
		ld.logger.Debug().
			Err(err).
			Str("url", r.Request.URL.String()).
			Int("status_code", r.StatusCode).
			Msg("Discovery request failed")
	})

	if err := collector.Visit(pageURL); err != nil {
		ld.logger.Error().Err(err).Str("url", pageURL).Msg("Link discovery failed")
		return nil
	}

	ld.logger.Info().
		Str("url", pageURL).
		Str("pattern", pattern).
		Int("count", len(links)).
		Msg("Link discovery completed")
	return links
}
