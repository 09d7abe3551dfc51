package monitor

import (
	"github.com/rs/zerolog"

	"github.com/anfieldrd/kopwatch/internal/config"
	"github.com/anfieldrd/kopwatch/internal/discovery"
	"github.com/anfieldrd/kopwatch/internal/models"
	"github.com/anfieldrd/kopwatch/internal/urlhandler"
)

// maxDiscoveredNameChars bounds the slug portion of a discovered target name.
const maxDiscoveredNameChars = 50

// TargetManager expands configured sites into the concrete list of pages
// to check, running link discovery where enabled.
type TargetManager struct {
	discoverer *discovery.LinkDiscoverer
	logger     zerolog.Logger
}

// NewTargetManager creates a new TargetManager.
func NewTargetManager(logger zerolog.Logger, discoverer *discovery.LinkDiscoverer) *TargetManager {
	return &TargetManager{
		discoverer: discoverer,
		logger:     logger.With().Str("component", "TargetManager").Logger(),
	}
}

// BuildTargets produces one PageTarget per static site and one per
// discovered link for discovery-enabled sites. The hub page of a discovery
// site is not itself monitored. Sites whose URL fails normalization are
// skipped with a warning.
func (tm *TargetManager) BuildTargets(sites []config.SiteConfig) []models.PageTarget {
	var targets []models.PageTarget

	for _, site := range sites {
		normalizedURL, err := urlhandler.NormalizeURL(site.URL)
		if err != nil {
			tm.logger.Warn().Err(err).Str("url", site.URL).Str("site", site.Name).Msg("Skipping site, URL normalization failed")
			continue
		}

		if site.DiscoverLinks {
			discovered := tm.discoverer.DiscoverLinks(normalizedURL, site.LinkPattern)
			for _, link := range discovered {
				targets = append(targets, models.PageTarget{
					URL:         link,
					Name:        discoveredTargetName(site.Name, link),
					Selector:    site.Selector,
					LinkPattern: site.LinkPattern,
				})
			}
			continue
		}

		targets = append(targets, models.PageTarget{
			URL:         normalizedURL,
			Name:        site.Name,
			Selector:    site.Selector,
			LinkPattern: site.LinkPattern,
		})
	}

	tm.logger.Info().Int("sites", len(sites)).Int("targets", len(targets)).Msg("Expanded sites into page targets")
	return targets
}

// discoveredTargetName derives a display name for a discovered page from
// its parent site name and the final URL path segment.
func discoveredTargetName(siteName string, link string) string {
	segment := urlhandler.LastPathSegment(link)
	runes := []rune(segment)
	if len(runes) > maxDiscoveredNameChars {
		segment = string(runes[:maxDiscoveredNameChars])
	}
	return siteName + " - " + segment
}
