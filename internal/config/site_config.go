package config

// SiteConfig defines a single monitored site entry
type SiteConfig struct {
	URL           string `json:"url" yaml:"url" validate:"required,url"`
	Name          string `json:"name" yaml:"name" validate:"required"`
	DiscoverLinks bool   `json:"discover_links" yaml:"discover_links"`
	LinkPattern   string `json:"link_pattern,omitempty" yaml:"link_pattern,omitempty"`
	Selector      string `json:"selector,omitempty" yaml:"selector,omitempty"`
}

// NewDefaultSites returns the built-in site list used when no config file
// provides one.
func NewDefaultSites() []SiteConfig {
	return []SiteConfig{
		{
			URL:           "https://www.liverpoolfc.com/tickets/tickets-availability",
			Name:          "Liverpool FC Tickets",
			DiscoverLinks: true,
			LinkPattern:   "/tickets/tickets-availability/",
		},
		{
			URL:  "https://www.liverpoolfc.com/tickets/ticket-forwarding",
			Name: "Ticket Forwarding",
		},
		{
			URL:  "https://legacy.liverpoolfc.com/tickets/premier-league-sale-dates",
			Name: "PL Sale Dates (Legacy)",
		},
		{
			URL:  "https://legacy.liverpoolfc.com/tickets/ballots",
			Name: "Ballots (Legacy)",
		},
	}
}
