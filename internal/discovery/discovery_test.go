package discovery

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/anfieldrd/kopwatch/internal/config"
)

func newTestDiscoverer() *LinkDiscoverer {
	cfg := config.NewDefaultMonitorConfig()
	cfg.HTTPTimeoutSeconds = 5
	return NewLinkDiscoverer(zerolog.Nop(), cfg)
}

func TestDiscoverLinks_PatternFilterAndOrder(t *testing.T) {
	const page = `<html><body>
		<a href="/tickets/tickets-availability/foo-1">Foo</a>
		<a href="https://other.com/x">Other</a>
		<a href="/tickets/tickets-availability/bar-2">Bar</a>
		<a href="/tickets/tickets-availability/foo-1">Foo again</a>
	</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	discoverer := newTestDiscoverer()
	links := discoverer.DiscoverLinks(server.URL, "/tickets/tickets-availability/")

	assert.Equal(t, []string{
		server.URL + "/tickets/tickets-availability/foo-1",
		server.URL + "/tickets/tickets-availability/bar-2",
	}, links)
}

func TestDiscoverLinks_AbsoluteHrefMatchingPattern(t *testing.T) {
	const page = `<html><body>
		<a href="https://www.liverpoolfc.com/tickets/tickets-availability/cup-semi-3">Cup</a>
		<a href="/news/latest">News</a>
	</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	discoverer := newTestDiscoverer()
	links := discoverer.DiscoverLinks(server.URL, "/tickets/tickets-availability/")

	assert.Equal(t, []string{"https://www.liverpoolfc.com/tickets/tickets-availability/cup-semi-3"}, links)
}

func TestDiscoverLinks_EmptyPatternKeepsEverything(t *testing.T) {
	const page = `<html><body>
		<a href="/first">First</a>
		<a href="relative/second">Second</a>
	</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	discoverer := newTestDiscoverer()
	links := discoverer.DiscoverLinks(server.URL, "")

	assert.Equal(t, []string{server.URL + "/first", "relative/second"}, links)
}

func TestDiscoverLinks_NoMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><a href="/news">News</a></body></html>`))
	}))
	defer server.Close()

	discoverer := newTestDiscoverer()
	links := discoverer.DiscoverLinks(server.URL, "/tickets/tickets-availability/")

	assert.Empty(t, links)
}

func TestDiscoverLinks_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	discoverer := newTestDiscoverer()
	links := discoverer.DiscoverLinks(server.URL, "/tickets/")

	assert.Empty(t, links)
}

func TestDiscoverLinks_UnreachableServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	discoverer := newTestDiscoverer()
	links := discoverer.DiscoverLinks(server.URL, "/tickets/")

	assert.Empty(t, links)
}

func TestDiscoverLinks_InvalidURL(t *testing.T) {
	discoverer := newTestDiscoverer()
	links := discoverer.DiscoverLinks("://not-a-url", "/tickets/")

	assert.Empty(t, links)
}
