package scrape

import (
	"testing"
	"time"
)

// TestNewBrowserFetcher tests option application. Fetch itself needs a
// Chrome binary, so it is exercised through the fake fetchers in the
// importer tests instead.
func TestNewBrowserFetcher(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		f := NewBrowserFetcher()
		if f.timeout != DefaultFetchTimeout {
			t.Errorf("timeout: got %v, want %v", f.timeout, DefaultFetchTimeout)
		}
		if f.userAgent != DefaultUserAgent {
			t.Errorf("userAgent: got %q", f.userAgent)
		}
		if !f.headless {
			t.Error("headless should default to true")
		}
	})

	t.Run("options override defaults", func(t *testing.T) {
		t.Parallel()

		f := NewBrowserFetcher(
			WithFetchTimeout(5*time.Second),
			WithUserAgent("test-agent"),
			WithHeadless(false),
		)
		if f.timeout != 5*time.Second {
			t.Errorf("timeout: got %v", f.timeout)
		}
		if f.userAgent != "test-agent" {
			t.Errorf("userAgent: got %q", f.userAgent)
		}
		if f.headless {
			t.Error("headless should be false")
		}
	})

	t.Run("headless flag controls launch options", func(t *testing.T) {
		t.Parallel()

		headful := NewBrowserFetcher(WithHeadless(false))
		headless := NewBrowserFetcher()

		if len(headful.launchOpts()) >= len(headless.launchOpts()) {
			t.Error("headless mode should add a launch option")
		}
	})
}
