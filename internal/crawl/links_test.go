package crawl

import (
	"net/url"
	"testing"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("failed to parse %q: %v", raw, err)
	}
	return u
}

// TestParseLinks tests anchor extraction and href resolution.
func TestParseLinks(t *testing.T) {
	t.Parallel()

	base := mustParse(t, "https://rink.example.com/about")

	t.Run("resolves relative and absolute hrefs", func(t *testing.T) {
		t.Parallel()

		content := `<html><body>
			<a href="/staff">Our Staff</a>
			<a href="contact.html">Contact</a>
			<a href="https://other.example.org/page">Elsewhere</a>
		</body></html>`

		links := ParseLinks(content, base)
		if len(links) != 3 {
			t.Fatalf("links = %d, want 3", len(links))
		}
		if links[0].URL != "https://rink.example.com/staff" {
			t.Errorf("first link = %q", links[0].URL)
		}
		if links[0].AnchorText != "Our Staff" {
			t.Errorf("first anchor text = %q", links[0].AnchorText)
		}
		if links[1].URL != "https://rink.example.com/contact.html" {
			t.Errorf("second link = %q", links[1].URL)
		}
		if links[2].URL != "https://other.example.org/page" {
			t.Errorf("third link = %q", links[2].URL)
		}
	})

	t.Run("skips non-navigational schemes", func(t *testing.T) {
		t.Parallel()

		content := `<html><body>
			<a href="mailto:info@rink.example.com">Email</a>
			<a href="tel:+14165550149">Call</a>
			<a href="javascript:void(0)">Menu</a>
			<a href="#top">Top</a>
			<a href="/programs">Programs</a>
		</body></html>`

		links := ParseLinks(content, base)
		if len(links) != 1 {
			t.Fatalf("links = %d, want 1", len(links))
		}
		if links[0].URL != "https://rink.example.com/programs" {
			t.Errorf("link = %q", links[0].URL)
		}
	})

	t.Run("collects nested anchor text", func(t *testing.T) {
		t.Parallel()

		content := `<a href="/staff"><span>Meet</span> the <b>Coaches</b></a>`

		links := ParseLinks(content, base)
		if len(links) != 1 {
			t.Fatalf("links = %d, want 1", len(links))
		}
		if links[0].AnchorText != "Meet the Coaches" {
			t.Errorf("anchor text = %q", links[0].AnchorText)
		}
	})

	t.Run("survives malformed markup", func(t *testing.T) {
		t.Parallel()

		content := `<a href="/one">One<a href="/two">Two</p></div>`

		links := ParseLinks(content, base)
		if len(links) != 2 {
			t.Fatalf("links = %d, want 2", len(links))
		}
	})
}

// TestNormalizeURL tests visited-set canonicalization.
func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "fragment removed",
			in:   "https://rink.example.com/staff#team",
			want: "https://rink.example.com/staff",
		},
		{
			name: "scheme and host lowered",
			in:   "HTTPS://Rink.Example.COM/Staff",
			want: "https://rink.example.com/Staff",
		},
		{
			name: "empty path becomes slash",
			in:   "https://rink.example.com",
			want: "https://rink.example.com/",
		},
		{
			name: "query preserved",
			in:   "https://rink.example.com/page?id=2",
			want: "https://rink.example.com/page?id=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeURL(tt.in); got != tt.want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestSameOrigin tests origin containment against the seed.
func TestSameOrigin(t *testing.T) {
	t.Parallel()

	seed := mustParse(t, "https://rink.example.com/")

	tests := []struct {
		name   string
		target string
		want   bool
	}{
		{name: "same origin", target: "https://rink.example.com/staff", want: true},
		{name: "host case ignored", target: "https://RINK.example.com/staff", want: true},
		{name: "different host", target: "https://other.example.org/", want: false},
		{name: "subdomain is a different origin", target: "https://www.rink.example.com/", want: false},
		{name: "scheme downgrade rejected", target: "http://rink.example.com/", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := sameOrigin(seed, tt.target); got != tt.want {
				t.Errorf("sameOrigin(seed, %q) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}

// TestFetchable tests the pre-fetch URL filter.
func TestFetchable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{name: "plain page", url: "https://rink.example.com/staff", want: true},
		{name: "pdf skipped", url: "https://rink.example.com/schedule.pdf", want: false},
		{name: "image skipped", url: "https://rink.example.com/team.jpg", want: false},
		{name: "api path skipped", url: "https://rink.example.com/api/v1/users", want: false},
		{name: "wp-admin skipped", url: "https://rink.example.com/wp-admin/edit.php", want: false},
		{name: "few query params allowed", url: "https://rink.example.com/page?a=1&b=2", want: true},
		{name: "many query params skipped", url: "https://rink.example.com/page?a=1&b=2&c=3&d=4", want: false},
		{name: "ftp skipped", url: "ftp://rink.example.com/file", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := fetchable(mustParse(t, tt.url)); got != tt.want {
				t.Errorf("fetchable(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}
