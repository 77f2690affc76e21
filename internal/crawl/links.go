package crawl

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Link is one outbound anchor discovered on a page.
type Link struct {
	// URL is the absolute target of the anchor.
	URL string

	// AnchorText is the visible text inside the anchor, used alongside
	// the URL for link classification.
	AnchorText string
}

// ParseLinks extracts the anchors from HTML content, resolving each href
// against baseURL.
//
// Design decision: We use golang.org/x/net/html rather than regex because
// it correctly handles the malformed markup small-club websites are full
// of, and it gives us the anchor text in the same pass.
func ParseLinks(content string, baseURL *url.URL) []Link {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil
	}

	var links []Link

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href := getAttr(n, "href"); href != "" {
				if resolved := resolveURL(baseURL, href); resolved != "" {
					links = append(links, Link{
						URL:        resolved,
						AnchorText: strings.TrimSpace(anchorText(n)),
					})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return links
}

// resolveURL turns an href into an absolute URL, dropping non-navigational
// schemes and bare fragments.
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	lower := strings.ToLower(href)
	if strings.HasPrefix(lower, "javascript:") ||
		strings.HasPrefix(lower, "mailto:") ||
		strings.HasPrefix(lower, "tel:") ||
		strings.HasPrefix(lower, "data:") ||
		strings.HasPrefix(href, "#") {
		return ""
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}

	return base.ResolveReference(u).String()
}

// NormalizeURL canonicalizes a URL for visited-set membership: fragment
// removed, scheme and host lowered, empty path treated as "/".
func NormalizeURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return pageURL
	}

	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	// http://example.com and http://example.com/ are the same page.
	if u.Path == "" {
		u.Path = "/"
	}

	return u.String()
}

// sameOrigin reports whether target shares seed's origin. The comparison
// is always against the original seed, not the current page, so a crawl
// that passed through a redirect cannot drift onto a third-party domain.
func sameOrigin(seed *url.URL, target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Scheme, seed.Scheme) && strings.EqualFold(u.Host, seed.Host)
}

// nonHTMLExtensions are path suffixes that cannot contain contacts worth a
// browser navigation.
var nonHTMLExtensions = []string{
	".pdf", ".zip", ".gz", ".tar", ".doc", ".docx", ".xls", ".xlsx",
	".ppt", ".pptx", ".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg",
	".ico", ".css", ".js", ".json", ".xml", ".rss", ".mp3", ".mp4",
	".avi", ".mov", ".wav", ".woff", ".woff2", ".ttf",
}

// skipPathMarkers are path fragments marking machine or admin endpoints.
var skipPathMarkers = []string{
	"/api/", "/admin/", "/wp-admin", "/wp-json", "/cgi-bin/", "/cdn-cgi/",
}

// maxQueryParams is the query-parameter ceiling; more parameters than this
// almost always means faceted search or session links, endless variations
// of the same page.
const maxQueryParams = 3

// fetchable reports whether a URL is worth spending a navigation on. These
// checks run before a fetch so filtered URLs cost nothing.
func fetchable(u *url.URL) bool {
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	path := strings.ToLower(u.Path)
	for _, ext := range nonHTMLExtensions {
		if strings.HasSuffix(path, ext) {
			return false
		}
	}

	for _, marker := range skipPathMarkers {
		if strings.Contains(path, marker) {
			return false
		}
	}

	if len(u.Query()) > maxQueryParams {
		return false
	}

	return true
}

// getAttr returns the value of the named attribute, or "".
func getAttr(n *html.Node, name string) string {
	for _, attr := range n.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}
	return ""
}

// anchorText collects the text content beneath an anchor node.
func anchorText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
