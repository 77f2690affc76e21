package extract

import (
	"regexp"
	"strings"

	"github.com/mcnijman/go-emailaddress"
)

// emailPattern matches email-shaped strings in page content.
// The pattern is deliberately loose; the filters below carry the burden of
// rejecting the asset filenames and tracking identifiers it also matches.
var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// assetExtensions are file extensions that mark an email-shaped match as an
// asset filename rather than an address (e.g. hero@2x.png, icons@large.svg).
var assetExtensions = []string{
	".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg", ".ico",
	".css", ".js", ".woff", ".woff2", ".ttf", ".eot", ".mp4", ".pdf",
}

// blockedPrefixes are local-part prefixes that indicate automated or
// non-deliverable mailboxes.
var blockedPrefixes = []string{
	"noreply@",
	"no-reply@",
	"no_reply@",
	"donotreply@",
	"mailer-daemon@",
}

// blockedDomains are domains (matched as the domain itself or any
// subdomain) that never carry real contact addresses: error-tracking
// ingestion hosts, test/placeholder domains, and site-builder templates.
var blockedDomains = []string{
	"example.com",
	"test.com",
	"localhost",
	"sentry.io",
	"wixpress.com",
	"mysite.com",
	"domain.com",
	"yourdomain.com",
	"yourcompany.com",
	"email.com",
	"address.com",
}

// libraryAuthors are addresses of popular open-source library authors that
// ship inside bundled script comments and banner blocks. Finding one on a
// page says nothing about the site itself.
var libraryAuthors = map[string]bool{
	"zloirock@zloirock.ru":        true, // core-js
	"john.david.dalton@gmail.com": true, // lodash
	"feross@feross.org":           true, // buffer and friends
	"jrburke@gmail.com":           true, // requirejs
}

// hexLocalPattern matches long-hex local parts, the shape of tracking and
// ingestion identifiers rather than mailboxes.
var hexLocalPattern = regexp.MustCompile(`^[0-9a-f]{16,}$`)

// versionLocalPattern matches version-number-shaped local parts such as
// "1.2.3" or "v2.0", which appear when a regex bites into
// "package@1.2.3.min.js" style strings.
var versionLocalPattern = regexp.MustCompile(`^v?\d+(\.\d+)+$`)

// ExtractEmails returns the plain-text email addresses found in html,
// lower-cased and de-duplicated in first-seen order. Case of the local part
// is intentionally discarded; mixed-case locals that differ only by case
// are treated as the same address.
func ExtractEmails(html string) []string {
	matches := emailPattern.FindAllString(html, -1)

	seen := make(map[string]bool, len(matches))
	var emails []string

	for _, m := range matches {
		email := strings.ToLower(strings.Trim(m, "."))

		if !acceptEmail(email) {
			continue
		}
		if seen[email] {
			continue
		}

		seen[email] = true
		emails = append(emails, email)
	}

	return emails
}

// acceptEmail reports whether a lower-cased email-shaped match is a
// plausible contact address. Each rejection rule corresponds to a class of
// false positives observed in rendered pages.
func acceptEmail(email string) bool {
	// Asset filenames: retina-suffix images and anything ending in a
	// known static-asset extension.
	if strings.Contains(email, "@2x") || strings.Contains(email, "@3x") {
		return false
	}
	for _, ext := range assetExtensions {
		if strings.HasSuffix(email, ext) {
			return false
		}
	}

	for _, prefix := range blockedPrefixes {
		if strings.HasPrefix(email, prefix) {
			return false
		}
	}

	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	local, domain := email[:at], email[at+1:]

	for _, blocked := range blockedDomains {
		if domain == blocked || strings.HasSuffix(domain, "."+blocked) {
			return false
		}
	}

	// Tracking identifiers and version strings masquerading as locals.
	if hexLocalPattern.MatchString(local) || versionLocalPattern.MatchString(local) {
		return false
	}

	if libraryAuthors[email] {
		return false
	}

	// Form placeholder values that survive the domain denylist.
	if local == "user" && strings.HasPrefix(domain, "example.") {
		return false
	}

	if _, err := emailaddress.Parse(email); err != nil {
		return false
	}

	return true
}
