package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/fieldworkhq/leadspider/internal/model"
)

// coordinatePattern matches GPS-coordinate fragments such as "/@33.97",
// which show up when a map-link path gets sliced into an email-shaped
// string.
var coordinatePattern = regexp.MustCompile(`/@-?\d{1,3}\.\d+`)

// Set accumulates contacts across a crawl, keyed by normalized email.
// It is owned by a single crawl job and is not safe for concurrent use.
type Set struct {
	records map[string]model.Contact
	order   []string
}

// NewSet creates an empty contact set.
func NewSet() *Set {
	return &Set{records: make(map[string]model.Contact)}
}

// Merge folds one raw contact into the set. The email is normalized and
// checked against the merge-time denylist; a denied contact is dropped
// silently, not reported as an error. A new email inserts the record
// whole. A known email keeps the first-seen email, source, and confidence
// but backfills the name the first time an incoming record supplies one
// the existing record lacks. First-non-empty-name-wins, not
// first-record-wins.
func (s *Set) Merge(incoming model.Contact) {
	email := NormalizeEmail(incoming.Email)
	if email == "" || deniedEmail(email) {
		return
	}

	if existing, ok := s.records[email]; ok {
		if existing.Name == "" && incoming.Name != "" {
			existing.Name = incoming.Name
			s.records[email] = existing
		}
		return
	}

	incoming.Email = email
	s.records[email] = incoming
	s.order = append(s.order, email)
}

// Len returns the number of distinct contacts in the set.
func (s *Set) Len() int {
	return len(s.records)
}

// Contacts returns the merged records in first-insertion order.
func (s *Set) Contacts() []model.Contact {
	contacts := make([]model.Contact, 0, len(s.order))
	for _, email := range s.order {
		contacts = append(contacts, s.records[email])
	}
	return contacts
}

// NormalizeEmail canonicalizes a candidate email string: lower-case,
// percent-decode to a fixed point if the string carries encoded bytes,
// strip stray space artifacts, trim. The function is idempotent;
// normalizing an already normalized value returns it unchanged.
func NormalizeEmail(email string) string {
	e := strings.TrimSpace(strings.ToLower(email))

	// PathUnescape rather than QueryUnescape so a literal + in the local
	// part survives.
	for strings.Contains(e, "%") {
		decoded, err := url.PathUnescape(e)
		if err != nil || decoded == e {
			break
		}
		e = decoded
	}

	e = strings.ReplaceAll(e, " ", "")

	// An escape can decode to an upper-case byte (%41 is "A"), so the
	// string must be lower-cased again after decoding or a second
	// normalization pass would produce a different value.
	return strings.ToLower(strings.TrimSpace(e))
}

// deniedEmail reports whether a normalized email matches a merge-time
// denylist pattern: coordinate fragments, path-bearing strings, bundled
// library authors, and the placeholder/tracking domains.
func deniedEmail(email string) bool {
	if strings.Contains(email, "/") || coordinatePattern.MatchString(email) {
		return true
	}

	if libraryAuthors[email] {
		return true
	}

	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return true
	}
	domain := email[at+1:]

	// Phone-only sentinel records use a reserved domain that must pass.
	if domain == "placeholder.invalid" {
		return false
	}

	for _, blocked := range blockedDomains {
		if domain == blocked || strings.HasSuffix(domain, "."+blocked) {
			return true
		}
	}
	return false
}
