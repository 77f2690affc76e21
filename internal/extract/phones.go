package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// phonePatterns match phone-shaped digit runs in page text.
var phonePatterns = []*regexp.Regexp{
	// North American formats: (234) 567-8900, 234-567-8900, +1 234 567 8900
	regexp.MustCompile(`\+?1?[\s.-]?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`),
	// International with country code: +XX XXXXXXXXXX
	regexp.MustCompile(`\+\d{1,3}[\s.-]?\d{4,14}`),
}

// strictPhonePattern is the well-formatted regional shape required before a
// phone number may stand in for a contact on an email-less page. Loose
// digit runs qualify for enrichment of an email contact but not for a
// record of their own.
var strictPhonePattern = regexp.MustCompile(`^\+?1?[\s.-]?\(?\d{3}\)[\s.-]?\d{3}[\s.-]\d{4}$|^\+?1?[\s.-]?\d{3}[\s.-]\d{3}[\s.-]\d{4}$`)

// datePattern matches date-shaped strings that phone regexes also bite on,
// such as 2023-01-15 and 01/15/2023.
var datePattern = regexp.MustCompile(`^\d{4}[-/.]\d{1,2}[-/.]\d{1,2}$|^\d{1,2}[-/.]\d{1,2}[-/.]\d{4}$`)

// ExtractPhones returns phone numbers found in html via tel: links and
// text patterns, de-duplicated on their digit content in first-seen order.
// Date-shaped, version-shaped, and filler digit runs are rejected.
func ExtractPhones(htmlContent string) []string {
	seen := make(map[string]bool)
	var phones []string

	add := func(phone string) {
		phone = strings.TrimSpace(phone)
		normalized := NormalizePhone(phone)
		if len(normalized) < 7 || seen[normalized] {
			return
		}
		if !acceptPhone(phone) {
			return
		}
		seen[normalized] = true
		phones = append(phones, phone)
	}

	// tel: links carry the cleanest numbers; scan them first so the kept
	// formatting comes from a link rather than surrounding prose.
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err == nil {
		doc.Find(`a[href^="tel:"]`).Each(func(_ int, s *goquery.Selection) {
			href, _ := s.Attr("href")
			add(strings.TrimPrefix(href, "tel:"))
		})
	}

	text := stripTags(htmlContent)
	for _, pattern := range phonePatterns {
		for _, loc := range pattern.FindAllStringIndex(text, -1) {
			match := text[loc[0]:loc[1]]
			// A version marker immediately before the digits means we
			// matched "v1.2.3456789" style strings, not a number.
			if loc[0] > 0 {
				prev := text[loc[0]-1]
				if prev == 'v' || prev == 'V' {
					continue
				}
			}
			add(match)
		}
	}

	return phones
}

// IsStrictPhone reports whether phone is well-formatted enough to stand
// alone as a contact record when a page yields no email at all.
func IsStrictPhone(phone string) bool {
	return strictPhonePattern.MatchString(strings.TrimSpace(phone))
}

// acceptPhone rejects digit runs that match phone shapes but are not
// phone numbers.
func acceptPhone(phone string) bool {
	trimmed := strings.TrimSpace(phone)

	if datePattern.MatchString(trimmed) {
		return false
	}

	digits := NormalizePhone(trimmed)
	digits = strings.TrimPrefix(digits, "+")

	// Version strings like 1.2.3 produce short digit runs; the length
	// floor in the caller handles those, but dotted triples of plausible
	// length still sneak through.
	if strings.Count(trimmed, ".") >= 2 && !strings.ContainsAny(trimmed, "-() ") {
		return false
	}

	return !isFillerDigits(digits)
}

// isFillerDigits reports whether digits is a repeated or sequential run,
// the kind of number used as layout filler (555-555-5555, 1234567890).
func isFillerDigits(digits string) bool {
	if strings.Contains(digits, "1234567") || strings.Contains(digits, "7654321") {
		return true
	}

	run := 1
	for i := 1; i < len(digits); i++ {
		if digits[i] == digits[i-1] {
			run++
			if run >= 7 {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}

// NormalizePhone strips everything but digits and a leading plus sign,
// giving the canonical form used to de-duplicate numbers.
func NormalizePhone(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stripTags removes markup, replacing each closed tag with a space so words
// separated only by tags do not run together.
func stripTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteRune(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}
