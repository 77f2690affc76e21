package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCaser capitalizes name words split out of email local parts.
// Unicode-aware casing handles accented names like "rené" correctly.
var titleCaser = cases.Title(language.Und)

// proximityWindow is the number of characters inspected on each side of an
// email's first occurrence when looking for a nearby name, title, or phone.
const proximityWindow = 400

// namePattern matches a capitalized two-word personal name with an
// optional middle initial or hyphenated surname.
var namePattern = regexp.MustCompile(`[A-Z][a-z]+(?: [A-Z]\.?)? [A-Z][a-z]+(?:-[A-Z][a-z]+)?`)

// titleWords are job-title keywords recognized near contact listings.
var titleWords = `(?:Head Coach|Assistant Coach|Coach|Director|Manager|President|Vice President|Instructor|Trainer|Coordinator|Administrator|Owner|Founder|Secretary|Treasurer|Chair(?:man|woman|person)?)`

var (
	// "Jane Doe - Head Coach"
	nameDashTitlePattern = regexp.MustCompile(namePattern.String() + `\s*[-\x{2013}\x{2014}]\s*(?:[A-Z][a-z]+ )?` + titleWords)

	// "Head Coach: Jane Doe"
	titleColonNamePattern = regexp.MustCompile(`(?:[A-Z][a-z]+ )?` + titleWords + `\s*:\s*` + namePattern.String())

	// "(Jane Doe)"
	bracketedNamePattern = regexp.MustCompile(`\(\s*` + namePattern.String() + `\s*\)`)

	// "first.last@" local parts that split into a two-word name
	dottedLocalPattern = regexp.MustCompile(`^[a-z]+\.[a-z]+$`)

	titlePattern = regexp.MustCompile(`(?:[A-Z][a-z]+ )?` + titleWords)
)

// nameStopwords are capitalized words that start name-shaped phrases which
// are navigation or boilerplate, not people.
var nameStopwords = map[string]bool{
	"Contact": true, "About": true, "Email": true, "Phone": true,
	"Click": true, "Send": true, "Visit": true, "Home": true,
	"Copyright": true, "All": true, "Privacy": true, "Terms": true,
	"Learn": true, "Read": true, "Get": true, "Our": true,
	"The": true, "Your": true,
}

// NameNear returns the personal name closest to the email's first
// occurrence in the page, or "" if none is found. Surface patterns are
// tried in a fixed order; the first match wins, with the email's own
// "first.last" local part as the final fallback.
func NameNear(email, htmlContent string) string {
	text := stripTags(htmlContent)
	w := proximityWindowAround(text, email)

	if w != "" {
		if m := nameDashTitlePattern.FindString(w); m != "" {
			if name := namePattern.FindString(m); plausibleName(name) {
				return name
			}
		}
		if m := titleColonNamePattern.FindString(w); m != "" {
			// The name follows the colon.
			if idx := strings.Index(m, ":"); idx >= 0 {
				if name := namePattern.FindString(m[idx+1:]); plausibleName(name) {
					return name
				}
			}
		}
		// Name adjacent to the email itself.
		if name := adjacentName(w, email); name != "" {
			return name
		}
		if m := bracketedNamePattern.FindString(w); m != "" {
			if name := namePattern.FindString(m); plausibleName(name) {
				return name
			}
		}
	}

	return nameFromLocalPart(email)
}

// TitleNear returns the job title closest to the email's first occurrence,
// or "" if none is found.
func TitleNear(email, htmlContent string) string {
	text := stripTags(htmlContent)
	w := proximityWindowAround(text, email)
	if w == "" {
		return ""
	}

	if m := nameDashTitlePattern.FindString(w); m != "" {
		if name := namePattern.FindString(m); name != "" {
			rest := m[strings.Index(m, name)+len(name):]
			if title := titlePattern.FindString(rest); title != "" {
				return title
			}
		}
	}
	if m := titleColonNamePattern.FindString(w); m != "" {
		if idx := strings.Index(m, ":"); idx >= 0 {
			if title := titlePattern.FindString(m[:idx]); title != "" {
				return cleanTitle(title)
			}
		}
	}
	return cleanTitle(titlePattern.FindString(w))
}

// cleanTitle drops a leading possessive or article the title pattern's
// optional modifier word absorbed ("Our Treasurer" is just "Treasurer").
func cleanTitle(title string) string {
	words := strings.Fields(title)
	if len(words) == 2 && nameStopwords[words[0]] {
		return words[1]
	}
	return title
}

// PhoneNear returns the first accepted phone number within the proximity
// window of the email, or "" if none is found.
func PhoneNear(email, htmlContent string) string {
	text := stripTags(htmlContent)
	w := proximityWindowAround(text, email)
	if w == "" {
		return ""
	}

	for _, pattern := range phonePatterns {
		for _, match := range pattern.FindAllString(w, -1) {
			if len(NormalizePhone(match)) >= 7 && acceptPhone(match) {
				return strings.TrimSpace(match)
			}
		}
	}
	return ""
}

// proximityWindowAround returns the slice of text centered on the first
// occurrence of email, bounded by proximityWindow on each side. Returns ""
// if the email does not occur in text.
func proximityWindowAround(text, email string) string {
	idx := strings.Index(strings.ToLower(text), strings.ToLower(email))
	if idx < 0 {
		return ""
	}

	start := idx - proximityWindow
	if start < 0 {
		start = 0
	}
	end := idx + len(email) + proximityWindow
	if end > len(text) {
		end = len(text)
	}
	return text[start:end]
}

// adjacentName looks for a name immediately before or after the email
// within a tight sub-window.
func adjacentName(w, email string) string {
	const adjacency = 80

	idx := strings.Index(strings.ToLower(w), strings.ToLower(email))
	if idx < 0 {
		return ""
	}

	start := idx - adjacency
	if start < 0 {
		start = 0
	}
	before := w[start:idx]
	// Prefer the name just before the email; take the last match so
	// "Board of Jane Doe" resolves to the nearest candidate.
	if matches := namePattern.FindAllString(before, -1); len(matches) > 0 {
		for i := len(matches) - 1; i >= 0; i-- {
			if plausibleName(matches[i]) {
				return matches[i]
			}
		}
	}

	end := idx + len(email) + adjacency
	if end > len(w) {
		end = len(w)
	}
	after := w[idx+len(email):end]
	for _, m := range namePattern.FindAllString(after, -1) {
		if plausibleName(m) {
			return m
		}
	}
	return ""
}

// nameFromLocalPart splits a "firstname.lastname@" local part into a
// capitalized two-word name. Returns "" for any other local shape.
func nameFromLocalPart(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return ""
	}
	local := strings.ToLower(email[:at])
	if !dottedLocalPattern.MatchString(local) {
		return ""
	}

	parts := strings.SplitN(local, ".", 2)
	return titleCaser.String(parts[0]) + " " + titleCaser.String(parts[1])
}

// plausibleName rejects name-shaped phrases that start or end with
// navigation vocabulary.
func plausibleName(name string) bool {
	if name == "" {
		return false
	}
	words := strings.Fields(name)
	if len(words) < 2 {
		return false
	}
	return !nameStopwords[words[0]] && !nameStopwords[words[len(words)-1]]
}
