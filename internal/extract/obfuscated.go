package extract

import (
	"encoding/base64"
	"encoding/hex"
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// entityRunPattern matches runs of numeric HTML entities long enough to
// plausibly spell out an address character by character.
var entityRunPattern = regexp.MustCompile(`(?:&#x?[0-9a-fA-F]{2,6};){5,}`)

// encodedAttrSelector lists attributes some obfuscation widgets stash an
// encoded address in.
const encodedAttrSelector = `[data-email], [data-mail], [data-enc-email]`

// ExtractObfuscatedEmails decodes the three obfuscation schemes sites use
// to hide addresses from naive scrapers and returns any addresses
// recovered, lower-cased and de-duplicated. Each scheme is decoded
// independently; a malformed payload in one never blocks the others.
func ExtractObfuscatedEmails(htmlContent string) []string {
	seen := make(map[string]bool)
	var emails []string

	add := func(email string) {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" || seen[email] {
			return
		}
		seen[email] = true
		emails = append(emails, email)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err == nil {
		// Scheme 1: byte-XOR "protected email" payloads.
		doc.Find("[data-cfemail]").Each(func(_ int, s *goquery.Selection) {
			payload, exists := s.Attr("data-cfemail")
			if !exists {
				return
			}
			if decoded, ok := decodeXORHex(payload); ok {
				add(decoded)
			}
		})

		// Scheme 3: base64 or letter-rotation encoded attributes.
		doc.Find(encodedAttrSelector).Each(func(_ int, s *goquery.Selection) {
			for _, attr := range []string{"data-email", "data-mail", "data-enc-email"} {
				value, exists := s.Attr(attr)
				if !exists || value == "" {
					continue
				}
				if decoded, ok := decodeEncodedAttr(value); ok {
					add(decoded)
				}
			}
		})
	}

	// Scheme 2: numeric HTML entity runs in the raw markup.
	for _, run := range entityRunPattern.FindAllString(htmlContent, -1) {
		decoded := html.UnescapeString(run)
		if emailPattern.MatchString(decoded) {
			add(emailPattern.FindString(decoded))
		}
	}

	return emails
}

// decodeXORHex decodes a hex payload whose first byte is a XOR key applied
// to every following byte. This is the "protected email" scheme: the key
// octet leads, then each payload octet XORed with it.
func decodeXORHex(payload string) (string, bool) {
	raw, err := hex.DecodeString(payload)
	if err != nil || len(raw) < 2 {
		return "", false
	}

	key := raw[0]
	decoded := make([]byte, len(raw)-1)
	for i, b := range raw[1:] {
		decoded[i] = b ^ key
	}

	email := string(decoded)
	if !emailPattern.MatchString(email) {
		return "", false
	}
	return emailPattern.FindString(email), true
}

// decodeEncodedAttr attempts base64 first, then ROT13, keeping the result
// only if it contains an @ and matches the email shape.
func decodeEncodedAttr(value string) (string, bool) {
	if raw, err := base64.StdEncoding.DecodeString(value); err == nil {
		if decoded := string(raw); strings.Contains(decoded, "@") && emailPattern.MatchString(decoded) {
			return emailPattern.FindString(decoded), true
		}
	}

	rotated := rot13(value)
	if strings.Contains(rotated, "@") && emailPattern.MatchString(rotated) {
		return emailPattern.FindString(rotated), true
	}

	return "", false
}

// rot13 rotates ASCII letters by 13 positions, leaving everything else
// untouched.
func rot13(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune('a' + (r-'a'+13)%26)
		case r >= 'A' && r <= 'Z':
			b.WriteRune('A' + (r-'A'+13)%26)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
