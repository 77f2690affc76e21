package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fieldworkhq/leadspider/internal/model"
)

// maxPhoneOnlyContacts caps how many phone-only records one page may
// produce. A page with more strictly formatted numbers than this is
// showing footer boilerplate, not a contact listing.
const maxPhoneOnlyContacts = 3

// Assemble extracts every contact from a rendered page. Mailto anchors are
// scanned first and win over plain-text hits for the same address, since a
// mailto link is the site stating the address outright. Obfuscated decodes
// carry no name or title; the decode step discards surrounding context.
// When a page yields no emails at all but a handful of strictly formatted
// phone numbers, those become phone-only records with a synthesized
// sentinel email so the record shape stays uniform downstream.
func Assemble(htmlContent, sourceURL string) []model.Contact {
	var contacts []model.Contact
	seen := make(map[string]bool)

	for _, email := range mailtoEmails(htmlContent) {
		seen[email] = true
		contacts = append(contacts, model.Contact{
			Email:      email,
			Name:       NameNear(email, htmlContent),
			Title:      TitleNear(email, htmlContent),
			Phone:      PhoneNear(email, htmlContent),
			SourceURL:  sourceURL,
			Method:     model.MethodMailto,
			Confidence: model.ConfidenceConfirmed,
		})
	}

	for _, email := range ExtractEmails(htmlContent) {
		if seen[email] {
			continue
		}
		seen[email] = true
		contacts = append(contacts, model.Contact{
			Email:      email,
			Name:       NameNear(email, htmlContent),
			Title:      TitleNear(email, htmlContent),
			Phone:      PhoneNear(email, htmlContent),
			SourceURL:  sourceURL,
			Method:     model.MethodStandard,
			Confidence: model.ConfidenceConfirmed,
		})
	}

	for _, email := range ExtractObfuscatedEmails(htmlContent) {
		if seen[email] {
			continue
		}
		seen[email] = true
		contacts = append(contacts, model.Contact{
			Email:      email,
			SourceURL:  sourceURL,
			Method:     model.MethodObfuscated,
			Confidence: model.ConfidenceConfirmed,
		})
	}

	if len(contacts) == 0 {
		contacts = phoneOnlyContacts(htmlContent, sourceURL)
	}

	return contacts
}

// mailtoEmails returns the addresses of mailto anchors in the page,
// lower-cased, validated, and de-duplicated in document order.
func mailtoEmails(htmlContent string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var emails []string

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if !strings.HasPrefix(strings.ToLower(href), "mailto:") {
			return
		}

		value := href[len("mailto:"):]
		// Strip query parameters such as ?subject=...
		if idx := strings.Index(value, "?"); idx >= 0 {
			value = value[:idx]
		}

		email := strings.ToLower(strings.TrimSpace(value))
		if email == "" || seen[email] || !acceptEmail(email) {
			return
		}
		seen[email] = true
		emails = append(emails, email)
	})

	return emails
}

// phoneOnlyContacts builds placeholder records from strictly formatted
// phone numbers on an email-less page. Only a small count qualifies;
// anything more is treated as page furniture and dropped entirely.
func phoneOnlyContacts(htmlContent, sourceURL string) []model.Contact {
	var strict []string
	for _, phone := range ExtractPhones(htmlContent) {
		if IsStrictPhone(phone) {
			strict = append(strict, phone)
		}
	}

	if len(strict) == 0 || len(strict) > maxPhoneOnlyContacts {
		return nil
	}

	contacts := make([]model.Contact, 0, len(strict))
	for _, phone := range strict {
		contacts = append(contacts, model.Contact{
			Email:      fmt.Sprintf("phone-%s@placeholder.invalid", NormalizePhone(phone)),
			Phone:      phone,
			SourceURL:  sourceURL,
			Method:     model.MethodPhoneOnly,
			Confidence: model.ConfidenceGenerated,
		})
	}
	return contacts
}
