package model

// Confidence labels how directly an email address was observed on a page.
//
// Design decision: We use a string type rather than an int enum because the
// value is serialized to JSON, the database, and spreadsheets, and a
// self-describing string survives all three without a mapping table.
type Confidence string

const (
	// ConfidenceConfirmed means the address was read verbatim from page
	// content or recovered by decoding an obfuscation scheme. This is the
	// only confidence the crawl engine itself produces.
	ConfidenceConfirmed Confidence = "confirmed"

	// ConfidenceGenerated means the address was pattern-guessed from other
	// page data (e.g. a name plus a known domain convention). Produced by
	// enrichment tooling outside the crawl engine.
	ConfidenceGenerated Confidence = "generated"

	// ConfidenceGeneratedUnverified is a generated address that failed or
	// skipped any downstream verification step.
	ConfidenceGeneratedUnverified Confidence = "generated_unverified"
)

// Extraction method tags recorded on each contact.
// The method describes which technique produced the email, which matters
// when the same address is found more than once: mailto anchors are the
// most trustworthy source and win over plain-text regex hits.
const (
	// MethodStandard marks an email matched by the plain-text pattern scan.
	MethodStandard = "standard"

	// MethodMailto marks an email taken from a mailto: anchor target.
	MethodMailto = "mailto"

	// MethodObfuscated marks an email recovered by an obfuscation decoder
	// (XOR cipher, HTML entities, or encoded attribute).
	MethodObfuscated = "obfuscated"

	// MethodPhoneOnly marks a placeholder record synthesized from a phone
	// number on a page that yielded no email at all.
	MethodPhoneOnly = "phone-only"
)

// Contact is a single contact record extracted from a crawled page.
// Before deduplication many contacts may share the same email; after
// deduplication the email (normalized) is unique within a batch.
type Contact struct {
	// Email is the contact email address, lower-cased.
	// For phone-only records this is a sentinel of the form
	// "phone-<digits>@placeholder.invalid" so the record shape stays uniform.
	Email string `json:"email"`

	// Name is the person's name if one was found near the email.
	Name string `json:"name,omitempty"`

	// Title is the person's role or job title if one was found.
	Title string `json:"title,omitempty"`

	// Phone is a phone number associated with the contact.
	Phone string `json:"phone,omitempty"`

	// SourceURL is the page the contact was extracted from.
	SourceURL string `json:"source_url"`

	// Method is the extraction technique tag (see Method constants).
	Method string `json:"method"`

	// Confidence labels how directly the email was observed.
	Confidence Confidence `json:"confidence"`
}

// HasName reports whether the contact carries a non-empty name.
func (c Contact) HasName() bool {
	return c.Name != ""
}

// IsPhoneOnly reports whether this is a synthesized phone-only placeholder.
func (c Contact) IsPhoneOnly() bool {
	return c.Method == MethodPhoneOnly
}
