// Package extract implements contact extraction from rendered HTML.
//
// The package is a library of pure functions plus a small assembler on top:
//   - email recognition with false-positive suppression (asset filenames,
//     tracking identifiers, placeholder domains, bundled-library authors)
//   - obfuscated email decoding (byte-XOR "protected email" payloads,
//     numeric HTML entities, base64/ROT13 attribute values)
//   - phone number recognition with date/version rejection
//   - proximity search for the name, title, and phone near an email
//   - confidence-weighted deduplication of assembled contacts
//
// Nothing in this package performs I/O or touches a browser. Every function
// operates on immutable strings, which keeps the extraction rules trivially
// unit-testable in isolation from the fetch layer.
package extract
