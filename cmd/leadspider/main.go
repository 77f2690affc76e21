// Package main provides the entry point for the leadspider CLI.
//
// Leadspider crawls a website and extracts contact records: email
// addresses paired, where possible, with a person's name, title, and
// phone number.
//
// Usage:
//
//	leadspider crawl https://example.com
//	leadspider crawl --mode aggressive https://example.com
//
// See --help for all available options.
package main

// main is the entry point for leadspider.
func main() {
	Execute()
}
