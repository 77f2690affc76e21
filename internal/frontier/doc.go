// Package frontier implements the priority queue of URLs awaiting a visit.
//
// Entries are ordered by link-classification priority first and discovery
// depth second, so a contact-looking link found late still jumps ahead of
// ordinary links found early. The frontier is a pure priority container: it
// does not track visited URLs, that bookkeeping belongs to the crawl loop.
package frontier
