// Package crawl runs one crawl job: the loop tying the frontier, the
// fetcher, and the extraction pipeline together under a fixed budget.
//
// A Job owns its frontier, visited set, and contact set exclusively; no
// locking happens inside a job because only one loop drives it. Running
// multiple seeds concurrently means running multiple independent jobs,
// each with its own browsing context on the shared engine.
package crawl
