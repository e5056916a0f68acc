// Package history archives completed scrape jobs in a local SQLite
// database so past results can be listed and replayed.
//
// Only finished jobs are stored: the job parameters, crawl metadata,
// and the serialized result table. In-flight crawl state (frontier,
// visited set, page cache) is never persisted; every crawl starts
// clean.
//
// Design decision: We use SQLite (via modernc.org/sqlite) because:
//  1. The archive is a single local file, no external service
//  2. The CGO-free driver keeps cross-compilation trivial
//  3. Query volume is tiny; SQLite performance is more than enough
package history
