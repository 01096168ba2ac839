// Package pipeline reconciles the local catalog with the remote listing.
//
// A run selects the appids needing (re)fetch, pulls detail payloads in
// rate-limited batches, normalizes them into canonical entries, upserts them
// through the store, and quarantines ids that fail permanently. A second,
// best-effort pass enriches newly written entries with achievement records.
//
// One driver goroutine owns the run; fan-out exists only inside the batch
// fetch and the enrichment fetch, both of which join before the driver moves
// on. Per-id failures are values (Outcome), never errors: nothing short of a
// missing listing or a cancelled context aborts a run.
package pipeline
