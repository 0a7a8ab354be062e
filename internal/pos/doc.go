// Package pos implements the offline-first point-of-sale data store.
//
// The store keeps the whole working dataset in memory, applies every
// mutation synchronously, appends a change record to the sync queue and
// writes the dataset back to the persistence backend as one snapshot. The
// sync worker (package syncer) later drains the queue to the remote endpoint
// and merges pulled reference data back in via ApplyPull.
//
// Concurrency model: one mutex around the dataset. There is exactly one
// local writer (the UI surface) plus the sync worker, which only reads the
// queue, prunes acknowledged entries and applies pulls. Mutations never
// block on the network; sync failures are invisible to cashier operations.
package pos
