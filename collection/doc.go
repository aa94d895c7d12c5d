// Package collection defines the blocking-collection capability and the
// adapters that let any such collection be consumed and fed like an
// ordinary sequence.
//
// The adapters are built purely on the [Collection] interface's public
// operations, so they are decoupled from any particular primitive: a
// blockingqueue.Queue works today, and any future collection with the same
// four operations works unchanged.
//
// [Items] bridges a collection into the standard iter.Seq world, which
// means a blocking queue composes directly with range loops,
// slices.Collect, and every other consumer of Go iterators:
//
//	for item := range collection.Items(q) {
//		process(item)
//	}
//
// The loop blocks with the queue and ends when the queue is completed and
// drained (or destroyed). [AddAll] is the inverse bridge, feeding an
// iterator into a collection and reporting the first rejected insert.
package collection
