package codec

import "sync/atomic"

// Stats holds relaxed-ordering observability counters for a Codec instance.
// They are read-only snapshots; the live counters are atomic.Int64 fields
// updated from whichever goroutine drives encode/decode, so a reader on a
// different goroutine can read them without extra synchronization. Each
// counter is loaded separately, so a snapshot taken while the codec runs
// is not one atomic view across all six counters.
type Stats struct {
	SymbolsSkipped     int64
	DirectInfoUsed     int64
	CollisionsSeen     int64
	ErrorsCorrectedH   int64
	ErrorsCorrectedV   int64
	HashMismatches     int64
}

type counters struct {
	symbolsSkipped   atomic.Int64
	directInfoUsed   atomic.Int64
	collisionsSeen   atomic.Int64
	errorsCorrectedH atomic.Int64
	errorsCorrectedV atomic.Int64
	hashMismatches   atomic.Int64
}

func (c *counters) reset() {
	c.symbolsSkipped.Store(0)
	c.directInfoUsed.Store(0)
	c.collisionsSeen.Store(0)
	c.errorsCorrectedH.Store(0)
	c.errorsCorrectedV.Store(0)
	c.hashMismatches.Store(0)
}

func (c *counters) snapshot() Stats {
	return Stats{
		SymbolsSkipped:   c.symbolsSkipped.Load(),
		DirectInfoUsed:   c.directInfoUsed.Load(),
		CollisionsSeen:   c.collisionsSeen.Load(),
		ErrorsCorrectedH: c.errorsCorrectedH.Load(),
		ErrorsCorrectedV: c.errorsCorrectedV.Load(),
		HashMismatches:   c.hashMismatches.Load(),
	}
}
