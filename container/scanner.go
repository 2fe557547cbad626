package container

import (
	"bytes"

	"github.com/ringcast/ringcast/wire"
)

// ScanOptions tunes the scanner. The zero value is invalid; call
// setDefaults (done automatically by Scan) to fill in defaults.
type ScanOptions struct {
	// MaxConsecutiveFailures bounds the primary pass: if more than this
	// many candidate positions in a row fail validation, the pass aborts
	// (design default 1000, per spec §9 — treated as a tunable).
	MaxConsecutiveFailures int
}

func (o *ScanOptions) setDefaults() {
	if o.MaxConsecutiveFailures <= 0 {
		o.MaxConsecutiveFailures = 1000
	}
}

// Result is the outcome of a Scan: the best-effort assembled byte
// sequence, the voted/derived total chunk count, how many distinct chunks
// were recovered, and which chunk numbers (if any) are missing.
type Result struct {
	Data    []byte
	Total   int
	Found   int
	Missing []int
}

// Scan locates every valid 47-byte fragment in buf, votes on the total
// chunk count, performs a targeted re-scan for any chunk numbers missed
// by the primary pass, and assembles the recovered data in chunk_num
// order. It never modifies buf.
func Scan(buf []byte, opts ScanOptions) (Result, *Error) {
	opts.setDefaults()

	chunks := make(map[uint16][]byte)
	votes := make(map[uint16]int)
	anyMarker := false

	pos := 0
	failures := 0
	aborted := false
	for pos < len(buf) {
		rel := bytes.Index(buf[pos:], wire.StartMarker[:])
		if rel < 0 {
			break
		}
		candidate := pos + rel
		anyMarker = true

		if candidate+wire.FragmentSize <= len(buf) {
			var frag wire.Fragment
			if err := frag.UnmarshalBinary(buf[candidate : candidate+wire.FragmentSize]); err == nil {
				chunks[frag.ChunkNum] = append([]byte(nil), frag.Data[:]...)
				if frag.TotalChunks != 0 {
					votes[frag.TotalChunks]++
				}
				pos = candidate + wire.FragmentSize
				failures = 0
				continue
			}
		}

		failures++
		pos = candidate + 1
		if failures > opts.MaxConsecutiveFailures {
			aborted = true
			break
		}
	}

	if !anyMarker {
		return Result{}, newError(MarkerNotFound, "no START_MARKER in buffer")
	}

	total := votedTotal(votes)
	if total == 0 {
		total = maxChunkNum(chunks) + 1
	}

	var missing []int
	for i := 0; i < total; i++ {
		if _, ok := chunks[uint16(i)]; ok {
			continue
		}
		if data, ok := targetedRescan(buf, uint16(i)); ok {
			chunks[uint16(i)] = data
			continue
		}
		missing = append(missing, i)
	}

	data := assemble(chunks, total)
	result := Result{Data: data, Total: total, Found: total - len(missing), Missing: missing}
	if len(missing) > 0 {
		return result, newError(PartialRecovery, "missing %d of %d chunks", len(missing), total)
	}
	if aborted {
		return result, newError(PartialRecovery, "scan aborted after exceeding max consecutive failures (%d)", opts.MaxConsecutiveFailures)
	}
	return result, nil
}

// votedTotal returns the total_chunks value with the most votes, 0 if
// there were none.
func votedTotal(votes map[uint16]int) int {
	best := uint16(0)
	bestCount := 0
	for v, count := range votes {
		if count > bestCount {
			best, bestCount = v, count
		}
	}
	return int(best)
}

func maxChunkNum(chunks map[uint16][]byte) int {
	max := -1
	for k := range chunks {
		if int(k) > max {
			max = int(k)
		}
	}
	return max
}

// targetedRescan independently re-scans buf from the start, same marker
// discipline as the primary pass, looking specifically for chunkNum.
func targetedRescan(buf []byte, chunkNum uint16) ([]byte, bool) {
	pos := 0
	for pos < len(buf) {
		rel := bytes.Index(buf[pos:], wire.StartMarker[:])
		if rel < 0 {
			return nil, false
		}
		candidate := pos + rel
		if candidate+wire.FragmentSize <= len(buf) {
			var frag wire.Fragment
			if err := frag.UnmarshalBinary(buf[candidate : candidate+wire.FragmentSize]); err == nil {
				if frag.ChunkNum == chunkNum {
					return append([]byte(nil), frag.Data[:]...), true
				}
				pos = candidate + wire.FragmentSize
				continue
			}
		}
		pos = candidate + 1
	}
	return nil, false
}

func assemble(chunks map[uint16][]byte, total int) []byte {
	var out []byte
	for i := 0; i < total; i++ {
		data, ok := chunks[uint16(i)]
		if !ok {
			continue
		}
		if i == total-1 {
			data = stripTrailingZeros(data)
		}
		out = append(out, data...)
	}
	return out
}

func stripTrailingZeros(data []byte) []byte {
	end := len(data)
	for end > 0 && data[end-1] == 0 {
		end--
	}
	return data[:end]
}
