// Package statsjson adapts codec.Stats to gojay's streaming encoder, the
// same low-allocation JSON path the teacher's dependency set reaches
// for instead of encoding/json on hot output paths.
package statsjson

import (
	"github.com/francoispqt/gojay"

	"github.com/ringcast/ringcast/codec"
)

// Snapshot wraps a codec.Stats for gojay encoding.
type Snapshot struct {
	codec.Stats
}

// MarshalJSONObject implements gojay.MarshalerJSONObject.
func (s Snapshot) MarshalJSONObject(enc *gojay.Encoder) {
	enc.AddInt64Key("symbols_skipped", s.SymbolsSkipped)
	enc.AddInt64Key("direct_info_used", s.DirectInfoUsed)
	enc.AddInt64Key("collisions_seen", s.CollisionsSeen)
	enc.AddInt64Key("errors_corrected_h", s.ErrorsCorrectedH)
	enc.AddInt64Key("errors_corrected_v", s.ErrorsCorrectedV)
	enc.AddInt64Key("hash_mismatches", s.HashMismatches)
}

// IsNil implements gojay.MarshalerJSONObject.
func (s Snapshot) IsNil() bool { return false }

// Marshal renders st as a JSON object.
func Marshal(st codec.Stats) ([]byte, error) {
	return gojay.MarshalJSONObject(Snapshot{st})
}
