package container

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringcast/ringcast/internal/noise"
	"github.com/ringcast/ringcast/wire"
)

func mustFragment(t *testing.T, chunkNum, total uint16, data []byte) []byte {
	t.Helper()
	f, err := wire.NewFragment(chunkNum, total, data)
	require.NoError(t, err)
	return f.MarshalBinary()
}

func TestScanNoMarkerAtAll(t *testing.T) {
	_, cerr := Scan(bytes.Repeat([]byte{0x00}, 64), ScanOptions{})
	require.NotNil(t, cerr)
	assert.Equal(t, MarkerNotFound, cerr.Kind)
}

func TestScanCorruptedFragmentSkippedByteAtATime(t *testing.T) {
	good := mustFragment(t, 1, 2, []byte("second chunk"))
	var buf bytes.Buffer
	// A fragment whose body is damaged (bad CRC) still carries an intact
	// START_MARKER; the scanner must reject it but keep scanning forward
	// byte by byte rather than skipping the whole fragment body, so the
	// next legitimate fragment directly following is still found.
	broken := mustFragment(t, 0, 2, []byte("first chunk"))
	broken[20] ^= 0xFF
	buf.Write(broken)
	buf.Write(good)

	result, cerr := Scan(buf.Bytes(), ScanOptions{})
	require.NotNil(t, cerr, "expected PartialRecovery since chunk 0 is unrecoverable")
	assert.Equal(t, PartialRecovery, cerr.Kind)
	require.Len(t, result.Missing, 1)
	assert.Equal(t, 0, result.Missing[0])
}

func TestScanTotalChunksPluralityVote(t *testing.T) {
	// Three fragments agree total=3, one straggler (from a retransmit with
	// a stale header) claims total=99. The scanner should trust the
	// majority.
	var buf bytes.Buffer
	buf.Write(mustFragment(t, 0, 3, []byte("aaa")))
	buf.Write(mustFragment(t, 1, 3, []byte("bbb")))
	buf.Write(mustFragment(t, 1, 99, []byte("bbb")))
	buf.Write(mustFragment(t, 2, 3, []byte("ccc")))

	result, cerr := Scan(buf.Bytes(), ScanOptions{})
	require.Nil(t, cerr)
	assert.Equal(t, 3, result.Total)
}

func TestScanTargetedRescanRecoversOutOfOrderChunk(t *testing.T) {
	// chunk 1 appears only far later in the buffer, separated from the
	// run of 0,2 by unrelated bytes; the primary pass processes fragments
	// strictly in buffer order so it is recovered either on the primary
	// pass or the targeted re-scan - either way the assembled result must
	// be complete.
	var buf bytes.Buffer
	buf.Write(mustFragment(t, 0, 3, []byte("AAA")))
	buf.Write(mustFragment(t, 2, 3, []byte("CCC")))
	buf.Write([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	buf.Write(mustFragment(t, 1, 3, []byte("BBB")))

	result, cerr := Scan(buf.Bytes(), ScanOptions{})
	require.Nil(t, cerr)
	// Chunks 0 and 1 are not the last chunk, so their zero padding is kept.
	pad := make([]byte, wire.ChunkDataSize-3)
	want := append(append(append(append([]byte("AAA"), pad...), []byte("BBB")...), pad...), []byte("CCC")...)
	assert.Equal(t, want, result.Data)
}

func TestScanStripsTrailingZerosOnlyOnLastChunk(t *testing.T) {
	data0 := append([]byte("abc"), make([]byte, wire.ChunkDataSize-3)...)
	data1 := []byte{0, 0, 0}
	var buf bytes.Buffer
	buf.Write(mustFragment(t, 0, 2, data0))
	buf.Write(mustFragment(t, 1, 2, data1))

	result, cerr := Scan(buf.Bytes(), ScanOptions{})
	require.Nil(t, cerr)
	// last chunk's all-zero body is stripped to nothing, but the
	// zero-padding inside chunk 0 (not the last chunk) must survive.
	want := append([]byte("abc"), make([]byte, wire.ChunkDataSize-3)...)
	assert.Equal(t, want, result.Data)
}

func TestScanIdempotentOnCleanBuffer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFragments(&buf, []byte("idempotence check")))

	r1, err1 := Scan(buf.Bytes(), ScanOptions{})
	r2, err2 := Scan(buf.Bytes(), ScanOptions{})
	require.Nil(t, err1)
	require.Nil(t, err2)
	assert.Equal(t, r1.Data, r2.Data, "expected identical results across repeated scans of the same buffer")
}

func TestScanCorruptedDataFieldInvalidatesOnlyThatFragment(t *testing.T) {
	// Testable property 7: corrupting bytes inside one fragment's data
	// field must invalidate exactly that fragment, not its neighbors.
	rng := rand.New(rand.NewSource(42))
	good0 := mustFragment(t, 0, 3, []byte("alpha"))
	toCorrupt := mustFragment(t, 1, 3, []byte("beta"))
	good2 := mustFragment(t, 2, 3, []byte("gamma"))

	corrupted := noise.CorruptFragment(rng, toCorrupt, func(pos int) bool {
		// leave both markers intact so the scanner still finds the
		// fragment boundary and fails it on CRC, not on a marker miss.
		return pos < 4 || pos >= wire.FragmentSize-4
	})

	var buf bytes.Buffer
	buf.Write(good0)
	buf.Write(corrupted)
	buf.Write(good2)

	result, cerr := Scan(buf.Bytes(), ScanOptions{})
	require.NotNil(t, cerr, "expected PartialRecovery since chunk 1's data was corrupted")
	assert.Equal(t, PartialRecovery, cerr.Kind)
	require.Len(t, result.Missing, 1)
	assert.Equal(t, 1, result.Missing[0])
	assert.Equal(t, 2, result.Found)
}

func TestScanPartialStartMarkerIsRejectedAndSkipped(t *testing.T) {
	// A truncated/garbled marker (first bytes match START_MARKER, the
	// rest don't) must not be mistaken for a real fragment boundary, and
	// must not prevent the scanner from finding the fragment that
	// follows it.
	rng := rand.New(rand.NewSource(7))
	good := mustFragment(t, 0, 1, []byte("only chunk"))

	var buf bytes.Buffer
	buf.Write(noise.PartialMarker(rng, wire.StartMarker[:], 2))
	buf.Write(good)

	result, cerr := Scan(buf.Bytes(), ScanOptions{})
	require.Nil(t, cerr)
	assert.Equal(t, []byte("only chunk"), result.Data)
}

func TestScanMaxConsecutiveFailuresAborts(t *testing.T) {
	// A run of fragments with intact markers but corrupted bodies (bad
	// CRC), followed by one legitimate fragment. With a very low failure
	// budget the scan should abort before ever reaching the legitimate
	// fragment.
	var buf bytes.Buffer
	for i := 0; i < 10; i++ {
		bad := mustFragment(t, uint16(i), 11, []byte("corrupted"))
		bad[20] ^= 0xFF
		buf.Write(bad)
	}
	buf.Write(mustFragment(t, 10, 11, []byte("reachable")))

	_, cerr := Scan(buf.Bytes(), ScanOptions{MaxConsecutiveFailures: 2})
	require.NotNil(t, cerr, "expected an error once the failure budget is exhausted")
	assert.Contains(t, []Kind{MarkerNotFound, PartialRecovery}, cerr.Kind)
}
