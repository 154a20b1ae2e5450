package engine

import "github.com/bearchess/bear/internal/board"

// Bound indicates the type of score stored in a table entry.
type Bound uint8

const (
	BoundExact Bound = iota // Exact score
	BoundLower              // Failed high (beta cutoff)
	BoundUpper              // Failed low
)

// Entry is one transposition table slot. The full 64-bit key is kept for
// verification, so an index collision can never surface a foreign score.
type Entry struct {
	Key   uint64     // Full Zobrist hash
	Move  board.Move // Best move found
	Score int16      // Score, interpreted per Bound
	Depth int8       // Remaining search depth
	Bound Bound
	Age   uint8 // Search generation for replacement
}

// Table caches search results keyed by position fingerprint. Capacity is
// rounded down to a power of two so indexing is a mask. A zero or failed
// allocation degrades to a no-cache table: probes miss, stores are dropped,
// and search proceeds correct but slower.
type Table struct {
	entries []Entry
	mask    uint64
	age     uint8

	probes uint64
	hits   uint64
}

const entrySize = 24 // bytes per Entry, padding included

// NewTable creates a table of roughly sizeMB megabytes. Sizes too small for
// a single entry produce the no-cache table.
func NewTable(sizeMB int) *Table {
	if sizeMB <= 0 {
		return &Table{}
	}

	n := roundDownToPowerOf2(uint64(sizeMB) * 1024 * 1024 / entrySize)
	if n == 0 {
		return &Table{}
	}

	return &Table{
		entries: make([]Entry, n),
		mask:    n - 1,
	}
}

func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe looks up a position. The hit requires a full key match; depth
// sufficiency is the caller's check, since a shallow entry still carries a
// useful best move for ordering.
func (t *Table) Probe(key uint64) (Entry, bool) {
	if len(t.entries) == 0 {
		return Entry{}, false
	}
	t.probes++

	entry := t.entries[key&t.mask]
	if entry.Key == key && entry.Depth > 0 {
		t.hits++
		return entry, true
	}
	return Entry{}, false
}

// Store saves a search result. The slot is overwritten when it is empty,
// holds the same position, is from an earlier search, or holds a shallower
// entry. A deeper entry from the current search survives.
func (t *Table) Store(key uint64, depth, score int, bound Bound, move board.Move) {
	if len(t.entries) == 0 {
		return
	}

	entry := &t.entries[key&t.mask]
	if entry.Depth > 0 && entry.Age == t.age && entry.Key != key && int(entry.Depth) > depth {
		return
	}

	entry.Key = key
	entry.Move = move
	entry.Score = int16(score)
	entry.Depth = int8(depth)
	entry.Bound = bound
	entry.Age = t.age
}

// NewSearch advances the replacement generation. Entries from previous
// searches become preferred eviction targets without being erased.
func (t *Table) NewSearch() {
	t.age++
}

// Clear zeroes the table in place without reallocating.
func (t *Table) Clear() {
	for i := range t.entries {
		t.entries[i] = Entry{}
	}
	t.age = 0
	t.probes = 0
	t.hits = 0
}

// HashFull reports table occupancy in permille, sampled from the front of
// the table the way UCI expects.
func (t *Table) HashFull() int {
	if len(t.entries) == 0 {
		return 0
	}

	sample := 1000
	if sample > len(t.entries) {
		sample = len(t.entries)
	}

	used := 0
	for i := 0; i < sample; i++ {
		if t.entries[i].Depth > 0 && t.entries[i].Age == t.age {
			used++
		}
	}
	return used * 1000 / sample
}

// HitRate returns the probe hit rate as a percentage.
func (t *Table) HitRate() float64 {
	if t.probes == 0 {
		return 0
	}
	return float64(t.hits) / float64(t.probes) * 100
}

// Size returns the number of entry slots.
func (t *Table) Size() int {
	return len(t.entries)
}

// Mate scores are stored relative to the probing node, not the root, so a
// cached mate stays correct when reached at a different ply.

// AdjustScoreToTT converts a root-relative mate score for storage.
func AdjustScoreToTT(score, ply int) int {
	if score > MateScore-MaxPly {
		return score + ply
	}
	if score < -MateScore+MaxPly {
		return score - ply
	}
	return score
}

// AdjustScoreFromTT converts a stored mate score back to root-relative.
func AdjustScoreFromTT(score, ply int) int {
	if score > MateScore-MaxPly {
		return score - ply
	}
	if score < -MateScore+MaxPly {
		return score + ply
	}
	return score
}
