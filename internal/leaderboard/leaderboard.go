// internal/leaderboard/leaderboard.go
//
// Top-10 score ledger, one entry per player.
//
// Characteristics:
//   - Identity is the trimmed, lowercased display name; a map from that key
//     to the entry's position makes the one-entry-per-player rule structural.
//   - Record overwrites (last write wins): callers always pass the player's
//     full running total, never a delta.
//   - Entries are kept sorted by score descending with a stable sort, so
//     ties keep their previous relative order; anything past Capacity is
//     dropped for good.
//   - Not safe for concurrent use; the session owner serializes access.

package leaderboard

import (
	"sort"
	"strings"
	"time"
)

// Capacity is the number of entries the board retains.
const Capacity = 10

// Record is one player's standing.
type Record struct {
	Name   string    `json:"name"`
	Score  int       `json:"score"`
	Rounds int       `json:"rounds"`
	Date   time.Time `json:"date"`
}

// Result describes what Record did.
type Result struct {
	Added bool // true for a new player, false for an update
	Rank  int  // 0-based position after sorting, -1 if it fell off the board
}

// Board is the ranked ledger.
type Board struct {
	entries []Record
	index   map[string]int
}

// Key is the identity used to compare player names.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// New builds a board from persisted entries. The stored order is trusted
// (it was sorted when written); later duplicates of a name and entries past
// Capacity are ignored.
func New(entries []Record) *Board {
	b := &Board{index: make(map[string]int)}
	for _, e := range entries {
		k := Key(e.Name)
		if k == "" {
			continue
		}
		if _, dup := b.index[k]; dup {
			continue
		}
		if len(b.entries) == Capacity {
			break
		}
		e.Name = strings.TrimSpace(e.Name)
		b.index[k] = len(b.entries)
		b.entries = append(b.entries, e)
	}
	return b
}

// Record stores score and rounds for name. A blank name is a no-op and
// reports ok=false.
func (b *Board) Record(name string, score, rounds int, at time.Time) (res Result, ok bool) {
	name = strings.TrimSpace(name)
	k := Key(name)
	if k == "" {
		return Result{Rank: -1}, false
	}

	rec := Record{Name: name, Score: score, Rounds: rounds, Date: at.UTC()}
	if i, found := b.index[k]; found {
		b.entries[i] = rec
	} else {
		res.Added = true
		b.entries = append(b.entries, rec)
	}

	sort.SliceStable(b.entries, func(i, j int) bool {
		return b.entries[i].Score > b.entries[j].Score
	})
	if len(b.entries) > Capacity {
		b.entries = b.entries[:Capacity]
	}
	b.reindex()

	res.Rank = -1
	if i, found := b.index[k]; found {
		res.Rank = i
	}
	return res, true
}

// Lookup returns the entry for name, if it is on the board.
func (b *Board) Lookup(name string) (Record, bool) {
	i, ok := b.index[Key(name)]
	if !ok {
		return Record{}, false
	}
	return b.entries[i], true
}

// Top returns a copy of the entries, best first.
func (b *Board) Top() []Record {
	return append([]Record(nil), b.entries...)
}

// Len reports the number of entries.
func (b *Board) Len() int { return len(b.entries) }

// Reset empties the board.
func (b *Board) Reset() {
	b.entries = nil
	b.index = make(map[string]int)
}

func (b *Board) reindex() {
	b.index = make(map[string]int, len(b.entries))
	for i, e := range b.entries {
		b.index[Key(e.Name)] = i
	}
}
