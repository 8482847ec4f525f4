package rows

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/zeebo/xxh3"
)

// ShuffleConfig describes the randomized question blocks of a session.
//
// Each keyword tags one block: every row whose id contains the keyword
// belongs to that block. The blocks are presented in random order per
// respondent; NoteID names the row whose title carries the tasting
// instructions appended to the block shown first.
type ShuffleConfig struct {
	Blocks    []string // block keywords, e.g. sweet, sour, salty, bitter
	BlockRows int      // rows per block; 0 means 3
	NoteID    string   // id of the instructional row, e.g. "how_to_taste"
}

// SeededSource derives a deterministic random source from a respondent key.
// The same key always yields the same block order, so a respondent who
// reloads the survey sees a stable layout. Distinct keys decorrelate fully
// through the hash.
func SeededSource(key string) *rand.Rand {
	seed := xxh3.HashString(key)
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomizeBlocks reorders the configured question blocks uniformly at
// random while keeping the rest of the table untouched.
//
// Behavior:
//   - When no row matches any block keyword, the input is returned unchanged
//     (sessions without the tasting pages skip this step entirely).
//   - Otherwise every keyword must match exactly cfg.BlockRows rows, or an
//     error is returned: a partial block means the layout is broken.
//   - The blocks are placed, in a uniformly drawn order, into the exact row
//     slots the blocks occupied before, preserving each block's internal row
//     order. Their pages are renumbered to a consecutive run starting at the
//     minimum page any block occupied.
//   - The title of the second row of the block that ends up first receives
//     the NoteID row's title for every language, separated by a blank line.
//
// The input slice is never mutated; rows that change are cloned. When rng is
// nil, the shared global source is used, so two calls are uncorrelated.
func RandomizeBlocks(in []Row, languages []string, cfg ShuffleConfig, rng *rand.Rand) ([]Row, error) {
	perRows := cfg.BlockRows
	if perRows == 0 {
		perRows = 3
	}

	// Collect each block's row indices in input order.
	blockIdx := make([][]int, len(cfg.Blocks))
	var slots []int
	for i, r := range in {
		for b, keyword := range cfg.Blocks {
			if containsKeyword(r.ID, keyword) {
				blockIdx[b] = append(blockIdx[b], i)
				slots = append(slots, i)
				break
			}
		}
	}
	if len(slots) == 0 {
		return in, nil
	}
	for b, keyword := range cfg.Blocks {
		if len(blockIdx[b]) != perRows {
			return nil, fmt.Errorf("rows: block %q has %d rows, want %d", keyword, len(blockIdx[b]), perRows)
		}
	}

	firstPage := in[blockIdx[0][0]].Page
	for _, idxs := range blockIdx {
		for _, i := range idxs {
			if in[i].Page < firstPage {
				firstPage = in[i].Page
			}
		}
	}

	var note Row
	if cfg.NoteID != "" {
		found := false
		for _, r := range in {
			if r.ID == cfg.NoteID {
				note, found = r, true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("rows: note row %q not found", cfg.NoteID)
		}
	}

	order := permutation(len(cfg.Blocks), rng)

	out := make([]Row, len(in))
	copy(out, in)

	// Walk the original slots front to back, filling them with the permuted
	// blocks. Slot order is ascending by construction, so each block keeps
	// its internal row order and the whole run stays contiguous.
	slot := 0
	for pos, b := range order {
		for k := 0; k < perRows; k++ {
			r := in[blockIdx[b][k]].Clone()
			r.Page = firstPage + pos
			if cfg.NoteID != "" && pos == 0 && k == 1 {
				for _, lang := range languages {
					r.Title[lang] = r.Title[lang] + "\n\n" + note.Title[lang]
				}
			}
			out[slots[slot]] = r
			slot++
		}
	}
	return out, nil
}

// permutation draws a uniform permutation of n elements from rng, or from the
// global source when rng is nil.
func permutation(n int, rng *rand.Rand) []int {
	if rng != nil {
		return rng.Perm(n)
	}
	return rand.Perm(n)
}

// containsKeyword reports whether a question id belongs to a block. Plain
// substring match mirrors how the layout tags block rows (sweet_intensity,
// taste_qual_sweet, ...).
func containsKeyword(id, keyword string) bool {
	return keyword != "" && strings.Contains(id, keyword)
}
