package inference

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/statrange/internal/game/damage"
)

// Histogram maps each stat in a contiguous range to the number of rolls (0-16)
// that reproduce the observed damage. The zero value is the empty histogram.
//
// Invariant: when non-empty, the first and last counts are non-zero.
type Histogram struct {
	// Start is the lowest stat in the histogram.
	Start int
	// Counts[i] is the match count for stat Start+i.
	Counts []int
}

// Entry is one stat and its match count.
type Entry struct {
	Stat  int
	Count int
}

// Empty reports whether no stat reproduced the observed damage.
func (h Histogram) Empty() bool {
	return len(h.Counts) == 0
}

// Bounds returns the stat range the histogram covers.
func (h Histogram) Bounds() Bounds {
	if h.Empty() {
		return emptyBounds
	}
	return Bounds{Min: h.Start, Max: h.Start + len(h.Counts) - 1}
}

// Count returns the match count for stat, or 0 if stat is outside the histogram.
func (h Histogram) Count(stat int) int {
	i := stat - h.Start
	if i < 0 || i >= len(h.Counts) {
		return 0
	}
	return h.Counts[i]
}

// Entries returns every stat in ascending order with its count.
func (h Histogram) Entries() []Entry {
	out := make([]Entry, len(h.Counts))
	for i, c := range h.Counts {
		out[i] = Entry{Stat: h.Start + i, Count: c}
	}
	return out
}

// Total returns the sum of all counts.
func (h Histogram) Total() int {
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	return total
}

// MostLikely returns the stats sharing the highest count, in ascending order.
func (h Histogram) MostLikely() []int {
	best := 0
	var stats []int
	for i, c := range h.Counts {
		switch {
		case c > best:
			best = c
			stats = []int{h.Start + i}
		case c == best && c > 0:
			stats = append(stats, h.Start+i)
		}
	}
	return stats
}

// Matches returns how many of the 16 rolls turn stat into observed damage.
//
// Postcondition: Returns a value in [0, damage.Rolls].
func Matches(stat, observed int, c damage.BattleContext) int {
	pre := damage.PreRoll(stat, c)
	n := 0
	for roll := range damage.Rolls {
		if damage.ApplyRoll(pre, roll) == observed {
			n++
		}
	}
	return n
}

// Verify evaluates every stat in b against every roll and returns the
// histogram trimmed to the first and last stat with a non-zero count.
//
// Precondition: c passes Validate.
// Postcondition: Returns the empty Histogram if no stat in b matches.
func Verify(b Bounds, observed int, c damage.BattleContext) Histogram {
	if b.Empty() {
		return Histogram{}
	}
	counts := make([]int, b.Len())
	countRange(counts, b.Min, 0, len(counts), observed, c)
	return trim(b.Min, counts)
}

// VerifyParallel is Verify with the stat range split into at most workers
// contiguous partitions. Each partition writes only its own slots, so the
// result is identical to Verify.
//
// Precondition: c passes Validate; workers >= 1.
// Postcondition: Returns the trimmed histogram, or ctx.Err() if ctx is cancelled.
func VerifyParallel(ctx context.Context, b Bounds, observed int, c damage.BattleContext, workers int) (Histogram, error) {
	if b.Empty() {
		return Histogram{}, nil
	}
	counts := make([]int, b.Len())
	if workers < 1 {
		workers = 1
	}
	if workers > len(counts) {
		workers = len(counts)
	}
	size := ceilDiv(len(counts), workers)

	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < len(counts); lo += size {
		hi := min(lo+size, len(counts))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			countRange(counts, b.Min, lo, hi, observed, c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Histogram{}, err
	}
	return trim(b.Min, counts), nil
}

// countRange fills counts[lo:hi], where counts[i] belongs to stat start+i.
func countRange(counts []int, start, lo, hi, observed int, c damage.BattleContext) {
	for i := lo; i < hi; i++ {
		counts[i] = Matches(start+i, observed, c)
	}
}

func trim(start int, counts []int) Histogram {
	first, last := -1, -1
	for i, n := range counts {
		if n == 0 {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 {
		return Histogram{}
	}
	out := make([]int, last-first+1)
	copy(out, counts[first:last+1])
	return Histogram{Start: start + first, Counts: out}
}
