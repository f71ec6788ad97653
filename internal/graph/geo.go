package graph

import (
	"math"
	"sort"

	"github.com/glucoxe/netspread/internal/rng"
)

const (
	// longCutoffFactor scales maxDistance into the hard eligibility cutoff
	// for long-distance candidates. Bridging disables the cutoff entirely.
	longCutoffFactor = 20.0

	// Candidate scans are stride-sampled above these node counts so the
	// per-node distance pass stays affordable on large networks.
	strideAboveMedium = 2000
	strideAboveLarge  = 5000
)

// GeoOptions are the geographical-variant tunables.
type GeoOptions struct {
	// MaxConnectionDistance is the short-connection radius in pixels.
	MaxConnectionDistance float64

	// DistanceWeight is the exponent of the short-connection probability
	// falloff: p = max(minProb, (1 - d/max)^weight).
	DistanceWeight float64

	// LongDistancePercentage splits each node's connection budget between
	// long and short candidates. Range 0-100.
	LongDistancePercentage float64

	// BridgingEnabled makes every node an eligible candidate regardless
	// of distance.
	BridgingEnabled bool
}

// minProb returns the floor on short-connection acceptance probability,
// scaled from the connection radius into [0.05, 0.3]. The floor is what
// keeps sparse corners of the canvas from total isolation.
func (o GeoOptions) minProb() float64 {
	p := 30.0 / o.MaxConnectionDistance
	return math.Min(math.Max(p, 0.05), 0.3)
}

type candidate struct {
	id   int
	dist float64
}

// synthesizeGeo runs the geography-aware probabilistic model: for each node
// in ascending id order, eligible candidates are partitioned by distance,
// the connection budget is split per the long-distance percentage, and each
// candidate is accepted by a probability draw. Unmet budget is filled
// deterministically from the nearest probabilistically rejected candidates.
//
// Accepted edges still honor the degree cap on both endpoints; a cap
// conflict silently drops the slot (under-connection is left for repair).
// The returned count reports those conflicts.
func synthesizeGeo(b *builder, degree int, opts GeoOptions, stream *rng.Stream) int {
	n := b.n
	stride := 1
	switch {
	case n > strideAboveLarge:
		stride = 4
	case n > strideAboveMedium:
		stride = 2
	}

	cutoff := opts.MaxConnectionDistance * longCutoffFactor
	minProb := opts.minProb()
	longPct := opts.LongDistancePercentage

	var longP float64
	switch {
	case longPct >= 80:
		longP = 1.0
	case longPct >= 50:
		longP = longPct / 100
	default:
		longP = math.Min(0.8, longPct/100)
	}

	capConflicts := 0

	for i := 0; i < n; i++ {
		needed := degree - b.degree(i)
		if needed <= 0 {
			continue
		}

		var short, long []candidate
		for j := 0; j < n; j += stride {
			if j == i || b.connected(i, j) {
				continue
			}
			d := b.pos[i].distTo(b.pos[j])
			if d > cutoff && !opts.BridgingEnabled {
				continue
			}
			if d <= opts.MaxConnectionDistance {
				short = append(short, candidate{id: j, dist: d})
			} else {
				long = append(long, candidate{id: j, dist: d})
			}
		}

		// Long candidates farthest-first, short candidates nearest-first.
		sort.Slice(long, func(a, b int) bool {
			if long[a].dist != long[b].dist {
				return long[a].dist > long[b].dist
			}
			return long[a].id < long[b].id
		})
		sort.Slice(short, func(a, b int) bool {
			if short[a].dist != short[b].dist {
				return short[a].dist < short[b].dist
			}
			return short[a].id < short[b].id
		})

		longBudget := int(math.Round(float64(needed) * longPct / 100))
		shortBudget := needed - longBudget

		added := 0
		var rejected []candidate

		attempt := func(cands []candidate, budget int, prob func(candidate) float64) {
			for _, c := range cands {
				if budget <= 0 {
					return
				}
				p := prob(c)
				if p <= 0 {
					return
				}
				if stream.Float64() < p {
					budget--
					if b.degree(i) < degree && b.degree(c.id) < degree {
						if b.addEdge(i, c.id) {
							added++
						}
					} else {
						capConflicts++
					}
				} else {
					rejected = append(rejected, c)
				}
			}
		}

		longProb := func(candidate) float64 { return longP }
		shortProb := func(c candidate) float64 {
			return math.Max(minProb, math.Pow(1-c.dist/opts.MaxConnectionDistance, opts.DistanceWeight))
		}

		if longPct >= 50 {
			attempt(long, longBudget, longProb)
			attempt(short, needed-added, shortProb)
		} else {
			attempt(short, shortBudget, shortProb)
			attempt(long, needed-added, longProb)
		}

		// Deterministic fill from the nearest candidates the probability
		// draws passed over.
		if added < needed {
			sort.Slice(rejected, func(a, b int) bool {
				if rejected[a].dist != rejected[b].dist {
					return rejected[a].dist < rejected[b].dist
				}
				return rejected[a].id < rejected[b].id
			})
			for _, c := range rejected {
				if added >= needed {
					break
				}
				if b.degree(i) < degree && b.degree(c.id) < degree {
					if b.addEdge(i, c.id) {
						added++
					}
				} else {
					capConflicts++
				}
			}
		}
	}

	return capConflicts
}
