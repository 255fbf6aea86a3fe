package vm

import "fmt"

// PredictorKind names a predictor family for reporting (spec.md §4.4, §6).
type PredictorKind int

const (
	PredictNeverTaken PredictorKind = iota
	PredictBTFNT
	PredictBimodal
	PredictGShare
)

func (k PredictorKind) String() string {
	switch k {
	case PredictNeverTaken:
		return "Never-Taken"
	case PredictBTFNT:
		return "BTFNT"
	case PredictBimodal:
		return "Bimodal"
	case PredictGShare:
		return "gShare"
	default:
		return "unknown"
	}
}

// saturatingCounter2 is a 2-bit saturating counter in 0..3.
type saturatingCounter2 uint8

func (c *saturatingCounter2) update(taken bool) {
	if taken {
		if *c < 3 {
			*c++
		}
	} else {
		if *c > 0 {
			*c--
		}
	}
}

func (c saturatingCounter2) predictTaken() bool {
	return c >= 2
}

// PredictorStats accumulates totals and mispredictions for one predictor
// instance (spec.md §3, "Predictor-state").
type PredictorStats struct {
	Kind  PredictorKind
	Size  int // 0 for table-free predictors (NT, BTFNT)
	Total uint64
	Misses uint64
}

// Accuracy returns the percent-correct for this predictor, or 0 if no
// branches have been observed yet.
func (s *PredictorStats) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	correct := s.Total - s.Misses
	return 100 * float64(correct) / float64(s.Total)
}

// Label renders a human name for reporting, e.g. "Bimodal[4096]".
func (s *PredictorStats) Label() string {
	if s.Size == 0 {
		return s.Kind.String()
	}
	return fmt.Sprintf("%s[%d]", s.Kind, s.Size)
}

// predictor is the common interface every predictor family implements.
// observe is called once per retired conditional branch with the branch
// PC, its (already-decoded) displacement, and the actual outcome; it
// updates both the predictor's internal state and its PredictorStats.
type predictor interface {
	observe(pc uint32, displacement int32, taken bool)
	stats() *PredictorStats
}

// neverTaken always predicts not-taken; it carries no state beyond totals.
type neverTaken struct {
	s PredictorStats
}

func newNeverTaken() *neverTaken {
	return &neverTaken{s: PredictorStats{Kind: PredictNeverTaken}}
}

func (p *neverTaken) observe(pc uint32, displacement int32, taken bool) {
	p.s.Total++
	if taken {
		p.s.Misses++
	}
}

func (p *neverTaken) stats() *PredictorStats { return &p.s }

// btfnt predicts taken iff the branch displacement is negative (backward).
type btfnt struct {
	s PredictorStats
}

func newBTFNT() *btfnt {
	return &btfnt{s: PredictorStats{Kind: PredictBTFNT}}
}

func (p *btfnt) observe(pc uint32, displacement int32, taken bool) {
	predicted := displacement < 0
	p.s.Total++
	if predicted != taken {
		p.s.Misses++
	}
}

func (p *btfnt) stats() *PredictorStats { return &p.s }

// bimodal is a table of 2-bit saturating counters indexed by (pc>>2)%size,
// initialized to 1 (weakly not-taken).
type bimodal struct {
	table []saturatingCounter2
	s     PredictorStats
}

func newBimodal(size int) *bimodal {
	table := make([]saturatingCounter2, size)
	for i := range table {
		table[i] = 1
	}
	return &bimodal{table: table, s: PredictorStats{Kind: PredictBimodal, Size: size}}
}

func (p *bimodal) index(pc uint32) uint32 {
	return (pc >> 2) % uint32(len(p.table))
}

func (p *bimodal) observe(pc uint32, displacement int32, taken bool) {
	idx := p.index(pc)
	predicted := p.table[idx].predictTaken()
	p.s.Total++
	if predicted != taken {
		p.s.Misses++
	}
	p.table[idx].update(taken)
}

func (p *bimodal) stats() *PredictorStats { return &p.s }

// gshare is a table of 2-bit saturating counters indexed by
// (pc>>2) XOR (ghr & mask), sharing the engine-wide global history register.
type gshare struct {
	table []saturatingCounter2
	mask  uint32
	ghr   *uint32
	s     PredictorStats
}

// ceilLog2 returns ceil(log2(n)) for n > 0.
func ceilLog2(n int) uint {
	var h uint
	for (1 << h) < n {
		h++
	}
	return h
}

func newGShare(size int, ghr *uint32) *gshare {
	table := make([]saturatingCounter2, size)
	for i := range table {
		table[i] = 1
	}
	h := ceilLog2(size)
	return &gshare{
		table: table,
		mask:  uint32(1<<h) - 1,
		ghr:   ghr,
		s:     PredictorStats{Kind: PredictGShare, Size: size},
	}
}

func (p *gshare) index(pc uint32) uint32 {
	return ((pc >> 2) ^ (*p.ghr & p.mask)) % uint32(len(p.table))
}

func (p *gshare) observe(pc uint32, displacement int32, taken bool) {
	idx := p.index(pc)
	predicted := p.table[idx].predictTaken()
	p.s.Total++
	if predicted != taken {
		p.s.Misses++
	}
	p.table[idx].update(taken)
}

func (p *gshare) stats() *PredictorStats { return &p.s }

// PredictorBank owns every predictor instance and the shared GHR, and
// feeds every conditional branch to all of them (spec.md §4.4).
type PredictorBank struct {
	ghr        uint32
	predictors []predictor
}

// NewPredictorBank builds the full family at every configured table size:
// Never-Taken, BTFNT, Bimodal[s] and gShare[s] for s in
// ConditionalBranchSizes.
func NewPredictorBank() *PredictorBank {
	b := &PredictorBank{}
	b.predictors = append(b.predictors, newNeverTaken(), newBTFNT())
	for _, size := range ConditionalBranchSizes {
		b.predictors = append(b.predictors, newBimodal(size))
	}
	for _, size := range ConditionalBranchSizes {
		b.predictors = append(b.predictors, newGShare(size, &b.ghr))
	}
	return b
}

// Observe feeds a single retired conditional branch to every predictor
// instance, then advances the global history register.
func (b *PredictorBank) Observe(pc uint32, displacement int32, taken bool) {
	for _, p := range b.predictors {
		p.observe(pc, displacement, taken)
	}
	var bit uint32
	if taken {
		bit = 1
	}
	b.ghr = ((b.ghr << 1) | bit) & GHRMask
}

// Stats returns the accumulated statistics for every predictor instance,
// in report order: NT, BTFNT, Bimodal (four sizes), gShare (four sizes).
func (b *PredictorBank) Stats() []PredictorStats {
	out := make([]PredictorStats, len(b.predictors))
	for i, p := range b.predictors {
		out[i] = *p.stats()
	}
	return out
}
