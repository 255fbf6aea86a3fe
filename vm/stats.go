package vm

import (
	"fmt"
	"io"
)

// Stat is returned by value on engine exit (spec.md §3, §6). It carries
// the retired-instruction count plus every predictor's accumulated
// totals, mirroring the "conforming extension" spec.md §6 allows.
type Stat struct {
	Retired    uint64
	Predictors []PredictorStats
}

// WriteReport prints the grouped termination report spec.md §6 and §4.4
// call for: NT, BTFNT, Bimodal (four sizes), gShare (four sizes), each
// with total predictions, mispredictions and percent accuracy to two
// decimal places. Formatting follows the teacher's statistics.go report
// style (aligned columns, grouped sections).
func (s Stat) WriteReport(w io.Writer) {
	fmt.Fprintf(w, "Retired instructions: %d\n", s.Retired)
	fmt.Fprintln(w, "Branch prediction summary:")

	group := func(title string, match func(PredictorStats) bool) {
		any := false
		for _, p := range s.Predictors {
			if !match(p) {
				continue
			}
			if !any {
				fmt.Fprintf(w, "  %s:\n", title)
				any = true
			}
			writePredictorLine(w, p)
		}
	}

	group("Never-Taken", func(p PredictorStats) bool { return p.Kind == PredictNeverTaken })
	group("BTFNT", func(p PredictorStats) bool { return p.Kind == PredictBTFNT })
	group("Bimodal", func(p PredictorStats) bool { return p.Kind == PredictBimodal })
	group("gShare", func(p PredictorStats) bool { return p.Kind == PredictGShare })
}

func writePredictorLine(w io.Writer, p PredictorStats) {
	if p.Total == 0 {
		fmt.Fprintf(w, "    %-16s total=%-10d mispredicts=%-10d accuracy=n/a\n", p.Label(), p.Total, p.Misses)
		return
	}
	fmt.Fprintf(w, "    %-16s total=%-10d mispredicts=%-10d accuracy=%.2f%%\n",
		p.Label(), p.Total, p.Misses, p.Accuracy())
}
