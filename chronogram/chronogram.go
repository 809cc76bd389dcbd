// Package chronogram records and renders the per-instruction, per-cycle
// stage-occupancy table produced by both simulation engines.
package chronogram

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
)

// Table is an insertion-ordered mapping from instruction id to an
// insertion-ordered mapping from cycle number to a single-letter stage
// label (F, D, X, M, W).
type Table struct {
	order []int
	rows  map[int]*row
	label map[int]string
}

type row struct {
	cycles []int
	stages map[int]string
}

// NewTable creates an empty chronogram.
func NewTable() *Table {
	return &Table{
		rows:  make(map[int]*row),
		label: make(map[int]string),
	}
}

// Record stores the stage letter occupied by instruction id at the
// given cycle. Recording the same (id, cycle) pair twice overwrites
// the earlier label.
func (t *Table) Record(id int, cycle int, stage string) {
	r, ok := t.rows[id]
	if !ok {
		r = &row{stages: make(map[int]string)}
		t.rows[id] = r
		t.order = append(t.order, id)
	}
	if _, seen := r.stages[cycle]; !seen {
		r.cycles = append(r.cycles, cycle)
	}
	r.stages[cycle] = stage
}

// Label attaches a human-readable label (e.g. the disassembled
// instruction text) to an instruction id, used when rendering.
func (t *Table) Label(id int, text string) {
	t.label[id] = text
}

// maxCycle returns the highest recorded cycle, or 0 if the table is empty.
func (t *Table) maxCycle() int {
	max := 0
	for _, r := range t.rows {
		for _, c := range r.cycles {
			if c > max {
				max = c
			}
		}
	}
	return max
}

// Render writes a tab-delimited table: a header row of cycle numbers
// 1..N, then one row per instruction in issue order, each cell holding
// the stage letter occupied that cycle or blank. The cycle range is
// inclusive of the final recorded cycle, resolving the source's
// inconsistency between an inclusive and an exclusive upper bound.
func (t *Table) Render(w io.Writer) error {
	last := t.maxCycle()

	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)

	fmt.Fprint(tw, "instr")
	for c := 1; c <= last; c++ {
		fmt.Fprintf(tw, "\t%d", c)
	}
	fmt.Fprintln(tw)

	for _, id := range t.order {
		r := t.rows[id]
		name := t.label[id]
		if name == "" {
			name = fmt.Sprintf("#%d", id)
		}
		fmt.Fprint(tw, name)
		for c := 1; c <= last; c++ {
			stage, ok := r.stages[c]
			if !ok {
				stage = ""
			}
			fmt.Fprintf(tw, "\t%s", stage)
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}

// Ids returns the recorded instruction ids in insertion order.
func (t *Table) Ids() []int {
	out := make([]int, len(t.order))
	copy(out, t.order)
	return out
}

// SortedIds returns the recorded instruction ids in ascending order,
// used by callers that want commit-order rather than insertion order.
func (t *Table) SortedIds() []int {
	out := t.Ids()
	sort.Ints(out)
	return out
}
