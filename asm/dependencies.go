package asm

import (
	"fmt"
	"io"

	"github.com/sarchlab/rs5sim/insts"
)

// Dependency records one register dependency found between two
// instructions at their issue-order positions.
type Dependency struct {
	From, To int
	Register int
}

// DependencyReport groups the three dependency kinds a static scan over
// a program can find. It is diagnostic only: the engines enforce RAW
// through register locks and never consult this report; WAW and WAR are
// surfaced here but never stalled on.
type DependencyReport struct {
	RAW []Dependency
	WAW []Dependency
	WAR []Dependency
}

// AnalyzeDependencies scans program pairwise for RAW, WAW, and WAR
// register dependencies, in issue order.
func AnalyzeDependencies(program []insts.Instruction) DependencyReport {
	var report DependencyReport

	for i, a := range program {
		for j := i + 1; j < len(program); j++ {
			b := program[j]

			for _, w := range a.WriteSet() {
				for _, r := range b.ReadSet() {
					if w == r {
						report.RAW = append(report.RAW, Dependency{From: i, To: j, Register: w})
					}
				}
			}
			for _, w1 := range a.WriteSet() {
				for _, w2 := range b.WriteSet() {
					if w1 == w2 {
						report.WAW = append(report.WAW, Dependency{From: i, To: j, Register: w1})
					}
				}
			}
			for _, r := range a.ReadSet() {
				for _, w := range b.WriteSet() {
					if r == w {
						report.WAR = append(report.WAR, Dependency{From: i, To: j, Register: r})
					}
				}
			}
		}
	}

	return report
}

// Print renders the report as a plain-text table, one section per
// dependency kind.
func (r DependencyReport) Print(w io.Writer) {
	printSection(w, "RAW", r.RAW)
	printSection(w, "WAW", r.WAW)
	printSection(w, "WAR", r.WAR)
}

func printSection(w io.Writer, kind string, deps []Dependency) {
	fmt.Fprintf(w, "-----------------\n")
	fmt.Fprintf(w, "Dependencies %s\n", kind)
	fmt.Fprintf(w, "-----------------\n")
	for _, d := range deps {
		fmt.Fprintf(w, "%d -> %d [R%d]\n", d.From, d.To, d.Register)
	}
}
