package asm_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rs5sim/asm"
)

var _ = Describe("AnalyzeDependencies", func() {
	It("finds RAW, WAW, and WAR pairs across a program", func() {
		// ADD R1,R2,R3 (writes R1)
		// ADD R4,R1,R5 (reads R1: RAW on R1)
		// ADD R1,R6,R7 (writes R1: WAW with instr 0, WAR with instr 1's read of R1)
		src := `
ADD R1, R2, R3
ADD R4, R1, R5
ADD R1, R6, R7
HALT
`
		p := asm.NewParser(nil)
		program, err := p.Parse(strings.NewReader(src))
		Expect(err).NotTo(HaveOccurred())

		report := asm.AnalyzeDependencies(program)

		Expect(report.RAW).To(ContainElement(asm.Dependency{From: 0, To: 1, Register: 1}))
		Expect(report.WAW).To(ContainElement(asm.Dependency{From: 0, To: 2, Register: 1}))
		Expect(report.WAR).To(ContainElement(asm.Dependency{From: 1, To: 2, Register: 1}))
	})

	It("finds no dependencies across independent instructions", func() {
		src := `
ADD R1, R2, R3
SUB R4, R5, R6
HALT
`
		p := asm.NewParser(nil)
		program, err := p.Parse(strings.NewReader(src))
		Expect(err).NotTo(HaveOccurred())

		report := asm.AnalyzeDependencies(program)
		Expect(report.RAW).To(BeEmpty())
		Expect(report.WAW).To(BeEmpty())
		Expect(report.WAR).To(BeEmpty())
	})

	It("renders a plain-text report", func() {
		p := asm.NewParser(nil)
		program, err := p.Parse(strings.NewReader("ADD R1, R2, R3\nADD R4, R1, R5\nHALT\n"))
		Expect(err).NotTo(HaveOccurred())

		report := asm.AnalyzeDependencies(program)
		var sb strings.Builder
		report.Print(&sb)

		Expect(sb.String()).To(ContainSubstring("Dependencies RAW"))
		Expect(sb.String()).To(ContainSubstring("0 -> 1 [R1]"))
	})
})
