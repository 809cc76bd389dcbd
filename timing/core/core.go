// Package core provides the pipelined CPU, a thin facade wrapping the
// pipeline package for callers that only need to run a program and read
// back statistics.
package core

import (
	"github.com/sarchlab/rs5sim/chronogram"
	"github.com/sarchlab/rs5sim/machine"
	"github.com/sarchlab/rs5sim/timing/latency"
	"github.com/sarchlab/rs5sim/timing/pipeline"
)

// Stats mirrors pipeline.Stats for callers that don't want a direct
// dependency on the pipeline package.
type Stats struct {
	Cycles       uint64
	Instructions uint64
	Stalls       uint64
	Branches     uint64
	Flushes      uint64
	CPI          float64
}

// Core is the pipelined CPU: a register file, memory, and the 5-stage
// pipeline driving them.
type Core struct {
	Pipeline *pipeline.Pipeline

	regs *machine.RegisterFile
	mem  *machine.Memory
}

// NewCore creates a Core over the given register file and memory.
func NewCore(regs *machine.RegisterFile, mem *machine.Memory, table *latency.Table, chrono *chronogram.Table) *Core {
	opts := []pipeline.Option{}
	if table != nil {
		opts = append(opts, pipeline.WithLatencyTable(table))
	}
	if chrono != nil {
		opts = append(opts, pipeline.WithChronogram(chrono))
	}
	return &Core{
		Pipeline: pipeline.NewPipeline(regs, mem, opts...),
		regs:     regs,
		mem:      mem,
	}
}

// SetPC sets the program counter.
func (c *Core) SetPC(pc int) {
	c.Pipeline.SetPC(pc)
}

// Tick executes one pipeline cycle.
func (c *Core) Tick() error {
	return c.Pipeline.Tick()
}

// Halted reports whether the core has fully drained after a halt.
func (c *Core) Halted() bool {
	return c.Pipeline.Halted()
}

// Stats returns performance statistics for the core.
func (c *Core) Stats() Stats {
	s := c.Pipeline.Stats()
	return Stats{
		Cycles:       s.Cycles,
		Instructions: s.Instructions,
		Stalls:       s.Stalls,
		Branches:     s.Branches,
		Flushes:      s.Flushes,
		CPI:          s.CPI,
	}
}

// Run executes the core until it halts.
func (c *Core) Run() error {
	return c.Pipeline.Run()
}

// RunCycles executes the core for up to the given number of cycles.
// Returns true if still running.
func (c *Core) RunCycles(cycles uint64) (bool, error) {
	return c.Pipeline.RunCycles(cycles)
}
