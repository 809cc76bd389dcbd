// Package rs provides the out-of-order, reservation-station dispatch
// engine: a shelving buffer feeding four fixed heterogeneous functional
// units, with in-order issue, out-of-order execution, and
// commit-ordered writeback.
package rs

import (
	"errors"
	"sort"

	"github.com/sarchlab/rs5sim/chronogram"
	"github.com/sarchlab/rs5sim/insts"
	"github.com/sarchlab/rs5sim/machine"
)

// Status is the CPU's run state.
type Status int

const (
	Running Status = iota
	Stopping
	Halted
)

// ErrHalted is returned by Tick when invoked after the CPU has already
// reached Halted.
var ErrHalted = errors.New("rs: Tick invoked after halt")

// Stats summarizes the reservation-station CPU's performance counters.
type Stats struct {
	Cycles       uint64
	Instructions uint64
	Issued       uint64
}

// CPU is the centralized reservation-station engine.
type CPU struct {
	regs *machine.RegisterFile
	mem  *machine.Memory
	pc   int

	scalability int
	buffer      *ShelvingBuffer
	units       []*Unit

	nextID int
	status Status

	cycleCount       uint64
	instructionCount uint64
	issuedCount      uint64

	chrono *chronogram.Table
}

// Option configures a CPU at construction time.
type Option func(*CPU)

// WithScalability sets the number of instructions issued per cycle
// (default 1).
func WithScalability(n int) Option {
	return func(c *CPU) {
		if n > 0 {
			c.scalability = n
		}
	}
}

// WithUnitLatencies overrides the slot latency of each of the four
// default units, in Add, Mult, Mult, Memory order.
func WithUnitLatencies(add, mult1, mult2, mem int) Option {
	return func(c *CPU) {
		c.units = []*Unit{
			NewUnit(KindAdd, add),
			NewUnit(KindMult, mult1),
			NewUnit(KindMult, mult2),
			NewUnit(KindMemory, mem),
		}
	}
}

// WithChronogram attaches a chronogram.Table that records stage
// occupancy as the CPU runs.
func WithChronogram(t *chronogram.Table) Option {
	return func(c *CPU) {
		c.chrono = t
	}
}

// NewCPU creates a centralized reservation-station CPU with the
// default four units (Add, Mult, Mult, Memory), each with one cycle of
// slot latency, and an issue width of one instruction per cycle.
func NewCPU(regs *machine.RegisterFile, mem *machine.Memory, opts ...Option) *CPU {
	c := &CPU{
		regs:        regs,
		mem:         mem,
		scalability: 1,
		buffer:      NewShelvingBuffer(),
		units: []*Unit{
			NewUnit(KindAdd, 1),
			NewUnit(KindMult, 1),
			NewUnit(KindMult, 1),
			NewUnit(KindMemory, 1),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetPC sets the program counter.
func (c *CPU) SetPC(pc int) {
	c.pc = pc
}

// PC returns the current program counter.
func (c *CPU) PC() int {
	return c.pc
}

// Status returns the CPU's current run state.
func (c *CPU) Status() Status {
	return c.status
}

// Halted reports whether the CPU has fully drained after a halt.
func (c *CPU) Halted() bool {
	return c.status == Halted
}

// Stats returns the CPU's current performance counters.
func (c *CPU) Stats() Stats {
	return Stats{
		Cycles:       c.cycleCount,
		Instructions: c.instructionCount,
		Issued:       c.issuedCount,
	}
}

// Tick advances the CPU by one cycle: issue, then dispatch, then
// execute every unit in ascending held-instruction-id order so that
// older instructions commit first within the cycle.
func (c *CPU) Tick() error {
	if c.status == Halted {
		return ErrHalted
	}
	c.cycleCount++

	c.issue()
	c.buffer.DispatchNext(c.units)
	c.execute()

	if c.status == Stopping && c.buffer.IsEmpty() && c.allUnitsDrained() {
		c.status = Halted
	}

	return nil
}

// issue fetches up to scalability instructions from memory into the
// shelving buffer, stopping early if the program runs out, a HALT is
// issued, or the CPU is no longer running. Stopping as soon as HALT
// enters the buffer (rather than waiting for it to decode in a unit)
// mirrors the in-order pipeline's decode-time flush: once HALT is in
// flight, no instruction past it is ever fetched.
func (c *CPU) issue() {
	if c.status != Running {
		return
	}
	for i := 0; i < c.scalability; i++ {
		cell, err := c.mem.Fetch(c.pc)
		if err != nil {
			return
		}
		instr := cell.(insts.Instruction)
		id := c.nextID
		c.nextID++
		c.pc++
		c.buffer.Add(instr, id)
		c.issuedCount++
		c.record(id, "F")
		if c.chrono != nil {
			c.chrono.Label(id, instr.String())
		}
		if instr.Opcode() == insts.OpHALT {
			c.status = Stopping
			return
		}
	}
}

// execute runs every unit once, visiting them in ascending
// held-instruction-id order. Free units sort last and are skipped.
func (c *CPU) execute() {
	order := make([]*Unit, len(c.units))
	copy(order, c.units)
	sort.SliceStable(order, func(i, j int) bool {
		ii, ij := order[i].HeldID(), order[j].HeldID()
		if ii < 0 {
			return false
		}
		if ij < 0 {
			return true
		}
		return ii < ij
	})

	ctx := &insts.Context{Regs: c.regs, Mem: c.mem}
	for _, u := range order {
		id := u.HeldID()
		outcome := u.Execute(ctx)
		if outcome.Stage != "" {
			c.record(id, outcome.Stage)
		}
		if outcome.Retired {
			c.instructionCount++
			if outcome.Halted && c.status == Running {
				c.status = Stopping
			}
		}
	}
}

func (c *CPU) allUnitsDrained() bool {
	for _, u := range c.units {
		if !u.IsFree() {
			return false
		}
	}
	return true
}

func (c *CPU) record(id int, stage string) {
	if c.chrono == nil {
		return
	}
	c.chrono.Record(id, int(c.cycleCount), stage)
}

// Run executes the CPU until it halts.
func (c *CPU) Run() error {
	for c.status != Halted {
		if err := c.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// RunCycles executes the CPU for up to n cycles, stopping early if it
// halts. Returns true if still running.
func (c *CPU) RunCycles(n uint64) (bool, error) {
	for i := uint64(0); i < n && c.status != Halted; i++ {
		if err := c.Tick(); err != nil {
			return false, err
		}
	}
	return c.status != Halted, nil
}
