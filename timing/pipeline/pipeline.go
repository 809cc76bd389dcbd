// Package pipeline provides a 5-stage in-order pipeline model for
// cycle-accurate timing simulation.
//
// The pipeline implements the classic 5-stage design:
//   - Fetch (IF): read the next instruction from memory
//   - Decode (ID): decode operands, detect RAW hazards, resolve control flow
//   - Execute (EX): ALU computation, address calculation
//   - Memory (MEM): load/store memory access
//   - Writeback (WB): commit results to the register file
//
// Unlike a forwarding pipeline, RAW hazards here are resolved purely by
// register locking: a dependent instruction stalls in decode until its
// source registers unlock, rather than receiving a bypassed value.
package pipeline

import (
	"errors"

	"github.com/sarchlab/rs5sim/chronogram"
	"github.com/sarchlab/rs5sim/insts"
	"github.com/sarchlab/rs5sim/machine"
	"github.com/sarchlab/rs5sim/timing/latency"
)

// Status is the pipeline's run state.
type Status int

const (
	Running Status = iota
	Stopping
	Halted
)

// ErrHalted is returned by Tick when invoked after the pipeline has
// already reached Halted.
var ErrHalted = errors.New("pipeline: Tick invoked after halt")

// Pipeline is a 5-stage in-order instruction pipeline.
type Pipeline struct {
	slots [numStages]Slot

	regs *machine.RegisterFile
	mem  *machine.Memory
	pc   int

	phaseCycles [numStages]uint64

	nextID int
	status Status

	cycleCount       uint64
	instructionCount uint64
	stallCount       uint64
	branchCount      uint64
	flushCount       uint64

	chrono *chronogram.Table
}

// Option configures a Pipeline at construction time.
type Option func(*Pipeline)

// WithLatencyTable configures the pipeline's per-stage latency vector
// from a latency.Table.
func WithLatencyTable(t *latency.Table) Option {
	return func(p *Pipeline) {
		phases := t.PhaseCycles()
		for i, v := range phases {
			p.phaseCycles[i] = v
		}
	}
}

// WithChronogram attaches a chronogram.Table that records stage
// occupancy as the pipeline runs.
func WithChronogram(t *chronogram.Table) Option {
	return func(p *Pipeline) {
		p.chrono = t
	}
}

// NewPipeline creates a 5-stage pipeline over the given register file
// and memory, with unit latency on every stage unless overridden by
// WithLatencyTable.
func NewPipeline(regs *machine.RegisterFile, mem *machine.Memory, opts ...Option) *Pipeline {
	p := &Pipeline{
		regs:        regs,
		mem:         mem,
		phaseCycles: [numStages]uint64{1, 1, 1, 1, 1},
	}
	for i := range p.slots {
		p.slots[i] = bubbleSlot(i - int(numStages))
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// SetPC sets the program counter.
func (p *Pipeline) SetPC(pc int) {
	p.pc = pc
}

// PC returns the current program counter.
func (p *Pipeline) PC() int {
	return p.pc
}

// Status returns the pipeline's current run state.
func (p *Pipeline) Status() Status {
	return p.status
}

// Halted reports whether the pipeline has fully drained after a halt.
func (p *Pipeline) Halted() bool {
	return p.status == Halted
}

// Slot returns the current occupant of a stage, for inspection.
func (p *Pipeline) Slot(s Stage) Slot {
	return p.slots[s]
}

// Stats summarizes pipeline performance counters.
type Stats struct {
	Cycles       uint64
	Instructions uint64
	Stalls       uint64
	Branches     uint64
	Flushes      uint64
	CPI          float64
}

// Stats returns the pipeline's current performance counters.
func (p *Pipeline) Stats() Stats {
	s := Stats{
		Cycles:       p.cycleCount,
		Instructions: p.instructionCount,
		Stalls:       p.stallCount,
		Branches:     p.branchCount,
		Flushes:      p.flushCount,
	}
	if s.Instructions > 0 {
		s.CPI = float64(s.Cycles) / float64(s.Instructions)
	}
	return s
}

var stageOrder = [...]Stage{WB, MEM, EX, ID}

// Tick advances the pipeline by one cycle, processing stages in
// reverse program order (WB, MEM, EX, ID, then IF) so that every stage
// acts on state produced in the prior cycle.
func (p *Pipeline) Tick() error {
	if p.status == Halted {
		return ErrHalted
	}
	p.cycleCount++

	ctx := &insts.Context{Regs: p.regs, Mem: p.mem}

	frozen := false
	flushIF := false
	jump := false
	jumpTarget := 0

	for _, s := range stageOrder {
		if frozen {
			continue
		}

		sig := p.invokeStage(ctx, s)

		switch sig.Kind {
		case insts.SignalOK:
			p.advance(s)

		case insts.SignalHalt:
			p.advance(s)
			if p.status == Running {
				p.status = Stopping
			}
			flushIF = true

		case insts.SignalJump:
			p.advance(s)
			flushIF = true
			jump = true
			jumpTarget = sig.JumpAddr
			p.branchCount++

		case insts.SignalRawDependency, insts.SignalStageNotFinished, insts.SignalUnitNotFinished:
			frozen = true
			p.stallCount++
			if s != WB {
				p.moveInto(s+1, bubbleSlot(p.slots[s+1].ID))
			}
		}
	}

	switch {
	case frozen:
		// IF and everything upstream of the stall stay exactly as they were.
	case flushIF:
		p.moveInto(ID, bubbleSlot(p.slots[ID].ID))
		p.flushCount++
		if jump {
			p.pc = jumpTarget
		}
		p.fetch(ctx)
	default:
		p.moveInto(ID, p.slots[IF])
		p.fetch(ctx)
	}

	if p.status == Stopping && p.isEmpty() {
		p.status = Halted
	}

	return nil
}

// invokeStage runs the per-stage invocation protocol: a busy multi-cycle
// stage decrements its counter and reports StageNotFinished; otherwise
// the counter resets and the instruction's corresponding phase method
// runs. Bubbles never occupy the latency counter.
func (p *Pipeline) invokeStage(ctx *insts.Context, s Stage) insts.Signal {
	slot := &p.slots[s]
	if slot.isBubble() {
		return insts.Ok
	}

	if slot.Remaining > 1 {
		slot.Remaining--
		return insts.StageNotFinished
	}
	slot.Remaining = int(p.phaseCycles[s])

	switch s {
	case ID:
		return slot.Instr.Decode(ctx)
	case EX:
		return slot.Instr.Execute(ctx)
	case MEM:
		return slot.Instr.Memory(ctx)
	case WB:
		return slot.Instr.Writeback(ctx)
	default:
		return insts.Ok
	}
}

// advance records the current stage's chronogram entry and moves its
// occupant to the next stage, or retires it at WB.
func (p *Pipeline) advance(s Stage) {
	slot := p.slots[s]
	if !slot.isBubble() {
		p.record(slot.ID, s)
	}

	if s == WB {
		if !slot.isBubble() {
			p.instructionCount++
		}
		p.slots[WB] = bubbleSlot(slot.ID)
		return
	}

	p.moveInto(s+1, slot)
}

func (p *Pipeline) moveInto(s Stage, content Slot) {
	content.Remaining = int(p.phaseCycles[s])
	p.slots[s] = content
}

func (p *Pipeline) fetch(ctx *insts.Context) {
	if p.status != Running {
		p.moveInto(IF, bubbleSlot(p.slots[IF].ID))
		return
	}

	cell, err := p.mem.Fetch(p.pc)
	if err != nil {
		// Running off the end of a program without reaching HALT is a
		// malformed program, not a recoverable simulator state; treat
		// the missing instruction as an empty fetch.
		p.moveInto(IF, bubbleSlot(p.slots[IF].ID))
		return
	}

	instr := cell.(insts.Instruction)
	id := p.nextID
	p.nextID++
	p.moveInto(IF, Slot{Instr: instr, ID: id})
	p.record(id, IF)
	if p.chrono != nil {
		p.chrono.Label(id, instr.String())
	}
	p.pc++
}

func (p *Pipeline) record(id int, s Stage) {
	if p.chrono == nil {
		return
	}
	p.chrono.Record(id, int(p.cycleCount), stageLetter(s))
}

// stageLetter maps a stage to the single-character chronogram label
// used by both engines: F, D, X, M, W.
func stageLetter(s Stage) string {
	switch s {
	case IF:
		return "F"
	case ID:
		return "D"
	case EX:
		return "X"
	case MEM:
		return "M"
	case WB:
		return "W"
	default:
		return "?"
	}
}

// isEmpty reports whether every non-bubble occupant of the pipeline is
// the Halt instruction itself, i.e. nothing remains to drain.
func (p *Pipeline) isEmpty() bool {
	for _, s := range p.slots {
		if !s.isBubble() && s.Instr.Opcode() != insts.OpHALT {
			return false
		}
	}
	return true
}

// Run executes the pipeline until it halts.
func (p *Pipeline) Run() error {
	for p.status != Halted {
		if err := p.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// RunCycles executes the pipeline for up to n cycles, stopping early if
// it halts. Returns true if still running.
func (p *Pipeline) RunCycles(n uint64) (bool, error) {
	for i := uint64(0); i < n && p.status != Halted; i++ {
		if err := p.Tick(); err != nil {
			return false, err
		}
	}
	return p.status != Halted, nil
}
