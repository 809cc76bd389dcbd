package rs

import "github.com/sarchlab/rs5sim/insts"

// Kind identifies a functional unit's category, which determines the
// set of opcodes it accepts.
type Kind int

const (
	KindAdd Kind = iota
	KindMult
	KindMemory
)

func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "Add"
	case KindMult:
		return "Mult"
	case KindMemory:
		return "Memory"
	default:
		return "?"
	}
}

// Unit is a functional unit: it holds at most one instruction at a
// time, runs it through decode/execute/memory once its own slot
// latency elapses, and defers writeback to the following cycle (the
// commit phase).
//
// A Mult unit accepts both MULT and DIV, which can carry different
// per-opcode latencies (see timing/latency) — a single fixed
// unit-level latency cannot express that. The per-opcode delay is
// enforced inside the held instruction's own Execute (insts.ALU /
// insts.Mem), as in the in-order pipeline's EX stage. The unit's own
// slot latency (one cycle in NewCPU's defaults, or set per unit with
// WithUnitLatencies) elapses before that and adds to it.
type Unit struct {
	Kind    Kind
	latency int

	heldInstr insts.Instruction
	heldID    int
	hasHeld   bool
	remaining int
	decoded   bool
	completed bool
}

// NewUnit creates a functional unit of the given kind with the given
// slot latency in cycles (>= 1).
func NewUnit(kind Kind, latency int) *Unit {
	return &Unit{Kind: kind, latency: latency}
}

// Allows reports whether this unit's acceptance set includes op. Every
// unit also accepts HALT so a halt instruction issued to any unit can
// drain normally.
func (u *Unit) Allows(op insts.Opcode) bool {
	if op == insts.OpHALT {
		return true
	}
	switch u.Kind {
	case KindAdd:
		return op == insts.OpADD || op == insts.OpSUB
	case KindMult:
		return op == insts.OpMULT || op == insts.OpDIV
	case KindMemory:
		return op == insts.OpLOAD || op == insts.OpSTORE
	default:
		return false
	}
}

// IsFree reports whether the unit currently holds no instruction.
func (u *Unit) IsFree() bool {
	return !u.hasHeld
}

// Assign places an instruction into the unit. The caller must have
// checked IsFree and Allows first.
func (u *Unit) Assign(instr insts.Instruction, id int) {
	u.heldInstr = instr
	u.heldID = id
	u.hasHeld = true
	u.remaining = u.latency - 1
	u.decoded = false
	u.completed = false
}

// HeldID returns the id of the instruction currently held, or -1 if free.
func (u *Unit) HeldID() int {
	if !u.hasHeld {
		return -1
	}
	return u.heldID
}

// HeldInstruction returns the instruction currently held, or nil.
func (u *Unit) HeldInstruction() insts.Instruction {
	return u.heldInstr
}

// Outcome reports what happened during one call to Execute, for
// chronogram recording and halt propagation by the owning CPU.
type Outcome struct {
	// Stage is "X" while the unit is busy running, "W" the cycle it
	// commits, or "" when nothing happened (unit idle).
	Stage   string
	Retired bool
	Halted  bool
}

// Execute advances the unit's internal state machine by one cycle:
//
//  1. If nothing is held, there is nothing to do.
//  2. If the previous cycle's decode/execute/memory sequence
//     completed, writeback runs now (the commit phase) and the unit
//     frees itself.
//  3. Otherwise, if still within its own slot latency, decrement and
//     wait. Once elapsed, decode (once) then execute (possibly several
//     cycles, gated by the instruction's own multi-cycle latency) then
//     memory. A RawDependency or FunctionalUnitNotFinished result
//     leaves the instruction resident to retry next cycle; completing
//     the sequence marks it completed, with writeback deferred to the
//     next cycle.
func (u *Unit) Execute(ctx *insts.Context) Outcome {
	if !u.hasHeld {
		return Outcome{}
	}

	if u.completed {
		u.heldInstr.Writeback(ctx)
		halted := u.heldInstr.Opcode() == insts.OpHALT
		u.hasHeld = false
		u.heldInstr = nil
		u.completed = false
		return Outcome{Stage: "W", Retired: true, Halted: halted}
	}

	if u.remaining > 0 {
		u.remaining--
		return Outcome{Stage: "X"}
	}

	if !u.decoded {
		sig := u.heldInstr.Decode(ctx)
		if sig.Kind == insts.SignalRawDependency {
			return Outcome{Stage: "X"}
		}
		u.decoded = true
	}

	sig := u.heldInstr.Execute(ctx)
	if sig.Kind == insts.SignalUnitNotFinished {
		return Outcome{Stage: "X"}
	}
	u.heldInstr.Memory(ctx)
	u.completed = true
	return Outcome{Stage: "X"}
}
