package insts

import "github.com/sarchlab/rs5sim/machine"

// Opcode identifies an instruction's operation.
type Opcode string

// The instruction set this machine executes. Bubble is a sentinel, not a
// real opcode — it never appears in a parsed program.
const (
	OpADD    Opcode = "ADD"
	OpSUB    Opcode = "SUB"
	OpMULT   Opcode = "MULT"
	OpDIV    Opcode = "DIV"
	OpLOAD   Opcode = "LOAD"
	OpSTORE  Opcode = "STORE"
	OpBEQ    Opcode = "BEQ"
	OpBNE    Opcode = "BNE"
	OpJMP    Opcode = "JMP"
	OpHALT   Opcode = "HALT"
	OpBubble Opcode = "(bubble)"
)

// Context grants a phase method mutable access to the shared register
// file and memory. Instructions hold register ids and memory addresses,
// not references; Context is how a phase resolves them.
type Context struct {
	Regs *machine.RegisterFile
	Mem  *machine.Memory
}

// Instruction is the common phase interface every instruction variant
// implements. The pipeline engine invokes one phase per stage per cycle;
// the reservation-station engine invokes Decode/Execute/Memory back to
// back inside a functional unit once the unit's own latency has elapsed,
// deferring Writeback to the following cycle.
type Instruction interface {
	// Opcode returns the instruction's operation, or OpBubble for Bubble.
	Opcode() Opcode

	Decode(ctx *Context) Signal
	Execute(ctx *Context) Signal
	Memory(ctx *Context) Signal
	Writeback(ctx *Context) Signal

	// ReadSet returns the register ids this instruction reads.
	ReadSet() []int
	// WriteSet returns the register ids this instruction writes.
	WriteSet() []int

	// IsBubble reports whether this is the no-op sentinel. Equivalent to
	// checking Opcode() == OpBubble, kept as a method because the
	// pipeline engine checks it on the hot path.
	IsBubble() bool

	String() string
}
