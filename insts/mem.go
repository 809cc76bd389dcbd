package insts

import "fmt"

// Mem is a LOAD/STORE instruction. LOAD computes addr = Rs + Offset,
// reads the word at addr into Rd. STORE computes addr = Rd + Offset and
// writes Rs into it; Rd is read-only for STORE and carries no lock.
type Mem struct {
	Op     Opcode
	Rd     int
	Rs     int
	Offset int

	addr            int64
	scratch         int64
	remainingCycles int
}

// NewMem creates a LOAD or STORE instruction. cycles is the memory
// functional unit's latency (>= 1).
func NewMem(op Opcode, rd, rs, offset int, cycles int) *Mem {
	return &Mem{
		Op:              op,
		Rd:              rd,
		Rs:              rs,
		Offset:          offset,
		remainingCycles: cycles - 1,
	}
}

func (i *Mem) Opcode() Opcode { return i.Op }

func (i *Mem) Decode(ctx *Context) Signal {
	switch i.Op {
	case OpLOAD:
		rs := ctx.Regs.MustGet(i.Rs)
		if rs.IsLocked() {
			return RawDependency
		}
		ctx.Regs.MustGet(i.Rd).Lock()
	case OpSTORE:
		rs := ctx.Regs.MustGet(i.Rs)
		rd := ctx.Regs.MustGet(i.Rd)
		if rs.IsLocked() || rd.IsLocked() {
			return RawDependency
		}
	}
	return Ok
}

func (i *Mem) Execute(ctx *Context) Signal {
	if i.remainingCycles > 0 {
		i.remainingCycles--
		return UnitNotFinished
	}

	switch i.Op {
	case OpLOAD:
		i.addr = ctx.Regs.MustGet(i.Rs).Read() + int64(i.Offset)
	case OpSTORE:
		i.addr = ctx.Regs.MustGet(i.Rd).Read() + int64(i.Offset)
		i.scratch = ctx.Regs.MustGet(i.Rs).Read()
	}
	return Ok
}

func (i *Mem) Memory(ctx *Context) Signal {
	switch i.Op {
	case OpLOAD:
		v, err := ctx.Mem.ReadWord(int(i.addr))
		if err != nil {
			panic(err)
		}
		i.scratch = v
	case OpSTORE:
		if err := ctx.Mem.WriteWord(int(i.addr), i.scratch); err != nil {
			panic(err)
		}
	}
	return Ok
}

func (i *Mem) Writeback(ctx *Context) Signal {
	if i.Op == OpLOAD {
		rd := ctx.Regs.MustGet(i.Rd)
		rd.Unlock()
		rd.Write(i.scratch)
	}
	return Ok
}

func (i *Mem) ReadSet() []int {
	if i.Op == OpSTORE {
		return []int{i.Rs, i.Rd}
	}
	return []int{i.Rs}
}

func (i *Mem) WriteSet() []int {
	if i.Op == OpLOAD {
		return []int{i.Rd}
	}
	return nil
}

func (i *Mem) IsBubble() bool { return false }

func (i *Mem) String() string {
	if i.Op == OpSTORE {
		return fmt.Sprintf("STORE R%d, %d(R%d)", i.Rs, i.Offset, i.Rd)
	}
	return fmt.Sprintf("LOAD R%d, %d(R%d)", i.Rd, i.Offset, i.Rs)
}
