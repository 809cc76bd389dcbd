package pipeline

import "github.com/sarchlab/rs5sim/insts"

// Stage identifies one of the five pipeline stages, in program-flow
// order (an instruction occupies IF before ID, ID before EX, and so on).
type Stage int

const (
	IF Stage = iota
	ID
	EX
	MEM
	WB
	numStages
)

func (s Stage) String() string {
	switch s {
	case IF:
		return "IF"
	case ID:
		return "ID"
	case EX:
		return "EX"
	case MEM:
		return "MEM"
	case WB:
		return "WB"
	default:
		return "?"
	}
}

// Slot is a single pipeline register: the instruction currently
// occupying a stage, its issue-order id, and the stage's own
// remaining-latency countdown.
type Slot struct {
	Instr     insts.Instruction
	ID        int
	Remaining int
}

func bubbleSlot(id int) Slot {
	return Slot{Instr: insts.NewBubble(), ID: id}
}

func (s Slot) isBubble() bool {
	return s.Instr == nil || s.Instr.IsBubble()
}
