package rs

import "github.com/sarchlab/rs5sim/insts"

// entry is an issued, not-yet-dispatched instruction together with its
// issue-order id.
type entry struct {
	instr insts.Instruction
	id    int
}

// ShelvingBuffer is a FIFO of issued instructions awaiting dispatch to
// a functional unit.
type ShelvingBuffer struct {
	queue []entry
}

// NewShelvingBuffer creates an empty shelving buffer.
func NewShelvingBuffer() *ShelvingBuffer {
	return &ShelvingBuffer{}
}

// Add appends an issued instruction to the tail of the buffer.
func (b *ShelvingBuffer) Add(instr insts.Instruction, id int) {
	b.queue = append(b.queue, entry{instr: instr, id: id})
}

// IsEmpty reports whether the buffer holds no instructions.
func (b *ShelvingBuffer) IsEmpty() bool {
	return len(b.queue) == 0
}

// Len returns the number of instructions currently queued.
func (b *ShelvingBuffer) Len() int {
	return len(b.queue)
}

// DispatchNext inspects the head of the buffer and scans units in
// fixed order for the first one that is free and allows the head
// instruction's opcode. On a match, the head is popped and assigned to
// that unit and true is returned. Otherwise nothing changes — the head
// blocks the line; later entries never overtake it.
func (b *ShelvingBuffer) DispatchNext(units []*Unit) bool {
	if b.IsEmpty() {
		return false
	}
	head := b.queue[0]
	for _, u := range units {
		if u.IsFree() && u.Allows(head.instr.Opcode()) {
			u.Assign(head.instr, head.id)
			b.queue = b.queue[1:]
			return true
		}
	}
	return false
}
