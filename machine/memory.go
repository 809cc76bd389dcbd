package machine

import "fmt"

// Cell is a single memory slot. A cell holds either an integer word (data)
// or an opaque code payload (a decoded instruction, owned by the insts
// package). Memory doesn't know the concrete instruction type — it is
// stored as interface{} and type-asserted back by whichever engine fetches
// it — which keeps this package free of a dependency on insts and mirrors
// the source's single array holding both data and instruction references.
//
// Per spec.md §9's open question: a STORE always overwrites the
// destination cell with a Word, even if it previously held Code (this
// models self-modifying behavior permitted but left undefined by the
// source). A Fetch against a Word cell is an error rather than silently
// guessing intent.
type Cell struct {
	isCode bool
	word   int64
	code   any
}

// WordCell builds a data cell holding v.
func WordCell(v int64) Cell {
	return Cell{word: v}
}

// CodeCell builds a code cell holding the given instruction payload.
func CodeCell(instr any) Cell {
	return Cell{isCode: true, code: instr}
}

// IsCode reports whether the cell holds a code payload rather than data.
func (c Cell) IsCode() bool {
	return c.isCode
}

// Word returns the cell's data value. ok is false if the cell holds code.
func (c Cell) Word() (v int64, ok bool) {
	if c.isCode {
		return 0, false
	}
	return c.word, true
}

// Code returns the cell's code payload. ok is false if the cell holds data.
func (c Cell) Code() (instr any, ok bool) {
	return c.code, c.isCode
}

// Memory is a fixed-size, word-addressable store holding both data and
// decoded instructions.
type Memory struct {
	cells []Cell
}

// NewMemory creates a Memory of the given size, every cell zero-valued.
func NewMemory(size int) *Memory {
	return &Memory{cells: make([]Cell, size)}
}

// Size returns the number of addressable cells.
func (m *Memory) Size() int {
	return len(m.cells)
}

// Read returns the raw cell at addr.
func (m *Memory) Read(addr int) (Cell, error) {
	if addr < 0 || addr >= len(m.cells) {
		return Cell{}, &InvalidAddressError{Addr: addr}
	}
	return m.cells[addr], nil
}

// Write stores a raw cell at addr.
func (m *Memory) Write(addr int, c Cell) error {
	if addr < 0 || addr >= len(m.cells) {
		return &InvalidAddressError{Addr: addr}
	}
	m.cells[addr] = c
	return nil
}

// ReadWord reads the data word at addr. It fails with NotDataError if the
// cell holds a code payload.
func (m *Memory) ReadWord(addr int) (int64, error) {
	c, err := m.Read(addr)
	if err != nil {
		return 0, err
	}
	v, ok := c.Word()
	if !ok {
		return 0, &NotDataError{Addr: addr}
	}
	return v, nil
}

// WriteWord writes a data word at addr, overwriting whatever the cell
// previously held (data or code).
func (m *Memory) WriteWord(addr int, v int64) error {
	return m.Write(addr, WordCell(v))
}

// Fetch reads the code payload at addr. It fails with NotExecutableError if
// the cell holds a data word.
func (m *Memory) Fetch(addr int) (any, error) {
	c, err := m.Read(addr)
	if err != nil {
		return nil, err
	}
	instr, ok := c.Code()
	if !ok {
		return nil, &NotExecutableError{Addr: addr}
	}
	return instr, nil
}

// LoadProgram writes an ordered instruction sequence into consecutive
// addresses starting at offset, one instruction per cell.
func (m *Memory) LoadProgram(program []any, offset int) error {
	for i, instr := range program {
		if err := m.Write(offset+i, CodeCell(instr)); err != nil {
			return err
		}
	}
	return nil
}

// InvalidAddressError reports an out-of-range memory access.
type InvalidAddressError struct {
	Addr int
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid memory address %d", e.Addr)
}

// NotExecutableError reports a fetch from a cell holding data, not code.
type NotExecutableError struct {
	Addr int
}

func (e *NotExecutableError) Error() string {
	return fmt.Sprintf("address %d does not hold an instruction", e.Addr)
}

// NotDataError reports a data read from a cell holding code, not data.
type NotDataError struct {
	Addr int
}

func (e *NotDataError) Error() string {
	return fmt.Sprintf("address %d does not hold data", e.Addr)
}
