package insts

// Halt always signals Halt from decode, ending the program once it
// reaches that stage. It has no registers and no effect on memory.
type Halt struct{}

func NewHalt() *Halt {
	return &Halt{}
}

func (i *Halt) Opcode() Opcode { return OpHALT }

func (i *Halt) Decode(ctx *Context) Signal {
	return HaltSignal
}

func (i *Halt) Execute(ctx *Context) Signal   { return Ok }
func (i *Halt) Memory(ctx *Context) Signal    { return Ok }
func (i *Halt) Writeback(ctx *Context) Signal { return Ok }

func (i *Halt) ReadSet() []int  { return nil }
func (i *Halt) WriteSet() []int { return nil }

func (i *Halt) IsBubble() bool { return false }

func (i *Halt) String() string { return "HALT" }
