package insts

// Bubble is the no-op sentinel occupying a pipeline stage or functional
// unit slot. It never holds a register lock and never counts toward
// retired instructions.
type Bubble struct{}

// NewBubble creates a Bubble instance.
func NewBubble() *Bubble {
	return &Bubble{}
}

func (b *Bubble) Opcode() Opcode { return OpBubble }

func (b *Bubble) Decode(ctx *Context) Signal    { return Ok }
func (b *Bubble) Execute(ctx *Context) Signal   { return Ok }
func (b *Bubble) Memory(ctx *Context) Signal    { return Ok }
func (b *Bubble) Writeback(ctx *Context) Signal { return Ok }

func (b *Bubble) ReadSet() []int  { return nil }
func (b *Bubble) WriteSet() []int { return nil }

func (b *Bubble) IsBubble() bool { return true }

func (b *Bubble) String() string { return "( )" }
