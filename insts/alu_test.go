package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rs5sim/insts"
	"github.com/sarchlab/rs5sim/machine"
)

var _ = Describe("ALU", func() {
	var (
		regs *machine.RegisterFile
		ctx  *insts.Context
	)

	BeforeEach(func() {
		regs = machine.NewRegisterFile()
		ctx = &insts.Context{Regs: regs, Mem: machine.NewMemory(16)}
	})

	Describe("Decode", func() {
		It("locks the destination register when sources are free", func() {
			i := insts.NewALU(insts.OpADD, 3, 1, 2, 1)
			Expect(i.Decode(ctx)).To(Equal(insts.Ok))
			Expect(regs.MustGet(3).IsLocked()).To(BeTrue())
		})

		It("signals RawDependency when a source register is locked", func() {
			regs.MustGet(1).Lock()
			i := insts.NewALU(insts.OpADD, 3, 1, 2, 1)
			Expect(i.Decode(ctx)).To(Equal(insts.RawDependency))
			Expect(regs.MustGet(3).IsLocked()).To(BeFalse())
		})
	})

	Describe("Execute", func() {
		It("computes ADD", func() {
			regs.MustGet(1).Write(4)
			regs.MustGet(2).Write(5)
			i := insts.NewALU(insts.OpADD, 3, 1, 2, 1)
			Expect(i.Decode(ctx)).To(Equal(insts.Ok))
			Expect(i.Execute(ctx)).To(Equal(insts.Ok))
			Expect(i.Memory(ctx)).To(Equal(insts.Ok))
			Expect(i.Writeback(ctx)).To(Equal(insts.Ok))
			Expect(regs.MustGet(3).Read()).To(Equal(int64(9)))
			Expect(regs.MustGet(3).IsLocked()).To(BeFalse())
		})

		It("computes SUB, MULT and truncating DIV", func() {
			regs.MustGet(1).Write(7)
			regs.MustGet(2).Write(2)

			sub := insts.NewALU(insts.OpSUB, 3, 1, 2, 1)
			Expect(sub.Decode(ctx)).To(Equal(insts.Ok))
			Expect(sub.Execute(ctx)).To(Equal(insts.Ok))
			Expect(sub.Writeback(ctx)).To(Equal(insts.Ok))
			Expect(regs.MustGet(3).Read()).To(Equal(int64(5)))

			mult := insts.NewALU(insts.OpMULT, 4, 1, 2, 1)
			Expect(mult.Decode(ctx)).To(Equal(insts.Ok))
			Expect(mult.Execute(ctx)).To(Equal(insts.Ok))
			Expect(mult.Writeback(ctx)).To(Equal(insts.Ok))
			Expect(regs.MustGet(4).Read()).To(Equal(int64(14)))

			div := insts.NewALU(insts.OpDIV, 5, 1, 2, 1)
			Expect(div.Decode(ctx)).To(Equal(insts.Ok))
			Expect(div.Execute(ctx)).To(Equal(insts.Ok))
			Expect(div.Writeback(ctx)).To(Equal(insts.Ok))
			Expect(regs.MustGet(5).Read()).To(Equal(int64(3)))
		})

		It("holds for cycles-1 extra Execute calls before computing", func() {
			regs.MustGet(1).Write(1)
			regs.MustGet(2).Write(1)
			i := insts.NewALU(insts.OpADD, 3, 1, 2, 3)
			Expect(i.Decode(ctx)).To(Equal(insts.Ok))
			Expect(i.Execute(ctx)).To(Equal(insts.UnitNotFinished))
			Expect(i.Execute(ctx)).To(Equal(insts.UnitNotFinished))
			Expect(i.Execute(ctx)).To(Equal(insts.Ok))
		})
	})

	Describe("read and write sets", func() {
		It("reports Rs and Rt as reads, Rd as the write", func() {
			i := insts.NewALU(insts.OpADD, 3, 1, 2, 1)
			Expect(i.ReadSet()).To(ConsistOf(1, 2))
			Expect(i.WriteSet()).To(ConsistOf(3))
		})
	})

	It("is never a bubble", func() {
		i := insts.NewALU(insts.OpADD, 3, 1, 2, 1)
		Expect(i.IsBubble()).To(BeFalse())
	})
})
