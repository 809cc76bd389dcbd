package rs_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rs5sim/insts"
	"github.com/sarchlab/rs5sim/timing/rs"
)

var _ = Describe("ShelvingBuffer", func() {
	It("dispatches the head to the first allowing free unit", func() {
		b := rs.NewShelvingBuffer()
		b.Add(insts.NewALU(insts.OpADD, 1, 2, 3, 1), 0)

		units := []*rs.Unit{rs.NewUnit(rs.KindMult, 1), rs.NewUnit(rs.KindAdd, 1)}
		Expect(b.DispatchNext(units)).To(BeTrue())
		Expect(units[0].IsFree()).To(BeTrue())
		Expect(units[1].IsFree()).To(BeFalse())
		Expect(b.IsEmpty()).To(BeTrue())
	})

	It("blocks the line when no unit can accept the head", func() {
		b := rs.NewShelvingBuffer()
		b.Add(insts.NewALU(insts.OpMULT, 1, 2, 3, 1), 0)
		b.Add(insts.NewALU(insts.OpADD, 4, 5, 6, 1), 1)

		addUnit := rs.NewUnit(rs.KindAdd, 1)
		Expect(b.DispatchNext([]*rs.Unit{addUnit})).To(BeFalse())
		Expect(b.Len()).To(Equal(2))
		Expect(addUnit.IsFree()).To(BeTrue())
	})
})
