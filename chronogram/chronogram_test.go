package chronogram_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rs5sim/chronogram"
)

var _ = Describe("Table", func() {
	It("renders a header row inclusive of the last recorded cycle", func() {
		tbl := chronogram.NewTable()
		tbl.Record(0, 1, "F")
		tbl.Record(0, 2, "D")
		tbl.Record(1, 2, "F")

		var buf strings.Builder
		Expect(tbl.Render(&buf)).To(Succeed())

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		Expect(lines[0]).To(ContainSubstring("1"))
		Expect(lines[0]).To(ContainSubstring("2"))
		Expect(lines[0]).NotTo(ContainSubstring("3"))
	})

	It("preserves issue order across rows", func() {
		tbl := chronogram.NewTable()
		tbl.Record(5, 1, "F")
		tbl.Record(2, 1, "F")
		Expect(tbl.Ids()).To(Equal([]int{5, 2}))
	})

	It("pads a later-issued instruction's row until its first stage", func() {
		tbl := chronogram.NewTable()
		tbl.Record(0, 1, "F")
		tbl.Record(1, 2, "F")

		var buf strings.Builder
		Expect(tbl.Render(&buf)).To(Succeed())

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		Expect(lines).To(HaveLen(3))
	})

	It("sorts ids ascending when asked for commit order", func() {
		tbl := chronogram.NewTable()
		tbl.Record(5, 1, "F")
		tbl.Record(2, 1, "F")
		Expect(tbl.SortedIds()).To(Equal([]int{2, 5}))
	})
})
