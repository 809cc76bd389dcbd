package latency_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rs5sim/insts"
	"github.com/sarchlab/rs5sim/timing/latency"
)

var _ = Describe("Latency", func() {
	var table *latency.Table

	BeforeEach(func() {
		table = latency.NewTable()
	})

	Describe("Default Timing Values", func() {
		It("defaults every latency to 1 cycle", func() {
			config := table.Config()
			Expect(config.ALULatency).To(Equal(uint64(1)))
			Expect(config.MultiplyLatency).To(Equal(uint64(1)))
			Expect(config.DivideLatency).To(Equal(uint64(1)))
			Expect(config.LoadLatency).To(Equal(uint64(1)))
			Expect(config.StoreLatency).To(Equal(uint64(1)))
			Expect(config.PhaseCycles).To(Equal([5]uint64{1, 1, 1, 1, 1}))
			Expect(config.Scalability).To(Equal(uint64(1)))
		})
	})

	Describe("GetLatency", func() {
		It("maps ADD and SUB to ALULatency", func() {
			Expect(table.GetLatency(insts.OpADD)).To(Equal(table.Config().ALULatency))
			Expect(table.GetLatency(insts.OpSUB)).To(Equal(table.Config().ALULatency))
		})

		It("maps MULT to MultiplyLatency", func() {
			Expect(table.GetLatency(insts.OpMULT)).To(Equal(table.Config().MultiplyLatency))
		})

		It("maps DIV to DivideLatency", func() {
			Expect(table.GetLatency(insts.OpDIV)).To(Equal(table.Config().DivideLatency))
		})

		It("maps LOAD and STORE to their own latencies", func() {
			Expect(table.GetLatency(insts.OpLOAD)).To(Equal(table.Config().LoadLatency))
			Expect(table.GetLatency(insts.OpSTORE)).To(Equal(table.Config().StoreLatency))
		})
	})

	Describe("Classification helpers", func() {
		It("identifies memory, load and store opcodes", func() {
			Expect(table.IsMemoryOp(insts.OpLOAD)).To(BeTrue())
			Expect(table.IsMemoryOp(insts.OpSTORE)).To(BeTrue())
			Expect(table.IsMemoryOp(insts.OpADD)).To(BeFalse())
			Expect(table.IsLoadOp(insts.OpLOAD)).To(BeTrue())
			Expect(table.IsStoreOp(insts.OpSTORE)).To(BeTrue())
		})

		It("identifies branch opcodes", func() {
			Expect(table.IsBranchOp(insts.OpBEQ)).To(BeTrue())
			Expect(table.IsBranchOp(insts.OpBNE)).To(BeTrue())
			Expect(table.IsBranchOp(insts.OpJMP)).To(BeFalse())
		})
	})

	Describe("Config persistence", func() {
		It("round-trips through a JSON file", func() {
			dir := os.TempDir()
			path := filepath.Join(dir, "rs5sim-timing-test.json")
			defer os.Remove(path)

			cfg := latency.DefaultTimingConfig()
			cfg.MultiplyLatency = 3
			cfg.DivideLatency = 5
			Expect(cfg.SaveConfig(path)).To(Succeed())

			loaded, err := latency.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.MultiplyLatency).To(Equal(uint64(3)))
			Expect(loaded.DivideLatency).To(Equal(uint64(5)))
		})

		It("rejects a zero latency on Validate", func() {
			cfg := latency.DefaultTimingConfig()
			cfg.ALULatency = 0
			Expect(cfg.Validate()).To(HaveOccurred())
		})

		It("deep-copies on Clone", func() {
			cfg := latency.DefaultTimingConfig()
			clone := cfg.Clone()
			clone.ALULatency = 99
			Expect(cfg.ALULatency).To(Equal(uint64(1)))
		})
	})
})
