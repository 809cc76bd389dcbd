// Package latency provides the per-stage and per-opcode timing model
// shared by the in-order pipeline and the reservation-station engine.
package latency

import "github.com/sarchlab/rs5sim/insts"

// Table provides opcode and stage latency lookups.
type Table struct {
	config *TimingConfig
}

// NewTable creates a new latency table with unit default latencies.
func NewTable() *Table {
	return &Table{config: DefaultTimingConfig()}
}

// NewTableWithConfig creates a new latency table from a loaded
// configuration.
func NewTableWithConfig(config *TimingConfig) *Table {
	return &Table{config: config}
}

// GetLatency returns the functional-unit latency in cycles for the
// given opcode.
func (t *Table) GetLatency(op insts.Opcode) uint64 {
	switch op {
	case insts.OpADD, insts.OpSUB:
		return t.config.ALULatency
	case insts.OpMULT:
		return t.config.MultiplyLatency
	case insts.OpDIV:
		return t.config.DivideLatency
	case insts.OpLOAD:
		return t.config.LoadLatency
	case insts.OpSTORE:
		return t.config.StoreLatency
	default:
		return 1
	}
}

// PhaseCycles returns the per-stage pipeline latency vector in order
// IF, ID, EX, MEM, WB.
func (t *Table) PhaseCycles() [5]uint64 {
	return t.config.PhaseCycles
}

// Scalability returns the reservation-station engine's issue width.
func (t *Table) Scalability() uint64 {
	return t.config.Scalability
}

// ShowChronogram reports whether the CPU should render its chronogram
// on halt.
func (t *Table) ShowChronogram() bool {
	return t.config.ShowChronogram
}

// IsMemoryOp returns true if the opcode accesses memory.
func (t *Table) IsMemoryOp(op insts.Opcode) bool {
	return op == insts.OpLOAD || op == insts.OpSTORE
}

// IsLoadOp returns true if the opcode is a load.
func (t *Table) IsLoadOp(op insts.Opcode) bool {
	return op == insts.OpLOAD
}

// IsStoreOp returns true if the opcode is a store.
func (t *Table) IsStoreOp(op insts.Opcode) bool {
	return op == insts.OpSTORE
}

// IsBranchOp returns true if the opcode is a conditional branch.
func (t *Table) IsBranchOp(op insts.Opcode) bool {
	return op == insts.OpBEQ || op == insts.OpBNE
}

// Config returns the underlying timing configuration.
func (t *Table) Config() *TimingConfig {
	return t.config
}
