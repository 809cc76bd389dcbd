package latency

import (
	"encoding/json"
	"fmt"
	"os"
)

// TimingConfig holds the latency values consumed by both simulation
// engines: the per-stage latency vector used by the in-order pipeline,
// and the per-opcode functional-unit latencies used by both the
// pipeline's multi-cycle EX stage and the reservation-station engine's
// functional units.
type TimingConfig struct {
	// PhaseCycles gives the latency, in cycles, of each of the five
	// pipeline stages in order IF, ID, EX, MEM, WB. Default: all 1.
	PhaseCycles [5]uint64 `json:"phase_cycles"`

	// ALULatency is the functional-unit latency for ADD/SUB. Default: 1.
	ALULatency uint64 `json:"alu_latency"`

	// MultiplyLatency is the functional-unit latency for MULT. Default: 1.
	MultiplyLatency uint64 `json:"multiply_latency"`

	// DivideLatency is the functional-unit latency for DIV. Default: 1.
	DivideLatency uint64 `json:"divide_latency"`

	// LoadLatency is the functional-unit latency for LOAD. Default: 1.
	LoadLatency uint64 `json:"load_latency"`

	// StoreLatency is the functional-unit latency for STORE. Default: 1.
	StoreLatency uint64 `json:"store_latency"`

	// Scalability is the reservation-station engine's maximum number of
	// instructions issued per cycle. Default: 1.
	Scalability uint64 `json:"scalability"`

	// ShowChronogram renders the timing table once the CPU halts.
	ShowChronogram bool `json:"show_chronogram"`
}

// DefaultTimingConfig returns a TimingConfig where every stage and
// functional unit has unit latency and the RS engine issues one
// instruction per cycle.
func DefaultTimingConfig() *TimingConfig {
	return &TimingConfig{
		PhaseCycles:     [5]uint64{1, 1, 1, 1, 1},
		ALULatency:      1,
		MultiplyLatency: 1,
		DivideLatency:   1,
		LoadLatency:     1,
		StoreLatency:    1,
		Scalability:     1,
		ShowChronogram:  false,
	}
}

// LoadConfig loads a TimingConfig from a JSON file, starting from
// DefaultTimingConfig so an omitted field keeps its default value.
func LoadConfig(path string) (*TimingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timing config file: %w", err)
	}

	config := DefaultTimingConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse timing config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a TimingConfig to a JSON file.
func (c *TimingConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize timing config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timing config file: %w", err)
	}

	return nil
}

// Validate checks that every latency is positive and scalability is at
// least 1.
func (c *TimingConfig) Validate() error {
	for i, v := range c.PhaseCycles {
		if v == 0 {
			return fmt.Errorf("phase_cycles[%d] must be > 0", i)
		}
	}
	if c.ALULatency == 0 {
		return fmt.Errorf("alu_latency must be > 0")
	}
	if c.MultiplyLatency == 0 {
		return fmt.Errorf("multiply_latency must be > 0")
	}
	if c.DivideLatency == 0 {
		return fmt.Errorf("divide_latency must be > 0")
	}
	if c.LoadLatency == 0 {
		return fmt.Errorf("load_latency must be > 0")
	}
	if c.StoreLatency == 0 {
		return fmt.Errorf("store_latency must be > 0")
	}
	if c.Scalability == 0 {
		return fmt.Errorf("scalability must be > 0")
	}
	return nil
}

// Clone returns a deep copy of the TimingConfig.
func (c *TimingConfig) Clone() *TimingConfig {
	clone := *c
	return &clone
}
