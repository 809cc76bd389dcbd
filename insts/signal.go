// Package insts provides the instruction variants and the four-phase
// (decode/execute/memory/writeback) contract shared by the pipeline and
// reservation-station engines.
package insts

import "fmt"

// SignalKind enumerates the non-local control outcomes a phase method can
// report. The source models these as exceptions raised across phase
// calls; here they are an explicit result value the caller inspects,
// per the tagged-result design in SPEC_FULL.md.
type SignalKind int

const (
	// SignalOK means the phase completed normally.
	SignalOK SignalKind = iota
	// SignalHalt means a HALT instruction was decoded.
	SignalHalt
	// SignalJump means control should transfer to JumpAddr.
	SignalJump
	// SignalRawDependency means a source register is locked; the caller
	// must stall this instruction rather than proceed.
	SignalRawDependency
	// SignalUnitNotFinished means an instruction's own multi-cycle
	// functional-unit latency has not yet elapsed.
	SignalUnitNotFinished
	// SignalStageNotFinished means the pipeline stage's configured
	// per-stage latency has not yet elapsed. Produced by the pipeline
	// engine's stage-invocation wrapper, not by instructions themselves.
	SignalStageNotFinished
)

// Signal is the result of a phase invocation.
type Signal struct {
	Kind     SignalKind
	JumpAddr int
}

// Ok is the normal, no-signal result.
var Ok = Signal{Kind: SignalOK}

// HaltSignal signals that a HALT instruction reached decode.
var HaltSignal = Signal{Kind: SignalHalt}

// RawDependency signals that decode observed a locked source register.
var RawDependency = Signal{Kind: SignalRawDependency}

// UnitNotFinished signals that an instruction's own functional-unit
// latency has not yet elapsed.
var UnitNotFinished = Signal{Kind: SignalUnitNotFinished}

// StageNotFinished signals that the owning pipeline stage's configured
// latency has not yet elapsed.
var StageNotFinished = Signal{Kind: SignalStageNotFinished}

// Jump builds a SignalJump result targeting addr.
func Jump(addr int) Signal {
	return Signal{Kind: SignalJump, JumpAddr: addr}
}

// IsOK reports whether the signal is the normal no-op result.
func (s Signal) IsOK() bool {
	return s.Kind == SignalOK
}

func (s Signal) String() string {
	switch s.Kind {
	case SignalOK:
		return "ok"
	case SignalHalt:
		return "halt"
	case SignalJump:
		return fmt.Sprintf("jump(%d)", s.JumpAddr)
	case SignalRawDependency:
		return "raw-dependency"
	case SignalUnitNotFinished:
		return "unit-not-finished"
	case SignalStageNotFinished:
		return "stage-not-finished"
	default:
		return "unknown-signal"
	}
}
