// Package asm parses the line-oriented assembly source format and
// register-initialization files into the types the engines run,
// and offers a diagnostic RAW/WAW/WAR dependency analyzer.
package asm

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/sarchlab/rs5sim/insts"
)

var lineRegex = regexp.MustCompile(
	`^(?:(?P<label>\w+):\s*)?(?P<opcode>\w+)\s*` +
		`(?P<op1>[a-zA-Z0-9()]*)?(?:,\s*(?P<op2>[a-zA-Z0-9()]*))?(?:,\s*(?P<op3>\w*))?\s*(?:#.*)?$`)

var operandRegex = regexp.MustCompile(`^(?:(?P<offset>[0-9]+)\()?[rR](?P<nreg>[0-9]+)\)?$`)

var aluOpcodes = map[string]insts.Opcode{
	"ADD": insts.OpADD, "SUB": insts.OpSUB, "MULT": insts.OpMULT, "DIV": insts.OpDIV,
}

var branchOpcodes = map[string]insts.Opcode{
	"BEQ": insts.OpBEQ, "BNE": insts.OpBNE,
}

// Parser turns assembly source text into an ordered instruction
// sequence, resolving labels in a first pass over non-comment lines.
type Parser struct {
	latency latencyLookup
}

// latencyLookup returns the functional-unit latency in cycles for an
// opcode; *latency.Table satisfies it, kept as a narrow interface here
// so this package doesn't need to import timing/latency for anything
// but this one lookup.
type latencyLookup interface {
	GetLatency(op insts.Opcode) uint64
}

// unitLatencies is used when the caller has no latency table handy;
// every opcode gets a latency of 1 cycle.
type unitLatencies struct{}

func (unitLatencies) GetLatency(insts.Opcode) uint64 { return 1 }

// NewParser creates a Parser. If table is nil, every instruction is
// built with a functional-unit latency of 1 cycle.
func NewParser(table latencyLookup) *Parser {
	if table == nil {
		table = unitLatencies{}
	}
	return &Parser{latency: table}
}

// ParseFile reads and parses an assembly source file.
func (p *Parser) ParseFile(path string) ([]insts.Instruction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.Parse(f)
}

// Parse reads assembly source from r and returns the decoded program.
// Labels are resolved in a first pass over all non-comment lines before
// any instruction is built, matching the source's two-pass design.
func (p *Parser) Parse(r io.Reader) ([]insts.Instruction, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	labels, err := resolveLabels(lines)
	if err != nil {
		return nil, err
	}

	program := make([]insts.Instruction, 0, len(lines))
	for n, line := range lines {
		if isSkippable(line) {
			continue
		}
		instr, err := p.parseLine(line, n+1, labels)
		if err != nil {
			return nil, err
		}
		program = append(program, instr)
	}
	return program, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func isSkippable(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}

// resolveLabels numbers non-comment lines sequentially and records the
// instruction index of each label definition.
func resolveLabels(lines []string) (map[string]int, error) {
	labels := map[string]int{}
	idx := 0
	for n, line := range lines {
		if isSkippable(line) {
			continue
		}
		m := lineRegex.FindStringSubmatch(line)
		if m == nil {
			return nil, malformed(n+1, line)
		}
		label := m[lineRegex.SubexpIndex("label")]
		if label != "" {
			labels[label] = idx
		}
		idx++
	}
	return labels, nil
}

func (p *Parser) parseLine(line string, nline int, labels map[string]int) (insts.Instruction, error) {
	m := lineRegex.FindStringSubmatch(line)
	if m == nil {
		return nil, malformed(nline, line)
	}

	opcode := strings.ToUpper(m[lineRegex.SubexpIndex("opcode")])
	op1 := m[lineRegex.SubexpIndex("op1")]
	op2 := m[lineRegex.SubexpIndex("op2")]
	op3 := m[lineRegex.SubexpIndex("op3")]

	switch {
	case opcode == "HALT":
		return insts.NewHalt(), nil

	case isALU(opcode):
		if op1 == "" || op2 == "" || op3 == "" {
			return nil, notEnoughOperands(nline, line)
		}
		rd, err := p.register(op1, nline)
		if err != nil {
			return nil, err
		}
		rs, err := p.register(op2, nline)
		if err != nil {
			return nil, err
		}
		rt, err := p.register(op3, nline)
		if err != nil {
			return nil, err
		}
		op := aluOpcodes[opcode]
		return insts.NewALU(op, rd, rs, rt, int(p.latency.GetLatency(op))), nil

	case opcode == "LOAD" || opcode == "STORE":
		if op1 == "" || op2 == "" {
			return nil, notEnoughOperands(nline, line)
		}
		offset, base, err := p.memOperand(op2, nline)
		if err != nil {
			return nil, err
		}
		if opcode == "LOAD" {
			rd, err := p.register(op1, nline)
			if err != nil {
				return nil, err
			}
			return insts.NewMem(insts.OpLOAD, rd, base, offset, int(p.latency.GetLatency(insts.OpLOAD))), nil
		}
		rs, err := p.register(op1, nline)
		if err != nil {
			return nil, err
		}
		return insts.NewMem(insts.OpSTORE, base, rs, offset, int(p.latency.GetLatency(insts.OpSTORE))), nil

	case isBranch(opcode):
		if op1 == "" || op2 == "" || op3 == "" {
			return nil, notEnoughOperands(nline, line)
		}
		rs, err := p.register(op1, nline)
		if err != nil {
			return nil, err
		}
		rt, err := p.register(op2, nline)
		if err != nil {
			return nil, err
		}
		target, ok := labels[op3]
		if !ok {
			return nil, invalidLabel(nline, op3)
		}
		return insts.NewBranch(branchOpcodes[opcode], rs, rt, target), nil

	case opcode == "JMP":
		if op1 == "" {
			return nil, notEnoughOperands(nline, line)
		}
		target, ok := labels[op1]
		if !ok {
			return nil, invalidLabel(nline, op1)
		}
		return insts.NewJmp(target), nil

	default:
		return nil, invalidOpcode(nline, opcode)
	}
}

func isALU(opcode string) bool {
	_, ok := aluOpcodes[opcode]
	return ok
}

func isBranch(opcode string) bool {
	_, ok := branchOpcodes[opcode]
	return ok
}

// register parses a bare register operand ("R3", "r12").
func (p *Parser) register(token string, nline int) (int, error) {
	m := operandRegex.FindStringSubmatch(token)
	if m == nil {
		return 0, invalidOperand(nline, token)
	}
	if m[operandRegex.SubexpIndex("offset")] != "" {
		return 0, invalidOperand(nline, token)
	}
	id, err := strconv.Atoi(m[operandRegex.SubexpIndex("nreg")])
	if err != nil {
		return 0, invalidRegister(nline, token)
	}
	if id < 0 || id >= 32 {
		return 0, invalidRegister(nline, token)
	}
	return id, nil
}

// memOperand parses "<offset>(R<n>)", returning the offset and base
// register id.
func (p *Parser) memOperand(token string, nline int) (offset, base int, err error) {
	m := operandRegex.FindStringSubmatch(token)
	if m == nil {
		return 0, 0, invalidOperand(nline, token)
	}
	offsetStr := m[operandRegex.SubexpIndex("offset")]
	if offsetStr != "" {
		offset, err = strconv.Atoi(offsetStr)
		if err != nil {
			return 0, 0, invalidOperand(nline, token)
		}
	}
	base, err = strconv.Atoi(m[operandRegex.SubexpIndex("nreg")])
	if err != nil {
		return 0, 0, invalidRegister(nline, token)
	}
	if base < 0 || base >= 32 {
		return 0, 0, invalidRegister(nline, token)
	}
	return offset, base, nil
}
