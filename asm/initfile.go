package asm

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/rs5sim/machine"
)

// LoadRegisterFile applies a register-initialization file's assignments
// to regs. Blank lines and lines starting with "#" are skipped; every
// other line must have the form "R<n>=<int>", and a malformed line
// fails with InvalidInitFileError.
func LoadRegisterFile(path string, regs *machine.RegisterFile) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ApplyRegisterInit(f, regs)
}

// ApplyRegisterInit reads register assignments from r and applies them
// to regs.
func ApplyRegisterInit(r io.Reader, regs *machine.RegisterFile) error {
	scanner := bufio.NewScanner(r)
	nline := 0
	for scanner.Scan() {
		nline++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		id, value, err := parseAssignment(line)
		if err != nil {
			return &InvalidInitFileError{Line: nline, Text: line}
		}

		reg, err := regs.Get(id)
		if err != nil {
			return &InvalidInitFileError{Line: nline, Text: line}
		}
		reg.Write(value)
	}
	return scanner.Err()
}

func parseAssignment(line string) (id int, value int64, err error) {
	idx := strings.IndexByte(line, '=')
	if idx < 0 {
		return 0, 0, &InvalidInitFileError{Text: line}
	}
	name := strings.TrimSpace(line[:idx])
	valueStr := strings.TrimSpace(line[idx+1:])

	if len(name) < 2 || (name[0] != 'R' && name[0] != 'r') {
		return 0, 0, &InvalidInitFileError{Text: line}
	}
	id, err = strconv.Atoi(name[1:])
	if err != nil {
		return 0, 0, &InvalidInitFileError{Text: line}
	}
	value, err = strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return 0, 0, &InvalidInitFileError{Text: line}
	}
	return id, value, nil
}
