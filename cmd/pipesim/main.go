// Package main provides the entry point for pipesim, a cycle-accurate
// simulator of a simplified RISC processor with two selectable
// micro-architectures: a 5-stage in-order pipeline, or a centralized
// reservation-station out-of-order engine.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/rs5sim/asm"
	"github.com/sarchlab/rs5sim/chronogram"
	"github.com/sarchlab/rs5sim/insts"
	"github.com/sarchlab/rs5sim/machine"
	"github.com/sarchlab/rs5sim/timing/latency"
	"github.com/sarchlab/rs5sim/timing/pipeline"
	"github.com/sarchlab/rs5sim/timing/rs"
)

var (
	useRS      = flag.Bool("rs", false, "Use the reservation-station out-of-order engine instead of the in-order pipeline")
	configPath = flag.String("config", "", "Path to a latency configuration JSON file")
	regsPath   = flag.String("regs", "", "Path to a register-initialization file")
	memSize    = flag.Int("memsize", 4096, "Number of addressable memory cells")
	chronoFlag = flag.Bool("chronogram", false, "Print the chronogram after the run")
	depsFlag   = flag.Bool("deps", false, "Print the diagnostic RAW/WAW/WAR dependency report instead of running")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: pipesim [options] <program.asm>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	programPath := flag.Arg(0)

	table, err := loadLatencyTable(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading latency config: %v\n", err)
		os.Exit(1)
	}

	parser := asm.NewParser(table)
	program, err := parser.ParseFile(programPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", programPath, err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Loaded: %s (%d instructions)\n", programPath, len(program))
	}

	if *depsFlag {
		report := asm.AnalyzeDependencies(program)
		report.Print(os.Stdout)
		return
	}

	regs := machine.NewRegisterFile()
	if *regsPath != "" {
		if err := asm.LoadRegisterFile(*regsPath, regs); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading register init file: %v\n", err)
			os.Exit(1)
		}
	}

	mem := machine.NewMemory(*memSize)
	cells := make([]any, len(program))
	for i, instr := range program {
		cells[i] = instr
	}
	if err := mem.LoadProgram(cells, 0); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program into memory: %v\n", err)
		os.Exit(1)
	}

	chrono := chronogram.NewTable()

	var runErr error
	if *useRS {
		runErr = runRS(regs, mem, table, chrono)
	} else {
		runErr = runPipeline(regs, mem, table, chrono)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error during simulation: %v\n", runErr)
		os.Exit(1)
	}

	if *chronoFlag || table.ShowChronogram() {
		fmt.Println()
		if err := chrono.Render(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering chronogram: %v\n", err)
			os.Exit(1)
		}
	}
}

func loadLatencyTable(path string) (*latency.Table, error) {
	if path == "" {
		return latency.NewTable(), nil
	}
	cfg, err := latency.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return latency.NewTableWithConfig(cfg), nil
}

func runPipeline(regs *machine.RegisterFile, mem *machine.Memory, table *latency.Table, chrono *chronogram.Table) error {
	p := pipeline.NewPipeline(regs, mem,
		pipeline.WithLatencyTable(table),
		pipeline.WithChronogram(chrono),
	)

	if err := p.Run(); err != nil {
		return err
	}

	stats := p.Stats()
	fmt.Printf("\nEngine: pipeline (5-stage in-order)\n")
	fmt.Printf("Cycles:       %d\n", stats.Cycles)
	fmt.Printf("Instructions: %d\n", stats.Instructions)
	fmt.Printf("CPI:          %.2f\n", stats.CPI)
	fmt.Printf("Stalls:       %d\n", stats.Stalls)
	fmt.Printf("Branches:     %d\n", stats.Branches)
	fmt.Printf("Flushes:      %d\n", stats.Flushes)

	return nil
}

func runRS(regs *machine.RegisterFile, mem *machine.Memory, table *latency.Table, chrono *chronogram.Table) error {
	c := rs.NewCPU(regs, mem,
		rs.WithScalability(int(table.Scalability())),
		rs.WithUnitLatencies(
			int(table.GetLatency(insts.OpADD)),
			int(table.GetLatency(insts.OpMULT)),
			int(table.GetLatency(insts.OpMULT)),
			int(table.GetLatency(insts.OpLOAD)),
		),
		rs.WithChronogram(chrono),
	)

	if err := c.Run(); err != nil {
		return err
	}

	stats := c.Stats()
	fmt.Printf("\nEngine: reservation-station (out-of-order)\n")
	fmt.Printf("Cycles:       %d\n", stats.Cycles)
	fmt.Printf("Instructions: %d\n", stats.Instructions)
	fmt.Printf("Issued:       %d\n", stats.Issued)

	return nil
}
