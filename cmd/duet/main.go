// Command duet runs a duet program solo, as a pair, or both.
//
//	duet [flags] <program-file>
//
// Program files are plain assembly, or YAML with a name and a list of
// instructions when they end in .yaml or .yml.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/duet/config"
	"github.com/sarchlab/duet/core"
	"github.com/sarchlab/duet/program"
	"github.com/sarchlab/duet/verify"
	"github.com/tebeka/atexit"
)

type options struct {
	mode       string
	configPath string
	maxTurns   int
	maxSteps   int
	quantum    int
	state      bool
	lint       bool
	logLevel   string
	traceFile  string
	journal    bool
}

func parseFlags(args []string) (options, []string, error) {
	var opts options

	fs := flag.NewFlagSet("duet", flag.ContinueOnError)
	fs.StringVar(&opts.mode, "mode", "both", "run mode: solo, pair or both")
	fs.StringVar(&opts.configPath, "config", os.Getenv(config.EnvConfigPath),
		"YAML config file")
	fs.IntVar(&opts.maxTurns, "max-turns", 0, "turn ceiling of a pair run")
	fs.IntVar(&opts.maxSteps, "max-steps", 0, "step ceiling of a solo run")
	fs.IntVar(&opts.quantum, "quantum", 0, "instructions per turn of a pair run")
	fs.BoolVar(&opts.state, "state", false, "print the final machine state")
	fs.BoolVar(&opts.lint, "lint", false, "print a lint and run report")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn or error")
	fs.StringVar(&opts.traceFile, "trace", "", "write a JSON trace to this file")
	fs.BoolVar(&opts.journal, "journal", false, "also log to the systemd journal")

	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: duet [flags] <program-file>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, nil, err
	}

	switch opts.mode {
	case "solo", "pair", "both":
	default:
		return opts, nil, fmt.Errorf("invalid mode %q", opts.mode)
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return opts, nil, fmt.Errorf("expected one program file, got %d", fs.NArg())
	}

	return opts, fs.Args(), nil
}

func loadConfig(opts options) (config.Config, error) {
	cfg := config.Default()

	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return cfg, err
		}
	}

	if opts.maxTurns > 0 {
		cfg.MaxTurns = opts.maxTurns
	}

	if opts.maxSteps > 0 {
		cfg.MaxSteps = opts.maxSteps
	}

	if opts.quantum > 0 {
		cfg.Quantum = opts.quantum
	}

	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	if opts.traceFile != "" {
		cfg.TraceFile = opts.traceFile
	}

	return cfg, cfg.Validate()
}

// machineRecorder keeps the machines a driver creates so that their final
// state can be printed.
type machineRecorder struct {
	machines map[string]*core.Machine
}

func (r *machineRecorder) Func(ctx sim.HookCtx) {
	if ctx.Pos != core.HookPosMachineHalted && ctx.Pos != core.HookPosMachineBlocked {
		return
	}

	if m, ok := ctx.Domain.(*core.Machine); ok {
		r.machines[m.Name()] = m
	}
}

func (r *machineRecorder) list() []*core.Machine {
	names := make([]string, 0, len(r.machines))
	for name := range r.machines {
		names = append(names, name)
	}
	sort.Strings(names)

	machines := make([]*core.Machine, len(names))
	for i, name := range names {
		machines[i] = r.machines[name]
	}

	return machines
}

func tableStyle() table.Style {
	if isTerminal(os.Stdout.Fd()) {
		return table.StyleColoredBright
	}

	return table.StyleLight
}

func run(opts options, path string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	if err := setupLogger(logOptions{
		level:     cfg.Level(),
		traceFile: cfg.TraceFile,
		journal:   opts.journal,
	}); err != nil {
		return err
	}

	f, err := program.LoadFile(path)
	if err != nil {
		return err
	}

	slog.Info("Program loaded", "Name", f.Name, "Instructions", len(f.Program))

	recorder := &machineRecorder{machines: map[string]*core.Machine{}}
	driver := cfg.DriverBuilder().WithHook(recorder).Build("Driver")

	if opts.lint {
		report := verify.GenerateReport(f.Name, f.Program, cfg.IDRegister, driver)
		report.WriteReport(os.Stdout)
	}

	var firstErr error

	if opts.mode == "solo" || opts.mode == "both" {
		freq, err := driver.RunSolo(f.Program)
		if err != nil {
			fmt.Printf("Solo: %v\n", err)
			firstErr = err
		} else {
			fmt.Printf("Recovered frequency: %d\n", freq)
		}
	}

	if opts.mode == "pair" || opts.mode == "both" {
		result, err := driver.RunPairResult(f.Program)
		if err != nil {
			fmt.Printf("Pair: %v\n", err)
			if firstErr == nil {
				firstErr = err
			}
		} else {
			fmt.Printf("Machine 1 sent: %d\n", result.Sent[1])
		}

		t := result.Table()
		t.SetStyle(tableStyle())
		fmt.Println(t.Render())
	}

	if opts.state {
		t := core.StateTable(recorder.list()...)
		t.SetStyle(tableStyle())
		fmt.Println(t.Render())
	}

	return firstErr
}

func main() {
	opts, args, err := parseFlags(os.Args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			atexit.Exit(0)
		}

		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(2)
	}

	if err := run(opts, args[0]); err != nil {
		slog.Error("Run failed", "error", err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
