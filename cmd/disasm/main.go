// Command disasm decodes an 8086/8088 binary into a NASM-compatible
// assembly listing.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/x86dasm/arch/cpu/x86"
	"github.com/retroenv/x86dasm/buildinfo"
	"github.com/retroenv/x86dasm/cli"
	"github.com/retroenv/x86dasm/config"
	"github.com/retroenv/x86dasm/log"
)

// Build information, set via -ldflags at release time.
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// options holds the disassembler's flags, parsed by cli.FlagSet from the
// struct tags below.
type options struct {
	Output  string `flag:"o,output" usage:"write the listing to a file instead of stdout"`
	Verbose bool   `flag:"v,verbose" usage:"enable verbose decode logging"`
	Config  string `flag:"config" usage:"load default flag values from an INI config file"`
	Stats   bool   `flag:"stats" usage:"print an instruction/branch/loop count summary to stderr"`
}

// positionals holds the disassembler's single required input path.
type positionals struct {
	Input string `arg:"positional" usage:"path to the binary file to disassemble" required:"true"`
}

// fileConfig mirrors the subset of options that can be defaulted from an
// INI config file's [disasm] section.
type fileConfig struct {
	Verbose bool   `config:"disasm.verbose"`
	Output  string `config:"disasm.output"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	for _, a := range args {
		if a == "--version" || a == "-version" {
			fmt.Println(buildinfo.Version(version, commit, date))
			return 0
		}
	}

	var opts options
	var pos positionals

	fs := cli.NewFlagSet("disasm")
	fs.AddSection("Options", &opts)
	fs.AddPositional(&pos)

	if _, err := fs.Parse(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.ShowUsage()
		return 2
	}

	if opts.Config != "" {
		var fc fileConfig
		if err := config.Load(opts.Config, &fc); err != nil {
			fmt.Fprintln(os.Stderr, "loading config:", err)
			return 2
		}
		if !opts.Verbose {
			opts.Verbose = fc.Verbose
		}
		if opts.Output == "" {
			opts.Output = fc.Output
		}
	}

	level := log.InfoLevel
	if opts.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithConfig(log.Config{Level: level})

	data, err := os.ReadFile(pos.Input)
	if err != nil {
		logger.Error("reading input file", log.String("path", pos.Input), log.String("error", err.Error()))
		return 1
	}

	lines, decodeErr := x86.Disassemble(data)

	out, closeOut, err := openOutput(opts.Output)
	if err != nil {
		logger.Error("creating output file", log.String("path", opts.Output), log.String("error", err.Error()))
		return 1
	}
	defer closeOut()

	for _, line := range lines {
		fmt.Fprintln(out, line)
	}

	if decodeErr != nil {
		var de *x86.DecodeError
		if errors.As(decodeErr, &de) {
			logger.Error("stopping decode", log.Int("offset", de.Offset), log.String("error", de.Err.Error()))
		} else {
			logger.Error("decode failed", log.String("error", decodeErr.Error()))
		}
		return 1
	}

	if opts.Stats {
		printStats(lines)
	}

	return 0
}

func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// printStats counts how many decoded lines are branches or loops, using
// the mnemonic classification sets instead of re-decoding anything.
func printStats(lines []string) {
	var branches, loops int
	for _, line := range lines[1:] { // lines[0] is the "bits 16" header
		mnemonic, _, _ := strings.Cut(strings.TrimSpace(line), " ")
		if x86.LoopMnemonics.Contains(mnemonic) {
			loops++
		}
		if x86.BranchMnemonics.Contains(mnemonic) {
			branches++
		}
	}
	fmt.Fprintf(os.Stderr, "instructions: %d, branches: %d, loops: %d\n", len(lines)-1, branches, loops)
}
