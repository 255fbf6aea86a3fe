// Command rv32imsim is the CLI front-end that wires the loader, memory,
// symbol table and engine together. It is explicitly outside the
// simulator's core (spec.md §1): the core is the vm/disasm packages, and
// memsys/symbols are the collaborators this command hands to it.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lookbusy1344/rv32imsim/config"
	"github.com/lookbusy1344/rv32imsim/disasm"
	"github.com/lookbusy1344/rv32imsim/loader"
	"github.com/lookbusy1344/rv32imsim/vm"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "rv32imsim",
		Short: "RV32IM instruction-set simulator",
	}

	rootCmd.AddCommand(newRunCmd(), newDisasmCmd(), newConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var (
		loadAddr  uint32
		entry     uint32
		memSize   uint32
		traceFile string
		noColor   bool
	)

	cmd := &cobra.Command{
		Use:   "run <image>",
		Short: "Load and run a program image to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if memSize == 0 {
				memSize = cfg.Execution.MemorySize
			}
			if !cmd.Flags().Changed("entry") {
				entry = loadAddr
			}

			img, err := loader.LoadFile(args[0], loadAddr, entry, memSize)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", args[0], err)
			}

			var logSink io.Writer
			if traceFile != "" {
				traceSink, cerr := os.Create(traceFile) // #nosec G304 -- user-specified trace output path
				if cerr != nil {
					return fmt.Errorf("failed to create trace file: %w", cerr)
				}
				defer traceSink.Close()
				logSink = traceSink
			}

			var symbolTable vm.SymbolTable
			if img.Symbols != nil {
				symbolTable = img.Symbols
			}

			stat := vm.Simulate(img.Memory, img.Entry, logSink, symbolTable)

			colorize := !noColor && term.IsTerminal(int(os.Stdout.Fd())) && cfg.Report.ColorOutput
			writeReport(os.Stdout, stat, colorize)
			return nil
		},
	}

	cmd.Flags().Uint32Var(&loadAddr, "load-addr", 0, "Address to load a flat image at")
	cmd.Flags().Uint32Var(&entry, "entry", 0, "Entry address (defaults to load-addr, or the ELF header entry)")
	cmd.Flags().Uint32Var(&memSize, "mem-size", 0, "Minimum memory size in bytes (0 = use config default)")
	cmd.Flags().StringVar(&traceFile, "trace-file", "", "Write a per-instruction trace to this file")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable ANSI accenting in the termination report")

	return cmd
}

func newDisasmCmd() *cobra.Command {
	var loadAddr uint32

	cmd := &cobra.Command{
		Use:   "disasm <image>",
		Short: "Disassemble a flat binary image without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := loader.LoadFile(args[0], loadAddr, loadAddr, 0)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", args[0], err)
			}

			var symbolTable disasm.SymbolTable
			if img.Symbols != nil {
				symbolTable = img.Symbols
			}

			for addr := loadAddr; addr < img.Memory.Size(); addr += 4 {
				word, rerr := img.Memory.ReadWord(addr)
				if rerr != nil {
					break
				}
				fmt.Printf("%08x: %s\n", addr, disasm.Disassemble(addr, word, symbolTable, 64))
			}
			return nil
		},
	}
	cmd.Flags().Uint32Var(&loadAddr, "load-addr", 0, "Address the image was loaded at")
	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the active configuration and its file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			fmt.Printf("Config file: %s\n", config.GetConfigPath())
			fmt.Printf("Log dir:     %s\n", config.GetLogPath())
			fmt.Printf("Max instructions: %d\n", cfg.Execution.MaxInstructions)
			fmt.Printf("Memory size:      %d\n", cfg.Execution.MemorySize)
			fmt.Printf("Predictor sizes:  %v\n", cfg.Predictor.TableSizes)
			return nil
		},
	}
	return cmd
}

func writeReport(w *os.File, stat vm.Stat, colorize bool) {
	if !colorize {
		stat.WriteReport(w)
		return
	}
	fmt.Fprint(w, "\033[1m")
	stat.WriteReport(w)
	fmt.Fprint(w, "\033[0m")
}
