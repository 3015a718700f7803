// Command whynot compiles and runs a whynot source file.
//
// Usage:
//
//	whynot [-d] [-v] <file>
//
// With -d the compiled instruction listing is printed instead of executing.
// With -v debug diagnostics are logged to stderr.
//
// Exit codes: 0 on success, 1 when compilation fails, 2 when execution
// fails, 64 on a usage error (wrong argument count or unreadable file).
// A usage error stops the run immediately rather than falling through to a
// generic failure.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/whynot-lang/whynot/compiler"
	"github.com/whynot-lang/whynot/dis"
	"github.com/whynot-lang/whynot/vm"
)

const (
	exitOK             = 0
	exitCompileFailure = 1
	exitExecFailure    = 2
	exitUsage          = 64
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("whynot", flag.ContinueOnError)
	flags.SetOutput(stderr)
	disassemble := flags.Bool("d", false, "print the compiled instruction listing instead of executing")
	verbose := flags.Bool("v", false, "enable debug logging")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "usage: whynot [-d] [-v] <file>\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return exitUsage
	}

	if flags.NArg() != 1 {
		flags.Usage()
		return exitUsage
	}
	filename := flags.Arg(0)

	source, err := os.ReadFile(filename)
	if err != nil {
		fatal(stderr, err)
		flags.Usage()
		return exitUsage
	}

	logger := zerolog.Nop()
	if *verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: stderr}).
			With().Timestamp().Logger().Level(zerolog.DebugLevel)
	}

	program, err := compiler.Compile(string(source), compiler.WithFilename(filename))
	if err != nil {
		fatal(stderr, fmt.Errorf("failed to compile: %w", err))
		return exitCompileFailure
	}
	stats := program.Stats()
	logger.Debug().
		Str("filename", filename).
		Int("instructions", stats.InstructionCount).
		Int("loops", stats.LoopCount).
		Int("source_bytes", stats.SourceBytes).
		Msg("compilation successful")

	if *disassemble {
		dis.Print(dis.Disassemble(program), stdout)
		return exitOK
	}

	err = vm.Run(ctx, program,
		vm.WithStdin(stdin),
		vm.WithStdout(stdout),
		vm.WithLogger(logger))
	if err != nil {
		fatal(stderr, fmt.Errorf("failed to execute: %w", err))
		return exitExecFailure
	}
	return exitOK
}
