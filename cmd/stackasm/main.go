// Command stackasm is an example host for the stackasm engine. It runs a
// script file, or starts a small REPL when invoked without one.
//
// The engine itself is sandboxed: scripts have no access to the system they
// run on. This host provides exactly one service: when a script yields, the
// host prints the operand stack, pauses briefly so the output stays
// readable, and resumes the evaluation.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/peterh/liner"

	"github.com/stackasm/stackasm"
)

const (
	appName     = "stackasm"
	historyFile = ".stackasm_history"
	promptMain  = "==> "
)

var yieldPause = flag.Duration("pause", 20*time.Millisecond, "pause after each yield")

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	flag.Usage = usage
	flag.Parse()

	switch flag.NArg() {
	case 0:
		os.Exit(repl())
	case 1:
		os.Exit(runFile(flag.Arg(0)))
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  %s [flags] <script>    Run a script file.
  %s [flags]             Start the REPL.

Flags:
`, appName, appName)
	flag.PrintDefaults()
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func runFile(path string) int {
	srcBytes, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, path, err)
		return 1
	}
	src := string(srcBytes)

	script := stackasm.Compile(src)
	eval := stackasm.NewEval(script)

	for {
		effect := eval.Run()
		switch effect {
		case stackasm.OutOfOperators, stackasm.Return:
			fmt.Fprintln(os.Stderr)
			fmt.Fprintln(os.Stderr, "Evaluation has finished.")
			printStack(eval.OperandStack())
			return 0

		case stackasm.Yield:
			printStack(eval.OperandStack())
			eval.ClearEffect()

			// Let's not run scripts that fast. Give the user a chance to
			// read the output.
			time.Sleep(*yieldPause)

		default:
			fmt.Fprintln(os.Stderr)
			fmt.Fprintf(os.Stderr, "Script triggered effect: %s\n", effect)
			fmt.Fprint(os.Stderr, stackasm.ReportEffect(src, script, eval.NextOperator()-1, effect))
			printStack(eval.OperandStack())
			return 2
		}
	}
}

func printStack(stack *stackasm.OperandStack) {
	parts := make([]string, 0, stack.Len())
	for _, v := range stack.U32s() {
		parts = append(parts, fmt.Sprint(v))
	}
	fmt.Printf("Stack: %s\n", strings.Join(parts, " "))
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

// The engine has no incremental evaluation: operator indices are only
// meaningful within one compiled script. So the REPL accumulates source,
// recompiles the whole program after every input line, and evaluates it on a
// fresh Eval. Compilation is a single pass over the text; that's cheap. A
// line whose evaluation ends in an error effect is dropped from the
// accumulated program.
func repl() int {
	fmt.Printf("%s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.\n", appName)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	var program strings.Builder

	for {
		line, err := ln.Prompt(promptMain)
		if err != nil {
			fmt.Println()
			return 0
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return 0
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		candidate := program.String() + line + "\n"
		report, effect, stack := evalToEnd(candidate)

		if effect.IsError() {
			fmt.Fprint(os.Stderr, red(report))
			continue
		}

		program.Reset()
		program.WriteString(candidate)
		fmt.Println(blue(stack))
		ln.AppendHistory(line)
	}
}

// maxReplYields bounds how often the REPL resumes a yielding program, so a
// `yield`-in-a-loop script can't hang the prompt.
const maxReplYields = 10000

// evalToEnd compiles and runs the program, resuming through yields (the
// REPL shows only the final stack). It returns a rendered report for error
// effects, the terminal effect, and the final stack rendering.
func evalToEnd(src string) (report string, effect stackasm.Effect, stack string) {
	script := stackasm.Compile(src)
	eval := stackasm.NewEval(script)

	for yields := 0; ; yields++ {
		effect = eval.Run()
		if effect == stackasm.Yield && yields < maxReplYields {
			eval.ClearEffect()
			continue
		}
		break
	}

	if effect.IsError() {
		report = stackasm.ReportEffect(src, script, eval.NextOperator()-1, effect)
	}

	parts := make([]string, 0, eval.OperandStack().Len())
	for _, v := range eval.OperandStack().U32s() {
		parts = append(parts, fmt.Sprint(v))
	}
	return report, effect, "Stack: " + strings.Join(parts, " ")
}
