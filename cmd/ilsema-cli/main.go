// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"ilsema/internal/ast"
	"ilsema/internal/diag"
	"ilsema/internal/dialect"
	"ilsema/internal/object"
	"ilsema/internal/semantic"
)

// There is no text parser in this module's scope (SPEC_FULL.md's
// Non-goals); the driver demonstrates the pipeline against a small fixture
// object built directly through internal/ast's constructor functions,
// standing in for whatever upstream tool produces a real AST.
func main() {
	vmName := flag.String("vm-version", "istanbul", "VM version to target: homestead, byzantium, constantinople, istanbul")
	maxErrors := flag.Int("max-errors", 0, "stop after this many diagnostics (0 = unlimited)")
	flag.Parse()

	vm, err := parseVMVersion(*vmName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	startTime := time.Now()

	gen := ast.NewIDGen()
	obj := buildFixtureObject(gen)
	dlct := dialect.NewEVMDialect(vm)

	reporter := diag.NewReporter(obj.Name, "", *maxErrors)
	analyzer := semantic.NewAnalyzer(gen, dlct, reporter, nil, obj.DataNames())
	ok := analyzer.Analyze(obj.Code)

	for _, d := range reporter.Diagnostics() {
		fmt.Print(reporter.FormatError(d))
	}

	duration := time.Since(startTime)
	formattedDuration := formatDuration(duration)

	if ok && !reporter.HasErrors() {
		fmt.Println(obj.String())
		color.Green("analysis of %q succeeded in %s under VM version %q", obj.Name, formattedDuration, vm.Name())
	} else {
		color.Red("analysis of %q failed after %s with %d diagnostic(s)", obj.Name, formattedDuration, reporter.ErrorCount())
		os.Exit(1)
	}
}

func parseVMVersion(name string) (dialect.VMVersion, error) {
	switch name {
	case "homestead":
		return dialect.Homestead(), nil
	case "byzantium":
		return dialect.Byzantium(), nil
	case "constantinople":
		return dialect.Constantinople(), nil
	case "istanbul":
		return dialect.Istanbul(), nil
	default:
		return dialect.VMVersion{}, fmt.Errorf("unknown VM version %q", name)
	}
}

// buildFixtureObject assembles a tiny object with one user function
// (computing the sum of two words) and a data item, exercising the
// FunctionDefinition, VariableDeclaration, FunctionCall, and Object Data
// Names paths in a single run.
func buildFixtureObject(gen *ast.IDGen) *object.Object {
	pos := ast.Position{Filename: "fixture", Line: 1, Column: 1}

	sumFn := ast.NewFunctionDefinition(gen, pos, "sum",
		[]ast.TypedName{{Name: "a", Type: "u256"}, {Name: "b", Type: "u256"}},
		[]ast.TypedName{{Name: "result", Type: "u256"}},
		ast.NewBlock(gen, pos,
			ast.NewAssignment(gen, pos,
				ast.NewFunctionCall(gen, pos, "add",
					ast.NewIdentifier(gen, pos, "a"),
					ast.NewIdentifier(gen, pos, "b")),
				"result"),
		),
	)

	callResult := ast.NewVariableDeclaration(gen, pos,
		ast.NewFunctionCall(gen, pos, "sum",
			ast.NewLiteral(gen, pos, ast.LiteralNumber, "1", "u256"),
			ast.NewLiteral(gen, pos, ast.LiteralNumber, "2", "u256")),
		ast.TypedName{Name: "total", Type: "u256"},
	)

	storeResult := ast.NewExpressionStatement(gen, pos,
		ast.NewFunctionCall(gen, pos, "sstore",
			ast.NewLiteral(gen, pos, ast.LiteralNumber, "0", "u256"),
			ast.NewIdentifier(gen, pos, "total")))

	code := ast.NewBlock(gen, pos, sumFn, callResult, storeResult)

	return &object.Object{
		Name: "Fixture",
		Code: code,
		Data: []*object.Data{{Name: "greeting", Content: "68656c6c6f"}},
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
