// Command cfgresolve resolves class inheritance in mod config projects and
// prints the merged configs.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ComedicChimera/olive"
	"github.com/pterm/pterm"

	config "github.com/tyen-customs-a3/hemtt-config"
)

var (
	successColorFG = pterm.FgLightGreen
	successStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	warnColorFG    = pterm.FgYellow
	warnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	errorColorFG   = pterm.FgRed
	errorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
)

func main() {
	os.Exit(run())
}

// run executes the main `cfgresolve` application.
func run() int {
	cli := olive.NewCLI("cfgresolve", "cfgresolve is a tool for resolving mod config projects", true)

	resolveCmd := cli.AddSubcommand("resolve", "resolve classes and print their merged configs", true)
	resolveCmd.AddPrimaryArg("project-path", "the path to the project file", true)
	resolveCmd.AddStringArg("class", "c", "comma-separated classes to resolve instead of the project list", false)
	resolveCmd.AddStringArg("indent", "i", "indentation used in rendered output", false)

	checkCmd := cli.AddSubcommand("check", "lint a project without printing configs", true)
	checkCmd.AddPrimaryArg("project-path", "the path to the project file", true)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		printErrorMessage("Usage Error", err)
		return 2
	}

	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "resolve":
		return execResolveCommand(subResult)
	case "check":
		return execCheckCommand(subResult)
	}

	return 0
}

// execResolveCommand executes the resolve subcommand and handles all errors.
func execResolveCommand(result *olive.ArgParseResult) int {
	projectPath, _ := result.PrimaryArg()
	proj, err := loadProject(projectPath)
	if err != nil {
		printErrorMessage("Project Error", err)
		return 1
	}

	session, failed := ingestProject(proj)

	classes := proj.Classes
	if argVal, ok := result.Arguments["class"]; ok {
		classes = splitClassList(argVal.(string))
	}
	if len(classes) == 0 {
		printErrorMessage("Project Error", errors.New("no classes requested: set [project] classes or pass --class"))
		return 1
	}

	fopt := &config.FormatOptions{}
	if argVal, ok := result.Arguments["indent"]; ok {
		fopt.Indent = argVal.(string)
	}

	for _, name := range classes {
		table, err := session.Resolve(name)
		if err != nil {
			printErrorMessage("Resolve Error", err)
			failed = true
			continue
		}

		out, err := config.Format(table, fopt)
		if err != nil {
			printErrorMessage("Format Error", err)
			failed = true
			continue
		}

		os.Stdout.Write(out)
	}

	if failed {
		return 1
	}

	return 0
}

// execCheckCommand executes the check subcommand and handles all errors.
func execCheckCommand(result *olive.ArgParseResult) int {
	projectPath, _ := result.PrimaryArg()
	proj, err := loadProject(projectPath)
	if err != nil {
		printErrorMessage("Project Error", err)
		return 1
	}

	session, failed := ingestProject(proj)
	for _, d := range session.Check() {
		printDiagnostic(d)
		if d.Level == config.DiagError {
			failed = true
		}
	}

	if failed {
		return 1
	}

	printInfoMessage("Check Passed", fmt.Sprintf("%s: %d sources clean", proj.Name, len(proj.Sources)))
	return 0
}

// ingestProject loads every project source into a fresh session, printing
// all diagnostics. It reports whether any of them was an error.
func ingestProject(proj *project) (*config.Session, bool) {
	session := config.NewSession(&config.Options{Macros: proj.macroResolver()})
	failed := false
	for _, d := range session.IngestAll(proj.sourceTexts()) {
		printDiagnostic(d)
		if d.Level == config.DiagError {
			failed = true
		}
	}

	return session, failed
}

// printDiagnostic prints one parse or lint diagnostic to the console.
func printDiagnostic(d config.Diagnostic) {
	if d.Level == config.DiagError {
		printErrorMessage("Config Error", errors.New(d.String()))
		return
	}

	printWarningMessage("Config Warning", d.String())
}

// printErrorMessage prints a standard Go error to the console.
func printErrorMessage(tag string, err error) {
	errorStyleBG.Print(tag)
	errorColorFG.Println(" " + err.Error())
}

// printWarningMessage prints a warning message to the console.
func printWarningMessage(tag, msg string) {
	warnStyleBG.Print(tag)
	warnColorFG.Println(" " + msg)
}

// printInfoMessage prints an informational message to the user.
func printInfoMessage(tag, msg string) {
	successStyleBG.Print(tag)
	successColorFG.Println(" " + msg)
}
