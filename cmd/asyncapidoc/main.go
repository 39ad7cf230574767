// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Anshul Agrawal
// Source: github.com/anshul-agrawal-ctct/asyncapidoc

// asyncapidoc generates browsable HTML docs from AsyncAPI descriptions with
// FlatBuffers message payloads.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/anshul-agrawal-ctct/asyncapidoc"
	"github.com/anshul-agrawal-ctct/asyncapidoc/internal/logging"
	"github.com/anshul-agrawal-ctct/asyncapidoc/internal/server"
)

var (
	Version    = "dev"
	Commit     = "unknown"
	BuildTime  = time.Unix(0, 0)
	URL        = "https://github.com/anshul-agrawal-ctct/asyncapidoc"
	_buildTime string
)

// cliOptions describes asyncapidoc CLI flags and subcommands.
type cliOptions struct {
	Generate generateCommand `command:"generate" description:"Generate HTML documentation from AsyncAPI documents"`
	Serve    serveCommand    `command:"serve" description:"Generate documentation, watch inputs, and serve with live reload"`
	Version  versionCommand  `command:"version" description:"Print version information"`
}

// buildFlags groups the input and output selection shared by subcommands.
type buildFlags struct {
	APIPath   string `short:"a" long:"api" description:"AsyncAPI document file or directory" default:"./api"`
	SchemaDir string `short:"s" long:"schemas" description:"Base directory for FlatBuffers schema references" default:"./flatbuffers"`
	OutputDir string `short:"o" long:"output" description:"Output directory for generated pages" default:"./docs"`
	LogLevel  string `long:"log-level" description:"Diagnostic log level" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"info"`
}

// options converts CLI flags into build options with a console logger.
func (f buildFlags) options(runner *cliRunner) asyncapidoc.Options {
	logger := logging.New(runner.stderr, f.LogLevel)
	return asyncapidoc.Options{
		APIPath:   f.APIPath,
		SchemaDir: f.SchemaDir,
		OutputDir: f.OutputDir,
		Logger:    &logger,
	}
}

// generateCommand runs one documentation build.
type generateCommand struct {
	runner *cliRunner

	BuildFlags buildFlags `group:"Documentation Build"`
}

// Execute runs the generate subcommand.
func (command *generateCommand) Execute(_ []string) error {
	return command.runner.runGenerate(command.BuildFlags)
}

// serveCommand builds the documentation and serves it with live reload.
type serveCommand struct {
	runner *cliRunner

	Addr       string     `long:"addr" description:"Listen address for the preview server" default:":8080"`
	BuildFlags buildFlags `group:"Documentation Build"`
}

// Execute runs the serve subcommand.
func (command *serveCommand) Execute(_ []string) error {
	return command.runner.runServe(command.Addr, command.BuildFlags)
}

// versionCommand prints version information.
type versionCommand struct {
	runner *cliRunner
}

// Execute runs the version subcommand.
func (command *versionCommand) Execute(_ []string) error {
	command.runner.printVersionInfo()
	return nil
}

// cliRunner executes CLI operations with custom IO streams.
type cliRunner struct {
	stdout      io.Writer
	stderr      io.Writer
	programName string
}

func init() {
	if _buildTime != "" {
		if t, err := time.Parse(time.RFC3339, _buildTime); err == nil {
			BuildTime = t.UTC()
		}
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes CLI logic and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	programName := strings.TrimSpace(os.Args[0])
	if programName == "" {
		programName = "asyncapidoc"
	}

	runner := cliRunner{
		programName: filepath.Base(programName),
		stdout:      stdout,
		stderr:      stderr,
	}

	return runner.run(args)
}

// run parses CLI args and maps errors to process exit codes.
func (runner *cliRunner) run(args []string) int {
	err := parseCLIArgs(args, runner)
	if err == nil {
		return 0
	}

	var flagErr *flags.Error
	if errors.As(err, &flagErr) {
		if flagErr.Type == flags.ErrHelp {
			writeCLIError(runner.stdout, err)
			return 0
		}

		writeCLIError(runner.stderr, err)
		return 2
	}

	writeCLIError(runner.stderr, err)
	return 1
}

// runGenerate executes one build and reports the produced pages.
func (runner *cliRunner) runGenerate(build buildFlags) error {
	result, err := asyncapidoc.GenerateAll(build.options(runner))
	if err != nil {
		return fmt.Errorf("generate documentation: %w", err)
	}

	for _, page := range result.Pages {
		if _, err := fmt.Fprintln(runner.stdout, filepath.Join(build.OutputDir, page.File)); err != nil {
			return fmt.Errorf("write page list to stdout: %w", err)
		}
	}

	if len(result.Failed) > 0 {
		return fmt.Errorf("generate documentation: %d document(s) failed", len(result.Failed))
	}

	return nil
}

// runServe builds the documentation and blocks serving it until interrupted.
func (runner *cliRunner) runServe(addr string, build buildFlags) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.New(runner.stderr, build.LogLevel)
	preview := server.New(addr, build.options(runner), logger)
	if err := preview.Run(ctx); err != nil {
		return fmt.Errorf("serve documentation: %w", err)
	}

	return nil
}

// writeCLIError writes a plain-text CLI error line to the selected stream.
func writeCLIError(output io.Writer, err error) {
	if err == nil {
		return
	}

	_, _ = fmt.Fprintln(output, err.Error())
}

// parseCLIArgs parses CLI arguments and triggers selected subcommand execution.
func parseCLIArgs(args []string, runner *cliRunner) error {
	options := &cliOptions{}
	options.Generate.runner = runner
	options.Serve.runner = runner
	options.Version.runner = runner

	parser := flags.NewParser(options, flags.HelpFlag)
	parser.Name = runner.programName
	applyCommandLongDescriptions(parser, runner.programName)

	_, err := parser.ParseArgs(args)
	if err != nil {
		return err
	}

	return nil
}

// applyCommandLongDescriptions configures detailed command help text with examples.
func applyCommandLongDescriptions(parser *flags.Parser, programName string) {
	descriptions := map[string]string{
		"generate": strings.TrimSpace(fmt.Sprintf(`
Generate one HTML page per AsyncAPI document plus a searchable index.
FlatBuffers payload schemas referenced by messages are resolved against the
schema directory and rendered as field tables.

Examples:
> $ %s generate
> $ %s generate -a ./api -s ./flatbuffers -o ./docs
`, programName, programName)),
		"serve": strings.TrimSpace(fmt.Sprintf(`
Generate documentation, then watch the API and schema directories and serve
the output with live browser reload.

Examples:
> $ %s serve
> $ %s serve --addr :9000 -a ./api -s ./flatbuffers
`, programName, programName)),
	}

	for commandName, description := range descriptions {
		command := parser.Find(commandName)
		if command == nil {
			continue
		}

		command.LongDescription = description
	}
}

func (runner *cliRunner) printVersionInfo() {
	_, _ = fmt.Fprintf(runner.stdout, `url:      %s
file:     %s
version:  %s
commit:   %s
built:    %s
`, URL, os.Args[0], Version, Commit, BuildTime)
}
