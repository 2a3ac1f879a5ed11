// Package main provides the uploader CLI for publishing installers to S3.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Exit codes shared by all subcommands
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Getenv)
	stop()
	os.Exit(code)
}

// run dispatches to a subcommand; no arguments means "upload"
func run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	command := "upload"
	if len(args) > 0 && !isFlag(args[0]) {
		command = args[0]
		args = args[1:]
	}

	// Dispatch to subcommand
	switch command {
	case "upload":
		return runUpload(ctx, args, stdout, stderr, getenv)
	case "plan":
		return runPlan(ctx, args, stdout, stderr, getenv)
	case "help", "-h", "--help":
		printUsage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", command)
		printUsage(stderr)
		return exitUsage
	}
}

func isFlag(arg string) bool {
	return len(arg) > 1 && arg[0] == '-' && arg != "-h" && arg != "--help"
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `uploader - Publish application installers to S3

Usage:
  uploader [command] [options]

Commands:
  upload   Upload this host's installers and print download URLs (default)
  plan     Show which installers would be uploaded and where
  help     Show this help

Use "uploader <command> --help" for more information about a command.`)
}
