package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := runCheck(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `stackcheck - Remote Apache & PHP version check

Usage:
  stackcheck [options]

Prompts for a target URL, reads the Server and X-Powered-By headers it
returns, and compares the disclosed versions with the latest releases.

Options:`)
}
