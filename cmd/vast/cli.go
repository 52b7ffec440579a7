package main

import (
	"context"
	"io"

	"github.com/courseaudit/vast"
	"github.com/courseaudit/vast/scan"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Scanner *scan.Scanner
	Writer  vast.ReportWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scan ScanCmd `cmd:"" help:"Audit a course's media captions and accessibility"`
	Init InitCmd `cmd:"" help:"Create the configuration file"`
}

// ScanCmd is the "scan" subcommand.
type ScanCmd struct {
	Course      string `arg:"" help:"Course ID or a pasted course URL"`
	Out         string `short:"o" default:"vast-report" help:"Report output directory"`
	Concurrency int    `short:"c" default:"10" help:"Concurrent resolution limit"`
	Verbose     bool   `short:"v" help:"Enable debug logging"`
	DebugHTTP   bool   `name:"debug-http" help:"Log every HTTP request and response"`
}

// InitCmd is the "init" subcommand.
type InitCmd struct{}
