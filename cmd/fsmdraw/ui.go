package main

import "github.com/fatih/color"

// Message palette shared by all subcommands.
var (
	uiBrand  = color.New(color.FgHiCyan, color.Bold)
	uiSubtle = color.New(color.FgHiBlack)
	uiWarn   = color.New(color.FgYellow)
	uiGood   = color.New(color.FgGreen)
	uiBad    = color.New(color.FgRed)
)
