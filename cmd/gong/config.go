package main

// Flag names for Viper binding
const (
	// Global flags
	FlagVerbose  = "verbose"
	FlagConfig   = "config"
	FlagLogFile  = "log-file"
	FlagEventLog = "event-log"

	// Start command flags
	FlagRest       = "rest"
	FlagRound      = "round"
	FlagRounds     = "rounds"
	FlagCue        = "cue"
	FlagCueCommand = "cue-command"
	FlagTUI        = "tui"
	FlagHeadless   = "headless"

	// Status command flags
	FlagJSON = "json"

	// Events command flags
	FlagFollow = "follow"
	FlagCount  = "count"
)
