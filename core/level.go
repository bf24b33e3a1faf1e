package core

import (
	"github.com/fatih/color"
	"github.com/pkg/errors"
)

// ErrLevelDoesNotExist is returned when a level name has no entry in a
// logger's level table.
var ErrLevelDoesNotExist = errors.New("level does not exist")

// Level is a named severity. Loggers keep a table of them and resolve log
// calls against it; severities order levels, names identify them. Colours
// are the ANSI attributes a colourising sink wraps rendered records in.
type Level struct {
	Name     string
	Severity int
	Colours  []color.Attribute
}

// String returns the level's name.
func (l Level) String() string { return l.Name }

// Names of the built-in levels.
const (
	LevelLog      = "LOG"
	LevelTrace    = "TRACE"
	LevelDebug    = "DEBUG"
	LevelInfo     = "INFO"
	LevelSuccess  = "SUCCESS"
	LevelWarning  = "WARNING"
	LevelError    = "ERROR"
	LevelCritical = "CRITICAL"
)

// Severities of the built-in levels. LOG sits at zero so it passes every
// default severity floor; the rest keep their strict ordering
// TRACE < DEBUG < INFO < SUCCESS < WARNING < ERROR < CRITICAL.
const (
	SeverityLog      = 0
	SeverityTrace    = 5
	SeverityDebug    = 10
	SeverityInfo     = 20
	SeveritySuccess  = 25
	SeverityWarning  = 30
	SeverityError    = 40
	SeverityCritical = 50
)

// DefaultLevels returns a fresh copy of the built-in level table. Each
// logger owns its table, so callers are free to mutate the result.
func DefaultLevels() map[string]Level {
	return map[string]Level{
		LevelLog:      {Name: LevelLog, Severity: SeverityLog},
		LevelTrace:    {Name: LevelTrace, Severity: SeverityTrace, Colours: []color.Attribute{color.FgCyan}},
		LevelDebug:    {Name: LevelDebug, Severity: SeverityDebug, Colours: []color.Attribute{color.FgBlue}},
		LevelInfo:     {Name: LevelInfo, Severity: SeverityInfo},
		LevelSuccess:  {Name: LevelSuccess, Severity: SeveritySuccess, Colours: []color.Attribute{color.FgGreen}},
		LevelWarning:  {Name: LevelWarning, Severity: SeverityWarning, Colours: []color.Attribute{color.FgYellow}},
		LevelError:    {Name: LevelError, Severity: SeverityError, Colours: []color.Attribute{color.FgRed}},
		LevelCritical: {Name: LevelCritical, Severity: SeverityCritical, Colours: []color.Attribute{color.FgWhite, color.BgRed, color.Bold}},
	}
}
