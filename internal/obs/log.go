// Package obs holds the ambient observability stack shared by every
// room-runtime package: leveled logging and periodic stats reporting,
// both backed by pterm the way the rest of this corpus does it.
package obs

import "github.com/pterm/pterm"

func init() {
	pterm.DefaultLogger.ShowTime = true
	pterm.DefaultLogger.TimeFormat = "02 Jan 2006 15:04:05"
}

// Leveled logging functions backed by pterm prefixed printers. All
// output goes to stdout by default (pterm's default).

func LogDebug(format string, args ...any) {
	pterm.Debug.Printfln(format, args...)
}

func LogInfo(format string, args ...any) {
	pterm.Info.Printfln(format, args...)
}

func LogSuccess(format string, args ...any) {
	pterm.Success.Printfln(format, args...)
}

func LogWarning(format string, args ...any) {
	pterm.Warning.Printfln(format, args...)
}

func LogError(format string, args ...any) {
	pterm.Error.Printfln(format, args...)
}

// EnableDebug configures the logger to show debug messages.
func EnableDebug() {
	pterm.DefaultLogger.Level = pterm.LogLevelDebug
	pterm.EnableDebugMessages()
}
