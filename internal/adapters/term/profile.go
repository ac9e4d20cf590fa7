package term

import "time"

// Profile describes how to drive one interactive CLI: how to launch it, how
// big its emulated terminal is, and how to recognize the phases of its
// output.
type Profile struct {
	// Tool labels log lines and errors.
	Tool string
	// Binary and Args launch the child process.
	Binary string
	Args   []string
	// Env entries are appended on top of the inherited environment.
	Env []string
	// Rows and Cols size the pseudo-terminal.
	Rows uint16
	Cols uint16

	// Command, when non-empty, is typed into the CLI once a ready marker
	// appears on screen. It is wrapped in carriage returns on send.
	Command string
	// ReadyMarkers are substrings of the stripped screen that signal the
	// CLI is accepting input.
	ReadyMarkers []string
	// ContinueMarkers are substrings of a confirmation prompt that is
	// dismissed with a bare newline.
	ContinueMarkers []string

	// Complete reports whether the stripped screen holds the final output.
	// It may keep state across calls within a single fetch.
	Complete func(screen string) bool
	// Failure inspects the stripped screen for fatal conditions and
	// returns a non-nil error to abort the fetch. Optional.
	Failure func(screen string) error

	// Timeout bounds the whole fetch.
	Timeout time.Duration
	// ResendGrace is how long to wait after sending Command before
	// resending it once. Zero disables the resend.
	ResendGrace time.Duration
}
