package term

import "errors"

var (
	// ErrSpawnFailed means the CLI binary could not be started in a pty.
	// Allocating the pty and starting the process are a single operation in
	// creack/pty, so a pty allocation failure surfaces as this error too.
	ErrSpawnFailed = errors.New("spawn CLI in pty")
	// ErrReadFailed means the pty read loop failed before output completed.
	ErrReadFailed = errors.New("read pty output")
	// ErrTimeout means the fetch deadline elapsed before the output was
	// complete. Partial text is returned alongside it.
	ErrTimeout = errors.New("fetch timed out")
	// ErrTerminalIncompatible means the CLI reported it cannot run in the
	// emulated terminal.
	ErrTerminalIncompatible = errors.New("terminal incompatible")
)
