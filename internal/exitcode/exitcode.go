// Package exitcode defines the closed set of process exit statuses and
// the one place they are mapped to the errno numbers callers expect.
package exitcode

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Code is the tool's exit status enumeration.
type Code int

const (
	OK          Code = iota // full success
	Usage                   // invalid arguments / validation failed
	NotFound                // queue does not exist
	Permission              // access denied
	Unavailable             // queue full/empty in non-blocking mode
	NoSubsystem             // kernel lacks message queue support
	Other                   // any other system error
)

// numbers maps the enumeration to the numeric statuses exposed to
// callers. Shell scripts match on these, so the values are the
// conventional errno numbers rather than small sequential codes.
var numbers = map[Code]int{
	OK:          0,
	Usage:       int(unix.EINVAL),
	NotFound:    int(unix.ENOENT),
	Permission:  int(unix.EACCES),
	Unavailable: int(unix.EAGAIN),
	NoSubsystem: int(unix.ENOSYS),
}

// Int returns the process exit status for a code. Other has no fixed
// number; callers carrying a specific errno should use FromError and
// Status instead.
func (c Code) Int() int {
	if n, ok := numbers[c]; ok {
		return n
	}
	return 1
}

// FromError classifies an error chain into a Code.
func FromError(err error) Code {
	if err == nil {
		return OK
	}
	var errno unix.Errno
	if !errors.As(err, &errno) {
		return Other
	}
	switch errno {
	case unix.ENOENT:
		return NotFound
	case unix.EACCES, unix.EPERM:
		return Permission
	case unix.EAGAIN:
		return Unavailable
	case unix.ENOSYS:
		return NoSubsystem
	case unix.EINVAL:
		return Usage
	default:
		return Other
	}
}

// Status extracts the numeric exit status for an error: the underlying
// errno when one is present, 1 otherwise, 0 for nil.
func Status(err error) int {
	if err == nil {
		return 0
	}
	var errno unix.Errno
	if errors.As(err, &errno) {
		return int(errno)
	}
	return 1
}
