package exitcode

import (
	"errors"
	"fmt"
	"testing"

	"golang.org/x/sys/unix"
)

func TestFromError(t *testing.T) {
	cases := []struct {
		err  error
		want Code
	}{
		{nil, OK},
		{fmt.Errorf("mq_open /q: %w", unix.ENOENT), NotFound},
		{fmt.Errorf("fchown /q: %w", unix.EACCES), Permission},
		{fmt.Errorf("fchown /q: %w", unix.EPERM), Permission},
		{fmt.Errorf("mq_send /q: %w", unix.EAGAIN), Unavailable},
		{fmt.Errorf("mq_open /q: %w", unix.ENOSYS), NoSubsystem},
		{fmt.Errorf("mq_open /q: %w", unix.EINVAL), Usage},
		{fmt.Errorf("refusing: %w", unix.EBUSY), Other},
		{errors.New("no errno here"), Other},
	}
	for _, tc := range cases {
		if got := FromError(tc.err); got != tc.want {
			t.Errorf("FromError(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestStatusCarriesErrno(t *testing.T) {
	if got := Status(nil); got != 0 {
		t.Errorf("Status(nil) = %d", got)
	}
	err := fmt.Errorf("mq_unlink /q: %w", unix.ENOENT)
	if got := Status(err); got != int(unix.ENOENT) {
		t.Errorf("Status(ENOENT) = %d, want %d", got, int(unix.ENOENT))
	}
	if got := Status(errors.New("plain")); got != 1 {
		t.Errorf("Status(plain) = %d, want 1", got)
	}
}

func TestIntMapping(t *testing.T) {
	cases := map[Code]int{
		OK:          0,
		Usage:       int(unix.EINVAL),
		NotFound:    int(unix.ENOENT),
		Permission:  int(unix.EACCES),
		Unavailable: int(unix.EAGAIN),
		NoSubsystem: int(unix.ENOSYS),
		Other:       1,
	}
	for code, want := range cases {
		if got := code.Int(); got != want {
			t.Errorf("%v.Int() = %d, want %d", code, got, want)
		}
	}
}
