package admin

import (
	"fmt"

	"github.com/mqtools/mqctl/internal/opts"
)

// Info prints the labeled attribute block for every queue in the
// request. QSIZE is an estimate: message size times current depth, not
// the exact byte count of the buffered payloads.
func (a *Admin) Info(r *opts.Request) int {
	var w worst
	for _, queue := range r.Queues {
		if err := a.infoOne(queue); err != nil {
			fmt.Fprintf(a.Err, "error: %v\n", err)
			w.observe(err)
		}
	}
	return w.status
}

func (a *Admin) infoOne(queue string) error {
	handle, err := a.Queues.Open(queue, ReadOnly)
	if err != nil {
		return fmt.Errorf("mq_open(info): %w", err)
	}
	actual, err := handle.Attributes()
	if err != nil {
		handle.Close()
		return fmt.Errorf("mq_getattr(info): %w", err)
	}
	fmt.Fprintf(a.Out, "queue: '%s'\nQSIZE: %d\nMSGSIZE: %d\nMAXMSG: %d\nCURMSG: %d\nflags: %03d\n",
		queue, actual.MsgSize*actual.CurMsgs, actual.MsgSize, actual.MaxMsg, actual.CurMsgs, actual.Flags)
	// Ownership is informational; a stat failure does not fail the verb.
	if status, err := handle.Stat(); err != nil {
		fmt.Fprintf(a.Err, "warning: fstat(info): %v\n", err)
	} else {
		fmt.Fprintf(a.Out, "UID: %d\nGID: %d\nMODE: %03o\n", status.UID, status.GID, status.Mode)
	}
	return handle.Close()
}
