package admin

import (
	"fmt"

	"github.com/mqtools/mqctl/internal/opts"
)

// Send delivers every message to every queue: the Cartesian product of
// the two lists, in the order given, each pair independent of the rest.
func (a *Admin) Send(r *opts.Request) int {
	var w worst
	for _, queue := range r.Queues {
		for _, content := range r.Contents {
			if err := a.sendOne(queue, content, r.Priority); err != nil {
				fmt.Fprintf(a.Err, "error: %v\n", err)
				w.observe(err)
			}
		}
	}
	return w.status
}

func (a *Admin) sendOne(queue, content string, priority uint) error {
	handle, err := a.Queues.Open(queue, WriteOnly)
	if err != nil {
		return fmt.Errorf("mq_open(send): %w", err)
	}
	actual, err := handle.Attributes()
	if err != nil {
		handle.Close()
		return fmt.Errorf("mq_getattr(send): %w", err)
	}
	payload := []byte(content)
	if int64(len(payload)) > actual.MsgSize {
		fmt.Fprintf(a.Err, "warning: truncating message to %d characters.\n", actual.MsgSize)
		payload = payload[:actual.MsgSize]
	}
	if err := handle.Send(payload, priority); err != nil {
		handle.Close()
		return fmt.Errorf("mq_send: %w", err)
	}
	return handle.Close()
}
