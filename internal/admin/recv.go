package admin

import (
	"fmt"

	"github.com/mqtools/mqctl/internal/opts"
)

// Recv drains one message from the single queue in the request and
// prints its priority and payload. Whether the call waits for a message
// follows the descriptor's blocking mode; the tool adds no timeout of
// its own.
func (a *Admin) Recv(r *opts.Request) int {
	if err := a.recvOne(r.Queues[0]); err != nil {
		fmt.Fprintf(a.Err, "error: %v\n", err)
		var w worst
		w.observe(err)
		return w.status
	}
	return 0
}

func (a *Admin) recvOne(queue string) error {
	handle, err := a.Queues.Open(queue, ReadOnly)
	if err != nil {
		return fmt.Errorf("mq_open(recv): %w", err)
	}
	actual, err := handle.Attributes()
	if err != nil {
		handle.Close()
		return fmt.Errorf("mq_getattr(recv): %w", err)
	}
	buf := make([]byte, actual.MsgSize)
	n, priority, err := handle.Receive(buf)
	if err != nil {
		handle.Close()
		return fmt.Errorf("mq_receive: %w", err)
	}
	fmt.Fprintf(a.Out, "[%d]: %s\n", priority, buf[:n])
	return handle.Close()
}
