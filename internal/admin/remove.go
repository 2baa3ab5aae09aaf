package admin

import (
	"fmt"

	"github.com/mqtools/mqctl/internal/opts"
)

// Remove unlinks every named queue. A failure on one name never blocks
// the attempt on the next.
func (a *Admin) Remove(r *opts.Request) int {
	var w worst
	for _, queue := range r.Queues {
		if err := a.Queues.Unlink(queue); err != nil {
			fmt.Fprintf(a.Err, "error: %v\n", err)
			w.observe(err)
		}
	}
	return w.status
}
