package admin

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// List enumerates queues through the mqueue filesystem mount. The
// kernel exposes one entry per queue; lexical order comes from ReadDir.
func (a *Admin) List(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			err = fmt.Errorf("mqueue filesystem not mounted at %s: %w", dir, unix.ENOSYS)
		}
		fmt.Fprintf(a.Err, "error: %v\n", err)
		var w worst
		w.observe(err)
		return w.status
	}
	for _, entry := range entries {
		fmt.Fprintf(a.Out, "/%s\n", entry.Name())
	}
	return 0
}
