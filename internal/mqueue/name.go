package mqueue

import "fmt"

const (
	// PrioMax bounds the priority domain. POSIX guarantees at least 32
	// levels and the portable tools settle on 64; pinning it keeps the
	// default priority stable across kernels that allow far more.
	PrioMax = 64

	// NameMax bounds a queue name, leading slash included.
	NameMax = 4096
)

// CheckName enforces the queue naming contract: exactly one leading
// slash, no other slash, bounded length. The returned error names the
// rule that failed.
func CheckName(name string) error {
	if len(name) == 0 || name[0] != '/' {
		return fmt.Errorf("queue name [%s] must start with '/'", clip(name))
	}
	if len(name) > NameMax {
		return fmt.Errorf("queue name [%s...] may not be longer than %d", clip(name), NameMax)
	}
	for _, c := range name[1:] {
		if c == '/' {
			return fmt.Errorf("queue name [%s] - only one '/' permitted", clip(name))
		}
	}
	return nil
}

func clip(name string) string {
	if len(name) > NameMax {
		return name[:NameMax]
	}
	return name
}
