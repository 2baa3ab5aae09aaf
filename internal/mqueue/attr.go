package mqueue

// Attr mirrors the kernel's struct mq_attr: four live fields followed by
// four reserved longs, zeroed on output and ignored on input.
type Attr struct {
	Flags   int64
	MaxMsg  int64
	MsgSize int64
	CurMsgs int64
}
