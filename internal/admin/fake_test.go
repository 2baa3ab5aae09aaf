package admin

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/mqtools/mqctl/internal/mqueue"
)

// fakeKernel models just enough of the queue subsystem to exercise the
// dispatchers: named queues with attributes, priority-ordered messages,
// ownership, and a journal of the syscall-level operations so tests can
// assert ordering (unlink before create, no unlink on a match).
type fakeKernel struct {
	queues    map[string]*fakeQueue
	journal   []string
	unlinkErr map[string]error
}

type fakeQueue struct {
	attr  mqueue.Attr
	owner Ownership
	msgs  []fakeMessage
}

type fakeMessage struct {
	data []byte
	prio uint
}

func newFakeKernel() *fakeKernel {
	return &fakeKernel{
		queues:    make(map[string]*fakeQueue),
		unlinkErr: make(map[string]error),
	}
}

func (k *fakeKernel) addQueue(name string, size, depth int64, owner Ownership) *fakeQueue {
	q := &fakeQueue{
		attr:  mqueue.Attr{MsgSize: size, MaxMsg: depth},
		owner: owner,
	}
	k.queues[name] = q
	return q
}

func (k *fakeKernel) Open(name string, flags int) (Handle, error) {
	q, ok := k.queues[name]
	if !ok {
		return nil, fmt.Errorf("mq_open %s: %w", name, unix.ENOENT)
	}
	k.journal = append(k.journal, "open "+name)
	return &fakeHandle{k: k, name: name, q: q}, nil
}

func (k *fakeKernel) Create(name string, flags int, mode uint32, attr mqueue.Attr) (Handle, error) {
	k.journal = append(k.journal, "create "+name)
	q := &fakeQueue{
		attr:  mqueue.Attr{Flags: attr.Flags, MaxMsg: attr.MaxMsg, MsgSize: attr.MsgSize},
		owner: Ownership{Mode: mode & 0o7777},
	}
	k.queues[name] = q
	return &fakeHandle{k: k, name: name, q: q}, nil
}

func (k *fakeKernel) Unlink(name string) error {
	if err, ok := k.unlinkErr[name]; ok {
		return err
	}
	if _, ok := k.queues[name]; !ok {
		return fmt.Errorf("mq_unlink %s: %w", name, unix.ENOENT)
	}
	k.journal = append(k.journal, "unlink "+name)
	delete(k.queues, name)
	return nil
}

type fakeHandle struct {
	k    *fakeKernel
	name string
	q    *fakeQueue
}

func (h *fakeHandle) Close() error {
	h.k.journal = append(h.k.journal, "close "+h.name)
	return nil
}

func (h *fakeHandle) Attributes() (mqueue.Attr, error) {
	attr := h.q.attr
	attr.CurMsgs = int64(len(h.q.msgs))
	return attr, nil
}

func (h *fakeHandle) Send(payload []byte, prio uint) error {
	if int64(len(h.q.msgs)) >= h.q.attr.MaxMsg {
		return fmt.Errorf("mq_send %s: %w", h.name, unix.EAGAIN)
	}
	data := make([]byte, len(payload))
	copy(data, payload)
	h.q.msgs = append(h.q.msgs, fakeMessage{data: data, prio: prio})
	return nil
}

func (h *fakeHandle) Receive(buf []byte) (int, uint, error) {
	if len(h.q.msgs) == 0 {
		return 0, 0, fmt.Errorf("mq_receive %s: %w", h.name, unix.EAGAIN)
	}
	// Highest priority first, FIFO within a priority.
	best := 0
	for i, m := range h.q.msgs {
		if m.prio > h.q.msgs[best].prio {
			best = i
		}
	}
	msg := h.q.msgs[best]
	h.q.msgs = append(h.q.msgs[:best], h.q.msgs[best+1:]...)
	n := copy(buf, msg.data)
	return n, msg.prio, nil
}

func (h *fakeHandle) Stat() (Ownership, error) {
	return h.q.owner, nil
}

func (h *fakeHandle) Chown(uid, gid uint32) error {
	h.k.journal = append(h.k.journal, fmt.Sprintf("chown %s %d:%d", h.name, uid, gid))
	h.q.owner.UID = uid
	h.q.owner.GID = gid
	return nil
}

func (h *fakeHandle) Chmod(mode uint32) error {
	h.k.journal = append(h.k.journal, fmt.Sprintf("chmod %s %o", h.name, mode))
	h.q.owner.Mode = mode & 0o7777
	return nil
}
