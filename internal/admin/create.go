package admin

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/mqtools/mqctl/internal/mqueue"
	"github.com/mqtools/mqctl/internal/opts"
)

// Create runs the reconciling creator over every queue in the request.
// Queues are independent: one failure is reported and the batch moves
// on. The return value is the process exit status.
func (a *Admin) Create(r *opts.Request) int {
	var w worst
	for _, queue := range r.Queues {
		if err := a.createOne(queue, *r); err != nil {
			fmt.Fprintf(a.Err, "error: %v\n", err)
			w.observe(err)
		}
	}
	return w.status
}

// createOne reconciles one queue against the request. The request is
// passed by value: the existence probe and per-queue defaulting must not
// leak into the next queue in the batch.
func (a *Admin) createOne(queue string, r opts.Request) error {
	flags := ReadWrite
	var attrFlags int64
	if !r.Block {
		flags |= NonBlock
		attrFlags |= NonBlock
	}

	handle, err := a.Queues.Open(queue, flags)
	r.Exists = err == nil

	recreated := false
	if !r.Exists {
		// A new queue needs explicit size and depth; an existing one
		// supplies its own.
		if err := a.validateSizeDepth(&r); err != nil {
			return err
		}
		handle, err = a.Queues.Create(queue, flags, r.Mode, mqueue.Attr{
			Flags:   attrFlags,
			MaxMsg:  r.Depth,
			MsgSize: r.Size,
		})
		if err != nil {
			return fmt.Errorf("mq_open(create): %w", err)
		}
	} else {
		handle, recreated, err = a.reconcile(queue, handle, r, flags, attrFlags)
		if err != nil {
			return err
		}
	}

	if r.SetUser || r.SetGroup {
		if err := applyOwnership(handle, r); err != nil {
			handle.Close()
			return err
		}
	}
	// Mode changes apply only to a queue that was left in place; a
	// created or recreated queue already carries the requested mode.
	if r.Exists && !recreated && r.SetMode {
		if err := applyMode(handle, r.Mode); err != nil {
			handle.Close()
			return err
		}
	}
	return handle.Close()
}

// reconcile compares an existing queue's attributes against the request
// and replaces the queue only when they actually differ. Replacement is
// unlink-then-create, so there is never a moment where old and new
// attributes are both reachable under the name.
func (a *Admin) reconcile(queue string, handle Handle, r opts.Request, flags int, attrFlags int64) (Handle, bool, error) {
	actual, err := handle.Attributes()
	if err != nil {
		handle.Close()
		return nil, false, fmt.Errorf("mq_getattr(create): %w", err)
	}

	sizeDiffers := r.Size > 0 && r.Size != actual.MsgSize
	depthDiffers := r.Depth > 0 && r.Depth != actual.MaxMsg
	if !sizeDiffers && !depthDiffers {
		return handle, false, nil
	}

	if actual.CurMsgs > 0 {
		handle.Close()
		return nil, false, fmt.Errorf("queue %s holds %d messages, not recreating: %w",
			queue, actual.CurMsgs, unix.EBUSY)
	}

	// Unspecified dimensions carry over from the old queue.
	size, depth := r.Size, r.Depth
	if size <= 0 {
		size = actual.MsgSize
	}
	if depth <= 0 {
		depth = actual.MaxMsg
	}

	if err := handle.Close(); err != nil {
		return nil, false, fmt.Errorf("mq_close(create): %w", err)
	}
	if err := a.Queues.Unlink(queue); err != nil {
		return nil, false, fmt.Errorf("mq_unlink(create): %w", err)
	}
	handle, err = a.Queues.Create(queue, flags, r.Mode, mqueue.Attr{
		Flags:   attrFlags,
		MaxMsg:  depth,
		MsgSize: size,
	})
	if err != nil {
		return nil, false, fmt.Errorf("mq_open(recreate): %w", err)
	}
	return handle, true, nil
}

// validateSizeDepth reports every missing mandatory field, then fails
// with the invalid-argument status.
func (a *Admin) validateSizeDepth(r *opts.Request) error {
	sizeErr := r.ValidateSize()
	depthErr := r.ValidateDepth()
	if sizeErr == nil && depthErr == nil {
		return nil
	}
	if sizeErr != nil {
		fmt.Fprintf(a.Err, "error: %v.\n", sizeErr)
	}
	if depthErr != nil {
		fmt.Fprintf(a.Err, "error: %v.\n", depthErr)
	}
	return fmt.Errorf("queue does not exist and cannot be created: %w", unix.EINVAL)
}

// applyOwnership changes owner and group, defaulting whichever half was
// not supplied to the queue's current value so the other is never
// silently reset.
func applyOwnership(handle Handle, r opts.Request) error {
	status, err := handle.Stat()
	if err != nil {
		return fmt.Errorf("fstat(create): %w", err)
	}
	uid, gid := status.UID, status.GID
	if r.SetUser {
		uid = r.User
	}
	if r.SetGroup {
		gid = r.Group
	}
	if err := handle.Chown(uid, gid); err != nil {
		return fmt.Errorf("fchown(create): %w", err)
	}
	return nil
}

// applyMode chmods only when the requested bits differ from the current
// ones.
func applyMode(handle Handle, mode uint32) error {
	status, err := handle.Stat()
	if err != nil {
		return fmt.Errorf("fstat(create): %w", err)
	}
	if status.Mode&0o7777 == mode {
		return nil
	}
	if err := handle.Chmod(mode); err != nil {
		return fmt.Errorf("fchmod(create): %w", err)
	}
	return nil
}
