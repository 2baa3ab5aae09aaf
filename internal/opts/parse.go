package opts

import (
	"fmt"
	"io"
	"os/user"
	"strconv"

	"github.com/mqtools/mqctl/internal/mqueue"
)

// parseInt64 captures a fully-consumed decimal value. Bad input leaves
// the capture untouched and reports an error naming the flag.
func parseInt64(warn io.Writer, text string, capture *int64, knob, name string) {
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		fmt.Fprintf(warn, "error: %s %s invalid format [%s].\n", knob, name, text)
		return
	}
	*capture = value
}

// parseOctalID captures a raw octal numeric ID, the fallback when a
// symbolic user or group name does not resolve.
func parseOctalID(warn io.Writer, text string, set *bool, capture *uint32, knob, name string) {
	value, err := strconv.ParseUint(text, 8, 32)
	if err != nil {
		fmt.Fprintf(warn, "warning: %s %s format [%s] ignored.\n", knob, name, text)
		return
	}
	*set = true
	*capture = uint32(value)
}

func parseQueue(r *Request, warn io.Writer, text string) {
	if err := mqueue.CheckName(text); err != nil {
		fmt.Fprintf(warn, "error: %v.\n", err)
		return
	}
	r.Queues = append(r.Queues, text)
}

// parseSingleQueue keeps the first sane queue name and warns extras
// away; recv has no batch semantics.
func parseSingleQueue(r *Request, warn io.Writer, text string) {
	if err := mqueue.CheckName(text); err != nil {
		fmt.Fprintf(warn, "error: %v.\n", err)
		return
	}
	if len(r.Queues) > 0 {
		fmt.Fprintf(warn, "warning: ignoring extra -q queue [%s].\n", text)
		return
	}
	r.Queues = append(r.Queues, text)
}

func parseContent(r *Request, _ io.Writer, text string) {
	r.Contents = append(r.Contents, text)
}

func parseSize(r *Request, warn io.Writer, text string) {
	parseInt64(warn, text, &r.Size, "-s", "size")
}

func parseDepth(r *Request, warn io.Writer, text string) {
	parseInt64(warn, text, &r.Depth, "-d", "depth")
}

// parseBlock accepts true/yes, false/no, or any parseable integer
// (non-zero means blocking). Anything else keeps the previous value.
func parseBlock(r *Request, warn io.Writer, text string) {
	switch text {
	case "true", "yes":
		r.Block = true
		return
	case "false", "no":
		r.Block = false
		return
	}
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		fmt.Fprintf(warn, "warning: bad -b block format [%s] ignored.\n", text)
		return
	}
	r.Block = value != 0
}

// parseMode accepts octal modes in (0, 07777]; anything else is ignored
// with a warning, keeping the default.
func parseMode(r *Request, warn io.Writer, text string) {
	value, err := strconv.ParseInt(text, 8, 64)
	if err != nil || value <= 0 || value >= 0o10000 {
		fmt.Fprintf(warn, "warning: impossible -m mode value [%s] ignored.\n", text)
		return
	}
	r.SetMode = true
	r.Mode = uint32(value)
}

func parsePriority(r *Request, warn io.Writer, text string) {
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		fmt.Fprintf(warn, "warning: bad -p priority format [%s] ignored.\n", text)
		return
	}
	if value < 0 || value >= mqueue.PrioMax {
		fmt.Fprintf(warn, "warning: bad -p priority range [%s] ignored.\n", text)
		return
	}
	r.Priority = uint(value)
}

// parseGroup resolves a symbolic group name through the system database
// first, then falls back to a raw octal GID.
func parseGroup(r *Request, warn io.Writer, text string) {
	if entry, err := user.LookupGroup(text); err == nil {
		if gid, err := strconv.ParseUint(entry.Gid, 10, 32); err == nil {
			r.SetGroup = true
			r.Group = uint32(gid)
			return
		}
	}
	parseOctalID(warn, text, &r.SetGroup, &r.Group, "-g", "group")
}

// parseUser is the user counterpart of parseGroup.
func parseUser(r *Request, warn io.Writer, text string) {
	if entry, err := user.Lookup(text); err == nil {
		if uid, err := strconv.ParseUint(entry.Uid, 10, 32); err == nil {
			r.SetUser = true
			r.User = uint32(uid)
			return
		}
	}
	parseOctalID(warn, text, &r.SetUser, &r.User, "-u", "user")
}
