package opts

import (
	"fmt"
	"io"
)

// Option binds a flag's accepted spellings to its parse function and
// validation predicate. Tables are ordered; the first alias match wins.
type Option struct {
	Names    []string
	Parse    func(r *Request, warn io.Writer, value string)
	Validate func(r *Request) error
}

func (o Option) matches(token string) bool {
	for _, name := range o.Names {
		if name == token {
			return true
		}
	}
	return false
}

// Parse walks args as -flag value pairs against the table. Unknown
// tokens are warned and skipped, never fatal; a trailing flag with no
// value is likewise skipped with a warning.
func Parse(args []string, table []Option, r *Request, warn io.Writer) {
	i := 0
	for i+1 < len(args) {
		matched := false
		for _, option := range table {
			if option.matches(args[i]) {
				option.Parse(r, warn, args[i+1])
				i += 2
				matched = true
				break
			}
		}
		if !matched {
			fmt.Fprintf(warn, "warning: skipping [%s].\n", args[i])
			i++
		}
	}
	if i < len(args) {
		fmt.Fprintf(warn, "warning: skipping [%s].\n", args[i])
	}
}

// Validate runs every option's predicate, printing each failure. All
// predicates run even after one fails so the user sees every problem.
func Validate(table []Option, r *Request, warn io.Writer) bool {
	valid := true
	for _, option := range table {
		if option.Validate == nil {
			continue
		}
		if err := option.Validate(r); err != nil {
			fmt.Fprintf(warn, "error: %v.\n", err)
			valid = false
		}
	}
	return valid
}

var (
	queueNames    = []string{"-q", "--queue", "-t", "--topic"}
	depthNames    = []string{"-d", "--depth", "--maxmsg"}
	sizeNames     = []string{"-s", "--size", "--msgsize"}
	blockNames    = []string{"-b", "--block"}
	contentNames  = []string{"-c", "--content", "--data", "--message"}
	priorityNames = []string{"-p", "--priority"}
	modeNames     = []string{"-m", "--mode"}
	groupNames    = []string{"-g", "--gid"}
	userNames     = []string{"-u", "--uid"}
)

func validateQueue(r *Request) error {
	if len(r.Queues) == 0 {
		return fmt.Errorf("missing -q, or no sane queue name given")
	}
	return nil
}

func validateSingleQueue(r *Request) error {
	if len(r.Queues) != 1 {
		return fmt.Errorf("expected one queue")
	}
	return nil
}

func validateContent(r *Request) error {
	if len(r.Contents) == 0 {
		return fmt.Errorf("no content to send")
	}
	return nil
}

func validateMode(r *Request) error {
	if r.Mode == 0 {
		return fmt.Errorf("mode may not be zero")
	}
	return nil
}

var (
	optionQueue       = Option{Names: queueNames, Parse: parseQueue, Validate: validateQueue}
	optionSingleQueue = Option{Names: queueNames, Parse: parseSingleQueue, Validate: validateSingleQueue}
	optionQueueFilter = Option{Names: queueNames, Parse: parseQueue}
	optionDepth       = Option{Names: depthNames, Parse: parseDepth}
	optionSize        = Option{Names: sizeNames, Parse: parseSize}
	optionBlock       = Option{Names: blockNames, Parse: parseBlock}
	optionContent     = Option{Names: contentNames, Parse: parseContent, Validate: validateContent}
	optionPriority    = Option{Names: priorityNames, Parse: parsePriority}
	optionMode        = Option{Names: modeNames, Parse: parseMode, Validate: validateMode}
	optionGroup       = Option{Names: groupNames, Parse: parseGroup}
	optionUser        = Option{Names: userNames, Parse: parseUser}
)

// Per-verb tables. Size and depth carry no table-level validation: the
// creator re-validates them after probing whether the queue exists.
func CreateTable() []Option {
	return []Option{optionQueue, optionDepth, optionSize, optionBlock, optionMode, optionGroup, optionUser}
}

func InfoTable() []Option {
	return []Option{optionQueue}
}

func RemoveTable() []Option {
	return []Option{optionQueue}
}

func RecvTable() []Option {
	return []Option{optionSingleQueue}
}

func SendTable() []Option {
	return []Option{optionQueue, optionContent, optionPriority}
}

// WatchTable accepts an optional queue filter; no queue means all.
func WatchTable() []Option {
	return []Option{optionQueueFilter}
}
