package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mqtools/mqctl/internal/admin"
	"github.com/mqtools/mqctl/internal/config"
	"github.com/mqtools/mqctl/internal/exitcode"
	"github.com/mqtools/mqctl/internal/opts"
)

const version = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		return
	}

	verb := os.Args[1]
	args := os.Args[2:]

	switch verb {
	case "create", "attr":
		os.Exit(runBatch(args, opts.CreateTable(), func(a *admin.Admin, r *opts.Request) int {
			return a.Create(r)
		}))
	case "info", "cat":
		os.Exit(runBatch(args, opts.InfoTable(), func(a *admin.Admin, r *opts.Request) int {
			return a.Info(r)
		}))
	case "recv", "receive":
		os.Exit(runBatch(args, opts.RecvTable(), func(a *admin.Admin, r *opts.Request) int {
			return a.Recv(r)
		}))
	case "send":
		os.Exit(runBatch(args, opts.SendTable(), func(a *admin.Admin, r *opts.Request) int {
			return a.Send(r)
		}))
	case "rm", "unlink":
		os.Exit(runBatch(args, opts.RemoveTable(), func(a *admin.Admin, r *opts.Request) int {
			return a.Remove(r)
		}))
	case "ls", "list":
		os.Exit(admin.New().List(loadDefaults().MqueuePath()))
	case "watch":
		os.Exit(runWatch(args))
	case "version":
		fmt.Printf("mqctl %s\n", version)
	case "help", "--help", "-h":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "error: unknown verb [%s]\n", verb)
		os.Exit(exitcode.Usage.Int())
	}
}

// runBatch is the shared verb skeleton: seed defaults, parse against the
// verb's option table, validate, dispatch. Validation failure performs
// no queue operation at all.
func runBatch(args []string, table []opts.Option, run func(*admin.Admin, *opts.Request) int) int {
	r := opts.NewRequest()
	if err := loadDefaults().Apply(r); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	opts.Parse(args, table, r, os.Stderr)
	if !opts.Validate(table, r, os.Stderr) {
		return exitcode.Usage.Int()
	}
	return run(admin.New(), r)
}

func runWatch(args []string) int {
	r := opts.NewRequest()
	cfg := loadDefaults()
	table := opts.WatchTable()
	opts.Parse(args, table, r, os.Stderr)
	if !opts.Validate(table, r, os.Stderr) {
		return exitcode.Usage.Int()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := admin.New().Watch(ctx, cfg.MqueuePath(), r.Queues); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitcode.Status(err)
	}
	return 0
}

// loadDefaults reads the optional rc file. Problems with it are warned
// and otherwise ignored; an rc file must never make the tool unusable.
func loadDefaults() config.Config {
	cfg, err := config.Load(config.Path())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return config.Config{}
	}
	return cfg
}

func printUsage(out *os.File) {
	fmt.Fprintf(out, `usage:
	mqctl [rm|info|recv] -q <queue>
	mqctl create -q <queue> -s <maxsize> -d <maxdepth> [ -m <mode> ] [ -b <block> ] [ -u <uid> ] [ -g <gid> ]
	mqctl send -q <queue> -c <content> [ -p <priority> ]
	mqctl ls
	mqctl watch [ -q <queue> ]
`)
}
