package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/term"
	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/zephyrtronium/arith"
)

func main() {
	evalCmd := &cli.Command{
		Name:        "eval",
		Description: "evaluate expressions given as arguments or one per line of stdin",
		Action:      evalAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("fmt", "%g", "result format verb"),
			cli.NewFlag("echo", false, "print each expression as parsed before its result"),
			cli.NewFlag("trim", false, "ignore trailing whitespace"),
			cli.NewFlag("max-depth", arith.DefaultMaxDepth, "maximum nesting of operators and brackets"),
		},
	}

	checkCmd := &cli.Command{
		Name:        "check",
		Description: "run case files of \"EXPR = NUMBER\" and \"EXPR ! CODE\" lines",
		Action:      checkAct,
		Args:        cli.Args{},
	}

	app := &cli.Command{
		Name:        "arith",
		Description: "arith parses and evaluates arithmetic expressions",
		Flags: []*cli.Flag{
			cli.HelpFlag,
		},
		Commands: []*cli.Command{
			evalCmd,
			checkCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func evalAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	var opts []arith.ParseOption
	if c.Bool("trim") {
		opts = append(opts, arith.TrimSpace())
	}
	if d := c.Int("max-depth"); d > 0 {
		opts = append(opts, arith.MaxDepth(d))
	}

	ev := &evaluator{
		w:    os.Stdout,
		verb: c.String("fmt"),
		echo: c.Bool("echo"),
		c:    arith.NewCache(arith.DefaultCacheSize, opts...),
	}

	if len(c.Args) != 0 {
		for _, a := range c.Args {
			ev.eval(ctx, a)
		}
	} else {
		prompt := term.IsTerminal(int(os.Stdin.Fd()))

		err = ev.lines(ctx, os.Stdin, prompt)
		if err != nil {
			return errors.Wrap(err, "read stdin")
		}
	}

	if ev.failed != 0 {
		return errors.New("%d of %d expressions failed", ev.failed, ev.total)
	}

	return nil
}

func checkAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	if len(c.Args) == 0 {
		return errors.New("no case files")
	}

	var pass, total int

	for _, a := range c.Args {
		p, n, err := checkFile(ctx, a)
		pass += p
		total += n
		if err != nil {
			return errors.Wrap(err, "check %v", a)
		}
	}

	fmt.Printf("%s\n", summary(pass, total))

	if pass != total {
		return errors.New("%d of %d cases failed", total-pass, total)
	}

	return nil
}
