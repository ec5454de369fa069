package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"tlog.app/go/tlog"

	"github.com/zephyrtronium/arith"
)

// evaluator prints the results of expressions in order.
type evaluator struct {
	w    io.Writer
	verb string
	echo bool
	c    *arith.Cache

	total  int
	failed int
}

func (ev *evaluator) eval(ctx context.Context, src string) {
	ev.total++

	if ev.echo {
		if s, err := ev.c.Render(src); err == nil {
			fmt.Fprintf(ev.w, "%s = ", s)
		}
	}

	r, err := ev.c.Eval(src)
	if err != nil {
		ev.failed++

		tlog.SpanFromContext(ctx).Printw("eval", "expr", src, "code", arith.CodeOf(err), "err", err)
		fmt.Fprintf(ev.w, "error: %v\n", err)

		return
	}

	fmt.Fprintf(ev.w, ev.verb+"\n", r)
}

// lines evaluates each non-blank line of r.
func (ev *evaluator) lines(ctx context.Context, r io.Reader, prompt bool) error {
	sc := bufio.NewScanner(r)

	for {
		if prompt {
			fmt.Fprint(ev.w, "> ")
		}

		if !sc.Scan() {
			break
		}

		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		ev.eval(ctx, line)
	}

	return sc.Err()
}
