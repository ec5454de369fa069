package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/zephyrtronium/arith"
)

// checkcase is one line of a case file. Either want or code is meaningful.
type checkcase struct {
	src  string
	want float64
	code arith.Code
}

func parseCase(line string) (c checkcase, err error) {
	if i := strings.LastIndex(line, " = "); i >= 0 {
		c.src = line[:i]
		c.want, err = strconv.ParseFloat(strings.TrimSpace(line[i+3:]), 64)
		if err != nil {
			return c, errors.Wrap(err, "result")
		}

		return c, nil
	}

	if i := strings.LastIndex(line, " ! "); i >= 0 {
		c.src = line[:i]
		name := strings.TrimSpace(line[i+3:])

		var ok bool
		c.code, ok = arith.ParseCode(name)
		if !ok {
			return c, errors.New("unknown code: %q", name)
		}

		return c, nil
	}

	return c, errors.New("no \" = \" or \" ! \" in line")
}

// run returns a description of the mismatch, or the empty string if the case
// passes.
func (c checkcase) run() string {
	r, err := arith.EvalString(c.src)

	if c.code != arith.CodeNone {
		if got := arith.CodeOf(err); got != c.code {
			return fmt.Sprintf("want %v, got %v with result %v", c.code, got, r)
		}

		return ""
	}

	switch {
	case err != nil:
		return fmt.Sprintf("want %v, got %v", c.want, err)
	case r != c.want:
		return fmt.Sprintf("want %v, got %v", c.want, r)
	}

	return ""
}

func runCases(ctx context.Context, r io.Reader, name string) (pass, total int, err error) {
	tr := tlog.SpanFromContext(ctx)
	sc := bufio.NewScanner(r)

	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		if s := strings.TrimSpace(line); s == "" || s[0] == '#' {
			continue
		}

		c, err := parseCase(line)
		if err != nil {
			return pass, total, errors.Wrap(err, "%v:%d", name, n)
		}

		total++

		if msg := c.run(); msg != "" {
			tr.Printw("case failed", "file", name, "line", n, "expr", c.src, "reason", msg)
			continue
		}

		pass++
	}

	if err = sc.Err(); err != nil {
		return pass, total, errors.Wrap(err, "read")
	}

	return pass, total, nil
}

func checkFile(ctx context.Context, name string) (pass, total int, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "check file", "name", name)
	defer tr.Finish("err", &err)

	f, err := os.Open(name)
	if err != nil {
		return 0, 0, errors.Wrap(err, "open")
	}
	defer f.Close()

	pass, total, err = runCases(ctx, f, name)

	tr.Printw("checked", "pass", pass, "total", total)

	return pass, total, err
}

func summary(pass, total int) string {
	pct := 0.0
	if total != 0 {
		pct = 100 * float64(pass) / float64(total)
	}

	return fmt.Sprintf("%d/%d (%.2f%%) passed", pass, total, pct)
}
