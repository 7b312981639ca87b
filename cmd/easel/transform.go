package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/example/easel/internal/canvas"
	"github.com/example/easel/internal/editor"
)

// transformCmd rotates, mirrors or resizes a whole image file.
type transformCmd struct {
	op     string
	file   string
	output string
	args   []string
	*root
	fs *flag.FlagSet
}

func (t *transformCmd) FlagSet() *flag.FlagSet {
	return t.fs
}

func parseTransformCmd(op string, args []string, r *root) (*transformCmd, error) {
	fs := flag.NewFlagSet(op, flag.ExitOnError)
	t := &transformCmd{op: op, fs: fs}
	if r != nil {
		t.root = r.subcommand(op)
	}
	fs.Usage = usageFunc(t)
	fs.StringVar(&t.file, "file", "", "input image file")
	fs.StringVar(&t.output, "output", "", "output file path (defaults to input file)")
	flagArgs, positionals := splitDrawArgs(args)
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	t.args = append(positionals, fs.Args()...)
	if t.file == "" {
		return nil, fmt.Errorf("input file is required")
	}
	if t.output == "" {
		t.output = t.file
	}
	want := map[string]int{"rotate": 1, "mirror": 0, "resize": 2}[op]
	if len(t.args) != want {
		return nil, &UsageError{of: t}
	}
	if op == "rotate" {
		if _, err := strconv.ParseFloat(t.args[0], 64); err != nil {
			return nil, fmt.Errorf("invalid angle %q", t.args[0])
		}
	}
	return t, nil
}

func (t *transformCmd) Run() error {
	img, err := canvas.Load(t.file)
	if err != nil {
		return err
	}
	opts, logger := t.sessionOptions()
	defer func() {
		if err := logger.Close(); err != nil {
			log.Printf("error closing action log: %v", err)
		}
	}()
	opts = append(opts, editor.WithDocument(canvas.FromImage(img, canvas.WithPath(t.output))))
	sess, err := editor.New(opts...)
	if err != nil {
		return err
	}
	if err := sess.Do(editor.Command(t.op), t.args...); err != nil {
		return err
	}
	saved, err := sess.SaveAs(t.output)
	if err != nil {
		return err
	}
	if abs, err := filepath.Abs(saved); err == nil {
		saved = abs
	}
	b := sess.Buffer().Bounds()
	fmt.Fprintf(os.Stderr, "saved %s (%dx%d)\n", saved, b.Dx(), b.Dy())
	return nil
}
