package cli

import (
	"fmt"
	"os"

	"github.com/tgup-cli/tgup"
	"github.com/tgup-cli/tgup/pkg/filectx"
)

// CheckCmd compiles an expression and reports syntax errors without
// evaluating it. Exit status is the only contract scripts need.
type CheckCmd struct {
	Expression string `arg:"" help:"Expression to check."`
}

func (c *CheckCmd) Run() error {
	if _, err := tgup.Compile(c.Expression); err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}

// EvalCmd evaluates an expression against a real file, printing the
// result and its kind. Useful for trying out routing rules before an
// upload.
type EvalCmd struct {
	Expression string `arg:"" help:"Expression to evaluate."`
	File       string `arg:"" type:"existingfile" help:"File supplying the variable bindings."`
}

func (c *EvalCmd) Run() error {
	expr, err := tgup.Compile(c.Expression)
	if err != nil {
		return err
	}

	info, err := os.Stat(c.File)
	if err != nil {
		return err
	}

	fc := filectx.New(c.File, info, 0, 0, 1)
	val, err := tgup.Eval(expr, fc.Bindings())
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", val.Format(), val.Kind())
	return nil
}
