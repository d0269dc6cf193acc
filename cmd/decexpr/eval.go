package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/decexpr"
)

// binding is a name=value variable definition from the command line.
type binding struct {
	name, value string
}

func parseGiven(given []string) ([]binding, error) {
	r := make([]binding, 0, len(given))
	for _, s := range given {
		name, value, ok := strings.Cut(s, "=")
		if !ok {
			return nil, errors.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		r = append(r, binding{strings.TrimSpace(name), strings.TrimSpace(value)})
	}
	return r, nil
}

// inputOpts selects where expressions are read from.
type inputOpts struct {
	in string
}

func (o *inputOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.in, "in", "", `file with one expression per line, or "-" for stdin (default stdin if no args given)`)
}

// sources collects expressions from the input file and the arguments.
func (o *inputOpts) sources(cmd *cobra.Command, args []string) ([]string, error) {
	var r []string
	var f io.Reader
	switch {
	case o.in != "" && o.in != "-":
		file, err := os.Open(o.in)
		if err != nil {
			return nil, errors.Wrap(err, "opening input")
		}
		defer file.Close()
		f = file
	case o.in == "-", len(args) == 0:
		f = cmd.InOrStdin()
	}
	if f != nil {
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				r = append(r, line)
			}
		}
		if err := sc.Err(); err != nil {
			return nil, errors.Wrap(err, "reading input")
		}
	}
	return append(r, args...), nil
}

func newEvalCmd(a *app) *cobra.Command {
	var (
		in    inputOpts
		given []string
		echo  bool
	)
	cmd := &cobra.Command{
		Use:   "eval [expression...]",
		Short: "Evaluate expressions",
		RunE: func(cmd *cobra.Command, args []string) error {
			vars, err := parseGiven(given)
			if err != nil {
				return err
			}
			srcs, err := in.sources(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			failed := 0
			for _, src := range srcs {
				e := decexpr.New(src)
				for _, b := range vars {
					e.SetString(b.name, b.value)
				}
				if echo {
					fmt.Fprintf(out, "%s : ", e)
				}
				r, err := e.Eval()
				if err != nil {
					failed++
					a.log.WithFields(logrus.Fields{
						"expression": src,
						"kind":       decexpr.KindOf(err).String(),
					}).Debug("evaluation failed")
					fmt.Fprintln(out, err)
					continue
				}
				fmt.Fprintln(out, format(r, a.cfg.Output.Places))
			}
			if failed > 0 {
				return errors.Errorf("%d of %d expressions failed", failed, len(srcs))
			}
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().StringArrayVar(&given, "given", nil, "name=value variable definition (any number of times); a non-numeric value is substituted as a subexpression")
	cmd.Flags().BoolVar(&echo, "echo", false, "print each expression before its result")
	return cmd
}

func newRPNCmd(a *app) *cobra.Command {
	var in inputOpts
	cmd := &cobra.Command{
		Use:   "rpn [expression...]",
		Short: "Print expressions in reverse Polish notation",
		RunE: func(cmd *cobra.Command, args []string) error {
			srcs, err := in.sources(cmd, args)
			if err != nil {
				return err
			}
			for _, src := range srcs {
				r, err := decexpr.New(src).RPN()
				if err != nil {
					return errors.Wrapf(err, "parsing %q", src)
				}
				fmt.Fprintln(cmd.OutOrStdout(), r)
			}
			return nil
		},
	}
	in.register(cmd)
	return cmd
}

func newVarsCmd(a *app) *cobra.Command {
	var in inputOpts
	cmd := &cobra.Command{
		Use:   "vars [expression...]",
		Short: "List the variables expressions use",
		RunE: func(cmd *cobra.Command, args []string) error {
			srcs, err := in.sources(cmd, args)
			if err != nil {
				return err
			}
			for _, src := range srcs {
				names, err := decexpr.New(src).UsedVariables()
				if err != nil {
					return errors.Wrapf(err, "scanning %q", src)
				}
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, " "))
			}
			return nil
		},
	}
	in.register(cmd)
	return cmd
}

// format renders x rounded to places, or exactly if places is negative.
func format(x decimal.Decimal, places int) string {
	if places < 0 {
		return x.String()
	}
	return x.StringFixed(int32(places))
}
