package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/decexpr"
	"github.com/zephyrtronium/decexpr/sample"
)

func newTableCmd(a *app) *cobra.Command {
	var variable string
	cmd := &cobra.Command{
		Use:   "table formula",
		Short: "Tabulate a formula of one variable",
		Long: `table evaluates a formula at each multiple of the step between from
(inclusive) and to (exclusive), printing one tab-separated x and y per line.
Points where the formula is undefined print "undefined".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.cfg.Table
			f, err := decexpr.Compile(args[0], variable)
			if err != nil {
				return errors.Wrapf(err, "compiling %q", args[0])
			}
			var d sample.Domain
			opts := sample.Options{Workers: c.Workers, Log: a.log}
			for _, p := range []struct {
				name, text string
				dst        *decimal.Decimal
			}{
				{"from", c.From, &d.From},
				{"to", c.To, &d.To},
				{"step", c.Step, &opts.Step},
				{"offset", c.Offset, &opts.Offset},
			} {
				*p.dst, err = decimal.NewFromString(p.text)
				if err != nil {
					return errors.Wrapf(err, "parsing %s", p.name)
				}
			}
			a.log.WithFields(logrus.Fields{
				"formula": args[0],
				"from":    d.From.String(),
				"to":      d.To.String(),
				"step":    opts.Step.String(),
			}).Info("sampling")
			pts, err := sample.Sample(cmd.Context(), f, d, opts)
			if err != nil {
				return errors.Wrap(err, "sampling")
			}
			out := cmd.OutOrStdout()
			places := a.cfg.Output.Places
			for _, p := range pts {
				y := "undefined"
				if p.Y != nil {
					y = format(*p.Y, places)
				}
				fmt.Fprintf(out, "%s\t%s\n", p.X, y)
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&variable, "var", "x", "free variable of the formula")
	fl.String("from", "-10", "start of the domain")
	fl.String("to", "10", "end of the domain")
	fl.String("step", "0.1", "distance between points")
	fl.String("offset", "0", "amount added to each x before evaluating")
	fl.Int("workers", 0, "number of goroutines (0 for GOMAXPROCS)")
	for _, k := range []string{"from", "to", "step", "offset", "workers"} {
		a.v.BindPFlag("table."+k, fl.Lookup(k))
	}
	return cmd
}
