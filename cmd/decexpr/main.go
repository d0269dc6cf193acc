// Command decexpr evaluates decimal arithmetic expressions.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app is the state shared by the commands.
type app struct {
	v          *viper.Viper
	configPath string
	cfg        *Config
	log        *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: newViper()}
	root := &cobra.Command{
		Use:   "decexpr",
		Short: "Evaluate arithmetic expressions over arbitrary-precision decimals",
		Long: `decexpr evaluates infix expressions such as "SQRT(a^2+b^2)" using exact
decimal arithmetic, with division and powers rounded to 30 places.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(a.v, a.configPath)
			if err != nil {
				return err
			}
			l, err := newLogger(cfg.Log)
			if err != nil {
				return err
			}
			a.cfg, a.log = cfg, l
			l.WithField("config", a.v.ConfigFileUsed()).Debug("loaded configuration")
			return nil
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (YAML, TOML, or JSON)")
	pf.String("log-level", "warn", "log level")
	pf.String("log-format", "text", "log format, text or json")
	pf.Int("places", -1, "round results to this many decimal places (negative for exact)")
	a.v.BindPFlag("log.level", pf.Lookup("log-level"))
	a.v.BindPFlag("log.format", pf.Lookup("log-format"))
	a.v.BindPFlag("output.places", pf.Lookup("places"))

	root.AddCommand(
		newEvalCmd(a),
		newRPNCmd(a),
		newVarsCmd(a),
		newTableCmd(a),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
