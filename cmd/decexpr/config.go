package main

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the CLI configuration.
type Config struct {
	Log    *LogConfig
	Table  *TableConfig
	Output *OutputConfig
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string
	Format string
}

// TableConfig holds defaults for the table command.
type TableConfig struct {
	Workers int
	Step    string
	From    string
	To      string
	Offset  string
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	// Places is the number of decimal places to round results to. Negative
	// means results are printed exactly.
	Places int
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("table.workers", 0)
	v.SetDefault("table.step", "0.1")
	v.SetDefault("table.from", "-10")
	v.SetDefault("table.to", "10")
	v.SetDefault("table.offset", "0")
	v.SetDefault("output.places", -1)
	v.SetEnvPrefix("DECEXPR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig reads the configuration file, if any, and resolves every key
// against flags, environment, and defaults.
func LoadConfig(v *viper.Viper, configPath string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", configPath)
		}
	}
	return &Config{
		Log: &LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Table: &TableConfig{
			Workers: v.GetInt("table.workers"),
			Step:    v.GetString("table.step"),
			From:    v.GetString("table.from"),
			To:      v.GetString("table.to"),
			Offset:  v.GetString("table.offset"),
		},
		Output: &OutputConfig{
			Places: v.GetInt("output.places"),
		},
	}, nil
}

// newLogger creates a logger writing to stderr.
func newLogger(c *LogConfig) (*logrus.Logger, error) {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	lvl, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}
	l.SetLevel(lvl)
	switch c.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{})
	}
	return l, nil
}
