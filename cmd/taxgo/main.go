package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/taxgo/internal/calculation"
	"github.com/rgehrsitz/taxgo/internal/config"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Log is the CLI logger handed to the calculation engine
var Log = logrus.New()

// SetLogLevel maps a level name onto the CLI logger
func SetLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug":
		Log.SetLevel(logrus.DebugLevel)
	case "info":
		Log.SetLevel(logrus.InfoLevel)
	case "warning", "warn":
		Log.SetLevel(logrus.WarnLevel)
	case "error":
		Log.SetLevel(logrus.ErrorLevel)
	default:
		return fmt.Errorf("bad log level %q (available: debug, info, warn, error)", level)
	}
	return nil
}

// cli carries the state shared by every command of one invocation
type cli struct {
	cfgFile  string
	debug    bool
	save     bool
	settings *config.Settings
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "taxgo",
		Short: "W-2 vs self-employment tax calculator",
		Long: `Compare the federal tax burden of earning the same income as a W-2 employee
and as a self-employed filer, plan quarterly estimated payments, and check
business expenses against industry benchmarks.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initConfig(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "settings file (default is $HOME/.taxgo.yaml)")
	flags.String("rules", "", "tax rules YAML file overriding the embedded tables")
	flags.Int("tax-year", config.DefaultTaxYear, "tax year of the embedded rules")
	flags.String("log-level", "warn", "log level: debug, info, warn, error")
	flags.String("format", "console", "output format: console, json, csv, html")
	flags.BoolVar(&c.debug, "debug", false, "log every calculation step")
	flags.BoolVar(&c.save, "save", false, "also write the report to a timestamped file in the current directory")

	root.AddCommand(
		c.marginalCmd(),
		c.w2Cmd(),
		c.selfEmployedCmd(),
		c.compareCmd(),
		c.breakEvenCmd(),
		c.quarterlyCmd(),
		c.optimizeCmd(),
		c.recommendCmd(),
		c.validateCmd(),
		c.rulesCmd(),
		versionCmd(),
	)
	return root
}

// initConfig reads the settings file and TAXGO_* variables, lets explicit
// flags override them, and configures the logger.
func (c *cli) initConfig(cmd *cobra.Command) error {
	v := viper.New()
	if err := config.ReadSettings(v, c.cfgFile); err != nil {
		return err
	}
	for key, flag := range map[string]string{
		"tax_year":   "tax-year",
		"rules_file": "rules",
		"log_level":  "log-level",
		"format":     "format",
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return err
		}
	}

	settings, err := config.DecodeSettings(v)
	if err != nil {
		return err
	}
	c.settings = settings

	Log.SetOutput(cmd.ErrOrStderr())
	if c.debug {
		settings.LogLevel = "debug"
	}
	return SetLogLevel(settings.LogLevel)
}

// engineFor builds an engine for the given year, or from the rules file when
// one is configured
func (c *cli) engineFor(year int) (*calculation.CalculationEngine, error) {
	var rules *domain.TaxYearRules
	var err error
	if c.settings.RulesFile != "" {
		rules, err = config.LoadRulesFromFile(c.settings.RulesFile)
	} else {
		rules, err = config.RulesForYear(year)
	}
	if err != nil {
		return nil, err
	}

	engine := calculation.NewCalculationEngineWithRules(rules)
	engine.SetLogger(Log)
	engine.Debug = c.debug
	Log.Debugf("using %d tax rules", rules.TaxYear)
	return engine, nil
}

func (c *cli) engine() (*calculation.CalculationEngine, error) {
	return c.engineFor(c.settings.TaxYear)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taxgo %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
