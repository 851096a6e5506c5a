package main

import (
	"context"
	"io"
	"os"

	"github.com/code19m/errx"
	"github.com/creasty/defaults"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/rise-and-shine/flatbread/cfgloader"
	"github.com/rise-and-shine/flatbread/logger"
	"github.com/rise-and-shine/flatbread/meta"
	"github.com/rise-and-shine/flatbread/readout"
	"github.com/rise-and-shine/flatbread/step"
	"github.com/rise-and-shine/flatbread/table"
	"github.com/rise-and-shine/flatbread/tracing"
)

// runConfig is the readout configuration, loaded from YAML and overridden by flags.
type runConfig struct {
	Source  string         `yaml:"source"`
	Label   string         `yaml:"label" default:"table"`
	Column  string         `yaml:"column"`
	Agg     string         `yaml:"agg" default:"max"`
	Message string         `yaml:"message"`
	When    string         `yaml:"when" default:"before"`
	Logger  logger.Config  `yaml:"logger"`
	Tracing tracing.Config `yaml:"tracing"`
}

var readoutCmd = &cobra.Command{
	Use:   "readout",
	Short: "Load a CSV file and print readouts about it",
	Long: `Reads a CSV file into a table and prints, in order: the optional message,
the column aggregate, the table shape and the time the load took.

Readouts go to stdout; logs go to stderr.`,
	Example: `  flatbread readout --file orders.csv --label orders --column amount --agg sum
  flatbread readout --config config/example.yaml`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		logger.SetGlobal(cfg.Logger)
		log := logger.Named("flatbread")

		shutdown, err := tracing.InitGlobalTracer(cfg.Tracing, "flatbread", version)
		if err != nil {
			return err
		}
		defer func() {
			if shutdownErr := shutdown(context.Background()); shutdownErr != nil {
				log.Warnx(shutdownErr)
			}
		}()

		ctx, span := otel.Tracer("flatbread").Start(cmd.Context(), "readout "+cfg.Label)
		defer span.End()

		return runReadout(ctx, cfg, cmd.OutOrStdout(), log)
	},
}

func init() {
	addReadoutFlags(readoutCmd)
	rootCmd.AddCommand(readoutCmd)
}

func addReadoutFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("config", "", "YAML config file; flags override its values")
	flags.StringP("file", "f", "", "CSV file to load")
	flags.StringP("label", "l", "table", "label of the table in readouts")
	flags.StringP("column", "c", "", "column to aggregate; no column readout when empty")
	flags.StringP("agg", "a", string(table.AggMax), "aggregate for --column")
	flags.StringP("message", "m", "", "message to print around the load")
	flags.String("when", string(readout.Before), "when to print --message: before or after")
}

// resolveConfig loads --config when given and applies the flags that were set explicitly.
func resolveConfig(cmd *cobra.Command) (runConfig, error) {
	flags := cmd.Flags()

	var cfg runConfig
	path, _ := flags.GetString("config")
	if path == "" {
		if err := defaults.Set(&cfg); err != nil {
			return cfg, errx.Wrap(err)
		}
	} else {
		loaded, err := cfgloader.Load[runConfig](path, cfgloader.WithSilent())
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	fields := map[string]*string{
		"file":    &cfg.Source,
		"label":   &cfg.Label,
		"column":  &cfg.Column,
		"agg":     &cfg.Agg,
		"message": &cfg.Message,
		"when":    &cfg.When,
	}
	for name, target := range fields {
		// without a config file the flag defaults apply too
		if path == "" || flags.Changed(name) {
			*target, _ = flags.GetString(name)
		}
	}

	if cfg.Source == "" {
		return cfg, errx.New("[flatbread]: no source file, use --file or set source in --config",
			errx.WithCode(CodeNoSource),
			errx.WithType(errx.T_Validation),
		)
	}

	return cfg, nil
}

// runReadout loads cfg.Source through the decorated load step, writing readouts to out.
func runReadout(ctx context.Context, cfg runConfig, out io.Writer, log logger.Logger) error {
	ctx = meta.InjectMetaToContext(ctx, map[meta.ContextKey]string{
		meta.RunID:  tracing.RunID(ctx),
		meta.Source: cfg.Source,
		meta.Table:  cfg.Label,
		meta.Step:   loadStepName(cfg.Label),
	})
	log = log.WithContext(ctx)

	s := buildStep(cfg, readout.WithWriter(out), readout.WithLogger(log))

	log.Debugf("running %s", step.NameOf(s))

	if _, err := s.Execute(ctx, cfg.Source); err != nil {
		return errx.Wrap(err)
	}

	log.Debug("readout finished")
	return nil
}

// buildStep decorates the load step with the readouts cfg asks for.
// Printout is the outermost decorator and Column the innermost.
func buildStep(cfg runConfig, opts ...readout.Option) step.Step[string, *table.Frame] {
	var wraps []step.WrapFunc[string, *table.Frame]

	if cfg.Message != "" {
		wraps = append(wraps, readout.Printout[string, *table.Frame](cfg.Message, readout.When(cfg.When), opts...))
	}

	wraps = append(wraps,
		readout.Timer[string, *table.Frame](cfg.Label, opts...),
		readout.Shape[string, *table.Frame](cfg.Label, opts...),
	)

	if cfg.Column != "" {
		wraps = append(wraps, readout.Column[string, *table.Frame](cfg.Column, table.Agg(cfg.Agg), cfg.Label, opts...))
	}

	return step.Chain(loadStep(cfg.Label), wraps...)
}

func loadStepName(label string) string {
	return "load_" + label
}

func loadStep(label string) step.Step[string, *table.Frame] {
	return step.New(loadStepName(label), "Reads a CSV file into a table.", step.Func[string, *table.Frame](readFrame))
}

func readFrame(_ context.Context, path string) (*table.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errx.Wrap(err,
			errx.WithCode(CodeSourceUnreadable),
			errx.WithType(errx.T_NotFound),
			errx.WithDetails(errx.D{"path": path}),
		)
	}
	defer file.Close()

	frame, err := table.ReadCSV(file)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"path": path}))
	}

	return frame, nil
}
