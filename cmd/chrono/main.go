package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	chrono "github.com/goliatone/go-chrono"
	"github.com/spf13/cobra"
)

const appVersion = "0.1.0"

type globalOptions struct {
	locale      []string
	localeFiles []string
	zone        string
	now         string
	utc         bool
	strict      bool
	layouts     []string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts globalOptions

	root := &cobra.Command{
		Use:           "chrono",
		Short:         "Parse, format and compare dates with locale aware layouts",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       appVersion,
	}
	root.SetVersionTemplate("chrono v{{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringSliceVar(&opts.locale, "locale", nil, "locale preference list (e.g. fr-ca,fr)")
	flags.StringSliceVar(&opts.localeFiles, "locale-file", nil, "YAML or JSON locale documents to load")
	flags.StringVar(&opts.zone, "zone", "", "IANA zone used for local values (default: system zone)")
	flags.StringVar(&opts.now, "now", "", "ISO 8601 reference time used instead of the system clock")
	flags.BoolVar(&opts.utc, "utc", false, "read and render values in UTC")
	flags.BoolVar(&opts.strict, "strict", false, "require input to match the layout exactly")
	flags.StringSliceVar(&opts.layouts, "input-layout", nil, "layouts tried when reading input; ISO8601 and RFC2822 select the built-in grammars")

	root.AddCommand(
		newFormatCommand(&opts),
		newParseCommand(&opts),
		newDiffCommand(&opts),
		newHumanizeCommand(&opts),
		newRelativeCommand(&opts),
		newCalendarCommand(&opts),
		newLocalesCommand(&opts),
	)
	return root
}

func (o *globalOptions) config() (*chrono.Config, error) {
	options := []chrono.Option{chrono.SuppressDeprecationWarnings()}

	if o.zone != "" {
		loc, err := time.LoadLocation(o.zone)
		if err != nil {
			return nil, fmt.Errorf("load zone %q: %w", o.zone, err)
		}
		options = append(options, chrono.WithLocation(loc))
	}
	if o.now != "" {
		ref, err := referenceTime(o.now)
		if err != nil {
			return nil, err
		}
		options = append(options, chrono.WithNow(func() time.Time { return ref }))
	}
	if len(o.localeFiles) > 0 {
		options = append(options, chrono.WithLocaleFiles(o.localeFiles...))
	}
	if len(o.locale) > 0 {
		options = append(options, chrono.WithActiveLocale(o.locale...))
	}
	return chrono.NewConfig(options...)
}

func referenceTime(input string) (time.Time, error) {
	base, err := chrono.NewConfig(chrono.WithLocation(time.UTC), chrono.WithoutInputFallback())
	if err != nil {
		return time.Time{}, err
	}
	ref := base.ParseZone(input, chrono.Layouts(chrono.ISO8601))
	if !ref.IsValid() {
		return time.Time{}, fmt.Errorf("invalid --now value %q", input)
	}
	return ref.ToTime(), nil
}

// read builds a value from a command argument. An empty argument is the
// current instant.
func (o *globalOptions) read(cfg *chrono.Config, input string) chrono.DateTime {
	var create []chrono.CreateOption
	if o.strict {
		create = append(create, chrono.Strict())
	}
	if len(o.layouts) > 0 {
		create = append(create, chrono.Layouts(layoutNames(o.layouts)...))
	}

	var value any
	if input != "" {
		value = input
	}
	if o.utc {
		return cfg.UTC(value, create...)
	}
	return cfg.New(value, create...)
}

func layoutNames(layouts []string) []string {
	out := make([]string, len(layouts))
	for i, layout := range layouts {
		switch strings.ToUpper(layout) {
		case "ISO8601", "ISO":
			out[i] = chrono.ISO8601
		case "RFC2822", "RFC":
			out[i] = chrono.RFC2822
		default:
			out[i] = layout
		}
	}
	return out
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func newFormatCommand(opts *globalOptions) *cobra.Command {
	var layout string

	cmd := &cobra.Command{
		Use:   "format [date]",
		Short: "Render a date with a token layout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			d := opts.read(cfg, optionalArg(args))
			if !d.IsValid() {
				return fmt.Errorf("invalid date %q", optionalArg(args))
			}
			fmt.Fprintln(cmd.OutOrStdout(), d.Format(layout))
			return nil
		},
	}
	cmd.Flags().StringVarP(&layout, "layout", "l", "", "output layout (default: ISO 8601 with offset)")
	return cmd
}

func newParseCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <date>",
		Short: "Parse a date and report what was recognised",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			d := opts.read(cfg, args[0])
			flags := d.ParsingFlags()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "valid:   %t\n", d.IsValid())
			if d.IsValid() {
				fmt.Fprintf(out, "iso:     %s\n", d.ToISOString(true))
			}
			fmt.Fprintf(out, "parts:   %s\n", strings.Join(flags.ParsedParts, ","))
			if unit, ok := d.InvalidAt(); ok {
				fmt.Fprintf(out, "overflow: %s\n", unit)
			}
			if len(flags.UnusedTokens) > 0 {
				fmt.Fprintf(out, "unused tokens: %s\n", strings.Join(flags.UnusedTokens, " "))
			}
			if len(flags.UnusedInput) > 0 {
				fmt.Fprintf(out, "unused input: %q\n", flags.UnusedInput)
			}
			if !d.IsValid() {
				return fmt.Errorf("invalid date %q", args[0])
			}
			return nil
		},
	}
}

func newDiffCommand(opts *globalOptions) *cobra.Command {
	var (
		unit    string
		precise bool
	)

	cmd := &cobra.Command{
		Use:   "diff <date> <other>",
		Short: "Difference between two dates in a unit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			a, b := opts.read(cfg, args[0]), opts.read(cfg, args[1])
			if !a.IsValid() || !b.IsValid() {
				return fmt.Errorf("invalid date in %q", args)
			}
			value, err := a.DiffUnit(b, unit, precise)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
	cmd.Flags().StringVarP(&unit, "unit", "u", "milliseconds", "unit of the result (years, months, weeks, days, hours, ...)")
	cmd.Flags().BoolVar(&precise, "precise", false, "keep the fractional part")
	return cmd
}

func newHumanizeCommand(opts *globalOptions) *cobra.Command {
	var suffix bool

	cmd := &cobra.Command{
		Use:   "humanize <duration>",
		Short: "Describe an ISO 8601 or hh:mm:ss duration in words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			span, err := chrono.ParseDuration(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), span.WithConfig(cfg).Humanize(suffix))
			return nil
		},
	}
	cmd.Flags().BoolVar(&suffix, "suffix", false, `add the "in ..." / "... ago" wrapper`)
	return cmd
}

func newRelativeCommand(opts *globalOptions) *cobra.Command {
	var withoutSuffix bool

	cmd := &cobra.Command{
		Use:   "relative <date>",
		Short: "Describe a date relative to now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			d := opts.read(cfg, args[0])
			if !d.IsValid() {
				return fmt.Errorf("invalid date %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), d.FromNow(withoutSuffix))
			return nil
		},
	}
	cmd.Flags().BoolVar(&withoutSuffix, "no-suffix", false, "omit the future/past wrapper")
	return cmd
}

func newCalendarCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "calendar <date>",
		Short: `Render a date as a calendar phrase such as "Tomorrow at 9:00 AM"`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			d := opts.read(cfg, args[0])
			if !d.IsValid() {
				return fmt.Errorf("invalid date %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), d.Calendar())
			return nil
		},
	}
}

func newLocalesCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List the registered locales",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			catalog := cfg.Catalog()
			active := catalog.ActiveName()
			for _, name := range catalog.Names() {
				marker := " "
				if name == active {
					marker = "*"
				}
				chain := strings.Join(catalog.Fallbacks(name), " > ")
				if chain == "" {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", marker, name, chain)
			}
			return nil
		},
	}
}
