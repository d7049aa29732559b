package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/okian/podium/internal/adapters/term"
	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/domain/filter"
	"github.com/okian/podium/internal/domain/pipeline"
)

// Filter flag names; they mirror the HTTP query parameters.
const (
	flagYearMin = "year-min"
	flagYearMax = "year-max"
	flagSex     = "sex"
	flagMedal   = "medal"
	flagSport   = "sport"
	flagCountry = "country"
)

func newViewCmd(opts *rootOptions) *cobra.Command {
	var (
		output  string
		dataset string
	)
	cmd := &cobra.Command{
		Use:   "view <id>",
		Short: "Print one dashboard view as a table, JSON or YAML",
		Long: `Load the dataset, apply the filter flags and print the chosen view.
Filters left unset keep their dashboard defaults. An empty list flag such as
--sex="" selects nothing.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: viewIDs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := term.ParseFormat(output)
			if err != nil {
				return err
			}
			sel, err := selectionFromFlags(cmd.Flags())
			if err != nil {
				return err
			}

			var extra []service.Option
			if dataset != "" {
				extra = append(extra, service.WithDatasetPath(dataset))
			}
			svc := opts.newService(extra...)
			ctx := cmd.Context()
			if err := svc.Start(ctx); err != nil {
				return fmt.Errorf("start service: %w", err)
			}
			defer svc.Stop()

			fc, err := svc.Resolve(ctx, sel)
			if err != nil {
				return err
			}
			res, err := svc.Render(ctx, pipeline.ViewID(args[0]), fc)
			if err != nil {
				return err
			}
			return term.Render(cmd.OutOrStdout(), res, format)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", string(term.FormatTable), "output format: table, json or yaml")
	f.StringVar(&dataset, "dataset", "", "CSV file or s3:// URL (overrides dataset_path)")
	addFilterFlags(f)
	return cmd
}

func addFilterFlags(f *pflag.FlagSet) {
	f.Int(flagYearMin, 0, "first year of the range (default: earliest year)")
	f.Int(flagYearMax, 0, "last year of the range (default: latest year)")
	f.StringSlice(flagSex, nil, "sexes to include (default: all)")
	f.StringSlice(flagMedal, nil, "medals to include (default: Gold, Silver, Bronze)")
	f.StringSlice(flagSport, nil, "sports to include (default: all)")
	f.StringSlice(flagCountry, nil, "countries to include (default: all)")
}

// selectionFromFlags turns the flags the user actually set into a Selection.
func selectionFromFlags(f *pflag.FlagSet) (filter.Selection, error) {
	var sel filter.Selection

	for name, dst := range map[string]**int{flagYearMin: &sel.YearMin, flagYearMax: &sel.YearMax} {
		if !f.Changed(name) {
			continue
		}
		y, err := f.GetInt(name)
		if err != nil {
			return sel, err
		}
		*dst = &y
	}

	for name, dst := range map[string]*[]string{
		flagSex:     &sel.Sexes,
		flagMedal:   &sel.Medals,
		flagSport:   &sel.Sports,
		flagCountry: &sel.Countries,
	} {
		if !f.Changed(name) {
			continue
		}
		values, err := f.GetStringSlice(name)
		if err != nil {
			return sel, err
		}
		*dst = nonBlank(values)
	}
	return sel, nil
}

// nonBlank drops empty entries and never returns nil.
func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func viewIDs() []string {
	views := pipeline.NewRegistry().Views()
	ids := make([]string, 0, len(views))
	for _, v := range views {
		ids = append(ids, string(v.ID))
	}
	return ids
}
