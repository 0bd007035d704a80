package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"db-fieldgen/internal/errs"
	"db-fieldgen/internal/logger"
	"db-fieldgen/internal/schema"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

var (
	allTables  bool
	outFormat  string
	outputPath string
)

// tableFields is one table of a multi-table run.
type tableFields struct {
	Table  string                   `json:"table" yaml:"table"`
	Fields []schema.FieldDescriptor `json:"fields" yaml:"fields"`
}

var fieldsCmd = &cobra.Command{
	Use:   "fields [table...]",
	Short: "Print field descriptors for one or more tables",
	Example: `  fieldgen fields orders
  fieldgen fields orders customers --format yaml
  fieldgen fields --all -o fields.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)

		if len(args) == 0 && !allTables {
			return errs.New(errs.KindInvalidInput, "name at least one table or pass --all")
		}
		if outFormat != "json" && outFormat != "yaml" {
			return errs.New(errs.KindInvalidInput, fmt.Sprintf("unknown format %q (json, yaml)", outFormat))
		}

		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		tables, err := s.resolveTables(ctx, args)
		if err != nil {
			if errs.IsNotFound(err) {
				log.Warnf("run `fieldgen tables` to list the tables of %s", s.schema)
			}
			return err
		}
		if allTables {
			ordered, err := s.orderedTables(ctx, tables)
			if err != nil {
				return err
			}
			tables = tables[:0]
			for _, t := range ordered {
				tables = append(tables, t.Name)
			}
		}
		log = log.With().Str("schema", s.schema).Int("tables", len(tables)).Logger()
		log.Info("generating fields")

		var bar *uiprogress.Bar
		if len(tables) > 1 {
			progress := uiprogress.New()
			progress.SetOut(os.Stderr)
			progress.Start()
			defer progress.Stop()

			bar = progress.AddBar(len(tables)).AppendCompleted().PrependElapsed()
			bar.PrependFunc(func(b *uiprogress.Bar) string {
				return "Processing: "
			})
		}

		results := make([]tableFields, 0, len(tables))
		for _, t := range tables {
			fields, err := s.assembler.Fields(ctx, s.schema, t)
			if err != nil {
				var unmapped *errs.UnmappedTypesError
				if errors.As(err, &unmapped) {
					for _, u := range unmapped.Errors {
						log.Warnf("unmapped type %q at %s.%s", u.Type, u.Table, u.Column)
					}
				}
				log.ErrorWith("field generation failed", err, map[string]interface{}{"table": t})
				return fmt.Errorf("table %s: %w", t, err)
			}
			results = append(results, tableFields{Table: t, Fields: fields})
			if bar != nil {
				bar.Incr()
			}
		}

		out := io.Writer(os.Stdout)
		if outputPath != "" {
			f, err := os.Create(outputPath)
			if err != nil {
				return errs.Wrap(errs.KindInvalidInput, "failed to create output file", err)
			}
			defer f.Close()
			out = f
		}

		if len(results) == 1 && !allTables {
			return writeOutput(out, outFormat, results[0].Fields)
		}
		return writeOutput(out, outFormat, results)
	},
}

// writeOutput encodes v as indented JSON or YAML.
func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

func init() {
	RootCmd.AddCommand(fieldsCmd)

	fieldsCmd.Flags().BoolVar(&allTables, "all", false, "Process every table of the schema, referenced tables first")
	fieldsCmd.Flags().StringVarP(&outFormat, "format", "f", "json", "Output format: json or yaml")
	fieldsCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write to a file instead of stdout")
	fieldsCmd.Flags().Bool("collect-unmapped", false, "Report every unmapped type instead of stopping at the first")

	viper.BindPFlag("generator.collect_unmapped", fieldsCmd.Flags().Lookup("collect-unmapped"))
}
