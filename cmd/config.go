package cmd

import (
	"fmt"
	"strings"

	"db-fieldgen/internal/database"
	"db-fieldgen/internal/dialect"
	"db-fieldgen/internal/errs"
	"db-fieldgen/internal/schema"

	"github.com/spf13/viper"
)

// GetActiveDBConfig returns the currently active database configuration.
func GetActiveDBConfig() (database.Config, error) {
	return activeDBConfig(viper.GetViper())
}

// activeDBConfig prefers an explicit database.dsn (flag or env) over the
// databases list, where exactly one entry must be active.
func activeDBConfig(v *viper.Viper) (database.Config, error) {
	if dsn := v.GetString("database.dsn"); dsn != "" {
		return database.Config{
			Name:   "cli",
			Driver: v.GetString("database.driver"),
			DSN:    dsn,
			Active: true,
		}, nil
	}

	var configs []database.Config
	if err := v.UnmarshalKey("databases", &configs); err != nil {
		return database.Config{}, errs.Wrap(errs.KindInvalidInput, "failed to parse databases config", err)
	}

	var active *database.Config
	count := 0
	for i := range configs {
		if configs[i].Active {
			active = &configs[i]
			count++
		}
	}

	if count == 0 {
		return database.Config{}, errs.New(errs.KindInvalidInput, "no active database found in config (set active: true or pass --dsn)")
	}
	if count > 1 {
		return database.Config{}, errs.New(errs.KindInvalidInput, "multiple active databases found (only one can be active)")
	}

	cfg := *active
	if d := v.GetString("database.driver"); d != "" {
		cfg.Driver = d
	}
	return cfg, nil
}

// generatorOptions builds the assembler configuration from the generator.*
// keys. Configured type_map entries are layered over defaultTypeMap.
func generatorOptions(v *viper.Viper) (schema.Options, error) {
	opts := schema.DefaultOptions()

	opts.TypeMap = make(map[string]string, len(defaultTypeMap))
	for k, t := range defaultTypeMap {
		opts.TypeMap[k] = t
	}
	for k, t := range v.GetStringMapString("generator.type_map") {
		opts.TypeMap[strings.ToLower(k)] = t
	}

	opts.IgnoreForeignConstraints = v.GetStringMapStringSlice("generator.ignore_foreign_constraint")
	opts.Languages = v.GetStringSlice("generator.languages")
	opts.CollectUnmapped = v.GetBool("generator.collect_unmapped")

	if v.IsSet("generator.boolean_options") {
		var bo []schema.Option
		if err := v.UnmarshalKey("generator.boolean_options", &bo); err != nil {
			return schema.Options{}, errs.Wrap(errs.KindInvalidInput, "failed to parse generator.boolean_options", err)
		}
		opts.BooleanOptions = bo
	}
	if v.IsSet("generator.large_object_threshold") {
		n := v.GetInt("generator.large_object_threshold")
		if n <= 0 {
			return schema.Options{}, errs.New(errs.KindInvalidInput,
				fmt.Sprintf("generator.large_object_threshold must be positive, got %d", n))
		}
		opts.LargeObjectThreshold = n
	}
	if v.IsSet("generator.large_object_types") {
		opts.LargeObjectTypes = v.GetStringSlice("generator.large_object_types")
	}

	var policy dialect.Policy
	if err := v.UnmarshalKey("generator.policy", &policy); err != nil {
		return schema.Options{}, errs.Wrap(errs.KindInvalidInput, "failed to parse generator.policy", err)
	}
	opts.Policy = policy

	return opts, nil
}
