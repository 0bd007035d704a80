package cmd

import (
	"context"
	"fmt"
	"strings"

	"db-fieldgen/internal/database"
	"db-fieldgen/internal/dialect"
	"db-fieldgen/internal/errs"
	"db-fieldgen/internal/logger"
	"db-fieldgen/internal/schema"

	"github.com/spf13/viper"
)

// session is one connection plus the assembler built on it. Its foreign key
// cache lives exactly as long as the command run.
type session struct {
	db        *database.DB
	dialect   dialect.Dialect
	schema    string
	assembler *schema.Assembler
}

func openSession(ctx context.Context) (*session, error) {
	log := logger.FromContext(ctx)

	cfg, err := GetActiveDBConfig()
	if err != nil {
		return nil, err
	}
	opts, err := generatorOptions(viper.GetViper())
	if err != nil {
		return nil, err
	}

	db, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	d := dialect.GetDialect(db.Driver())
	log.Infof("connected via %s (dialect: %s)", db.Driver(), d.Name())

	schemaName := viper.GetString("database.schema")
	if schemaName == "" {
		log.Debug("no schema given, asking the server")
		if schemaName, err = db.CurrentSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
	}
	schemaName = d.SchemaName(schemaName)

	a, err := schema.NewAssembler(db, d, opts)
	if err != nil {
		db.Close()
		return nil, err
	}
	log.Debugf("effective policy: %+v", a.Policy())

	return &session{db: db, dialect: d, schema: schemaName, assembler: a}, nil
}

func (s *session) Close() error {
	return s.db.Close()
}

// resolveTables matches requested names against the schema.
func (s *session) resolveTables(ctx context.Context, requested []string) ([]string, error) {
	all, err := schema.ListTables(ctx, s.db, s.dialect, s.schema)
	if err != nil {
		return nil, err
	}
	return matchTables(all, requested, s.schema)
}

// matchTables returns requested with the database's spelling, matched
// case-insensitively, each table once. Nothing requested means every table.
func matchTables(all, requested []string, schemaName string) ([]string, error) {
	if len(requested) == 0 {
		return all, nil
	}

	known := make(map[string]string, len(all))
	for _, t := range all {
		known[strings.ToLower(t)] = t
	}

	out := make([]string, 0, len(requested))
	seen := make(map[string]bool, len(requested))
	for _, r := range requested {
		t, ok := known[strings.ToLower(r)]
		if !ok {
			return nil, errs.New(errs.KindNotFound, fmt.Sprintf("table %q not found in schema %q", r, schemaName))
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out, nil
}

// orderedTables returns tables with referenced tables first.
func (s *session) orderedTables(ctx context.Context, tables []string) ([]schema.TableDeps, error) {
	deps, err := s.assembler.TableDependencies(ctx, s.schema, tables)
	if err != nil {
		return nil, err
	}
	sorted, broken := schema.OrderByDependencies(deps)
	if len(broken) > 0 {
		logger.FromContext(ctx).Warnf("circular foreign keys, ordered by heuristic at: %s", strings.Join(broken, ", "))
	}
	return sorted, nil
}
