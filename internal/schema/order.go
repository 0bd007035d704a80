package schema

import (
	"context"
	"strings"
)

// TableDependencies reads the foreign keys of every table (through the
// assembler's cache) and returns, per table, the other listed tables it
// references. References outside the list and self references are dropped.
func (a *Assembler) TableDependencies(ctx context.Context, schemaName string, tables []string) ([]TableDeps, error) {
	// Constraint table names are lower-cased; match case-insensitively.
	byKey := make(map[string]string, len(tables))
	for _, t := range tables {
		byKey[strings.ToLower(t)] = t
	}

	out := make([]TableDeps, 0, len(tables))
	for _, t := range tables {
		cs, err := a.TableConstraints(ctx, schemaName, t)
		if err != nil {
			return nil, err
		}

		deps := []string{}
		seen := make(map[string]bool)
		for _, c := range cs {
			ref, ok := byKey[c.RefTable]
			if !ok || ref == t || seen[ref] {
				continue
			}
			seen[ref] = true
			deps = append(deps, ref)
		}
		out = append(out, TableDeps{Name: t, Dependencies: deps})
	}
	return out, nil
}

// OrderByDependencies orders tables so referenced tables come first.
// Cycles are broken greedily; the tables picked to break them are returned
// in the order they were picked.
func OrderByDependencies(tables []TableDeps) (sorted []TableDeps, broken []string) {
	processed := make(map[string]bool)
	byName := make(map[string]TableDeps, len(tables))
	for _, t := range tables {
		byName[t.Name] = t
	}

	for len(sorted) < len(tables) {
		added := false

		// Pass 1: every table whose dependencies are all placed
		for _, t := range tables {
			if processed[t.Name] || !allProcessed(t.Dependencies, processed) {
				continue
			}
			sorted = append(sorted, t)
			processed[t.Name] = true
			added = true
		}
		if added {
			continue
		}

		// Pass 2: cycle. Pick the table with the fewest open dependencies,
		// preferring one that sits directly in a two-way reference.
		var best *TableDeps
		bestScore := 0
		for i := range tables {
			t := tables[i]
			if processed[t.Name] {
				continue
			}

			score := -100 * openDependencies(t.Dependencies, processed)
			if inMutualReference(t, byName, processed) {
				score += 500
			}

			if best == nil || score > bestScore || (score == bestScore && t.Name < best.Name) {
				best = &tables[i]
				bestScore = score
			}
		}

		// Only duplicate names are left; they were placed in pass 1.
		if best == nil {
			break
		}
		sorted = append(sorted, *best)
		processed[best.Name] = true
		broken = append(broken, best.Name)
	}

	return sorted, broken
}

func allProcessed(deps []string, processed map[string]bool) bool {
	for _, d := range deps {
		if !processed[d] {
			return false
		}
	}
	return true
}

func openDependencies(deps []string, processed map[string]bool) int {
	n := 0
	for _, d := range deps {
		if !processed[d] {
			n++
		}
	}
	return n
}

// inMutualReference reports whether an unplaced dependency of t references t back.
func inMutualReference(t TableDeps, byName map[string]TableDeps, processed map[string]bool) bool {
	for _, d := range t.Dependencies {
		if processed[d] {
			continue
		}
		for _, back := range byName[d].Dependencies {
			if back == t.Name {
				return true
			}
		}
	}
	return false
}
