package rules

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hostbus/eventroute/internal/core/rule"
	"gopkg.in/yaml.v3"
)

// SeedActor is recorded as created_by for seeded rules that do not name one.
const SeedActor = "seed"

// seedFile is a rule.Document whose enabled flag defaults to true.
type seedFile struct {
	rule.Document
	Enabled *bool `json:"enabled"`
}

// LoadSeedDir creates one rule per *.yaml / *.yml file in dir, skipping files
// whose rule name already exists. A missing dir is not an error. Returns the
// number of rules created.
func LoadSeedDir(ctx context.Context, store *Store, dir string) (int, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("rule seed dir: %w", err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("rule seed path %q is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("reading rule seed dir: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	existing, err := store.List(ctx)
	if err != nil {
		return 0, err
	}
	names := make(map[string]bool, len(existing))
	for _, r := range existing {
		names[r.Name] = true
	}

	created := 0
	for _, e := range entries {
		if e.IsDir() || (!strings.HasSuffix(e.Name(), ".yaml") && !strings.HasSuffix(e.Name(), ".yml")) {
			continue
		}

		path := filepath.Join(dir, e.Name())
		draft, ok, err := readSeedFile(path)
		if err != nil {
			return created, err
		}
		if !ok {
			continue // empty / comment-only file
		}
		if names[draft.Name] {
			slog.Debug("[RuleStore] Seed rule already present", "name", draft.Name, "file", path)
			continue
		}

		r, err := store.Create(ctx, draft)
		if err != nil {
			return created, fmt.Errorf("seed rule %s: %w", path, err)
		}
		names[r.Name] = true
		created++
	}

	if created > 0 {
		slog.Info("[RuleStore] Seed rules loaded", "dir", dir, "created", created)
	}
	return created, nil
}

func readSeedFile(path string) (rule.Draft, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return rule.Draft{}, false, fmt.Errorf("reading rule file %s: %w", path, err)
	}

	var tree interface{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return rule.Draft{}, false, fmt.Errorf("parsing rule file %s: %w", path, err)
	}
	if tree == nil {
		return rule.Draft{}, false, nil
	}

	// Round-trip through JSON so seed files share the HTTP codec.
	asJSON, err := json.Marshal(tree)
	if err != nil {
		return rule.Draft{}, false, fmt.Errorf("rule file %s: %w", path, err)
	}
	var doc seedFile
	if err := json.Unmarshal(asJSON, &doc); err != nil {
		return rule.Draft{}, false, fmt.Errorf("rule file %s: %w", path, err)
	}
	if strings.TrimSpace(doc.Name) == "" {
		return rule.Draft{}, false, fmt.Errorf("rule file %s: name is required", path)
	}

	enabled := true
	if doc.Enabled != nil {
		enabled = *doc.Enabled
	}
	createdBy := doc.CreatedBy
	if createdBy == "" {
		createdBy = SeedActor
	}

	return rule.Draft{
		Name:      doc.Name,
		Filters:   doc.Filters,
		Action:    doc.Action.Action,
		Enabled:   enabled,
		CreatedBy: createdBy,
	}, true, nil
}
