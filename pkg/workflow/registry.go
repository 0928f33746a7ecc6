package workflow

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Rules is the rule registry: workflow name to rule.
type Rules map[string]Rule

// Get returns the rule for name, or the canonical empty rule when absent.
// Unknown workflow names never fail.
func (r Rules) Get(name string) Rule {
	if rule, ok := r[name]; ok {
		return rule
	}
	return EmptyRule
}

// rulesDocument is the on-disk YAML shape of the registry.
type rulesDocument struct {
	Version   string          `yaml:"version"`
	Workflows map[string]Rule `yaml:"workflows"`
}

const rulesDocumentVersion = "1"

// LoadOrBootstrap loads the registry from path. An absent file is seeded
// once with DefaultRules and the defaults returned; an unreadable or corrupt
// file degrades to the defaults without writing. Loading never fails the
// caller — a registry the user emptied on purpose stays empty.
func LoadOrBootstrap(path string) Rules {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if seedErr := WriteRules(path, DefaultRules()); seedErr != nil {
				log.Printf("workflow: seed registry %s: %v", path, seedErr)
			}
		} else {
			log.Printf("workflow: read registry %s, using defaults: %v", path, err)
		}
		return DefaultRules()
	}

	var doc rulesDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		log.Printf("workflow: registry %s is not valid YAML, using defaults: %v", path, err)
		return DefaultRules()
	}
	if doc.Workflows == nil {
		return Rules{}
	}
	return Rules(doc.Workflows)
}

// WriteRules persists a registry document, creating parent directories as
// needed. Used for the one-time bootstrap seed and by project scaffolding.
func WriteRules(path string, r Rules) error {
	doc := rulesDocument{Version: rulesDocumentVersion, Workflows: r}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create registry dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}
	return nil
}
