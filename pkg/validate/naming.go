package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	specDirPattern  = regexp.MustCompile(`^\d{3}-[a-z0-9]+(-[a-z0-9]+)*$`)
	kebabMdPattern  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*\.md$`)
	templateSuffix  = "-template.md"
	templateAllowed = map[string]struct{}{"constitution.md": {}}
)

// CheckNaming applies the naming conventions: specs/ entries are ordinal
// kebab-case directories (e.g. 001-user-auth), and template files carry the
// -template.md suffix. Pure string checks; nothing is modified.
func CheckNaming(target string) []Message {
	var msgs []Message

	specs := filepath.Join(target, specsDirName)
	entries, err := os.ReadDir(specs)
	if err == nil {
		for _, entry := range entries {
			if !entry.IsDir() {
				msgs = append(msgs, Message{
					Level:   LevelWarn,
					Message: fmt.Sprintf("specs/%s is not a directory; specs are grouped per feature", entry.Name()),
					File:    filepath.Join(specs, entry.Name()),
				})
				continue
			}
			if !specDirPattern.MatchString(entry.Name()) {
				msgs = append(msgs, Message{
					Level:   LevelWarn,
					Message: fmt.Sprintf("spec directory %q should match NNN-kebab-name (e.g. 001-user-auth)", entry.Name()),
					File:    filepath.Join(specs, entry.Name()),
				})
				continue
			}
			msgs = append(msgs, checkSpecFiles(filepath.Join(specs, entry.Name()))...)
		}
	}

	templates := filepath.Join(target, specflowDirName, "templates")
	entries, err = os.ReadDir(templates)
	if err == nil {
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasSuffix(name, ".md") {
				continue
			}
			if _, ok := templateAllowed[name]; ok {
				continue
			}
			if !strings.HasSuffix(name, templateSuffix) {
				msgs = append(msgs, Message{
					Level:   LevelWarn,
					Message: fmt.Sprintf("template %q should end with %s", name, templateSuffix),
					File:    filepath.Join(templates, name),
				})
			} else if !kebabMdPattern.MatchString(name) {
				msgs = append(msgs, Message{
					Level:   LevelWarn,
					Message: fmt.Sprintf("template %q should be kebab-case", name),
					File:    filepath.Join(templates, name),
				})
			}
		}
	}

	if len(msgs) == 0 {
		msgs = append(msgs, Message{Level: LevelInfo, Message: "naming conventions satisfied"})
	}
	return msgs
}

// checkSpecFiles reports the canonical artifact names inside a spec directory.
func checkSpecFiles(dir string) []Message {
	var msgs []Message
	for _, name := range []string{"spec.md", "plan.md", "tasks.md"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			msgs = append(msgs, Message{
				Level:   LevelInfo,
				Message: fmt.Sprintf("%s/%s not present yet", filepath.Base(dir), name),
			})
		}
	}
	return msgs
}
