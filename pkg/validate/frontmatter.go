package validate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// frontMatter mirrors the YAML block expected at the top of template files.
type frontMatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// CheckFrontmatter parses the YAML frontmatter of every markdown template
// under .specflow/templates and reports missing or incomplete blocks.
func CheckFrontmatter(target string) []Message {
	var msgs []Message

	templates := filepath.Join(target, specflowDirName, "templates")
	// A missing templates directory is the structure check's finding, not ours.
	_ = filepath.WalkDir(templates, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		msgs = append(msgs, checkTemplateFrontmatter(path)...)
		return nil
	})

	if len(msgs) == 0 {
		msgs = append(msgs, Message{Level: LevelInfo, Message: "frontmatter checks passed"})
	}
	return msgs
}

func checkTemplateFrontmatter(path string) []Message {
	data, err := os.ReadFile(path)
	if err != nil {
		return []Message{{
			Level:   LevelWarn,
			Message: fmt.Sprintf("could not read template: %v", err),
			File:    path,
		}}
	}

	meta, line, err := parseFrontMatter(string(data))
	if err != nil {
		return []Message{{
			Level:   LevelWarn,
			Message: fmt.Sprintf("frontmatter: %v", err),
			File:    path,
			Line:    line,
		}}
	}

	var msgs []Message
	if strings.TrimSpace(meta.Description) == "" {
		msgs = append(msgs, Message{
			Level:   LevelWarn,
			Message: "frontmatter is missing a description",
			File:    path,
		})
	}
	return msgs
}

// parseFrontMatter splits a markdown document into its leading YAML block and
// decodes it. The returned line points at the offending region for reports.
func parseFrontMatter(content string) (frontMatter, int, error) {
	trimmed := strings.TrimPrefix(content, "\uFEFF") // drop BOM if present
	lines := strings.Split(trimmed, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return frontMatter{}, 1, errors.New("missing YAML frontmatter")
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return frontMatter{}, len(lines), errors.New("missing closing frontmatter separator")
	}

	metaText := strings.Join(lines[1:end], "\n")
	var meta frontMatter
	if err := yaml.Unmarshal([]byte(metaText), &meta); err != nil {
		return frontMatter{}, 1, fmt.Errorf("decode YAML: %w", err)
	}
	return meta, 0, nil
}
