package validate

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	specflowDirName = ".specflow"
	specsDirName    = "specs"
)

// CheckStructure verifies the expected project layout. A project without
// .specflow/ is reported, not rejected; everything here is advisory.
func CheckStructure(target string) []Message {
	var msgs []Message

	specflowDir := filepath.Join(target, specflowDirName)
	info, err := os.Stat(specflowDir)
	if err != nil || !info.IsDir() {
		msgs = append(msgs,
			Message{Level: LevelError, Message: specflowDirName + "/ directory not found"},
			Message{Level: LevelInfo, Message: "run 'specflow init' to initialize the project"},
		)
		return msgs
	}
	msgs = append(msgs, Message{Level: LevelInfo, Message: specflowDirName + "/ directory present"})

	for _, sub := range []string{"memory", "scripts", "templates"} {
		path := filepath.Join(specflowDir, sub)
		if info, err := os.Stat(path); err != nil || !info.IsDir() {
			msgs = append(msgs, Message{
				Level:   LevelWarn,
				Message: fmt.Sprintf("%s/%s/ is missing", specflowDirName, sub),
			})
		}
	}

	specs := filepath.Join(target, specsDirName)
	if info, err := os.Stat(specs); err != nil || !info.IsDir() {
		msgs = append(msgs, Message{
			Level:   LevelInfo,
			Message: specsDirName + "/ not created yet (created by the first specify run)",
		})
	}

	return msgs
}
