package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// gitignoreContent keeps local logs out of version control while the
// project overlay itself stays tracked.
const gitignoreContent = `# renderwave project-local data (auto-generated)
*.log
*.tmp
`

// GitignoreContent returns the .gitignore written into project config directories.
func GitignoreContent() string {
	return gitignoreContent
}

// EnsureGitignore creates dir/.gitignore unless one exists. It reports
// whether a file was created and never overwrites an existing one.
func EnsureGitignore(dir string) (bool, error) {
	path := filepath.Join(dir, ".gitignore")

	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking .gitignore at %s: %w", path, err)
	}

	if err = os.MkdirAll(dir, 0o750); err != nil {
		return false, fmt.Errorf("creating directory %s: %w", dir, err)
	}
	//nolint:gosec // .gitignore must be world-readable.
	if err = os.WriteFile(path, []byte(gitignoreContent), 0o644); err != nil {
		return false, fmt.Errorf("writing .gitignore at %s: %w", path, err)
	}
	return true, nil
}
