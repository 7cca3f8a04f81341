package fileset

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// gitChangedFiles returns repo-relative paths changed since the last
// commit: tracked modifications from `git diff --name-only HEAD` plus
// untracked files from `git ls-files --others --exclude-standard`.
func gitChangedFiles(rootDir string) ([]string, error) {
	diff, err := runGit(rootDir, "diff", "--name-only", "HEAD")
	if err != nil {
		return nil, err
	}
	untracked, err := runGit(rootDir, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	for _, line := range append(splitLines(diff), splitLines(untracked)...) {
		if line == "" {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		files = append(files, line)
	}
	return files, nil
}

func runGit(rootDir string, args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", rootDir}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w (%s)", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n")), "\n")
}
