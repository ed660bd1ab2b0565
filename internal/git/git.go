package git

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// IsInstalled returns true if git is available on the system PATH.
func IsInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// RepoURL builds the clone URL for an owner/project GitHub repository.
func RepoURL(repo string) string {
	return "https://github.com/" + repo + ".git"
}

// LsRemoteHead returns the full commit SHA of HEAD for a remote repository.
// url may be anything git ls-remote accepts, including a local path.
func LsRemoteHead(url string) (string, error) {
	out, err := output("ls-remote", url, "HEAD")
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(out, "\n")
	commit, _, _ := strings.Cut(line, "\t")
	commit = strings.TrimSpace(commit)
	if commit == "" {
		return "", fmt.Errorf("no HEAD found for %s", url)
	}
	return commit, nil
}

// output executes a git command and returns its stdout.
func output(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
