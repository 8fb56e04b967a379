package persist

import (
	"path/filepath"
	"strings"
)

// Shell describes the interactive shell whose rc-file receives persistent
// variables.
type Shell interface {
	Name() string
	RcFile() string
}

// ZshShell implements Shell for Zsh.
type ZshShell struct{}

func (s *ZshShell) Name() string {
	return "zsh"
}

func (s *ZshShell) RcFile() string {
	return ".zshrc"
}

// BashShell implements Shell for Bash.
type BashShell struct{}

func (s *BashShell) Name() string {
	return "bash"
}

func (s *BashShell) RcFile() string {
	return ".bashrc"
}

// DetectShell identifies the user's shell from $SHELL, defaulting to Bash.
func DetectShell(shellPath string) Shell {
	if strings.Contains(filepath.Base(shellPath), "zsh") {
		return &ZshShell{}
	}
	return &BashShell{}
}

// RcPath returns the rc-file of shell inside home.
func RcPath(home string, shell Shell) string {
	return filepath.Join(home, shell.RcFile())
}
