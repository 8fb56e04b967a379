//go:build !windows

package persist

import (
	"fmt"
	"os"
)

// Default returns the rc-file store. The file is Options.RcFile when set,
// otherwise the rc-file of Options.Shell in the user's home directory.
func Default(opts Options) (Store, error) {
	path := opts.RcFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot find home directory: %w", err)
		}
		path = RcPath(home, DetectShell(opts.Shell))
	}
	return NewRcFile(path)
}
