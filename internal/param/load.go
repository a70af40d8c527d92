package param

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
)

// LoadFile opens path (expanding a leading "~" the way a shell would) and
// parses it together with cliArgs as command-line overrides.
func LoadFile(path string, cliArgs []string) (*Map, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("param: resolving %q: %w", path, err)
	}
	f, err := os.Open(expanded)
	if err != nil {
		return nil, fmt.Errorf("param: opening parameter file: %w", err)
	}
	defer f.Close()
	return Parse(f, cliArgs)
}
