package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"classcheck/internal/config"
	"classcheck/internal/tabular"
)

// ExpandInputs resolves the given paths into input files. Directories expand
// to their supported files in name order; files are kept as given so
// unsupported ones surface as parse failures in the report.
func ExpandInputs(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		expanded, err := config.ExpandPath(p)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(expanded)
		if err != nil || !info.IsDir() {
			out = append(out, expanded)
			continue
		}
		entries, err := os.ReadDir(expanded)
		if err != nil {
			return nil, fmt.Errorf("read input directory %s: %w", expanded, err)
		}
		var files []string
		for _, e := range entries {
			if e.IsDir() || strings.HasPrefix(e.Name(), ".") || strings.HasPrefix(e.Name(), "~$") {
				continue
			}
			if tabular.Supported(e.Name()) {
				files = append(files, filepath.Join(expanded, e.Name()))
			}
		}
		sort.Strings(files)
		out = append(out, files...)
	}
	return out, nil
}
