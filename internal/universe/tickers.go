// Package universe loads the ticker list that defines the scan scope.
package universe

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Load reads the ticker file: one ticker per line, blank lines and
// `#` comments ignored, duplicates removed keeping the first
// occurrence. A missing file or an empty result is an error since a
// scan without a universe cannot produce anything.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ticker file %s: %w", path, err)
	}
	defer f.Close()

	seen := make(map[string]struct{})
	var tickers []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		tickers = append(tickers, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ticker file %s: %w", path, err)
	}

	if len(tickers) == 0 {
		return nil, fmt.Errorf("ticker file %s contains no tickers", path)
	}

	return tickers, nil
}
