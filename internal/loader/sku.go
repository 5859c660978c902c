package loader

import (
	"bufio"
	"os"

	"github.com/jmallard/shelfwatch/schema"
)

// LoadSKUList reads the optional item filter file: one item name per line,
// blank lines skipped. The file mirrors a spreadsheet column export, so
// there is no header and no comment syntax.
func LoadSKUList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var items []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		item := schema.CleanField(scanner.Text())
		if item != "" {
			items = append(items, item)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
