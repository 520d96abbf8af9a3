package content

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// maxContentSize caps how much of a content file is read.
const maxContentSize = 1024 * 1024 // 1MB

// Sample is shown when no content file is configured.
const Sample = `# Card

Drag this card up to expand it, or down to collapse it.

- **Mouse**: press on the card and drag
- **Keys**: ↑/↓ drag, enter release, space swipe
- **?** shows all shortcuts

The backdrop dims as the card rises.
`

// Load reads markdown from path. An empty path returns Sample.
func Load(path string) (string, error) {
	if path == "" {
		return Sample, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", fmt.Errorf("no content found at %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open content file: %w", err)
	}
	defer file.Close()

	var b strings.Builder
	scanner := bufio.NewScanner(file)
	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, maxContentSize)

	for scanner.Scan() {
		if b.Len()+len(scanner.Bytes()) > maxContentSize {
			return "", fmt.Errorf("content file %s exceeds %d bytes", path, maxContentSize)
		}
		b.Write(scanner.Bytes())
		b.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("error reading content file: %w", err)
	}

	return b.String(), nil
}
