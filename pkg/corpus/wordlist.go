package corpus

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ReadWordList reads one word per line. Lines are trimmed and blank lines
// skipped; order is preserved.
func ReadWordList(r io.Reader) ([]string, error) {
	var words []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w := strings.TrimSpace(scanner.Text())
		if w == "" {
			continue
		}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading word list: %v", ErrDataUnavailable, err)
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("%w: empty word list", ErrDataUnavailable)
	}

	return words, nil
}

// WriteWordList writes words one per line.
func WriteWordList(w io.Writer, words []string) error {
	bw := bufio.NewWriter(w)
	for _, word := range words {
		if _, err := bw.WriteString(word + "\n"); err != nil {
			return fmt.Errorf("writing word list: %w", err)
		}
	}
	return bw.Flush()
}
