// Package cards defines flashcard records and their tab-separated output.
package cards

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/tbaudier/rarelex/pkg/tagger"
)

// Record is one finished flashcard. Definition and English may be empty
// strings meaning "unavailable"; they are always written, never omitted,
// so the output schema stays stable.
type Record struct {
	Word       string
	POS        tagger.POS
	Definition string
	Example    string
	English    string
}

// Write emits the records as UTF-8 TSV with a fixed header. Field values
// are joined with tabs as-is: embedded tab or newline characters in a
// definition or example will corrupt the row. Known limitation, kept for
// compatibility with the consuming flashcard import.
func Write(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("Word\tDefinition\tExample\tEnglish\n"); err != nil {
		return fmt.Errorf("cards: write header: %w", err)
	}
	for _, r := range records {
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\t%s\n", r.Word, r.Definition, r.Example, r.English); err != nil {
			return fmt.Errorf("cards: write record: %w", err)
		}
	}
	return bw.Flush()
}

// WriteFile writes the records to path, truncating any existing file.
func WriteFile(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cards: create %s: %w", path, err)
	}
	if err := Write(f, records); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cards: close %s: %w", path, err)
	}
	return nil
}
