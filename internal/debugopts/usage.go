package debugopts

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
)

const nameColumn = 35

// WriteUsage prints the debug vocabulary with descriptions.
func WriteUsage(w io.Writer, app string) error {
	if _, err := fmt.Fprintf(w, "Usage: %s debug option,[options,...]\n\twhere options include\n\nOptions:\n", app); err != nil {
		return err
	}
	for _, tok := range tokens {
		if _, err := fmt.Fprintf(w, "\t%s %s\n", runewidth.FillRight(tok.Name, nameColumn), tok.Description); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
