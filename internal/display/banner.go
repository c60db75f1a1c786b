package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/backmassage/mediacat/internal/term"
)

// banner uses ~ in place of backticks, which raw strings cannot hold.
const banner = `                    _ _                _
 _ __ ___   ___  __| (_) __ _  ___ __ _| |_
| '_ ~ _ \ / _ \/ _~ | |/ _~ |/ __/ _~ | __|
| | | | | |  __/ (_| | | (_| | (_| (_| | |_
|_| |_| |_|\___|\__,_|_|\__,_|\___\__,_|\__|
`

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, term.Magenta)
	fmt.Fprint(w, strings.ReplaceAll(banner, "~", "`"))
	if term.Enabled() {
		fmt.Fprintln(w, term.NC)
	}
}
