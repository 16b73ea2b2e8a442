package display

import (
	"fmt"
	"os"

	"github.com/framefarm/webmvert/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Cyan if colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Cyan)
	}
	fmt.Fprint(os.Stdout, `
              _                              _
__      _____| |__  _ __ _____   _____ _ __| |_
\ \ /\ / / _ \ '_ \| '_ `+"`"+` _ \ \ / / _ \ '__| __|
 \ V  V /  __/ |_) | | | | | \ V /  __/ |  | |_
  \_/\_/ \___|_.__/|_| |_| |_|\_/ \___|_|   \__|
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
