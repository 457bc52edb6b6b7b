package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/sdejongh/rawpick/pkg/config"
)

// PrintError writes err to w, one line per configuration problem when there are several
func PrintError(w io.Writer, err error) {
	prefix := color.New(color.FgRed, color.Bold).Sprint("Error:")

	var violations config.ValidationErrors
	if errors.As(err, &violations) {
		fmt.Fprintf(w, "%s invalid configuration\n", prefix)
		for _, v := range violations {
			fmt.Fprintf(w, "  - %s\n", v.Error())
		}
		return
	}

	fmt.Fprintf(w, "%s %v\n", prefix, err)
}
