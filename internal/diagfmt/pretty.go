package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"jcodemodel/internal/diag"
)

// Pretty writes the diagnostics of bag in a human-readable form, in bag
// order:
//
//	<file>:<element>: <severity> <CODE>: <message>
//	  = note: <file>:<element>: <message>
//	  = hint: <hint>
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) error {
	paint := func(c *color.Color, s string) string {
		if !opts.Color {
			return s
		}
		c.EnableColor()
		return c.Sprint(s)
	}
	sevColor := map[diag.Severity]*color.Color{
		diag.SevError:   color.New(color.FgRed, color.Bold),
		diag.SevWarning: color.New(color.FgYellow, color.Bold),
		diag.SevInfo:    color.New(color.FgCyan),
	}
	dim := color.New(color.Faint)

	where := func(loc diag.Location) string {
		loc.File = formatPath(loc.File, opts.PathMode, opts.BaseDir)
		if s := loc.String(); s != "" {
			return s + ": "
		}
		return ""
	}

	for _, d := range bag.Items() {
		sev := paint(sevColor[d.Severity], d.Severity.Label()+" "+d.Code.ID())
		if _, err := fmt.Fprintf(w, "%s%s: %s\n", where(d.Primary), sev, d.Message); err != nil {
			return err
		}
		if opts.ShowNotes {
			for _, n := range d.Notes {
				if _, err := fmt.Fprintf(w, "  %s %s%s\n", paint(dim, "= note:"), where(n.Loc), n.Msg); err != nil {
					return err
				}
			}
		}
		if opts.ShowHints && d.Hint != "" {
			if _, err := fmt.Fprintf(w, "  %s %s\n", paint(dim, "= hint:"), d.Hint); err != nil {
				return err
			}
		}
	}
	return nil
}
