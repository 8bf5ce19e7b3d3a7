// Package render turns session outcomes into terminal output.
//
// Two modes exist: Bare emits one parseable token per result for shell
// capture; Decorated emits address, name and dotted-quad annotations
// with ANSI color. The session layer is mode-agnostic; all presentation
// choices live here.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"

	"github.com/litex-tools/netcli/pkg/session"
	"github.com/litex-tools/netcli/pkg/value"
)

// Mode selects the output rendering.
type Mode uint8

const (
	// Bare emits values only, suitable for shell capture.
	Bare Mode = iota
	// Decorated emits addresses, names and color annotations.
	Decorated
)

// maxSuggestions caps the register names enumerated on a failed name
// lookup; the remainder collapses to a count.
const maxSuggestions = 20

// Color style functions, following the original tool's palette.
var (
	styleName  = ansi.ColorFunc("cyan")
	styleValue = ansi.ColorFunc("green")
	styleAddr  = ansi.ColorFunc("black+h")
	styleArrow = ansi.ColorFunc("yellow")
	styleError = ansi.ColorFunc("red+b")
)

// Stdout returns a color-capable stdout writer and whether it is a
// terminal. Non-terminal output never gets escape sequences.
func Stdout() (io.Writer, bool) {
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return colorable.NewColorableStdout(), true
	}
	return os.Stdout, false
}

// Renderer writes session outcomes to a terminal or pipe.
type Renderer struct {
	mode  Mode
	out   io.Writer
	color bool
}

// New creates a renderer. Color is honored only in Decorated mode.
func New(mode Mode, out io.Writer, color bool) *Renderer {
	return &Renderer{
		mode:  mode,
		out:   out,
		color: color && mode == Decorated,
	}
}

// paint applies a style when color is enabled.
func (r *Renderer) paint(style func(string) string, s string) string {
	if !r.color {
		return s
	}
	return style(s)
}

// Render writes one command outcome.
func (r *Renderer) Render(out session.Outcome) {
	if out.Err != nil {
		r.renderError(out.Err)
		return
	}
	if out.Message != "" {
		fmt.Fprintln(r.out, out.Message)
	}
	for _, res := range out.Results {
		switch {
		case out.Command == session.KindRegs:
			r.renderRegsRow(res)
		case res.Err != nil:
			r.renderError(res.Err)
		case r.mode == Bare:
			fmt.Fprintln(r.out, value.FormatWord(*res.ReadValue))
		default:
			if res.WrittenValue != nil {
				r.renderWriteEcho(res)
			}
			fmt.Fprintln(r.out, r.formatReg(res.Addr, *res.ReadValue, res.Name, res.IPLike))
		}
	}
}

// renderError prints a classified command error. Both modes report
// errors; only decorated mode colors them.
func (r *Renderer) renderError(err *session.CmdError) {
	fmt.Fprintf(r.out, "%s %s\n", r.paint(styleError, "Error:"), err.Message)
	if err.Usage != "" {
		fmt.Fprintf(r.out, "Usage: %s\n", err.Usage)
	}
	if len(err.Suggestions) > 0 {
		fmt.Fprintf(r.out, "Available: %s\n", r.paint(styleAddr, joinTruncated(err.Suggestions)))
	}
}

// renderWriteEcho prints the decorated write line preceding the
// read-back line.
func (r *Renderer) renderWriteEcho(res session.Result) {
	target := fmt.Sprintf("[0x%08x]", res.Addr)
	if res.Name != "" {
		target = fmt.Sprintf("%s @ %s",
			r.paint(styleName, res.Name),
			r.paint(styleAddr, fmt.Sprintf("0x%08x", res.Addr)))
	} else {
		target = r.paint(styleAddr, target)
	}
	fmt.Fprintf(r.out, "%s %s %s\n",
		target,
		r.paint(styleArrow, "<="),
		r.paint(styleValue, value.FormatWord(*res.WrittenValue)))
}

// renderRegsRow prints one row of a regs scan. Row errors render
// inline and the scan output continues.
func (r *Renderer) renderRegsRow(res session.Result) {
	if res.Err != nil {
		if r.mode == Bare {
			fmt.Fprintf(r.out, "%s Error: %s\n", res.Name, res.Err.Message)
			return
		}
		fmt.Fprintf(r.out, "%s = %s %s\t%s %s\n",
			r.paint(styleAddr, fmt.Sprintf("[0x%08x]", res.Addr)),
			r.paint(styleError, "Error:"), res.Err.Message,
			r.paint(styleAddr, "#"),
			r.paint(styleName, res.Name))
		return
	}
	if r.mode == Bare {
		fmt.Fprintf(r.out, "%s %s\n", res.Name, value.FormatWord(*res.ReadValue))
		return
	}
	fmt.Fprintf(r.out, "%s = %s\t%s %s\n",
		r.paint(styleAddr, fmt.Sprintf("[0x%08x]", res.Addr)),
		r.paint(styleValue, value.FormatWord(*res.ReadValue)),
		r.paint(styleAddr, "#"),
		r.paint(styleName, res.Name))
}

// formatReg renders a decorated address/value pair, with the dotted
// quad annotation for ip_address registers.
func (r *Renderer) formatReg(addr, v uint32, name string, ipLike bool) string {
	ip := ""
	if ipLike && v != 0 {
		ip = " " + r.paint(styleAddr, "("+value.FormatIP(v)+")")
	}
	if name != "" {
		return fmt.Sprintf("%s @ %s = %s%s",
			r.paint(styleName, name),
			r.paint(styleAddr, fmt.Sprintf("0x%08x", addr)),
			r.paint(styleValue, value.FormatWord(v)),
			ip)
	}
	return fmt.Sprintf("%s = %s%s",
		r.paint(styleAddr, fmt.Sprintf("[0x%08x]", addr)),
		r.paint(styleValue, value.FormatWord(v)),
		ip)
}

// joinTruncated joins names, collapsing long lists to the first
// maxSuggestions plus a remainder count.
func joinTruncated(names []string) string {
	if len(names) <= maxSuggestions {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s, ... (%d more)",
		strings.Join(names[:maxSuggestions], ", "),
		len(names)-maxSuggestions)
}
