package traces

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pterm/pterm"
	"github.com/reusee/amc/interp"
	"github.com/reusee/amc/ir"
	"github.com/reusee/amc/tapes"
	"golang.org/x/term"
)

var (
	ReasonStyle   = pterm.NewStyle(pterm.BgCyan, pterm.FgBlack)
	HeadStyle     = pterm.NewStyle(pterm.FgLightYellow, pterm.Bold)
	AcceptStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	RejectStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	StopStyleBG   = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
)

// Printer renders the machine around the head.
type Printer struct {
	w      io.Writer
	before int
	after  int
	color  bool
}

func NewPrinter(w io.Writer, before, after int) *Printer {
	color := false
	if file, ok := w.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		color = true
	}
	return &Printer{
		w:      w,
		before: max(before, 0),
		after:  max(after, 1),
		color:  color,
	}
}

func (p *Printer) style(style *pterm.Style, str string) string {
	if !p.color {
		return str
	}
	return style.Sprint(str)
}

// Print writes the window of cells around the head, the current state and the last
// action, headed by reason.
func (p *Printer) Print(reason string, i *interp.Interpreter) {
	var b strings.Builder
	b.WriteString(p.style(ReasonStyle, reason))
	b.WriteByte('\n')

	head := i.Head()
	start := max(head-p.before, 0)
	end := min(i.TapeLen(), head+p.after)
	fmt.Fprintf(&b, "[%d]\n", start)

	var caret strings.Builder
	for n := start; n < end; n++ {
		cell := string(i.Cell(n))
		if cell == "" {
			cell = " "
		}
		if n > start {
			b.WriteByte('|')
		}
		width := utf8.RuneCountInString(cell)
		if n < head {
			caret.WriteString(strings.Repeat(" ", width+1))
		} else if n == head {
			caret.WriteString(strings.Repeat("^", width))
			cell = p.style(HeadStyle, cell)
		}
		b.WriteString(cell)
	}
	b.WriteByte('\n')
	b.WriteString(caret.String())
	b.WriteByte('\n')
	fmt.Fprintf(&b, "[...%d more]\n", i.TapeLen()-end)

	fmt.Fprintf(&b, "STATE : %s\n", i.State().Name())
	switch action := i.Action().(type) {
	case nil:
	case ir.Print:
		fmt.Fprintf(&b, "ACTION : print(%s)\n", action.Symbol)
	default:
		fmt.Fprintf(&b, "ACTION : %s\n", action)
	}
	b.WriteByte('\n')

	io.WriteString(p.w, b.String())
}

// Result writes the outcome of a finished run and the whole tape.
func (p *Printer) Result(i *interp.Interpreter) {
	var b strings.Builder
	b.WriteByte('\n')
	switch outcome := i.Outcome(); outcome {
	case interp.Accepted:
		b.WriteString(p.style(AcceptStyleBG, "ACCEPTED !"))
		b.WriteByte('\n')
	case interp.Rejected:
		b.WriteString(p.style(RejectStyleBG, "REJECTED !"))
		b.WriteByte('\n')
		if previous := i.Previous(); previous != nil {
			fmt.Fprintf(&b, "Rejected at state : %s\n", previous.Name())
		}
	case interp.Stopped:
		b.WriteString(p.style(StopStyleBG, "STOPPED"))
		b.WriteByte('\n')
		if err := i.Err(); err != nil {
			fmt.Fprintf(&b, "Error : %v\n", err)
		}
	default:
		fmt.Fprintf(&b, "ENDED with result %v\n", outcome)
	}
	fmt.Fprintf(&b, "STATE : %s\n", i.State().Name())
	b.WriteString(tapes.Format(i.Tape()))
	b.WriteByte('\n')

	io.WriteString(p.w, b.String())
}
