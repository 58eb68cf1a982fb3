package traces

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/reusee/amc/interp"
	"golang.org/x/term"
)

// ReadLine reads one line of user input.
type ReadLine func(prompt string) (string, error)

var ErrInterrupted = errors.New("interrupted")

// Halter waits for the user between steps.
type Halter struct {
	readLine ReadLine
	w        io.Writer
	tap      func(*interp.Interpreter)
	eval     func(*interp.Interpreter, string) (string, error)
	// running skips every later halt
	running bool
}

const haltHelp = `enter: next  r: run to the end  p <expr>: evaluate  tap: starlark repl  q: stop`

// Halt blocks until the user continues. Quitting returns an error wrapping interp.ErrStop.
func (h *Halter) Halt(i *interp.Interpreter) error {
	if h.running {
		return nil
	}
	for {
		line, err := h.readLine("halted> ")
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: %w", interp.ErrStop, ErrInterrupted)
			}
			return err
		}
		line = strings.TrimSpace(line)
		if expr, ok := strings.CutPrefix(line, "p "); ok && h.eval != nil {
			result, err := h.eval(i, expr)
			if err != nil {
				fmt.Fprintln(h.w, err)
			} else {
				fmt.Fprintln(h.w, result)
			}
			continue
		}
		switch line {
		case "", "n", "next":
			return nil
		case "r", "run":
			h.running = true
			return nil
		case "q", "quit":
			return fmt.Errorf("%w: quit", interp.ErrStop)
		case "tap":
			if h.tap != nil {
				h.tap(i)
				continue
			}
		}
		fmt.Fprintln(h.w, haltHelp)
	}
}

// TerminalReadLine reads from a line editor when stdin is a terminal, and plain lines
// otherwise.
func TerminalReadLine() ReadLine {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return lineReader(os.Stdin)
	}
	var historyFile string
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".amc_history")
	}
	return func(prompt string) (string, error) {
		rl, err := readline.NewEx(&readline.Config{
			Prompt:      prompt,
			HistoryFile: historyFile,
		})
		if err != nil {
			return "", err
		}
		defer rl.Close()
		return rl.Readline()
	}
}

func lineReader(r io.Reader) ReadLine {
	var l sync.Mutex
	scanner := bufio.NewScanner(r)
	return func(string) (string, error) {
		l.Lock()
		defer l.Unlock()
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return scanner.Text(), nil
	}
}
