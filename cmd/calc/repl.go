// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zetaloop/DSProject2-Calculator/internal/input"
	"github.com/zetaloop/DSProject2-Calculator/internal/scanner"
	"github.com/zetaloop/DSProject2-Calculator/pkg/calc"
)

// Plain keys typed in raw mode. Digits, the point and ASCII operators press
// themselves.
var plainKeys = map[byte]string{
	'p': "π",
	'e': "e",
	'i': "i",
	'A': "Ans",
	'M': "MR",
	'r': "Ran#",
	'=': input.KeyEquals,
}

// Alt+key mappings: Alt+key sends ESC (0x1b) followed by the key byte
var altKeyMappings = map[byte]string{
	's': "sin",
	'c': "cos",
	't': "tan",
	'S': "sin^-1",
	'C': "cos^-1",
	'T': "tan^-1",
	'q': "√",
	'Q': "∛",
	'l': "log",
	'n': "ln",
	'a': "|x|",
	'i': "int",
	'm': "Mod",
	'P': "nPr",
	'N': "nCr",
	'x': input.KeyScientific,
	'f': input.KeyFraction,
	'd': "Dec",
	'b': "Bin",
	'o': "Oct",
	'h': "Hex",
	'R': "Rad",
	'g': "Deg",
	'y': "Hyp",
	'+': input.KeyMemAdd,
	'-': input.KeyMemSub,
	'0': input.KeyMemClear,
}

func printBanner(w io.Writer, raw bool) {
	nl := "\n"
	if raw {
		nl = "\r\n"
	}
	lines := []string{
		"calc keypad (Ctrl+D to exit)",
		"",
		"  Enter → =        Backspace → DEL    Ctrl+L → AC     ←/→ move",
		"  p → π   e → e    i → i   A → Ans    M → MR          r → Ran#",
		"  Alt+s/c/t → sin/cos/tan   Alt+S/C/T → inverse       Alt+q → √",
		"  Alt+l → log   Alt+n → ln  Alt+a → |x|  Alt+m → mod  Alt+P/N → nPr/nCr",
		"  Alt+x → SCI   Alt+f → S⇔D  Alt+d/b/o/h → base  Alt+R/g/y → Rad/Deg/Hyp",
		"  Alt++ → M+    Alt+- → M-   Alt+0 → MC",
		"",
	}
	for _, l := range lines {
		fmt.Fprint(w, l+nl)
	}
}

func (a *app) runREPL(cmd *cobra.Command) error {
	e, err := a.engine()
	if err != nil {
		return err
	}
	defer e.Close()

	id, err := e.Resume(a.sessionID)
	if err != nil {
		return err
	}

	// Check if stdin is a terminal
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return runRawREPL(e, id, f, cmd.OutOrStdout())
	}
	// Not a TTY, fall back to basic mode
	return runBasicREPL(e, id, cmd.InOrStdin(), cmd.OutOrStdout())
}

// runBasicREPL reads one entry per line. A line that names a key presses
// that key; anything else is typed text that replaces the expression and is
// committed with =.
func runBasicREPL(e *calc.Engine, id string, r io.Reader, w io.Writer) error {
	reader := bufio.NewReader(r)
	for {
		fmt.Fprint(w, ">>> ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		resp, perr := pressLine(e, id, line)
		if perr != nil {
			return perr
		}
		fmt.Fprintln(w, resp.Display)
	}
}

func pressLine(e *calc.Engine, id, line string) (calc.Response, error) {
	if isKey(e, line) {
		return e.Press(id, line)
	}

	labels, err := scanner.Labels(line)
	if err != nil {
		return calc.Response{}, err
	}
	keys := append([]string{input.KeyClear}, labels...)
	keys = append(keys, input.KeyEquals)

	var resp calc.Response
	for _, k := range keys {
		if resp, err = e.Press(id, k); err != nil {
			return calc.Response{}, err
		}
	}
	return resp, nil
}

func isKey(e *calc.Engine, s string) bool {
	for _, k := range input.SpecialKeys {
		if s == k {
			return true
		}
	}
	_, ok := e.Keymap().Lookup(s)
	return ok
}

// runRawREPL presses a key for every keystroke and redraws the expression
// and its live result on one line.
func runRawREPL(e *calc.Engine, id string, in *os.File, w io.Writer) error {
	fd := int(in.Fd())

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set raw mode: %v\n", err)
		return runBasicREPL(e, id, in, w)
	}
	defer term.Restore(fd, oldState)

	printBanner(w, true)

	// Show the resumed session before the first key.
	snap, err := e.Snapshot(id)
	if err != nil {
		return err
	}
	redraw(w, calc.Response{Expression: snap.Expression})

	for {
		key, eof := readKeyRaw(in)
		if eof {
			fmt.Fprint(w, "\r\n")
			return nil
		}
		if key == "" {
			continue
		}
		resp, err := e.Press(id, key)
		if err != nil {
			fmt.Fprintf(w, "\r\nError: %v\r\n", err)
			continue
		}
		redraw(w, resp)
		if key == input.KeyEquals {
			fmt.Fprint(w, "\r\n")
		}
	}
}

func redraw(w io.Writer, resp calc.Response) {
	fmt.Fprintf(w, "\r\x1b[K%s", strings.Join(resp.Expression, ""))
	if resp.Display != "" {
		fmt.Fprintf(w, "    %s", resp.Display)
	}
}

// readKeyRaw reads one keystroke in raw mode and returns the calculator key
// it stands for, "" for an unbound keystroke, or eof on Ctrl+D or Ctrl+C.
func readKeyRaw(in io.Reader) (string, bool) {
	buf := make([]byte, 1)
	read := func() (byte, bool) {
		n, err := in.Read(buf)
		if err != nil || n == 0 {
			return 0, false
		}
		return buf[0], true
	}

	b, ok := read()
	if !ok {
		return "", true
	}

	switch b {
	case 0x04, 0x03: // Ctrl+D, Ctrl+C
		return "", true

	case 0x0d, 0x0a: // Enter (CR or LF)
		return input.KeyEquals, false

	case 0x7f, 0x08: // Backspace (DEL or BS)
		return input.KeyDelete, false

	case 0x0c: // Ctrl+L
		return input.KeyClear, false

	case 0x1b: // ESC - could be Alt+key or arrow key sequence
		next, ok := read()
		if !ok {
			return "", false
		}
		if next == '[' {
			// Arrow key sequence: ESC [ C/D
			arrow, ok := read()
			if !ok {
				return "", false
			}
			switch arrow {
			case 'C': // Right arrow
				return input.KeyRight, false
			case 'D': // Left arrow
				return input.KeyLeft, false
			case '3': // Delete key: ESC [ 3 ~
				if tilde, ok := read(); ok && tilde == '~' {
					return input.KeyDelete, false
				}
			}
			return "", false
		}
		if next == 0x1b { // ESC ESC
			return input.KeyClear, false
		}
		return altKeyMappings[next], false
	}

	if key, ok := plainKeys[b]; ok {
		return key, false
	}
	if (b >= '0' && b <= '9') || strings.IndexByte(".+-*/^!%()", b) >= 0 {
		return string(b), false
	}
	return "", false
}
