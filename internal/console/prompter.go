// Package console is the human side of the session: line prompts, the
// worker/action menu, the feedback questions and the blockchain payments
// menu.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

var heading = color.New(color.FgCyan, color.Bold).SprintFunc()

// Prompter reads answers line by line from in and writes prompts to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter returns a prompter over in and out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Out is the writer prompts go to.
func (p *Prompter) Out() io.Writer {
	return p.out
}

// Ask prints label and returns the trimmed answer. A final line without a
// newline is still returned; io.EOF is only reported once input is exhausted.
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question. Only "y" and "yes" count as yes.
func (p *Prompter) Confirm(question string) (bool, error) {
	ans, err := p.Ask(question + " (y/n)")
	if err != nil {
		return false, err
	}
	ans = strings.ToLower(ans)
	return ans == "y" || ans == "yes", nil
}

// AskInt asks for an optional integer. A blank answer returns ok false; so
// does a malformed one, after telling the user it was ignored.
func (p *Prompter) AskInt(label string) (int, bool, error) {
	ans, err := p.Ask(label)
	if err != nil {
		return 0, false, err
	}
	if ans == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(ans)
	if err != nil {
		fmt.Fprintf(p.out, "Invalid input %q, ignored.\n", ans)
		return 0, false, nil
	}
	return v, true, nil
}

// choose asks for a 1-based index into n options.
func (p *Prompter) choose(label string, n int) (int, bool, error) {
	ans, err := p.Ask(label)
	if err != nil {
		return 0, false, err
	}
	i, err := strconv.Atoi(ans)
	if err != nil || i < 1 || i > n {
		return 0, false, nil
	}
	return i - 1, true, nil
}
