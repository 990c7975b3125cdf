// Package shell provides line-oriented readers for grouper's interactive
// mode, in which a user builds up a grammar one BNF declaration at a time
// and sees whether it still compiles without a full recompile cycle.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// DeclReader reads one BNF declaration at a time from some source.
type DeclReader interface {
	// ReadDecl reads the next declaration. The returned string is only
	// empty on error, unless blank lines have been allowed with
	// AllowBlank. At end of input, returns "" and io.EOF.
	ReadDecl() (string, error)

	// AllowBlank sets whether a blank line is returned as-is rather than
	// skipped. By default it is not.
	AllowBlank(allow bool)

	// Close releases any resources the reader holds.
	Close() error
}

// readDecl pulls lines from getLine until it finds one worth handing back
// to the BNF reader, via the same blank/skip loop a generic line-oriented
// reader would use, but with one BNF-specific addition: a line that is
// nothing but a "//..." comment (the same comment convention a grammar
// author would register with an IGNORE pattern for the language being
// described) is skipped rather than passed through, since it can never be
// a valid LHS = RHS declaration and would otherwise reach bnfread.Read only
// to be rejected as a syntax error on its first character.
func readDecl(blanksAllowed bool, getLine func() (string, error)) (string, error) {
	for {
		line, err := getLine()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)

		if line == "" {
			if blanksAllowed {
				return line, nil
			}
			continue
		}
		if isCommentLine(line) {
			continue
		}

		return line, nil
	}
}

func isCommentLine(line string) bool {
	return strings.HasPrefix(line, "//")
}

// DirectReader reads declarations from an arbitrary io.Reader, with no
// line editing or history. Suitable for piping a file into grouper's
// interactive mode non-interactively.
type DirectReader struct {
	r             *bufio.Reader
	blanksAllowed bool
}

// NewDirectReader wraps r in a buffered DeclReader.
func NewDirectReader(r io.Reader) *DirectReader {
	return &DirectReader{r: bufio.NewReader(r)}
}

func (d *DirectReader) ReadDecl() (string, error) {
	return readDecl(d.blanksAllowed, func() (string, error) {
		return d.r.ReadString('\n')
	})
}

func (d *DirectReader) AllowBlank(allow bool) {
	d.blanksAllowed = allow
}

func (d *DirectReader) Close() error {
	return nil
}

// InteractiveReader reads declarations from stdin via chzyer/readline,
// giving the user command history and line editing while typing grammar
// declarations.
type InteractiveReader struct {
	rl            *readline.Instance
	blanksAllowed bool
	prompt        string
}

// NewInteractiveReader starts a readline session with the given prompt
// (default "grouper> " if empty). The returned reader must have Close
// called on it to tear down the underlying terminal state.
func NewInteractiveReader(prompt string) (*InteractiveReader, error) {
	if prompt == "" {
		prompt = "grouper> "
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt: prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveReader{
		rl:     rl,
		prompt: prompt,
	}, nil
}

func (i *InteractiveReader) ReadDecl() (string, error) {
	return readDecl(i.blanksAllowed, i.rl.Readline)
}

func (i *InteractiveReader) AllowBlank(allow bool) {
	i.blanksAllowed = allow
}

func (i *InteractiveReader) Close() error {
	return i.rl.Close()
}

// SetPrompt updates the prompt shown before each line.
func (i *InteractiveReader) SetPrompt(p string) {
	i.prompt = p
	i.rl.SetPrompt(p)
}

// GetPrompt returns the current prompt.
func (i *InteractiveReader) GetPrompt() string {
	return i.prompt
}
