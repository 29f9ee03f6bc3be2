package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var ErrInvalidSelection = errors.New("invalid selection")

// InvalidSelectionError reports an answer to Select that does not name one
// of the offered options.
type InvalidSelectionError struct {
	Answer string
	Max    int
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("invalid selection %q: expected a number between 1 and %d", e.Answer, e.Max)
}

func (e *InvalidSelectionError) Unwrap() error { return ErrInvalidSelection }

// Prompter asks the user questions.
type Prompter interface {
	// Confirm asks a yes/no question. Only "y" or "Y" is a yes.
	Confirm(question string) (bool, error)
	// Select offers numbered options and returns the 0-based index chosen.
	Select(question string, options []string) (int, error)
}

// Terminal reads answers line by line from in and writes questions to out.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

func (t *Terminal) Confirm(question string) (bool, error) {
	fmt.Fprint(t.out, question)
	answer, err := t.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(t.out)
			return false, nil
		}
		return false, err
	}
	return answer == "y" || answer == "Y", nil
}

func (t *Terminal) Select(question string, options []string) (int, error) {
	fmt.Fprintln(t.out, question)
	for i, opt := range options {
		fmt.Fprintf(t.out, "  %d) %s\n", i+1, opt)
	}
	fmt.Fprint(t.out, "> ")

	answer, err := t.readLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, err
	}
	n, convErr := strconv.Atoi(answer)
	if convErr != nil || n < 1 || n > len(options) {
		return 0, &InvalidSelectionError{Answer: answer, Max: len(options)}
	}
	return n - 1, nil
}

// readLine returns the next line without its terminator. A final line with
// no newline is returned with a nil error.
func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

type assumeYes struct {
	Prompter
}

// AssumeYes wraps p so that Confirm always answers yes without reading
// input. Select is still delegated to p.
func AssumeYes(p Prompter) Prompter {
	return assumeYes{Prompter: p}
}

func (assumeYes) Confirm(string) (bool, error) { return true, nil }
