package render

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"
)

const (
	defaultCols = 80
	defaultRows = 24
)

type DefaultRenderer struct {
	// Out defaults to stdout, which is then switched to raw mode by Init.
	Out io.Writer

	buffer       strings.Builder
	fd           int
	restoreState *term.State
	decorations  []*decoration
}

type decoration struct {
	X, Y    uint16
	Content string
	Frames  int // remaining frames until removed
}

func (r *DefaultRenderer) Init() error {
	if nil != r.Out {
		return nil
	}
	r.Out = os.Stdout
	r.fd = int(os.Stdout.Fd())
	state, err := term.MakeRaw(r.fd)
	if nil != err {
		return fmt.Errorf("unable to enter raw mode: %w", err)
	}
	r.restoreState = state

	fmt.Fprintf(r.Out, "%s%s%s",
		"\033[?1049h", // Enable alternate buffer
		"\033[?25l",   // Make the cursor invisible
		"\033[J",      // Clear the screen
	)
	return nil
}

func (r *DefaultRenderer) Deinit() error {
	if nil == r.restoreState {
		return nil
	}
	fmt.Fprintf(r.Out, "%s%s",
		"\033[?1049l", // Disable alternate buffer
		"\033[?25h",   // Make the cursor visible
	)
	err := term.Restore(r.fd, r.restoreState)
	r.restoreState = nil
	return err
}

func (r *DefaultRenderer) Size() (int, int) {
	if nil == r.restoreState {
		return defaultCols, defaultRows
	}
	cols, rows, err := term.GetSize(r.fd)
	if nil != err || cols <= 0 || rows <= 0 {
		return defaultCols, defaultRows
	}
	return cols, rows
}

func (r *DefaultRenderer) Clear() {
	r.decorations = r.decorations[:0]
	r.buffer.WriteString("\033[2J")
}

func (r *DefaultRenderer) AddDecoration(col, row uint16, content string, frames int) {
	r.decorations = append(r.decorations, &decoration{
		X:       col,
		Y:       row,
		Content: content,
		Frames:  frames,
	})
	r.Fill(row, col, content)
}

func (r *DefaultRenderer) tickDecorations() {
	nd := r.decorations[:0]
	for _, d := range r.decorations {
		if d.Frames == 0 {
			r.Fill(d.Y, d.X, strings.Repeat(" ", len([]rune(stripEscapes(d.Content)))))
			continue
		}
		nd = append(nd, d)
		d.Frames--
	}
	r.decorations = nd
}

// RenderLoop calls render once per frame period until it returns false.
func (r *DefaultRenderer) RenderLoop(framePeriod time.Duration, render func(elapsed time.Duration) bool) {
	cont := true
	startTime := time.Now()
	for cont {
		now := time.Now()
		deadline := now.Add(framePeriod)

		cont = render(now.Sub(startTime))

		r.tickDecorations()
		r.flush()

		time.Sleep(time.Until(deadline))
	}
}

func (r *DefaultRenderer) Fill(row, column uint16, message string) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.FormatInt(int64(row), 10))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.FormatInt(int64(column), 10))
	r.buffer.WriteString("H")
	r.buffer.WriteString(message)
}

func (r *DefaultRenderer) FillColor(row, column uint16, c color.RGBA, message string) {
	r.Fill(row, column, Colorize(c, message))
}

func (r *DefaultRenderer) flush() {
	if nil == r.Out || r.buffer.Len() == 0 {
		r.buffer.Reset()
		return
	}
	io.WriteString(r.Out, r.buffer.String())
	r.buffer.Reset()
}

// Colorize wraps message in a 24 bit foreground color.
func Colorize(c color.RGBA, message string) string {
	var b strings.Builder
	b.WriteString("\033[38;2;")
	b.WriteString(strconv.FormatInt(int64(c.R), 10))
	b.WriteString(";")
	b.WriteString(strconv.FormatInt(int64(c.G), 10))
	b.WriteString(";")
	b.WriteString(strconv.FormatInt(int64(c.B), 10))
	b.WriteString("m")
	b.WriteString(message)
	b.WriteString("\033[0m")
	return b.String()
}

func stripEscapes(s string) string {
	var b strings.Builder
	esc := false
	for _, c := range s {
		switch {
		case c == '\033':
			esc = true
		case esc:
			if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
				esc = false
			}
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}
