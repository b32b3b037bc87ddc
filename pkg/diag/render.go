package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Renderer writes diagnostics in the usual compiler format:
//
//	file.c:3:7: error: expected ';' after top-level asm block
//	asm("x") int y;
//	         ^
type Renderer struct {
	w       io.Writer
	sources map[string][]string

	bold, errc, warnc, notec *color.Color
}

// NewRenderer creates a Renderer writing to w. useColor toggles ANSI colors
// independently of the global color.NoColor setting.
func NewRenderer(w io.Writer, useColor bool) *Renderer {
	r := &Renderer{
		w:       w,
		sources: make(map[string][]string),
		bold:    color.New(color.Bold),
		errc:    color.New(color.FgRed, color.Bold),
		warnc:   color.New(color.FgMagenta, color.Bold),
		notec:   color.New(color.FgCyan, color.Bold),
	}
	for _, c := range []*color.Color{r.bold, r.errc, r.warnc, r.notec} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// AddSource registers the text of a file so diagnostics in it get a
// source line and caret.
func (r *Renderer) AddSource(filename, content string) {
	r.sources[filename] = strings.Split(content, "\n")
}

// Render writes one diagnostic
func (r *Renderer) Render(d Diagnostic) {
	levelColor := r.notec
	switch d.Level {
	case Error:
		levelColor = r.errc
	case Warning, Extension:
		levelColor = r.warnc
	}
	fmt.Fprintf(r.w, "%s %s %s\n",
		r.bold.Sprintf("%s:", d.Pos),
		levelColor.Sprintf("%s:", d.Level),
		r.bold.Sprint(d.Message()))

	line, ok := r.sourceLine(d)
	if !ok {
		return
	}
	fmt.Fprintln(r.w, line)
	fmt.Fprintln(r.w, r.bold.Sprint(caretLine(line, d.Pos.Column)))
}

// RenderAll writes every diagnostic of l followed by a summary line
func (r *Renderer) RenderAll(l *List) {
	for _, d := range l.Diagnostics() {
		r.Render(d)
	}
	r.Summary(l)
}

// Summary writes "N warnings and M errors generated." when there is
// anything to count.
func (r *Renderer) Summary(l *List) {
	var parts []string
	if n := l.WarningCount(); n > 0 {
		parts = append(parts, plural(n, "warning"))
	}
	if n := l.ErrorCount() + l.Dropped(); n > 0 {
		parts = append(parts, plural(n, "error"))
	}
	if len(parts) == 0 {
		return
	}
	fmt.Fprintf(r.w, "%s generated.\n", strings.Join(parts, " and "))
}

func (r *Renderer) sourceLine(d Diagnostic) (string, bool) {
	lines, ok := r.sources[d.Pos.File]
	if !ok || d.Pos.Line < 1 || d.Pos.Line > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[d.Pos.Line-1], "\r"), true
}

// caretLine keeps tabs from the source so the caret lines up in any
// tab width.
func caretLine(line string, col int) string {
	var b strings.Builder
	for i := 0; i < col-1 && i < len(line); i++ {
		if line[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteByte('^')
	return b.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
