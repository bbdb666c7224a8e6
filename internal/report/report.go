package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Format selects the report file syntax.
type Format string

const (
	Text     Format = "text"
	Markdown Format = "markdown"
)

// ParseFormat accepts text, txt, markdown or md.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "txt", "":
		return Text, nil
	case "markdown", "md":
		return Markdown, nil
	}
	return "", fmt.Errorf("unknown report format %q (want text or markdown)", s)
}

// Ext is the file extension for f.
func (f Format) Ext() string {
	if f == Markdown {
		return ".md"
	}
	return ".txt"
}

// Path is where a report of the given kind ("clone", "build") lands in base.
func Path(base, kind string, f Format) string {
	return filepath.Join(base, kind+"_report"+f.Ext())
}

// WriteFile creates the report file for kind in base using write.
func WriteFile(base, kind string, f Format, write func(io.Writer, Format) error) (string, error) {
	path := Path(base, kind, f)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating report %s: %w", path, err)
	}
	bw := bufio.NewWriter(file)
	if err := write(bw, f); err != nil {
		file.Close()
		return "", fmt.Errorf("writing report %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		file.Close()
		return "", fmt.Errorf("writing report %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing report %s: %w", path, err)
	}
	return path, nil
}

// writer accumulates the first error so callers can format freely.
type writer struct {
	w   io.Writer
	f   Format
	err error
}

func (w *writer) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

func (w *writer) title(s string) {
	if w.f == Markdown {
		w.printf("# %s\n\n", s)
		return
	}
	w.printf("%s\n%s\n", s, strings.Repeat("=", len(s)))
}

func (w *writer) section(s string) {
	if w.f == Markdown {
		w.printf("## %s\n\n", s)
		return
	}
	w.printf("%s:\n", s)
}

func (w *writer) field(name string, value any) {
	if w.f == Markdown {
		w.printf("- **%s:** %v\n", name, value)
		return
	}
	w.printf("%s: %v\n", name, value)
}

func (w *writer) item(s string) {
	w.printf("  - %s\n", s)
}

func (w *writer) blank() {
	w.printf("\n")
}

func (w *writer) header(title string, started time.Time, d time.Duration) {
	w.title(title)
	w.field("Date", started.Format("2006-01-02 15:04:05"))
	w.field("Duration", fmt.Sprintf("%.2f seconds", d.Seconds()))
	w.blank()
}

func (w *writer) steps(lines []string) {
	w.section("Next Steps")
	for i, l := range lines {
		w.printf("%d. %s\n", i+1, l)
	}
}
