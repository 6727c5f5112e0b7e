// Package logger configures logrus for jaskboard. The terminal belongs to
// the board while it runs, so logs normally go to a file.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// Options selects where and how much to log. An empty Path discards output.
type Options struct {
	Path   string
	Level  string
	Colors bool
}

// Formatter prints "[15:04:05] LEVEL component: message {k=v, ...}".
type Formatter struct {
	TimestampFormat string
	DisableColors   bool
}

// Format implements logrus.Formatter.
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	levelText := strings.ToUpper(entry.Level.String())
	levelColor := color.New(color.FgCyan)
	switch entry.Level {
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		levelColor = color.New(color.FgRed, color.Bold)
	case logrus.WarnLevel:
		levelColor = color.New(color.FgYellow, color.Bold)
	case logrus.DebugLevel, logrus.TraceLevel:
		levelColor = color.New(color.FgWhite, color.Faint)
	}

	data := make(logrus.Fields, len(entry.Data))
	for k, v := range entry.Data {
		data[k] = v
	}
	prefix := ""
	if c, ok := data["component"]; ok {
		prefix = fmt.Sprintf("%v: ", c)
		delete(data, "component")
	}

	var b strings.Builder
	ts := entry.Time.Format(f.TimestampFormat)
	if f.DisableColors {
		fmt.Fprintf(&b, "[%s] %-5s %s%s", ts, levelText, prefix, entry.Message)
	} else {
		fmt.Fprintf(&b, "[%s] %s %s%s", ts, levelColor.Sprintf("%-5s", levelText), color.BlueString(prefix), entry.Message)
	}

	if len(data) > 0 {
		keys := make([]string, 0, len(data))
		for k := range data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, data[k]))
		}
		b.WriteString(" {" + strings.Join(parts, ", ") + "}")
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// New builds a logger from opts. The returned closer releases the log file
// and is never nil.
func New(opts Options) (*logrus.Logger, io.Closer, error) {
	log := logrus.New()
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&Formatter{TimestampFormat: "15:04:05", DisableColors: !opts.Colors})

	if opts.Path == "" {
		log.SetOutput(io.Discard)
		return log, io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	file, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(file)
	return log, file, nil
}

// NewWithOutput builds a logger writing to w without colors (for tests and
// one-shot commands).
func NewWithOutput(w io.Writer, level string) *logrus.Logger {
	log := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetFormatter(&Formatter{TimestampFormat: "15:04:05", DisableColors: true})
	log.SetOutput(w)
	return log
}

// Component tags entries with the subsystem that wrote them.
func Component(l logrus.FieldLogger, name string) *logrus.Entry {
	return l.WithField("component", name)
}
