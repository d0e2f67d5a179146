// Package log is the datagrid debug logger. Entries are plain text lines
// with a level, a category and key=value fields, written to a file and
// fanned out to in-process subscribers. Nothing is logged until a logger is
// installed, which the CLI only does when --debug or DATAGRID_DEBUG is set.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/datagrid/internal/pubsub"
)

// EnvDebug enables debug logging when set. A comma separated list of
// categories ("grid,pool") limits the log to those categories.
const EnvDebug = "DATAGRID_DEBUG"

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// Category groups related log messages.
type Category string

const (
	CatGrid      Category = "grid"      // scroll, size and selection
	CatPool      Category = "pool"      // cell view creation and recycling
	CatReconcile Category = "reconcile" // structural row/column changes
	CatConfig    Category = "config"    // configuration loading/saving
	CatData      Category = "data"      // dataset loading and sync
	CatWatcher   Category = "watcher"   // file watcher events
	CatUI        Category = "ui"        // tea model updates
	CatCache     Category = "cache"     // render cache
	CatTrace     Category = "trace"     // tracing setup
)

// Options filter what a logger records.
type Options struct {
	MinLevel Level
	// Categories limits output to these categories. Empty means all.
	Categories []Category
}

// OptionsFromEnv reads the category filter from EnvDebug.
func OptionsFromEnv() Options {
	return Options{Categories: ParseCategories(os.Getenv(EnvDebug))}
}

// ParseCategories splits a comma separated category list. Values that just
// switch logging on ("1", "true", "all", "*") select every category.
func ParseCategories(s string) []Category {
	var cats []Category
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		switch part {
		case "", "1", "true", "yes", "all", "*":
			continue
		}
		cats = append(cats, Category(part))
	}
	return cats
}

// Logger writes entries to a writer and publishes them to subscribers.
type Logger struct {
	mu     sync.Mutex
	out    io.Writer
	closer io.Closer
	opts   Options
	broker *pubsub.Broker[string]
}

func newLogger(out io.Writer, closer io.Closer, opts Options) *Logger {
	return &Logger{out: out, closer: closer, opts: opts, broker: pubsub.NewBroker[string]()}
}

func (l *Logger) allows(level Level, cat Category) bool {
	if level < l.opts.MinLevel {
		return false
	}
	return len(l.opts.Categories) == 0 || slices.Contains(l.opts.Categories, cat)
}

func (l *Logger) write(level Level, cat Category, msg string, fields []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.allows(level, cat) {
		return
	}
	entry := format(time.Now(), level, cat, msg, fields)
	if l.out != nil {
		_, _ = io.WriteString(l.out, entry)
	}
	l.broker.Publish(pubsub.LoggedEvent, entry)
}

func (l *Logger) close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closer != nil {
		_ = l.closer.Close()
		l.closer = nil
	}
	l.out = nil
	l.broker.Close()
}

var (
	installMu sync.RWMutex
	current   *Logger
)

func install(l *Logger) func() {
	installMu.Lock()
	current = l
	installMu.Unlock()
	return func() {
		installMu.Lock()
		if current == l {
			current = nil
		}
		installMu.Unlock()
		l.close()
	}
}

func active() *Logger {
	installMu.RLock()
	defer installMu.RUnlock()
	return current
}

// DebugRequested reports whether debug logging was asked for through the
// environment or the given flag value.
func DebugRequested(flag bool) bool {
	return flag || os.Getenv(EnvDebug) != ""
}

// InitWithTeaLog logs to path through tea.LogToFile so Bubble Tea's own
// messages land in the same file. The returned cleanup uninstalls the
// logger and closes the file.
func InitWithTeaLog(path, prefix string, opts Options) (func(), error) {
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, err
	}
	return install(newLogger(f, f, opts)), nil
}

// InitWriter logs to w until the returned cleanup runs.
func InitWriter(w io.Writer, opts Options) func() {
	return install(newLogger(w, nil, opts))
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) { emit(LevelDebug, cat, msg, fields) }

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) { emit(LevelInfo, cat, msg, fields) }

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) { emit(LevelWarn, cat, msg, fields) }

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) { emit(LevelError, cat, msg, fields) }

// ErrorErr logs at error level with err appended as the "error" field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	text := "<nil>"
	if err != nil {
		text = err.Error()
	}
	emit(LevelError, cat, msg, append(fields, "error", text))
}

func emit(level Level, cat Category, msg string, fields []any) {
	if l := active(); l != nil {
		l.write(level, cat, msg, fields)
	}
}

// format renders one entry:
// 2026-01-02T15:04:05 [DEBUG] [pool] created cell view column=3 pool=12
func format(ts time.Time, level Level, cat Category, msg string, fields []any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] [%s] %s", ts.Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i < len(fields); i += 2 {
		if i+1 == len(fields) {
			fmt.Fprintf(&b, " %v=<missing>", fields[i])
			break
		}
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	b.WriteByte('\n')
	return b.String()
}

// LogEvent is a published log entry.
type LogEvent = pubsub.Event[string]

// LogListener delivers log entries to a Bubble Tea model.
type LogListener = pubsub.Listener[string]

// NewListener subscribes to the installed logger until ctx is cancelled.
// It returns nil when no logger is installed.
func NewListener(ctx context.Context) *LogListener {
	l := active()
	if l == nil {
		return nil
	}
	return pubsub.NewListener[string](ctx, l.broker)
}
