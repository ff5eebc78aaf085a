package logs

import (
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type Level string

const (
	TRACE Level = "TRACE"
	DEBUG Level = "DEBUG"
	INFO  Level = "INFO"
	WARN  Level = "WARN"
	ERROR Level = "ERROR"
	FATAL Level = "FATAL"
	PANIC Level = "PANIC"
)

// levelPriority defines the priority of each log level
// higher value= more severe
var levelPriority = map[Level]int{
	TRACE: 0,
	DEBUG: 1,
	INFO:  2,
	WARN:  3,
	ERROR: 4,
	FATAL: 5,
	PANIC: 6,
}

// ParseLevel maps a config string to a Level, defaulting to INFO.
func ParseLevel(s string) Level {
	l := Level(strings.ToUpper(s))
	if _, ok := levelPriority[l]; !ok {
		return INFO
	}
	return l
}

func fromLogrus(l logrus.Level) Level {
	switch l {
	case logrus.TraceLevel:
		return TRACE
	case logrus.DebugLevel:
		return DEBUG
	case logrus.InfoLevel:
		return INFO
	case logrus.WarnLevel:
		return WARN
	case logrus.ErrorLevel:
		return ERROR
	case logrus.FatalLevel:
		return FATAL
	default:
		return PANIC
	}
}

type Entry struct {
	TimeStamp time.Time         `json:"timestamp"`
	Level     Level             `json:"level"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
}

// Logger keeps the most recent log entries in memory. It is installed as a
// logrus hook so everything logged through logrus can be served by the
// admin API.
type Logger struct {
	mu      sync.Mutex
	entries []Entry
	maxSize int
	level   Level
}

// level: minimum log level to record(e.g., INFO, WARN, ERROR,DEBUG)
//
// maxsize:maximum number of log entries kept in memory
func NewLogger(maxSize int, level Level) *Logger {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &Logger{
		entries: make([]Entry, 0, maxSize),
		maxSize: maxSize,
		level:   level,
	}
}

// Levels implements logrus.Hook.
func (l *Logger) Levels() []logrus.Level {
	var out []logrus.Level
	for _, lvl := range logrus.AllLevels {
		if levelPriority[fromLogrus(lvl)] >= levelPriority[l.level] {
			out = append(out, lvl)
		}
	}
	return out
}

// Fire implements logrus.Hook.
func (l *Logger) Fire(e *logrus.Entry) error {
	var fields map[string]string
	if len(e.Data) > 0 {
		fields = make(map[string]string, len(e.Data))
		for k, v := range e.Data {
			fields[k] = stringify(v)
		}
	}
	l.record(Entry{
		TimeStamp: e.Time,
		Level:     fromLogrus(e.Level),
		Message:   e.Message,
		Fields:    fields,
	})
	return nil
}

// record applies level filtering and ring buffer behavior
func (l *Logger) record(entry Entry) {
	//filter logs below the current level
	if levelPriority[entry.Level] < levelPriority[l.level] {
		return
	}
	if entry.TimeStamp.IsZero() {
		entry.TimeStamp = time.Now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) >= l.maxSize {
		//remove oldest entry(ring behavior)
		l.entries = l.entries[1:]
	}

	l.entries = append(l.entries, entry)
}

func (l *Logger) GetLast(n int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n < 0 {
		n = 0
	}

	if n > len(l.entries) {
		n = len(l.entries)
	}

	start := len(l.entries) - n
	out := make([]Entry, n)
	for i, e := range l.entries[start:] {
		out[i] = e
		if e.Fields != nil {
			out[i].Fields = make(map[string]string, len(e.Fields))
			for k, v := range e.Fields {
				out[i].Fields[k] = v
			}
		}
	}
	return out
}
