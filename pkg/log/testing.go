package log

import (
	"bytes"
	"context"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// TestLogger captures records as zerolog JSON lines in memory so tests can
// assert on what stats, linear and preprocessing logged. Loggers derived
// with With share the buffer.
type TestLogger struct {
	out *lockedBuffer
	zl  zerolog.Logger
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf *bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// NewTestLogger returns a logger at level and the buffer it writes to.
//
//	logger, buffer := log.NewTestLogger(log.LevelDebug)
//	lr := linear.NewLinearRegression(linear.WithLogger(logger))
func NewTestLogger(level Level) (*TestLogger, *bytes.Buffer) {
	out := &lockedBuffer{buf: &bytes.Buffer{}}
	return &TestLogger{
		out: out,
		zl:  zerolog.New(out).Level(toZerologLevel(level)),
	}, out.buf
}

func (t *TestLogger) Debug(msg string, fields ...any) {
	emit(t.zl.Debug(), msg, withErrorCode(fields))
}

func (t *TestLogger) Info(msg string, fields ...any) {
	emit(t.zl.Info(), msg, withErrorCode(fields))
}

func (t *TestLogger) Warn(msg string, fields ...any) {
	emit(t.zl.Warn(), msg, withErrorCode(fields))
}

func (t *TestLogger) Error(msg string, fields ...any) {
	emit(t.zl.Error(), msg, withErrorCode(fields))
}

func (t *TestLogger) With(fields ...any) Logger {
	return &TestLogger{out: t.out, zl: t.zl.With().Fields(pairs(fields)).Logger()}
}

func (t *TestLogger) Enabled(ctx context.Context, level Level) bool {
	return toZerologLevel(level) >= t.zl.GetLevel()
}

// withErrorCode appends ErrorCodeKey when fields lead with a scistat error.
func withErrorCode(fields []any) []any {
	if len(fields) == 0 {
		return fields
	}
	err, ok := fields[0].(error)
	if !ok {
		return fields
	}
	code := ErrorCode(err)
	if code == "" {
		return fields
	}
	return append(pairs(fields), ErrorCodeKey, code)
}

// GetLogEntries parses the captured output into one map per entry.
func (t *TestLogger) GetLogEntries() ([]map[string]interface{}, error) {
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(t.out.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ContainsMessage reports whether any captured output contains message.
func (t *TestLogger) ContainsMessage(message string) bool {
	return strings.Contains(t.out.String(), message)
}

// ContainsField reports whether an entry has key set to value. Numbers
// come back from JSON as float64.
func (t *TestLogger) ContainsField(key string, value interface{}) bool {
	entries, err := t.GetLogEntries()
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if v, ok := entry[key]; ok && v == value {
			return true
		}
	}
	return false
}

// ContainsErrorCode reports whether an entry was logged for an error
// classified as code, e.g. ErrorDegenerate.
func (t *TestLogger) ContainsErrorCode(code string) bool {
	return t.ContainsField(ErrorCodeKey, code)
}

func (t *TestLogger) Clear() {
	t.out.mu.Lock()
	defer t.out.mu.Unlock()
	t.out.buf.Reset()
}

// TestLoggerProvider is a LoggerProvider backed by one TestLogger.
type TestLoggerProvider struct {
	logger *TestLogger
}

func NewTestLoggerProvider(level Level) (*TestLoggerProvider, *bytes.Buffer) {
	logger, buffer := NewTestLogger(level)
	return &TestLoggerProvider{logger: logger}, buffer
}

func (p *TestLoggerProvider) GetLogger() Logger {
	return p.logger
}

func (p *TestLoggerProvider) GetLoggerWithName(name string) Logger {
	return p.logger.With(ComponentKey, name)
}

// SetLevel applies to loggers handed out afterwards.
func (p *TestLoggerProvider) SetLevel(level Level) {
	p.logger.zl = p.logger.zl.Level(toZerologLevel(level))
}

// Logger returns the underlying TestLogger for assertions.
func (p *TestLoggerProvider) Logger() *TestLogger {
	return p.logger
}
