// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"fmt"
	"maps"
	"sync"

	"github.com/ik5/mp3slice/audio"
)

// Entry is one message captured by a Logger.
type Entry struct {
	Level   string
	Message string
	Fields  map[string]interface{}
}

// Logger records every message with the fields attached to it.
type Logger struct {
	mu      *sync.Mutex
	entries *[]Entry
	fields  map[string]interface{}
}

func NewLogger() *Logger {
	return &Logger{mu: &sync.Mutex{}, entries: &[]Entry{}}
}

// Entries returns a copy of everything logged so far.
func (l *Logger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]Entry(nil), *l.entries...)
}

// Find returns the first entry with msg, or false.
func (l *Logger) Find(msg string) (Entry, bool) {
	for _, e := range l.Entries() {
		if e.Message == msg {
			return e, true
		}
	}
	return Entry{}, false
}

func (l *Logger) log(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	*l.entries = append(*l.entries, Entry{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
		Fields:  maps.Clone(l.fields),
	})
}

func (l *Logger) Debugf(format string, args ...interface{}) { l.log("debug", format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.log("info", format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.log("warn", format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.log("error", format, args...) }

func (l *Logger) WithField(key string, value interface{}) audio.Logger {
	fields := maps.Clone(l.fields)
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields[key] = value

	return &Logger{mu: l.mu, entries: l.entries, fields: fields}
}

func (l *Logger) WithError(err error) audio.Logger {
	return l.WithField("error", err)
}
