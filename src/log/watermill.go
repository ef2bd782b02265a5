package log

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/go-logr/logr"
)

// watermillAdapter routes watermill's logging through a logr.Logger.
type watermillAdapter struct {
	l logr.Logger
}

// Watermill returns a watermill.LoggerAdapter writing to the global logger
// under the given name.
func Watermill(name string) watermill.LoggerAdapter {
	return &watermillAdapter{l: logger.WithName(name)}
}

func (a *watermillAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.l.Error(err, msg, keysAndValues(fields)...)
}

func (a *watermillAdapter) Info(msg string, fields watermill.LogFields) {
	a.l.Info(msg, keysAndValues(fields)...)
}

func (a *watermillAdapter) Debug(msg string, fields watermill.LogFields) {
	a.l.V(1).Info(msg, keysAndValues(fields)...)
}

func (a *watermillAdapter) Trace(msg string, fields watermill.LogFields) {
	a.l.V(2).Info(msg, keysAndValues(fields)...)
}

func (a *watermillAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &watermillAdapter{l: a.l.WithValues(keysAndValues(fields)...)}
}

func keysAndValues(fields watermill.LogFields) []interface{} {
	kv := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		kv = append(kv, k, v)
	}
	return kv
}
