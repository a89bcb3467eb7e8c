package logging

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vireodb/mysqlbind/utils"
)

// ---------- custom Loggers
// inspired by "github.com/bshuster-repo/logrus-logstash-hook"
// ----------

// Default key names for the default fields
const (
	FieldKeyUnixTime  = "unixTime"
	FieldKeyProduct   = "product"
	FieldKeyVersion   = "version"
	FieldKeyEventCode = "code"
)

const defaultProduct = "mysqlbind"

// JSONFieldMap renames standard logrus fields in JSON output
var JSONFieldMap = logrus.FieldMap{
	logrus.FieldKeyTime:  "timestamp",
	logrus.FieldKeyMsg:   "msg",
	logrus.FieldKeyLevel: "level",
}

// TextFormatter returns a plaintext formatter with default settings
func TextFormatter() FormatterWrapper {
	return &wrappedFormatter{
		formatter: &logrus.TextFormatter{
			FullTimestamp:    true,
			TimestampFormat:  time.RFC3339,
			QuoteEmptyFields: true},
	}
}

// JSONFormatter returns a JSON formatter with default product, version and
// unixTime fields on every entry
func JSONFormatter() FormatterWrapper {
	return &wrappedFormatter{
		formatter: &logrus.JSONFormatter{
			FieldMap:        JSONFieldMap,
			TimestampFormat: time.RFC3339,
		},
		fields: logrus.Fields{
			FieldKeyProduct: defaultProduct,
			FieldKeyVersion: utils.VERSION,
		},
	}
}

// wrappedFormatter serializes entries with the inner logrus formatter after
// merging default fields and applying registered hooks.
type wrappedFormatter struct {
	formatter logrus.Formatter
	fields    logrus.Fields
	hooks     []FormatterHook
}

// SetServiceName replace the product field of every entry, formatters without
// default fields ignore it
func (f *wrappedFormatter) SetServiceName(serviceName string) {
	if len(f.fields) != 0 {
		f.fields[FieldKeyProduct] = serviceName
	}
}

// SetHooks register hooks called around entry serialization
func (f *wrappedFormatter) SetHooks(hooks []FormatterHook) {
	f.hooks = hooks
}

// Format formats an entry with the inner formatter and the default fields.
//
// Note: the given entry is copied and not changed during the formatting process.
func (f *wrappedFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	merged := copyEntry(entry, f.fields)
	defer releaseEntry(merged)

	if len(f.fields) != 0 {
		merged.Data[FieldKeyUnixTime] = unixTimeWithMilliseconds(entry)
	}
	for _, hook := range f.hooks {
		if err := hook.PreFormat(merged); err != nil {
			return nil, err
		}
	}
	formatted, err := f.formatter.Format(merged)
	if err != nil {
		return nil, err
	}
	buffer := bytes.NewBuffer(formatted)
	for _, hook := range f.hooks {
		if err := hook.PostFormat(merged, buffer); err != nil {
			return nil, err
		}
	}
	return buffer.Bytes(), nil
}

// Using a pool to re-use of old entries when formatting messages.
// It is used in the Format function.
var entryPool = sync.Pool{
	New: func() interface{} {
		return &logrus.Entry{}
	},
}

// copyEntry copies the entry `e` to a new entry and then adds all the fields in `fields` that are missing in the new entry data.
// It uses `entryPool` to re-use allocated entries.
func copyEntry(e *logrus.Entry, fields logrus.Fields) *logrus.Entry {
	ne := entryPool.Get().(*logrus.Entry)
	ne.Message = e.Message
	ne.Level = e.Level
	ne.Time = e.Time
	ne.Data = logrus.Fields{}
	for k, v := range fields {
		ne.Data[k] = v
	}
	for k, v := range e.Data {
		ne.Data[k] = v
	}
	return ne
}

// releaseEntry puts the given entry back to `entryPool`. It must be called if copyEntry is called.
func releaseEntry(e *logrus.Entry) {
	entryPool.Put(e)
}

func unixTimeWithMilliseconds(e *logrus.Entry) string {
	nanos := e.Time.UnixNano()
	millis := nanos / 1000000
	millisf := float64(millis) / 1000.0

	return fmt.Sprintf("%.3f", millisf)
}
