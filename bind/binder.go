package bind

import (
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vireodb/mysqlbind/logging"
	"github.com/vireodb/mysqlbind/memory"
	"github.com/vireodb/mysqlbind/mysql"
	"github.com/vireodb/mysqlbind/value"
)

// ErrNoAllocator returned when a binder is constructed without an allocator
var ErrNoAllocator = errors.New("binder requires an allocator")

// Binder maps host values onto bindings. Scalar variants bind directly,
// arrays and maps are serialized by the configured encoder and bound as byte
// sequences.
type Binder struct {
	allocator *memory.Allocator
	encoder   value.Encoder
	location  *time.Location
	onFailure EncodingFailureAction
	logger    *log.Entry
}

// NewBinder return binder that allocates from allocator and serializes
// structured values with encoder, nil encoder means JSON. Nil config means
// defaults, empty bindings on encoding failure and the UTC calendar.
func NewBinder(allocator *memory.Allocator, encoder value.Encoder, config *Config) (*Binder, error) {
	logger := log.WithField("component", "binder")
	if allocator == nil {
		return nil, ErrNoAllocator
	}
	if encoder == nil {
		encoder = value.JSONEncoder{}
	}
	if config == nil {
		config = DefaultConfig()
	}
	onFailure, err := config.FailureAction()
	if err != nil {
		logger.WithField(logging.FieldKeyEventCode, logging.EventCodeErrorWrongConfiguration).
			WithError(err).Errorln("Can't configure binder")
		return nil, err
	}
	location, err := config.Location()
	if err != nil {
		logger.WithField(logging.FieldKeyEventCode, logging.EventCodeErrorWrongConfiguration).
			WithError(err).Errorln("Can't configure binder")
		return nil, err
	}
	return &Binder{
		allocator: allocator,
		encoder:   encoder,
		location:  location,
		onFailure: onFailure,
		logger:    logger,
	}, nil
}

// SetLogger set logger that binder should use
func (b *Binder) SetLogger(logger *log.Entry) {
	b.logger = logger
}

// Bind return a binding carrying v. Every variant of the closed value set has
// exactly one wire shape, booleans travel as integers and temporal values as
// the calendar record split in the binder's location.
func (b *Binder) Bind(v value.Value) (*Bind, error) {
	switch v.Kind() {
	case value.KindNull:
		return Null(), nil
	case value.KindInt:
		return FromInt64(b.allocator, v.Int()), nil
	case value.KindUint:
		return FromUint64(b.allocator, v.Uint()), nil
	case value.KindFloat:
		return FromFloat64(b.allocator, v.Float()), nil
	case value.KindText:
		return FromString(b.allocator, v.Text()), nil
	case value.KindBytes:
		return FromBlob(b.allocator, v.Bytes()), nil
	case value.KindBool:
		if v.Bool() {
			return FromInt64(b.allocator, 1), nil
		}
		return FromInt64(b.allocator, 0), nil
	case value.KindTime:
		return FromTime(b.allocator, mysql.NewTime(v.Time(), b.location)), nil
	case value.KindArray, value.KindMap:
		return b.bindStructured(v)
	default:
		b.logger.WithField(logging.FieldKeyEventCode, logging.EventCodeErrorUnknownValueKind).
			Errorln("Can't bind value of unknown kind")
		return nil, fmt.Errorf("unknown value kind: %v", v.Kind())
	}
}

// BindAll return one binding per value. On any failure every binding built so
// far is released and nothing stays allocated.
func (b *Binder) BindAll(values []value.Value) ([]*Bind, error) {
	binds := make([]*Bind, 0, len(values))
	for i, v := range values {
		bound, err := b.Bind(v)
		if err != nil {
			CloseAll(binds)
			return nil, fmt.Errorf("can't bind parameter %d: %w", i, err)
		}
		binds = append(binds, bound)
	}
	return binds, nil
}

// Outputs return one output binding per result set column
func (b *Binder) Outputs(fields []mysql.Field) []*Bind {
	binds := make([]*Bind, len(fields))
	for i, field := range fields {
		binds[i] = ForOutput(b.allocator, field)
	}
	return binds
}

func (b *Binder) bindStructured(v value.Value) (*Bind, error) {
	encoded, err := b.encoder.Encode(v)
	if err != nil {
		EncodingFailureCounter.WithLabelValues(string(b.onFailure)).Inc()
		if b.onFailure == EncodingFailureError {
			return nil, fmt.Errorf("can't encode structured value: %w", err)
		}
		b.logger.WithField(logging.FieldKeyEventCode, logging.EventCodeErrorStructuredEncoding).
			WithError(err).Warningln("Can't encode structured value, binding empty byte sequence")
		encoded = []byte{}
	}
	return FromBlob(b.allocator, encoded), nil
}
