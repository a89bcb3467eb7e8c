package value

import (
	"fmt"
	"sort"

	"github.com/tinylib/msgp/msgp"
)

// MessagePackEncoder serializes values into MessagePack. Map keys are emitted
// in sorted order so equal values encode to identical bytes.
type MessagePackEncoder struct{}

// Encode return the MessagePack encoding of v
func (MessagePackEncoder) Encode(v Value) ([]byte, error) {
	return appendValue(make([]byte, 0, 64), v), nil
}

func appendValue(b []byte, v Value) []byte {
	switch v.kind {
	case KindNull:
		return msgp.AppendNil(b)
	case KindInt:
		return msgp.AppendInt64(b, v.Int())
	case KindUint:
		return msgp.AppendUint64(b, v.Uint())
	case KindFloat:
		return msgp.AppendFloat64(b, v.Float())
	case KindText:
		return msgp.AppendString(b, v.Text())
	case KindBytes:
		return msgp.AppendBytes(b, v.Bytes())
	case KindBool:
		return msgp.AppendBool(b, v.Bool())
	case KindTime:
		return msgp.AppendTime(b, v.Time())
	case KindArray:
		items := v.Array()
		b = msgp.AppendArrayHeader(b, uint32(len(items)))
		for _, item := range items {
			b = appendValue(b, item)
		}
		return b
	case KindMap:
		entries := v.Map()
		keys := make([]string, 0, len(entries))
		for key := range entries {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		b = msgp.AppendMapHeader(b, uint32(len(entries)))
		for _, key := range keys {
			b = msgp.AppendString(b, key)
			b = appendValue(b, entries[key])
		}
		return b
	default:
		panic(fmt.Sprintf("unhandled value kind %v", v.kind))
	}
}
