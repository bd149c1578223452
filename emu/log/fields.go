package log

import (
	"fmt"
	"strconv"
	"time"
)

type FieldType uint8

const (
	FieldTypeUnknown FieldType = iota
	FieldTypeString
	FieldTypeStringer
	FieldTypeInt
	FieldTypeUint
	FieldTypeFloat
	FieldTypeHex32
	FieldTypeError
	FieldTypeDuration
)

// ZField is a typed log field, only formatted when the entry is emitted.
type ZField struct {
	Type FieldType
	Key  string

	String    string
	Integer   uint64
	Float     float64
	Duration  time.Duration
	Error     error
	Interface any
}

func (f *ZField) Value() string {
	switch f.Type {
	case FieldTypeString:
		return f.String
	case FieldTypeStringer:
		return f.Interface.(fmt.Stringer).String()
	case FieldTypeInt:
		return strconv.FormatInt(int64(f.Integer), 10)
	case FieldTypeUint:
		return strconv.FormatUint(f.Integer, 10)
	case FieldTypeFloat:
		// Strengths and thresholds don't need more digits.
		return strconv.FormatFloat(f.Float, 'g', 4, 64)
	case FieldTypeHex32:
		return fmt.Sprintf("%08x", uint32(f.Integer))
	case FieldTypeError:
		if f.Error == nil {
			return "<nil>"
		}
		return f.Error.Error()
	case FieldTypeDuration:
		return f.Duration.String()
	}
	return ""
}
