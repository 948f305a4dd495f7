package jsonvalue

import (
	"bytes"
	"errors"
	"io"
	"regexp"

	jsoniter "github.com/json-iterator/go"
)

var (
	// ErrEmptyDocument is returned for input holding only whitespace
	ErrEmptyDocument = errors.New("empty JSON document")
	// ErrTrailingData is returned when bytes follow the top-level value
	ErrTrailingData = errors.New("unexpected data after top-level JSON value")

	errTruncated = errors.New("unexpected end of JSON input")

	utf8BOM = []byte{0xEF, 0xBB, 0xBF}

	// The iterator accepts any run of number characters; this is the JSON grammar
	numberPattern = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)
)

// Parse decodes one complete JSON document, preserving object member order.
func Parse(data []byte) (Value, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	iter := jsoniter.ParseBytes(jsoniter.ConfigCompatibleWithStandardLibrary, data)

	if iter.WhatIsNext() == jsoniter.InvalidValue && iter.Error == io.EOF {
		return Value{}, ErrEmptyDocument
	}

	v, err := readValue(iter)
	if err != nil {
		return Value{}, err
	}

	// Only whitespace may follow; the iterator signals a clean end with io.EOF
	iter.WhatIsNext()
	if iter.Error != io.EOF {
		return Value{}, ErrTrailingData
	}
	return v, nil
}

func readValue(iter *jsoniter.Iterator) (Value, error) {
	var v Value
	switch next := iter.WhatIsNext(); next {
	case jsoniter.NilValue:
		iter.ReadNil()
		v = NullValue()
	case jsoniter.BoolValue:
		v = BoolValue(iter.ReadBool())
	case jsoniter.NumberValue:
		literal := iter.ReadNumber().String()
		if !numberPattern.MatchString(literal) {
			iter.ReportError("ReadNumber", "invalid number literal "+literal)
			return Value{}, iterError(iter)
		}
		v = NumberValue(literal)
	case jsoniter.StringValue:
		v = StringValue(iter.ReadString())
	case jsoniter.ArrayValue:
		items := []Value{}
		var itemErr error
		ok := iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			item, err := readValue(it)
			if err != nil {
				itemErr = err
				return false
			}
			items = append(items, item)
			return true
		})
		if itemErr != nil {
			return Value{}, itemErr
		}
		if !ok {
			return Value{}, iterError(iter)
		}
		v = ArrayValue(items...)
	case jsoniter.ObjectValue:
		fields := []Field{}
		var fieldErr error
		ok := iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
			member, err := readValue(it)
			if err != nil {
				fieldErr = err
				return false
			}
			fields = append(fields, Field{Key: key, Value: member})
			return true
		})
		if fieldErr != nil {
			return Value{}, fieldErr
		}
		if !ok {
			return Value{}, iterError(iter)
		}
		v = ObjectValue(fields...)
	default:
		if iter.Error != nil && iter.Error != io.EOF {
			return Value{}, iter.Error
		}
		if iter.Error == io.EOF {
			return Value{}, errTruncated
		}
		iter.ReportError("Parse", "unexpected character")
		return Value{}, iterError(iter)
	}

	if iter.Error != nil && iter.Error != io.EOF {
		return Value{}, iter.Error
	}
	return v, nil
}

func iterError(iter *jsoniter.Iterator) error {
	if iter.Error != nil && iter.Error != io.EOF {
		return iter.Error
	}
	return errTruncated
}
