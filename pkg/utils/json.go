package utils

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var ErrEmptyPayload = errors.New("empty json payload")

// UnmarshalJson turns a loosely typed payload into T. A payload that already
// is a T is returned as is, raw JSON is decoded directly and anything else
// goes through a marshal round trip.
func UnmarshalJson[T any](v any) (T, error) {
	var result T
	switch payload := v.(type) {
	case nil:
		return result, ErrEmptyPayload
	case T:
		return payload, nil
	case jsoniter.RawMessage:
		return decode[T](payload)
	case []byte:
		return decode[T](payload)
	}
	data, err := jsoniter.Marshal(v)
	if err != nil {
		return result, errors.WithMessage(err, "marshal json")
	}
	return decode[T](data)
}

func decode[T any](data []byte) (T, error) {
	var result T
	if len(data) == 0 {
		return result, ErrEmptyPayload
	}
	if err := jsoniter.Unmarshal(data, &result); err != nil {
		return *new(T), errors.WithMessage(err, "unmarshal json")
	}
	return result, nil
}
