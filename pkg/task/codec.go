package task

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMalformed = errors.New("malformed task data")

// Encode serialises a collection to the stored layout, a JSON array
func Encode(ts []Task) ([]byte, error) {
	if ts == nil {
		ts = []Task{}
	}
	return json.Marshal(ts)
}

// Decode parses the stored layout
// empty input is an empty collection, anything unparsable wraps ErrMalformed
func Decode(bs []byte) ([]Task, error) {
	bs = bytes.TrimSpace(bs)
	if len(bs) == 0 {
		return []Task{}, nil
	}
	var ts []Task
	if err := json.Unmarshal(bs, &ts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if ts == nil {
		ts = []Task{}
	}
	return ts, nil
}
