package persist

// Memory keeps values in a map, nothing survives the process
type Memory struct {
	data map[string][]byte

	// WriteErr, when set, is returned by every Set (e.g. to simulate a full disk)
	WriteErr error
	// Writes counts successful Set calls
	Writes int
}

var _ Backend = &Memory{}

func InMemory() *Memory {
	return &Memory{data: map[string][]byte{}}
}

func (m *Memory) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Set(key string, value []byte) error {
	if key == "" {
		return ErrInvalidKey
	}
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.data[key] = append([]byte(nil), value...)
	m.Writes++
	return nil
}

func (m *Memory) Close() error {
	return nil
}
