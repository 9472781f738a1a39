package types

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
)

// Bytes is a byte count that reads and writes as a human string ("64 MiB").
type Bytes uint64

func (b Bytes) String() string {
	return humanize.IBytes(uint64(b))
}

func (b Bytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b *Bytes) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*b = Bytes(uint64(num))
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return b.Set(raw)
}

// UnmarshalYAML accepts both plain numbers and humanized strings.
func (b *Bytes) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		*b = 0
	case int:
		*b = Bytes(max(v, 0))
	case int64:
		*b = Bytes(max(v, 0))
	case uint64:
		*b = Bytes(v)
	case float64:
		*b = Bytes(uint64(max(v, 0)))
	case string:
		if err := b.Set(v); err != nil {
			return fmt.Errorf("invalid byte string %q: %w", v, err)
		}
	default:
		return fmt.Errorf("invalid byte value %v", raw)
	}
	return nil
}

func (b Bytes) MarshalYAML() (any, error) {
	return b.String(), nil
}

func (b Bytes) Bytes() uint64 {
	return uint64(b)
}

func (b Bytes) Int64() int64 {
	return int64(b)
}

// Set parses a humanized byte string, so Bytes can be used as a CLI flag.
func (b *Bytes) Set(value string) error {
	parsed, err := humanize.ParseBytes(value)
	if err != nil {
		return err
	}
	*b = Bytes(parsed)
	return nil
}
