package grpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// ContentSubtype selects the JSON codec on a call
// (content-type "application/grpc+json").
const ContentSubtype = "json"

func init() {
	encoding.RegisterCodec(messageCodec{})
}

// messageCodec frames FinanceService messages as JSON. An empty frame decodes
// to the zero message.
type messageCodec struct{}

func (messageCodec) Name() string { return ContentSubtype }

func (messageCodec) Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	return b, nil
}

func (messageCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %T: %w", v, err)
	}
	return nil
}
