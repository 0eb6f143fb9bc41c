package service

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// jsonCodec encodes plain Go structs as JSON. It takes the "json" codec
// name, so Connect's protobuf-only JSON codec is replaced on both the
// handler and the client side.
type jsonCodec struct{}

var _ connect.Codec = jsonCodec{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}
