package statebridge

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/goliatone/go-errors"
)

// DecoderFunc builds one typed record from a snapshot's key-value payload.
// The payload always carries the snapshot key under "id". Decoders are
// passed by value into the subscription bridge so the bridge stays agnostic
// of the concrete record type.
type DecoderFunc func(fields map[string]any) (any, error)

// Validatable lets decoded records enforce required fields. DecoderFor runs
// Validate after structural decoding when the record implements it.
type Validatable interface {
	Validate() error
}

// DecoderFor returns a DecoderFunc that decodes the payload into T using
// mapstructure, then runs T's Validate method if it has one.
func DecoderFor[T any]() DecoderFunc {
	return func(fields map[string]any) (any, error) {
		var out T
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result: &out,
		})
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryInternal, "failed to build record decoder")
		}
		if err := dec.Decode(fields); err != nil {
			return nil, err
		}
		if v, ok := any(out).(Validatable); ok {
			if err := v.Validate(); err != nil {
				return nil, err
			}
		}
		return out, nil
	}
}

// decodeSnapshot runs the validate -> extract -> construct pipeline for one
// event occurrence. The snapshot key overrides any "id" present in the raw
// payload.
func decodeSnapshot(snap Snapshot, path string, decode DecoderFunc) (any, error) {
	if !snap.Exists() || snap.Value() == nil {
		return nil, NewNoDataError(path)
	}

	fields, ok := snap.Value().(map[string]any)
	if !ok {
		return nil, NewMalformedDataError(path)
	}

	payload := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		payload[k] = v
	}
	payload["id"] = snap.Key()

	record, err := decode(payload)
	if err != nil {
		return nil, NewDecodeError(path, err)
	}

	return record, nil
}
