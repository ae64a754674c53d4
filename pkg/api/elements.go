package api

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"github.com/ssargent/tuplestore/pkg/tuple"
)

// ElementJSON is the wire representation of a tuple.Element for the
// /pack and /unpack endpoints. Value's shape depends on Kind: a JSON
// number for "int"/"uint", a bool for "bool", a string for "text", hex
// text for "blob"/"uuid", and an object with epoch_millis/offset_seconds
// for "time". Null carries no value.
type ElementJSON struct {
	Kind  string      `json:"kind"`
	Value interface{} `json:"value,omitempty"`
}

// ElementTimeJSON is the Value shape for Kind "time".
type ElementTimeJSON struct {
	EpochMillis   int64 `json:"epoch_millis"`
	OffsetSeconds int32 `json:"offset_seconds"`
}

// elementToJSON converts a decoded tuple.Element into its wire form.
func elementToJSON(e tuple.Element) (ElementJSON, error) {
	switch e.Kind() {
	case tuple.KindNull:
		return ElementJSON{Kind: "null"}, nil
	case tuple.KindBool:
		v, _ := e.Bool()
		return ElementJSON{Kind: "bool", Value: v}, nil
	case tuple.KindInteger:
		v, _ := e.Int64()
		return ElementJSON{Kind: "int", Value: v}, nil
	case tuple.KindNegInteger:
		v, ok := e.Int64()
		if !ok {
			// Magnitude exceeds int64; report it as an unsigned value instead.
			mag, _ := e.Uint64()
			return ElementJSON{Kind: "neg_uint", Value: mag}, nil
		}
		return ElementJSON{Kind: "int", Value: v}, nil
	case tuple.KindBlob:
		b, _ := e.Blob()
		return ElementJSON{Kind: "blob", Value: hex.EncodeToString(b)}, nil
	case tuple.KindText:
		s, _ := e.Text()
		return ElementJSON{Kind: "text", Value: s}, nil
	case tuple.KindUUID:
		id, _ := e.UUID()
		return ElementJSON{Kind: "uuid", Value: id.String()}, nil
	case tuple.KindTime, tuple.KindNegTime:
		t, _ := e.Time()
		return ElementJSON{Kind: "time", Value: ElementTimeJSON{EpochMillis: t.EpochMillis, OffsetSeconds: t.OffsetSeconds}}, nil
	default:
		return ElementJSON{}, fmt.Errorf("api: element kind %s has no JSON representation", e.Kind())
	}
}

// jsonToElement converts a wire element back into a tuple.Element.
func jsonToElement(ej ElementJSON) (tuple.Element, error) {
	switch ej.Kind {
	case "null", "":
		return tuple.Null(), nil
	case "bool":
		v, ok := ej.Value.(bool)
		if !ok {
			return tuple.Element{}, fmt.Errorf("api: bool element needs a boolean value")
		}
		return tuple.BoolElem(v), nil
	case "int":
		n, ok := ej.Value.(float64)
		if !ok {
			return tuple.Element{}, fmt.Errorf("api: int element needs a numeric value")
		}
		return tuple.Int(int64(n)), nil
	case "uint":
		n, ok := ej.Value.(float64)
		if !ok {
			return tuple.Element{}, fmt.Errorf("api: uint element needs a numeric value")
		}
		return tuple.Uint(uint64(n)), nil
	case "neg_uint":
		n, ok := ej.Value.(float64)
		if !ok {
			return tuple.Element{}, fmt.Errorf("api: neg_uint element needs a numeric value")
		}
		return tuple.NegUint(uint64(n)), nil
	case "blob":
		s, ok := ej.Value.(string)
		if !ok {
			return tuple.Element{}, fmt.Errorf("api: blob element needs a hex string value")
		}
		b, err := hex.DecodeString(s)
		if err != nil {
			return tuple.Element{}, fmt.Errorf("api: decode blob hex: %w", err)
		}
		return tuple.Blob(b), nil
	case "text":
		s, ok := ej.Value.(string)
		if !ok {
			return tuple.Element{}, fmt.Errorf("api: text element needs a string value")
		}
		return tuple.Text(s), nil
	case "uuid":
		s, ok := ej.Value.(string)
		if !ok {
			return tuple.Element{}, fmt.Errorf("api: uuid element needs a string value")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return tuple.Element{}, fmt.Errorf("api: parse uuid: %w", err)
		}
		return tuple.UUIDElem(id), nil
	case "time":
		m, ok := ej.Value.(map[string]interface{})
		if !ok {
			return tuple.Element{}, fmt.Errorf("api: time element needs an {epoch_millis, offset_seconds} object")
		}
		epoch, _ := m["epoch_millis"].(float64)
		offset, _ := m["offset_seconds"].(float64)
		e, err := tuple.TimeElem(tuple.Time{EpochMillis: int64(epoch), OffsetSeconds: int32(offset)})
		if err != nil {
			return tuple.Element{}, fmt.Errorf("api: build time element: %w", err)
		}
		return e, nil
	default:
		return tuple.Element{}, fmt.Errorf("api: unknown element kind %q", ej.Kind)
	}
}

// tupleToJSON converts every element of t to its wire form.
func tupleToJSON(t tuple.Tuple) ([]ElementJSON, error) {
	out := make([]ElementJSON, len(t))
	for i, e := range t {
		ej, err := elementToJSON(e)
		if err != nil {
			return nil, err
		}
		out[i] = ej
	}
	return out, nil
}

// jsonToTuple converts wire elements back into a tuple.Tuple.
func jsonToTuple(elements []ElementJSON) (tuple.Tuple, error) {
	out := make(tuple.Tuple, len(elements))
	for i, ej := range elements {
		e, err := jsonToElement(ej)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = e
	}
	return out, nil
}
