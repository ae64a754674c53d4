package cmd

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/ssargent/tuplestore/pkg/tuple"
)

// parseElement turns a typed-prefix command-line argument into a
// tuple.Element. The prefix names the element's kind: s: text, i: signed
// int, u: unsigned int, b: bool, x: hex blob, uuid: a UUID string. A bare
// "null" parses to the null element.
func parseElement(arg string) (tuple.Element, error) {
	if arg == "null" {
		return tuple.Null(), nil
	}

	prefix, rest, ok := strings.Cut(arg, ":")
	if !ok {
		return tuple.Element{}, fmt.Errorf("element %q needs a type prefix (s:, i:, u:, b:, x:, uuid:)", arg)
	}

	switch prefix {
	case "s":
		return tuple.Text(rest), nil
	case "i":
		n, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return tuple.Element{}, fmt.Errorf("element %q: %w", arg, err)
		}
		return tuple.Int(n), nil
	case "u":
		n, err := strconv.ParseUint(rest, 10, 64)
		if err != nil {
			return tuple.Element{}, fmt.Errorf("element %q: %w", arg, err)
		}
		return tuple.Uint(n), nil
	case "b":
		v, err := strconv.ParseBool(rest)
		if err != nil {
			return tuple.Element{}, fmt.Errorf("element %q: %w", arg, err)
		}
		return tuple.BoolElem(v), nil
	case "x":
		b, err := hex.DecodeString(rest)
		if err != nil {
			return tuple.Element{}, fmt.Errorf("element %q: %w", arg, err)
		}
		return tuple.Blob(b), nil
	case "uuid":
		id, err := uuid.Parse(rest)
		if err != nil {
			return tuple.Element{}, fmt.Errorf("element %q: %w", arg, err)
		}
		return tuple.UUIDElem(id), nil
	default:
		return tuple.Element{}, fmt.Errorf("element %q has unknown type prefix %q", arg, prefix)
	}
}

// parseTuple parses a sequence of typed-prefix arguments into a tuple.Tuple.
func parseTuple(args []string) (tuple.Tuple, error) {
	t := make(tuple.Tuple, len(args))
	for i, arg := range args {
		e, err := parseElement(arg)
		if err != nil {
			return nil, err
		}
		t[i] = e
	}
	return t, nil
}

// formatElement renders a tuple.Element back as a typed-prefix string, the
// inverse of parseElement, for displaying scan/unpack results.
func formatElement(e tuple.Element) string {
	switch e.Kind() {
	case tuple.KindNull:
		return "null"
	case tuple.KindBool:
		v, _ := e.Bool()
		return fmt.Sprintf("b:%t", v)
	case tuple.KindInteger:
		v, _ := e.Int64()
		return fmt.Sprintf("i:%d", v)
	case tuple.KindNegInteger:
		v, ok := e.Int64()
		if !ok {
			mag, _ := e.Uint64()
			return fmt.Sprintf("u:-%d", mag)
		}
		return fmt.Sprintf("i:%d", v)
	case tuple.KindBlob:
		b, _ := e.Blob()
		return "x:" + hex.EncodeToString(b)
	case tuple.KindText:
		s, _ := e.Text()
		return "s:" + s
	case tuple.KindUUID:
		id, _ := e.UUID()
		return "uuid:" + id.String()
	case tuple.KindTime, tuple.KindNegTime:
		tm, _ := e.Time()
		return fmt.Sprintf("t:%d%+ds", tm.EpochMillis, tm.OffsetSeconds)
	default:
		return fmt.Sprintf("?:%s", e.Kind())
	}
}

func formatTuple(t tuple.Tuple) string {
	parts := make([]string, len(t))
	for i, e := range t {
		parts[i] = formatElement(e)
	}
	return strings.Join(parts, " ")
}
