package wiring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
)

// The definition format is a language-agnostic structured document:
//
//	{
//	  "meta": {"id": "...", "name": "...", "provenance": {...}},
//	  "diagram": {
//	    "nodes": [{"id": "c", "component": "context-self"},
//	              {"id": "x", "component": "bit-xor", "params": {"n": 1}}],
//	    "edges": [{"from": "c", "to": "x", "to-port": "a"},
//	              {"const": 0, "to": "x", "to-port": "b"}],
//	    "output": "x"
//	  }
//	}
//
// The format is stable across composition: a composed wiring marshals
// to the same shape as a hand-authored one. Param and const values map
// to JSON by kind: integers decode as Sigil in const position and Int
// in params, floats as Scalar, booleans as Bool, strings of 0/1 as
// Bits, and homogeneous arrays as the matching list type.

// MarshalWiring renders a wiring in the definition format.
func MarshalWiring(w *Wiring) ([]byte, error) {
	doc := map[string]any{
		"meta":    metaToMap(w.Meta),
		"diagram": DiagramToMap(w.Diagram),
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("marshal wiring %s: %w", w.Meta.ID, err)
	}
	return buf.Bytes(), nil
}

// UnmarshalWiring parses the definition format. Malformed documents
// surface the offending node or edge in the error.
func UnmarshalWiring(data []byte) (*Wiring, error) {
	var doc struct {
		Meta struct {
			ID         string `json:"id"`
			Name       string `json:"name"`
			Provenance *struct {
				Operator string   `json:"operator"`
				Parents  []string `json:"parents"`
			} `json:"provenance"`
		} `json:"meta"`
		Diagram struct {
			Nodes []struct {
				ID        string                     `json:"id"`
				Component string                     `json:"component"`
				Params    map[string]json.RawMessage `json:"params"`
			} `json:"nodes"`
			Edges []struct {
				From     string          `json:"from"`
				FromPort string          `json:"from-port"`
				To       string          `json:"to"`
				ToPort   string          `json:"to-port"`
				Const    json.RawMessage `json:"const"`
			} `json:"edges"`
			Output string `json:"output"`
		} `json:"diagram"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse wiring document: %w", err)
	}

	w := &Wiring{
		Meta: Meta{ID: doc.Meta.ID, Name: doc.Meta.Name},
		Diagram: Diagram{
			Output: doc.Diagram.Output,
		},
	}
	if doc.Meta.Provenance != nil {
		w.Meta.Provenance = &Provenance{
			Operator: doc.Meta.Provenance.Operator,
			Parents:  doc.Meta.Provenance.Parents,
		}
	}

	for _, n := range doc.Diagram.Nodes {
		node := Node{ID: n.ID, Component: n.Component}
		if len(n.Params) > 0 {
			node.Params = make(map[string]Value, len(n.Params))
			for k, raw := range n.Params {
				v, err := DecodeValue(raw, false)
				if err != nil {
					return nil, fmt.Errorf("node %q param %q: %w", n.ID, k, err)
				}
				node.Params[k] = v
			}
		}
		w.Diagram.Nodes = append(w.Diagram.Nodes, node)
	}

	for i, e := range doc.Diagram.Edges {
		edge := Edge{From: e.From, FromPort: e.FromPort, To: e.To, ToPort: e.ToPort}
		if len(e.Const) > 0 && string(e.Const) != "null" {
			v, err := DecodeValue(e.Const, true)
			if err != nil {
				return nil, fmt.Errorf("edge %d const: %w", i, err)
			}
			edge.Const = v
		}
		w.Diagram.Edges = append(w.Diagram.Edges, edge)
	}

	return w, nil
}

// DecodeValue parses one JSON value into a Value. In const position
// small non-negative integers decode as Sigil (constants overwhelmingly
// inject symbols); in param position integers decode as Int.
func DecodeValue(raw json.RawMessage, constPos bool) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return decodeAny(v, constPos)
}

func decodeAny(v any, constPos bool) (Value, error) {
	switch val := v.(type) {
	case bool:
		return Bool(val), nil
	case string:
		if ValidBits(Bits(val)) {
			return Bits(val), nil
		}
		return nil, fmt.Errorf("string values must be 8-bit strings of 0/1, got %q", val)
	case json.Number:
		s := string(val)
		if strings.ContainsAny(s, ".eE") {
			f, err := val.Float64()
			if err != nil {
				return nil, err
			}
			return Scalar(f), nil
		}
		n, err := val.Int64()
		if err != nil {
			return nil, err
		}
		if constPos && n >= 0 && n <= 255 {
			return Sigil(uint8(n)), nil
		}
		return Int(n), nil
	case []any:
		return decodeList(val)
	default:
		return nil, fmt.Errorf("unsupported value kind %T", v)
	}
}

// decodeList maps a homogeneous JSON array to the matching list type.
func decodeList(arr []any) (Value, error) {
	if len(arr) == 0 {
		return SigilList{}, nil
	}
	switch arr[0].(type) {
	case bool:
		out := make(BoolList, len(arr))
		for i, e := range arr {
			b, ok := e.(bool)
			if !ok {
				return nil, fmt.Errorf("mixed array at index %d", i)
			}
			out[i] = b
		}
		return out, nil
	case json.Number:
		// Floats anywhere make it a scalar list; otherwise sigils.
		isScalar := false
		for _, e := range arr {
			n, ok := e.(json.Number)
			if !ok {
				return nil, fmt.Errorf("mixed array")
			}
			if strings.ContainsAny(string(n), ".eE") {
				isScalar = true
			}
		}
		if isScalar {
			out := make(ScalarList, len(arr))
			for i, e := range arr {
				f, err := e.(json.Number).Float64()
				if err != nil {
					return nil, err
				}
				out[i] = f
			}
			return out, nil
		}
		out := make(SigilList, len(arr))
		for i, e := range arr {
			n, err := e.(json.Number).Int64()
			if err != nil {
				return nil, err
			}
			if n < 0 || n > 255 {
				return nil, fmt.Errorf("sigil out of range at index %d: %d", i, n)
			}
			out[i] = Sigil(uint8(n))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported array element kind %T", arr[0])
	}
}

// EncodeValue maps a Value to its JSON shape. Inverse of DecodeValue up
// to the Sigil/Int distinction, which the definition format does not
// preserve (both render as integers).
func EncodeValue(v Value) any {
	switch val := v.(type) {
	case Sigil:
		return int64(val)
	case SigilList:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = int64(s)
		}
		return out
	case Bits:
		return string(val)
	case Scalar:
		return float64(val)
	case ScalarList:
		out := make([]any, len(val))
		for i, f := range val {
			out[i] = f
		}
		return out
	case Int:
		return int64(val)
	case Bool:
		return bool(val)
	case BoolList:
		out := make([]any, len(val))
		for i, b := range val {
			out[i] = b
		}
		return out
	case Freq:
		out := make(map[string]any, len(val))
		for s, c := range val {
			out[fmt.Sprintf("%d", uint8(s))] = c
		}
		return out
	case State:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(map[string]any, len(val))
		for _, k := range keys {
			out[k] = EncodeValue(val[k])
		}
		return out
	case Context:
		return map[string]any{
			"pred": int64(val.Pred),
			"self": int64(val.Self),
			"succ": int64(val.Succ),
		}
	default:
		return nil
	}
}

// DiagramToMap renders a diagram as the generic map shape used both by
// the definition format and by canonical hashing.
func DiagramToMap(d Diagram) map[string]any {
	nodes := make([]any, len(d.Nodes))
	for i, n := range d.Nodes {
		m := map[string]any{"id": n.ID, "component": n.Component}
		if len(n.Params) > 0 {
			params := make(map[string]any, len(n.Params))
			for k, v := range n.Params {
				params[k] = normalizeNumber(EncodeValue(v))
			}
			m["params"] = params
		}
		nodes[i] = m
	}
	edges := make([]any, len(d.Edges))
	for i, e := range d.Edges {
		m := map[string]any{"to": e.To}
		if e.IsConst() {
			m["const"] = normalizeNumber(EncodeValue(e.Const))
		} else {
			m["from"] = e.From
			if e.FromPort != "" {
				m["from-port"] = e.FromPort
			}
		}
		if e.ToPort != "" {
			m["to-port"] = e.ToPort
		}
		edges[i] = m
	}
	return map[string]any{"nodes": nodes, "edges": edges, "output": d.Output}
}

// normalizeNumber collapses integral float64s produced by EncodeValue
// into int64 so canonical hashing does not depend on Go's float
// formatting of whole numbers.
func normalizeNumber(v any) any {
	switch val := v.(type) {
	case float64:
		if val == math.Trunc(val) && !math.IsInf(val, 0) {
			return int64(val)
		}
		return val
	case []any:
		for i, e := range val {
			val[i] = normalizeNumber(e)
		}
		return val
	case map[string]any:
		for k, e := range val {
			val[k] = normalizeNumber(e)
		}
		return val
	default:
		return v
	}
}

func metaToMap(m Meta) map[string]any {
	out := map[string]any{"id": m.ID}
	if m.Name != "" {
		out["name"] = m.Name
	}
	if m.Provenance != nil {
		parents := make([]any, len(m.Provenance.Parents))
		for i, p := range m.Provenance.Parents {
			parents[i] = p
		}
		out["provenance"] = map[string]any{
			"operator": m.Provenance.Operator,
			"parents":  parents,
		}
	}
	return out
}
