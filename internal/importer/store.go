package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteJSON writes the sections as a nested JSON object, keeping section and
// field order. Scalar fields become strings; column fields become arrays of
// strings and, for spilled rows, nested string arrays.
func WriteJSON(w io.Writer, s *Sections) error {
	var b bytes.Buffer
	b.WriteString("{")
	for i, sec := range s.List() {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("\n  ")
		writeString(&b, sec.Name)
		b.WriteString(": {")
		for j, f := range sec.Fields() {
			if j > 0 {
				b.WriteString(",")
			}
			b.WriteString("\n    ")
			writeString(&b, f.Name)
			b.WriteString(": ")
			if err := writeField(&b, f); err != nil {
				return fmt.Errorf("encoding %s.%s: %w", sec.Name, f.Name, err)
			}
		}
		if len(sec.Fields()) > 0 {
			b.WriteString("\n  ")
		}
		b.WriteString("}")
	}
	if len(s.List()) > 0 {
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	_, err := w.Write(b.Bytes())
	return err
}

func writeString(b *bytes.Buffer, s string) {
	data, _ := json.Marshal(s)
	b.Write(data)
}

func writeField(b *bytes.Buffer, f *Field) error {
	if f.Scalar && len(f.Values) == 1 && !f.Values[0].IsList() {
		writeString(b, f.Values[0].Scalar())
		return nil
	}
	entries := make([]any, len(f.Values))
	for i, v := range f.Values {
		if v.IsList() {
			entries[i] = v.List()
		} else {
			entries[i] = v.Scalar()
		}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	b.Write(data)
	return nil
}

// ReadJSON decodes the form written by WriteJSON, preserving order.
func ReadJSON(r io.Reader) (*Sections, error) {
	dec := json.NewDecoder(r)
	sections := NewSections()
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		sec := sections.add(name)
		if err := readSection(dec, sec); err != nil {
			return nil, fmt.Errorf("section %q: %w", name, err)
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return sections, nil
}

func readSection(dec *json.Decoder, sec *Section) error {
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return err
		}
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		switch t := tok.(type) {
		case string:
			sec.setScalar(name, t)
		case json.Delim:
			if t != '[' {
				return fmt.Errorf("field %q: unexpected %v", name, t)
			}
			f := sec.reset(name)
			if err := readValues(dec, f); err != nil {
				return fmt.Errorf("field %q: %w", name, err)
			}
		default:
			return fmt.Errorf("field %q: unexpected value %v", name, tok)
		}
	}
	return expectDelim(dec, '}')
}

// readValues consumes array entries up to and including the closing ']'.
func readValues(dec *json.Decoder, f *Field) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case string:
			f.Values = append(f.Values, ScalarValue(t))
		case json.Delim:
			switch t {
			case ']':
				return nil
			case '[':
				tokens, err := readTokens(dec)
				if err != nil {
					return err
				}
				f.Values = append(f.Values, ListValue(tokens))
			default:
				return fmt.Errorf("unexpected %v", t)
			}
		default:
			return fmt.Errorf("unexpected value %v", tok)
		}
	}
}

func readTokens(dec *json.Decoder) ([]string, error) {
	tokens := []string{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case string:
			tokens = append(tokens, t)
		case json.Delim:
			if t == ']' {
				return tokens, nil
			}
			return nil, fmt.Errorf("unexpected %v in token list", t)
		default:
			return nil, fmt.Errorf("unexpected value %v in token list", tok)
		}
	}
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %v, got %v", want, tok)
	}
	return nil
}

// SaveJSON writes the sections to <dir>/<base name of datasetName>.json and
// returns the written path.
func SaveJSON(dir, datasetName string, s *Sections) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, s); err != nil {
		return "", err
	}
	path := filepath.Join(dir, filepath.Base(datasetName)+".json")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
