package importer

import (
	"fmt"
	"os"
	"strings"
)

const (
	sectionMarker = "***"
	headerMarker  = "#"
	valueMarker   = ":"
)

var keyReplacer = strings.NewReplacer("-", " ", "_", " ", ".", " ")

// CleanKey normalizes a section name, header token, or key/value text:
// '-', '_' and '.' become spaces, whitespace is collapsed and trimmed, the
// result is lowercased and the remaining spaces become underscores.
func CleanKey(s string) string {
	s = keyReplacer.Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(strings.ToLower(s), " ", "_")
}

// ReadFile loads and parses a dataset file.
func ReadFile(path string) (*Sections, error) {
	if path == "" {
		return nil, &InputError{Msg: "file path is required"}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &InputError{Source: path, Msg: err.Error()}
	}
	sections, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return sections, nil
}

// Parse turns section-delimited benchmark text into Sections.
//
// Sections are separated by "***"; the first non-empty line of each names
// it. Inside a section, a line containing '#' declares the active column
// keys, a line containing ':' assigns a scalar, and any other line is a data
// row zipped against the active keys. A row longer than the key list spills
// its trailing tokens into the last key as one list entry.
func Parse(text string) (*Sections, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &InputError{Msg: "source text is empty"}
	}

	sections := NewSections()
	line := 1
	for _, piece := range strings.Split(strings.ToLower(text), sectionMarker) {
		start := line
		line += strings.Count(piece, "\n")
		if strings.TrimSpace(piece) == "" {
			continue
		}
		if err := parseSection(sections, piece, start); err != nil {
			return nil, err
		}
	}
	return sections, nil
}

func parseSection(sections *Sections, piece string, firstLine int) error {
	lines := strings.Split(piece, "\n")

	var sec *Section
	var keys []string
	for i, raw := range lines {
		lineNo := firstLine + i
		text := normalizeLine(raw)
		if text == "" {
			continue
		}

		if sec == nil {
			name := CleanKey(strings.Trim(text, "*#: "))
			if name == "" {
				continue
			}
			sec = sections.add(name)
			continue
		}

		switch {
		case strings.Contains(text, headerMarker):
			keys = headerKeys(text)
			if len(keys) == 0 {
				return &ParseError{Section: sec.Name, Line: lineNo, Msg: "header declares no columns"}
			}
			for _, k := range keys {
				sec.reset(k)
			}
		case strings.Contains(text, valueMarker):
			k, v, _ := strings.Cut(text, valueMarker)
			sec.setScalar(CleanKey(k), firstToken(v))
		default:
			if len(keys) == 0 {
				return &ParseError{Section: sec.Name, Line: lineNo, Msg: fmt.Sprintf("data row %q before any header", text)}
			}
			appendRow(sec, keys, strings.Fields(text))
		}
	}
	return nil
}

func normalizeLine(raw string) string {
	s := strings.ReplaceAll(raw, "*", "")
	s = strings.ReplaceAll(s, "\t", " ")
	return strings.TrimSpace(s)
}

// headerKeys returns the unique, normalized column keys of a header line.
func headerKeys(text string) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, tok := range strings.Fields(text) {
		k := strings.ReplaceAll(CleanKey(tok), headerMarker, "")
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	return keys
}

// firstToken keeps only the first word of a scalar value; trailing unit or
// comment text is dropped.
func firstToken(v string) string {
	v = strings.ReplaceAll(CleanKey(v), "_", " ")
	if fields := strings.Fields(v); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

func appendRow(sec *Section, keys []string, tokens []string) {
	for i, tok := range tokens {
		if i == len(keys)-1 && len(tokens) != len(keys) {
			f := sec.ensure(keys[i])
			f.Values = append(f.Values, ListValue(tokens[i:]))
			return
		}
		f := sec.ensure(keys[i])
		f.Values = append(f.Values, ScalarValue(tok))
	}
}
