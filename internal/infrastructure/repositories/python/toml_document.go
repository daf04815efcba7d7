package python

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
)

var (
	// tableHeaderRE matches "[a.b.c]" and "[[a.b]]" headers, with an optional trailing comment.
	tableHeaderRE = regexp.MustCompile(`^\s*(\[\[?)\s*([^\[\]]+?)\s*\]\]?\s*(#.*)?$`)
	keySpacingRE  = regexp.MustCompile(`\s*\.\s*`)
)

// tomlTable is the line span of one table in a TOML document.
type tomlTable struct {
	Name   string // dotted name with quotes and spacing removed
	Header int    // index of the header line
	End    int    // index one past the table's last line
}

// tomlDocument is a TOML file held as lines, paired with its decoded metadata.
// The decoder decides what exists, the line index decides where new text goes.
type tomlDocument struct {
	path     string
	lines    []string
	meta     toml.MetaData
	root     map[string]any
	trailing bool // content ended with a newline
}

// parseTOMLDocument decodes content, reporting malformed syntax as entities.ParseError.
func parseTOMLDocument(path, content string) (*tomlDocument, error) {
	root := make(map[string]any)
	meta, err := toml.Decode(content, &root)
	if err != nil {
		return nil, entities.WrapCommandError(entities.ParseError, err, "failed to parse %s", path)
	}

	return &tomlDocument{
		path:     path,
		lines:    splitLines(content),
		meta:     meta,
		root:     root,
		trailing: strings.HasSuffix(content, "\n"),
	}, nil
}

// splitLines splits content into lines without a phantom entry for the final newline.
func splitLines(content string) []string {
	trimmed := strings.TrimSuffix(content, "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}

// String renders the document back, keeping the original trailing newline state.
func (d *tomlDocument) String() string {
	if len(d.lines) == 0 {
		return ""
	}
	out := strings.Join(d.lines, "\n")
	if d.trailing {
		out += "\n"
	}
	return out
}

// Has reports whether the dotted key path is defined anywhere in the document.
func (d *tomlDocument) Has(key ...string) bool {
	return d.meta.IsDefined(key...)
}

// Table returns the decoded table at key, or nil.
func (d *tomlDocument) Table(key ...string) map[string]any {
	var current any = d.root
	for _, part := range key {
		table, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = table[part]
	}
	table, _ := current.(map[string]any)
	return table
}

// tables indexes every table header in the document, in order.
func (d *tomlDocument) tables() []tomlTable {
	var result []tomlTable
	for i, line := range d.lines {
		match := tableHeaderRE.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		if len(result) > 0 {
			result[len(result)-1].End = i
		}
		result = append(result, tomlTable{Name: normalizeTableName(match[2]), Header: i, End: len(d.lines)})
	}
	return result
}

// findTable returns the span of the table named name.
func (d *tomlDocument) findTable(name string) (tomlTable, bool) {
	for _, table := range d.tables() {
		if table.Name == name {
			return table, true
		}
	}
	return tomlTable{}, false
}

// hasTableWithPrefix reports whether any header starts with prefix (e.g. "tool.poetry").
func (d *tomlDocument) hasTableWithPrefix(prefix string) bool {
	for _, table := range d.tables() {
		if table.Name == prefix || strings.HasPrefix(table.Name, prefix+".") {
			return true
		}
	}
	return false
}

// ensureTable makes sure table name has a [header] that new keys can go under.
// A table defined through dotted keys or an inline table cannot be reopened with a
// header, so that case is refused.
func (d *tomlDocument) ensureTable(name string) error {
	if _, ok := d.findTable(name); ok {
		return nil
	}
	if d.Has(strings.Split(name, ".")...) && !d.hasTableWithPrefix(name) {
		return entities.NewConfigurationError(
			"[%s] in %s is defined with dotted keys or an inline table; add the entry by hand",
			name, d.path,
		)
	}
	d.appendBlock("[" + name + "]")
	return nil
}

// render returns the edited document, refusing output that no longer decodes.
func (d *tomlDocument) render() (string, error) {
	out := d.String()
	if _, err := parseTOMLDocument(d.path, out); err != nil {
		return "", entities.WrapCommandError(
			entities.ParseError, err, "refusing to write %s: the edited file would not decode", d.path,
		)
	}
	return out, nil
}

// insertIntoTable places line after the last key of table name.
// Blank lines and comments that close the table stay below the new entry.
func (d *tomlDocument) insertIntoTable(name, line string) error {
	table, ok := d.findTable(name)
	if !ok {
		return fmt.Errorf("table [%s] not found in %s", name, d.path)
	}

	at := table.Header + 1
	for i := table.End - 1; i > table.Header; i-- {
		trimmed := strings.TrimSpace(d.lines[i])
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			at = i + 1
			break
		}
	}

	d.lines = append(d.lines[:at], append([]string{line}, d.lines[at:]...)...)
	if at == len(d.lines)-1 {
		d.trailing = true
	}
	return nil
}

// appendBlock adds block at the end of the document, separated by one blank line.
func (d *tomlDocument) appendBlock(block ...string) {
	if len(d.lines) > 0 && strings.TrimSpace(d.lines[len(d.lines)-1]) != "" {
		d.lines = append(d.lines, "")
	}
	d.lines = append(d.lines, block...)
	d.trailing = true
}

// renderKeyValue encodes a single `key = "value"` line, quoting the key when TOML requires it.
func renderKeyValue(key, value string) (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(map[string]string{key: value}); err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func normalizeTableName(raw string) string {
	name := keySpacingRE.ReplaceAllString(strings.TrimSpace(raw), ".")
	return strings.NewReplacer(`"`, "", `'`, "").Replace(name)
}

// keysOf returns the keys directly under the table at key, in document order.
// A "*" segment matches any name, so ("tool", "poetry", "group", "*", "dependencies")
// walks every group. Keys the metadata does not list (inline tables) follow, sorted.
func (d *tomlDocument) keysOf(key ...string) []string {
	var names []string
	seen := make(map[string]bool)
	depth := len(key)
	for _, k := range d.meta.Keys() {
		if len(k) != depth+1 || !hasKeyPrefix(k, key) {
			continue
		}
		names = append(names, k[depth])
		seen[strings.Join(k, ".")] = true
	}

	for _, table := range d.expand(key) {
		var extra []string
		for name := range d.Table(table...) {
			if !seen[strings.Join(append(append([]string(nil), table...), name), ".")] {
				extra = append(extra, name)
			}
		}
		sort.Strings(extra)
		names = append(names, extra...)
	}
	return names
}

// expand resolves "*" segments of key against the decoded document.
func (d *tomlDocument) expand(key []string) [][]string {
	paths := [][]string{nil}
	for _, part := range key {
		var next [][]string
		for _, prefix := range paths {
			if part != "*" {
				next = append(next, append(append([]string(nil), prefix...), part))
				continue
			}
			children := make([]string, 0)
			for name, value := range d.Table(prefix...) {
				if _, ok := value.(map[string]any); ok {
					children = append(children, name)
				}
			}
			sort.Strings(children)
			for _, name := range children {
				next = append(next, append(append([]string(nil), prefix...), name))
			}
		}
		paths = next
	}
	return paths
}

func hasKeyPrefix(k toml.Key, prefix []string) bool {
	for i, part := range prefix {
		if part != "*" && k[i] != part {
			return false
		}
	}
	return true
}
