package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NodeKind classifies a node in a JSON value.
type NodeKind string

const (
	// NodeObject is an object node
	NodeObject NodeKind = "object"
	// NodeArray is an array node
	NodeArray NodeKind = "array"
	// NodeValue is a scalar node
	NodeValue NodeKind = "value"
)

// PathEntry is one node of a value with its JSONPath.
type PathEntry struct {
	Path string   `json:"path" yaml:"path"`
	Kind NodeKind `json:"kind" yaml:"kind"`
}

var (
	pathSegmentPattern = regexp.MustCompile(`^(?:\.([^.\[\]]+)|\["((?:[^"\\]|\\.)*)"\]|\['([^']*)'\]|\[(\d+)\])`)
	plainKeyPattern    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_\-]*$`)
)

// Paths lists every node of value in document order, starting with "$".
func Paths(value any) []PathEntry {
	var entries []PathEntry
	walkPaths(value, "$", &entries)
	return entries
}

func walkPaths(value any, path string, entries *[]PathEntry) {
	switch v := value.(type) {
	case *Object:
		*entries = append(*entries, PathEntry{Path: path, Kind: NodeObject})
		for _, k := range v.keys {
			walkPaths(v.values[k], path+keySegment(k), entries)
		}
	case []any:
		*entries = append(*entries, PathEntry{Path: path, Kind: NodeArray})
		for i, elem := range v {
			walkPaths(elem, path+"["+strconv.Itoa(i)+"]", entries)
		}
	default:
		*entries = append(*entries, PathEntry{Path: path, Kind: NodeValue})
	}
}

func keySegment(key string) string {
	if plainKeyPattern.MatchString(key) {
		return "." + key
	}
	return "[" + strconv.Quote(key) + "]"
}

// Lookup resolves a simple JSONPath such as $.a[0]["b c"] inside value.
// The leading "$" is optional.
func Lookup(value any, path string) (any, error) {
	rest := strings.TrimPrefix(strings.TrimSpace(path), "$")
	if rest != "" && rest[0] != '.' && rest[0] != '[' {
		rest = "." + rest
	}

	current := value
	for rest != "" {
		m := pathSegmentPattern.FindStringSubmatch(rest)
		if m == nil {
			return nil, fmt.Errorf("%w: %q at %q", ErrInvalidPath, path, rest)
		}
		rest = rest[len(m[0]):]

		var err error
		switch {
		case m[4] != "":
			current, err = step(current, m[4], true)
		case m[2] != "":
			key, uerr := strconv.Unquote(`"` + m[2] + `"`)
			if uerr != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
			}
			current, err = step(current, key, false)
		case m[3] != "":
			current, err = step(current, m[3], false)
		default:
			current, err = step(current, m[1], false)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, path)
		}
	}
	return current, nil
}

func step(current any, segment string, indexOnly bool) (any, error) {
	switch v := current.(type) {
	case *Object:
		if indexOnly {
			return nil, ErrPathNotFound
		}
		child, ok := v.Get(segment)
		if !ok {
			return nil, ErrPathNotFound
		}
		return child, nil
	case []any:
		i, err := strconv.Atoi(segment)
		if err != nil || i < 0 || i >= len(v) {
			return nil, ErrPathNotFound
		}
		return v[i], nil
	default:
		return nil, ErrPathNotFound
	}
}
