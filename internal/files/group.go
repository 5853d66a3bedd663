package files

import (
	"bytes"
	"encoding/json"
	"path"
)

// RootGroup keys entries that sit directly under the root.
const RootGroup = "root"

// GroupedIndex buckets entries by parent directory. Keys keeps the order in
// which groups were first seen.
type GroupedIndex struct {
	Keys   []string
	Groups map[string][]ImageEntry
}

// GroupKey returns the parent directory of a relative entry path.
func GroupKey(rel string) string {
	dir := path.Dir(rel)
	if dir == "." || dir == "" || dir == "/" {
		return RootGroup
	}
	return dir
}

// Group partitions entries by GroupKey, preserving scan order.
func Group(entries []ImageEntry) GroupedIndex {
	idx := GroupedIndex{
		Keys:   make([]string, 0),
		Groups: make(map[string][]ImageEntry),
	}
	for _, e := range entries {
		key := GroupKey(e.Path)
		if _, ok := idx.Groups[key]; !ok {
			idx.Keys = append(idx.Keys, key)
		}
		idx.Groups[key] = append(idx.Groups[key], e)
	}
	return idx
}

// Len returns the number of entries across all groups.
func (g GroupedIndex) Len() int {
	n := 0
	for _, entries := range g.Groups {
		n += len(entries)
	}
	return n
}

// MarshalJSON writes the groups as an object in first-seen key order.
func (g GroupedIndex) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range g.Keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(g.Groups[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
