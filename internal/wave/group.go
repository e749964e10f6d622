package wave

import (
	"bytes"
	"encoding/json"
	"iter"
)

// DefaultLabel is the key used for a missing label.
const DefaultLabel = ""

// LabelIndex maps each label to the index of its first occurrence.
// Iteration follows the order in which labels first appeared.
type LabelIndex struct {
	keys  []string
	index map[string]int
}

func newLabelIndex(capacity int) *LabelIndex {
	return &LabelIndex{
		keys:  make([]string, 0, capacity),
		index: make(map[string]int, capacity),
	}
}

// add records label at i unless the label is already present.
func (l *LabelIndex) add(label string, i int) {
	if _, ok := l.index[label]; ok {
		return
	}
	l.keys = append(l.keys, label)
	l.index[label] = i
}

// GroupIndexes builds a first-occurrence lookup over labels.
// Later duplicates of a label are ignored.
func GroupIndexes(labels []string) *LabelIndex {
	idx := newLabelIndex(len(labels))
	for i, label := range labels {
		idx.add(label, i)
	}
	return idx
}

// GroupOptionalIndexes is GroupIndexes for hosts whose label values may be
// absent. A nil entry is grouped under DefaultLabel.
func GroupOptionalIndexes(labels []*string) *LabelIndex {
	idx := newLabelIndex(len(labels))
	for i, label := range labels {
		key := DefaultLabel
		if label != nil {
			key = *label
		}
		idx.add(key, i)
	}
	return idx
}

// Get returns the first index recorded for label.
func (l *LabelIndex) Get(label string) (int, bool) {
	i, ok := l.index[label]
	return i, ok
}

// Has reports whether label was seen.
func (l *LabelIndex) Has(label string) bool {
	_, ok := l.index[label]
	return ok
}

// Len returns the number of distinct labels.
func (l *LabelIndex) Len() int {
	return len(l.keys)
}

// Keys returns the distinct labels in first-appearance order.
func (l *LabelIndex) Keys() []string {
	out := make([]string, len(l.keys))
	copy(out, l.keys)
	return out
}

// All iterates label/index pairs in first-appearance order.
func (l *LabelIndex) All() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		for _, k := range l.keys {
			if !yield(k, l.index[k]) {
				return
			}
		}
	}
}

// MarshalJSON encodes the lookup as a JSON object whose keys keep
// first-appearance order.
func (l *LabelIndex) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range l.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(l.index[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
