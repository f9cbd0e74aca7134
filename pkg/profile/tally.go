package profile

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
)

// Score is one ranked tally entry.
type Score struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Tally accumulates non-negative scores per name. It remembers the order in
// which names were first seen so that ranking ties resolve deterministically.
// The zero value is ready to use.
type Tally struct {
	scores map[string]int
	order  []string
}

// Add increases the score for name by n. Non-positive n is ignored: scores
// only ever grow.
func (t *Tally) Add(name string, n int) {
	if name == "" || n <= 0 {
		return
	}
	if t.scores == nil {
		t.scores = make(map[string]int)
	}
	if _, ok := t.scores[name]; !ok {
		t.order = append(t.order, name)
	}
	t.scores[name] += n
}

// Merge adds every entry of other, in other's insertion order.
func (t *Tally) Merge(other Tally) {
	for _, name := range other.order {
		t.Add(name, other.scores[name])
	}
}

// Score returns the score for name, or 0.
func (t Tally) Score(name string) int {
	return t.scores[name]
}

// Len returns the number of distinct names.
func (t Tally) Len() int {
	return len(t.order)
}

// Ranked returns all entries sorted by descending score. Equal scores keep
// first-seen order.
func (t Tally) Ranked() []Score {
	out := make([]Score, len(t.order))
	for i, name := range t.order {
		out[i] = Score{Name: name, Score: t.scores[name]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Top returns up to n names with the highest scores.
func (t Tally) Top(n int) []string {
	ranked := t.Ranked()
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	names := make([]string, len(ranked))
	for i, s := range ranked {
		names[i] = s.Name
	}
	return names
}

// Map returns a copy of the scores.
func (t Tally) Map() map[string]int {
	m := make(map[string]int, len(t.scores))
	for k, v := range t.scores {
		m[k] = v
	}
	return m
}

// MarshalJSON encodes the tally as an object whose keys appear in ranked order.
func (t Tally) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range t.Ranked() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(s.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(s.Score))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
