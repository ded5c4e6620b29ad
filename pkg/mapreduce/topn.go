package mapreduce

import (
	"fmt"
	"sort"
)

type kv struct {
	Key   string
	Value int64
}

// ranked sorts counts by value descending, then key ascending, dropping zeros.
func ranked(counts map[string]int64) []kv {
	ss := make([]kv, 0, len(counts))
	for k, v := range counts {
		if v > 0 {
			ss = append(ss, kv{k, v})
		}
	}
	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Value != ss[j].Value {
			return ss[i].Value > ss[j].Value
		}
		return ss[i].Key < ss[j].Key
	})
	return ss
}

// TopTags returns the top N tags by count as "code:count" strings (e.g. "B3:41").
// Tags with a zero count are skipped.
func TopTags(counts map[string]int64, n int) []string {
	ss := ranked(counts)

	limit := n
	if len(ss) < n {
		limit = len(ss)
	}
	if limit < 0 {
		limit = 0
	}

	tags := make([]string, limit)
	for i := 0; i < limit; i++ {
		tags[i] = fmt.Sprintf("%s:%d", ss[i].Key, ss[i].Value)
	}
	return tags
}
