package ingest

import "sort"

type stringSet map[string]struct{}

func (s stringSet) add(v string) {
	if v != "" {
		s[v] = struct{}{}
	}
}

func (s stringSet) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// collector accumulates records and corpus-level metadata while parsing
type collector struct {
	records     []Record
	dataIDs     stringSet
	dialogTypes stringSet
}

func newCollector() *collector {
	return &collector{
		dataIDs:     stringSet{},
		dialogTypes: stringSet{},
	}
}

func (c *collector) add(r Record) {
	c.records = append(c.records, r)
}
