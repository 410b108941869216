package health

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/jeanpaul/phonebook/internal/contact"
	"github.com/jeanpaul/phonebook/internal/schema"
)

type Status struct {
	Path       string
	Exists     bool
	Readable   bool
	Writable   bool
	Records    int
	Invalid    []string // document ids failing the contact schema
	Duplicates []string // personal numbers stored more than once
	Error      string
	Latency    time.Duration
}

// Healthy reports whether the phonebook can be opened and holds only
// valid, uniquely keyed records. A missing file is healthy: it is created
// on first open.
func (s Status) Healthy() bool {
	return s.Error == "" && s.Writable && len(s.Invalid) == 0 && len(s.Duplicates) == 0
}

// Check inspects the phonebook file at path without opening it for use.
func Check(path string) (s Status) {
	s = Status{Path: path}
	start := time.Now()
	defer func() { s.Latency = time.Since(start) }()

	s.Writable = dirWritable(filepath.Dir(path))

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s
	case err != nil:
		s.Exists = true
		s.Error = err.Error()
		return s
	}
	s.Exists = true
	s.Readable = true
	if len(data) == 0 {
		return s
	}

	var doc map[string]map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		s.Error = fmt.Sprintf("decode: %v", err)
		return s
	}

	table := doc["_default"]
	ids := make([]string, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, _ := strconv.Atoi(ids[i])
		b, _ := strconv.Atoi(ids[j])
		return a < b
	})

	v := schema.NewValidator()
	seen := make(map[string]int)
	for _, id := range ids {
		var raw map[string]any
		if err := json.Unmarshal(table[id], &raw); err != nil {
			s.Invalid = append(s.Invalid, id)
			continue
		}
		s.Records++
		if n, err := strconv.Atoi(id); err != nil || n < 1 {
			s.Invalid = append(s.Invalid, id)
			continue
		}
		if err := v.Validate(contact.Schema(), raw); err != nil {
			s.Invalid = append(s.Invalid, id)
		}
		if pn, ok := raw[string(contact.PersonalNumber)].(string); ok {
			seen[pn]++
			if seen[pn] == 2 {
				s.Duplicates = append(s.Duplicates, pn)
			}
		}
	}
	return s
}

func dirWritable(dir string) bool {
	for {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return false
			}
			f, err := os.CreateTemp(dir, ".phonebook-doctor-*")
			if err != nil {
				return false
			}
			f.Close()
			os.Remove(f.Name())
			return true
		}
		// MkdirAll will create it; check the nearest existing parent.
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
}
