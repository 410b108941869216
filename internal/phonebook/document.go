package phonebook

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/jeanpaul/phonebook/internal/contact"
)

// defaultTable is the single table every record lives in.
const defaultTable = "_default"

// Record is a stored contact together with its document id.
type Record struct {
	ID              int `json:"id" yaml:"id"`
	contact.Contact `yaml:",inline"`
}

// document is the on-disk layout:
//
//	{"_default": {"1": {...contact...}, "2": {...}}, "other_table": {...}}
//
// Only _default is decoded. Other tables are carried through untouched so
// files shared with other TinyDB users keep their data.
type document struct {
	records []Record
	others  map[string]json.RawMessage
}

// readDocument loads the records at path sorted by id.
// A missing or empty file is an empty phonebook.
func readDocument(path string) (document, error) {
	var doc document
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return doc, nil
		}
		return doc, err
	}
	if len(data) == 0 {
		return doc, nil
	}

	var tables map[string]json.RawMessage
	if err := json.Unmarshal(data, &tables); err != nil {
		return doc, fmt.Errorf("decode %s: %w", path, err)
	}
	var table map[string]contact.Contact
	if raw, ok := tables[defaultTable]; ok {
		if err := json.Unmarshal(raw, &table); err != nil {
			return doc, fmt.Errorf("decode %s: %w", path, err)
		}
		delete(tables, defaultTable)
	}
	if len(tables) > 0 {
		doc.others = tables
	}

	doc.records = make([]Record, 0, len(table))
	for key, c := range table {
		id, err := strconv.Atoi(key)
		if err != nil || id < 1 {
			return document{}, fmt.Errorf("decode %s: invalid document id %q", path, key)
		}
		doc.records = append(doc.records, Record{ID: id, Contact: c})
	}
	sort.Slice(doc.records, func(i, j int) bool {
		return doc.records[i].ID < doc.records[j].ID
	})
	return doc, nil
}

// writeDocument replaces the file at path with doc. The data is written
// to a temporary file first and renamed over the original.
func writeDocument(path string, doc document) error {
	table := make(map[string]contact.Contact, len(doc.records))
	for _, r := range doc.records {
		table[strconv.Itoa(r.ID)] = r.Contact
	}
	tables := make(map[string]any, len(doc.others)+1)
	for name, raw := range doc.others {
		tables[name] = raw
	}
	tables[defaultTable] = table

	data, err := json.MarshalIndent(tables, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
