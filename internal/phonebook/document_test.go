package phonebook

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phonebook.json")
	pb, err := Open(path)
	require.NoError(t, err)
	require.True(t, pb.AddContact(ivan()).Success)
	require.NoError(t, pb.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]map[string]map[string]string
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, map[string]string{
		"first_name":      "Иван",
		"last_name":       "Иванов",
		"patronymic":      "Иванович",
		"organization":    "Effective Mobile",
		"office_number":   "89991575656",
		"personal_number": "89991575656",
	}, raw["_default"]["1"])
}

func TestReadDocument_SortsByNumericID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phonebook.json")
	body := `{"_default": {
		"10": {"first_name": "Пэм", "personal_number": "10000000010"},
		"2":  {"first_name": "Дуайт", "personal_number": "10000000002"},
		"1":  {"first_name": "Майкл", "personal_number": "10000000001"}
	}}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	doc, err := readDocument(path)
	require.NoError(t, err)
	records := doc.records
	require.Len(t, records, 3)
	assert.Equal(t, []int{1, 2, 10}, []int{records[0].ID, records[1].ID, records[2].ID})
	assert.Equal(t, "Пэм", records[2].FirstName)
}

func TestReadDocument_Empty(t *testing.T) {
	dir := t.TempDir()

	doc, err := readDocument(filepath.Join(dir, "missing.json"))
	assert.NoError(t, err)
	assert.Empty(t, doc.records)

	path := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(path, nil, 0644))
	doc, err = readDocument(path)
	assert.NoError(t, err)
	assert.Empty(t, doc.records)
	assert.Nil(t, doc.others)
}

func TestReadDocument_BadID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phonebook.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"_default": {"abc": {}}}`), 0644))

	_, err := readDocument(path)
	assert.ErrorContains(t, err, "invalid document id")
}

func TestDocument_KeepsOtherTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phonebook.json")
	body := `{"_default": {}, "meetings": {"1": {"room": "Annex", "seats": 4}}}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	pb, err := Open(path)
	require.NoError(t, err)
	require.True(t, pb.AddContact(ivan()).Success)
	require.NoError(t, pb.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, map[string]any{"room": "Annex", "seats": float64(4)}, raw["meetings"]["1"])
	assert.Equal(t, "Иван", raw["_default"]["1"]["first_name"])
}
