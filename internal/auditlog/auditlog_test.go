package auditlog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndRead(t *testing.T) {
	books := filepath.Join(t.TempDir(), "books.db")
	ts := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

	require.NoError(t, Append(books, []Entry{
		{Timestamp: ts, Action: "post", Details: "Invoice 12", TxnID: "1"},
	}))
	require.NoError(t, Append(books, []Entry{
		{Timestamp: ts.Add(time.Minute), Action: "delete", TxnID: "1"},
	}))

	entries, err := Read(books)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ts, entries[0].Timestamp)
	assert.Equal(t, "post", entries[0].Action)
	assert.Equal(t, "Invoice 12", entries[0].Details)
	assert.Equal(t, "delete", entries[1].Action)
	assert.Empty(t, entries[1].Details)
}

func TestRead_MissingFile(t *testing.T) {
	entries, err := Read(filepath.Join(t.TempDir(), "books.db"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMarshalRoundTrip(t *testing.T) {
	e := Entry{
		Timestamp: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		Action:    "import",
		Details:   "statement.csv into BANK: 12 posted",
	}
	got, err := UnmarshalEntry(MarshalEntry(e))
	require.NoError(t, err)
	assert.Equal(t, e, got)

	_, err = UnmarshalEntry([]string{"too", "short"})
	assert.Error(t, err)
}
