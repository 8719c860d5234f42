package migration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles_ArePairedAndOrdered(t *testing.T) {
	names, err := Files()
	require.NoError(t, err)
	require.NotEmpty(t, names)

	ups, downs := 0, 0
	for _, name := range names {
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups++
			assert.Contains(t, names, strings.TrimSuffix(name, ".up.sql")+".down.sql")
		case strings.HasSuffix(name, ".down.sql"):
			downs++
		default:
			t.Errorf("unexpected migration file %s", name)
		}
	}
	assert.Equal(t, ups, downs)
}

func TestFiles_CreateKVEntries(t *testing.T) {
	body, err := files.ReadFile("sql/000001_create_kv_entries.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "storage_key")
	assert.Contains(t, string(body), "payload")
}
