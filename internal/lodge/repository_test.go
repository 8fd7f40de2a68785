package lodge

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Every column the repository reads or writes must exist in the shipped DDL,
// otherwise a freshly provisioned database rejects every lodge query.
func TestLodgeColumnsMatchSchema(t *testing.T) {
	ddl, err := os.ReadFile("../../scripts/schema.sql")
	require.NoError(t, err)

	cols := schemaColumns(t, string(ddl), "public.lodges")
	for _, col := range lodgeColumns {
		require.Containsf(t, cols, col, "column %q is missing from the lodges DDL", col)
	}
}

// schemaColumns extracts the column names of one CREATE TABLE block.
func schemaColumns(t *testing.T, ddl, table string) map[string]bool {
	t.Helper()

	marker := "CREATE TABLE IF NOT EXISTS " + table + " ("
	start := strings.Index(ddl, marker)
	require.GreaterOrEqualf(t, start, 0, "no CREATE TABLE for %s", table)

	body := ddl[start+len(marker):]
	end := strings.Index(body, ");")
	require.GreaterOrEqual(t, end, 0)

	cols := make(map[string]bool)
	for _, line := range strings.Split(body[:end], "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		name := fields[0]
		switch name {
		case "PRIMARY", "UNIQUE", "CHECK", "FOREIGN":
			continue
		}
		cols[name] = true
	}
	return cols
}
