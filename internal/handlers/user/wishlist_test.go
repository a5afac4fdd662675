package user

import (
	"os"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

// Les handlers wishlist lisent et écrivent product_id en gocql.UUID : le
// schéma doit déclarer la colonne en uuid, sinon chaque requête échoue au
// marshalling.
func TestWishlistSchemaUsesUUIDProductID(t *testing.T) {
	schema, err := os.ReadFile("../../../scripts/scylladb_init.cql")
	require.NoError(t, err)

	table := regexp.MustCompile(`(?s)wishlist \((.*?)\);`).FindSubmatch(schema)
	require.NotNil(t, table, "table wishlist absente du script d'init")

	require.Contains(t, string(table[1]), "product_id uuid")
	require.NotContains(t, string(table[1]), "product_id text")
}
