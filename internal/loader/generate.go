package loader

import (
	"fmt"
	"math/rand"

	"github.com/bifrost-labs/bifrost/internal/relation"
)

// Generate builds a deterministic test table: id (1..rows), value
// (0..99), name (Item_<i mod 50>), score (0..100). The same seed always
// yields the same table, so benchmark runs are repeatable.
func Generate(name string, rows int, seed int64) *relation.Table {
	rng := rand.New(rand.NewSource(seed))

	table := relation.NewTable(name)
	table.AddColumn("id", relation.TypeInteger)
	table.AddColumn("value", relation.TypeInteger)
	table.AddColumn("name", relation.TypeString)
	table.AddColumn("score", relation.TypeDouble)

	for i := 0; i < rows; i++ {
		row := relation.NewRow(
			relation.Int(int64(i+1)),
			relation.Int(int64(rng.Intn(100))),
			relation.Text(fmt.Sprintf("Item_%d", i%50)),
			relation.Float(rng.Float64()*100),
		)
		table.AddRow(row)
	}
	return table
}
