package types

// Standard table names for Kennel.GetTable.
const (
	TablePets = "pets"
)

// StandardTables returns all standard table names.
func StandardTables() []string {
	return []string{TablePets}
}
