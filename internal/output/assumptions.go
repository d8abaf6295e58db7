package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
// Future: could be loaded from configuration or generated dynamically.
var DefaultAssumptions = []string{
	"Taxes settle once a year in the December pass; no quarterly estimates",
	"Bracket tables are frozen at the scenario tax year (no inflation indexing)",
	"Required minimum distributions begin at age 73 (SECURE 2.0)",
	"30% of every taxable-account withdrawal is treated as realized gain",
	"Cash surpluses accumulate in the taxable account",
	"Balances compound monthly and are rounded to the cent",
}
