package entities

// WarningKind classifies a preparation warning
type WarningKind string

// Warning kinds
const (
	WarningMissingReference WarningKind = "formula-missing-reference"
	WarningFormulaError     WarningKind = "formula-error"
)

// Warning is a non fatal problem found while preparing an item, such as a
// formula that references data the actor does not have
type Warning struct {
	Kind    WarningKind
	Level   string
	Message string

	// Link is the id of the item that produced the warning
	Link string
}
