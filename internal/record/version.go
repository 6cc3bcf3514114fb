package record

// Version constants for the signed representation and the validator.
const (
	// SchemaVersion is the version of the signed record representation.
	SchemaVersion = "1"

	// ContractVersion is the asset-saving validator version.
	ContractVersion = "0.1.0"
)
