package readout

// Error codes for readout decorators.
const (
	// CodeNotTabular is returned when a step decorated with a table readout returns a nil table.
	CodeNotTabular = "NOT_TABULAR"

	// CodeWriteFailed is returned when a readout line cannot be written to its sink.
	CodeWriteFailed = "READOUT_WRITE_FAILED"
)
