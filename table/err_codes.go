package table

// Error codes for table operations.
const (
	// CodeColumnNotFound is returned when a column label does not exist in the table.
	CodeColumnNotFound = "COLUMN_NOT_FOUND"

	// CodeUnsupportedAggregate is returned when an aggregate is unknown or not valid for the column's data.
	CodeUnsupportedAggregate = "UNSUPPORTED_AGGREGATE"

	// CodeLengthMismatch is returned when the columns of a frame have different lengths.
	CodeLengthMismatch = "LENGTH_MISMATCH"

	// CodeDuplicateColumn is returned when a frame is built with two columns of the same name.
	CodeDuplicateColumn = "DUPLICATE_COLUMN"

	// CodeMalformedCSV is returned when CSV input cannot be read into a frame.
	CodeMalformedCSV = "MALFORMED_CSV"
)
