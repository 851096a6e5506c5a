package main

// Error codes for the flatbread command.
const (
	// CodeNoSource is returned when neither --file nor the config names a CSV file.
	CodeNoSource = "NO_SOURCE"

	// CodeSourceUnreadable is returned when the CSV file cannot be opened.
	CodeSourceUnreadable = "SOURCE_UNREADABLE"
)
