package cfgloader

const (
	CodeNotFound      = "CONFIG_NOT_FOUND"
	CodeMalformed     = "CONFIG_MALFORMED"
	CodeInvalid       = "CONFIG_INVALID"
	CodeInvalidTarget = "CONFIG_INVALID_TARGET"
)
