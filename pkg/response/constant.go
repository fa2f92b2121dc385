package response

// Response messages
const (
	MessageSuccess      = "Success"
	DefaultErrorMessage = "Something went wrong"
)

// Error codes
const (
	InternalServerErrorCode = 500
)
