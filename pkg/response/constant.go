package response

const (
	MessageSuccess      = "success"
	DefaultErrorMessage = "something went wrong"

	InternalServerErrorCode = 500
)

// Wire formats for dates. Datetimes are naive local — no timezone offset.
const (
	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02T15:04:05"
)
