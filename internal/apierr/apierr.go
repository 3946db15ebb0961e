package apierr

import (
	"net/http"
)

// GenericMessage is shown for conditions the service layer did not classify.
const GenericMessage = "Something went wrong. Please try again later."

// Error is a structured, user-facing error: a message, an HTTP status
// classification, and optionally the offending form field.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"-"`
	Field   string `json:"field,omitempty"`
}

// New constructs an Error with no field tag.
func New(message string, status int) *Error {
	return &Error{Message: message, Status: status}
}

// NewField constructs an Error tagged with the offending field.
func NewField(message string, status int, field string) *Error {
	return &Error{Message: message, Status: status, Field: field}
}

func (e *Error) Error() string { return e.Message }

// List is an ordered collection of Errors. Validation reports every violated
// field at once, so a List is itself an error value.
type List []*Error

func (l List) Error() string {
	if len(l) == 0 {
		return GenericMessage
	}
	return l[0].Message
}

// Parse normalizes any error into an ordered List. A *Error yields a
// single-element list, a List passes through, anything else maps to a
// generic internal error.
func Parse(err error) List {
	switch e := err.(type) {
	case nil:
		return nil
	case *Error:
		return List{e}
	case List:
		return e
	default:
		return List{New(GenericMessage, http.StatusInternalServerError)}
	}
}

// Response is the uniform failure payload handed back to the route layer.
type Response struct {
	Errors     List `json:"errors"`
	StatusCode int  `json:"statusCode"`
}

// NewResponse aggregates a List into a Response. The status code is the
// maximum (most specific) status among the contained errors; an empty list
// is treated as an internal error.
func NewResponse(errs List) Response {
	status := 0
	for _, e := range errs {
		if e.Status > status {
			status = e.Status
		}
	}
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return Response{Errors: errs, StatusCode: status}
}
