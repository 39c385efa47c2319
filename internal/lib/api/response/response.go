package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response is the body of every non-collection reply: {"msg": "..."}.
type Response struct {
	Msg string `json:"msg"`
}

func OK(msg string) Response {
	return Response{Msg: msg}
}

func Error(msg string) Response {
	return Response{Msg: msg}
}

func ValidationError(errs validator.ValidationErrors) Response {
	var errMsgs []string

	for _, err := range errs {
		field := strings.ToLower(err.Field())

		switch err.ActualTag() {
		case "required":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is a required field", field))
		case "email":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is not a valid email", field))
		default:
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is not valid", field))
		}
	}

	return Response{Msg: strings.Join(errMsgs, ", ")}
}
