package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"hotelier/shared/constant"
	"hotelier/shared/failure"
	"hotelier/shared/logger"
)

type Message struct {
	Message string `json:"message"`
}

type Errors struct {
	Errors []string `json:"errors"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: message})
}

// WithJSON sends the payload as the response body without any envelope.
func WithJSON(writer http.ResponseWriter, code int, jsonPayload interface{}) {
	response(writer, code, jsonPayload)
}

// WithError maps the error onto the wire contract. Validation failures carry
// the full message list; known failures carry their message; anything else is
// reported as a generic internal error so internals never leak to clients.
func WithError(writer http.ResponseWriter, err error) {
	var validation *failure.Validation
	if errors.As(err, &validation) {
		response(writer, http.StatusBadRequest, Errors{Errors: validation.Messages})

		return
	}

	var fail *failure.Failure
	if errors.As(err, &fail) {
		WithMessage(writer, fail.Code, fail.Message)

		return
	}

	logger.ErrorWithStack(err)
	WithMessage(writer, http.StatusInternalServerError, constant.ResponseErrorInternal)
}

func response(writer http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
