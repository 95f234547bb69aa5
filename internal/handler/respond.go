package handler

import (
	"encoding/json"

	"go-products-ms/internal/apperr"
)

// ErrorBody is the error half of the reply envelope. Status follows the
// apperr taxonomy (400 validation, 404, 409, 500).
type ErrorBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

func replyData(v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		return replyError(500, "Failed to encode response")
	}
	return data
}

func replyError(status int, message string) []byte {
	data, err := json.Marshal(ErrorEnvelope{Error: ErrorBody{Status: status, Message: message}})
	if err != nil {
		return []byte(`{"error":{"status":500,"message":"Internal server error"}}`)
	}
	return data
}

func replyErr(err error) []byte {
	return replyError(apperr.StatusOf(err), err.Error())
}
