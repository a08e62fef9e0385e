package http

import (
	"encoding/json"
	"net/http"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeInvalidEmail       = "invalid_email"
	codeDuplicateEntrant   = "duplicate_entrant"
	codeCodeSpaceExhausted = "code_space_exhausted"
	codeNoEntrants         = "no_entrants"
	codeInvalidDrawCount   = "invalid_draw_count"
	codeInvalidExportKind  = "invalid_export_kind"
	codeInvalidSelection   = "invalid_export_selection"
	codeUnauthorized       = "unauthorized"
	codeForbidden          = "forbidden"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}
