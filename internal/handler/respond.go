package handler

import (
	"encoding/json"
	"net/http"
)

// respondJSON writes v as a JSON response. A nil v writes the status
// alone, without a Content-Type. Encode failures at this point mean the
// response is already partially written; there is nothing useful left to
// do with them.
func respondJSON(w http.ResponseWriter, code int, v any) {
	if v == nil {
		w.WriteHeader(code)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
