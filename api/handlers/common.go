package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

const (
	HeaderRenderJob     = "X-Render-Job"
	HeaderRenderSkipped = "X-Render-Skipped"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func parseIntDefault(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
