package handlers

import (
	"encoding/json"
	"html/template"
	"net/http"
	"path"
)

// render clones the shared template set, parses the requested page on top of
// it and executes it. Pages are parsed per request so edits show up without a
// restart.
func render(w http.ResponseWriter, t *template.Template, page string, data map[string]any) {
	view, err := t.Clone()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if _, err := view.ParseFiles(path.Join("templates", "pages", page)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := view.ExecuteTemplate(w, path.Base(page), data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
