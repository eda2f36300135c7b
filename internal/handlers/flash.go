package handlers

import (
	"net/http"
	"strings"
)

type Flash struct {
	Kind string // "ok" or "error"
	Text string
}

var okText = map[string]string{
	"registro":            "Registro exitoso. Puedes iniciar sesión ahora.",
	"clase_creada":        "Clase creada exitosamente.",
	"clase_actualizada":   "Clase actualizada exitosamente.",
	"usuario_creado":      "Usuario creado exitosamente.",
	"usuario_actualizado": "Usuario actualizado exitosamente.",
}

var errText = map[string]string{
	"credenciales":          "Las credenciales son incorrectas.",
	"campos":                "Todos los campos son obligatorios.",
	"longitud":              "El nombre, el email o la contraseña son demasiado largos. Los límites son 255 caracteres.",
	"email_en_uso":          "El email ya está registrado.",
	"clase_no_encontrada":   "Clase no encontrada.",
	"usuario_no_encontrado": "Usuario no encontrado.",
	"nombre_email":          "Nombre y email son obligatorios.",
	"guardar":               "Error al guardar los cambios.",
}

// MakeFlash builds the transient message for a page from ?ok= / ?error=
// query keys; unknown keys are shown as-is.
func MakeFlash(r *http.Request) *Flash {
	q := r.URL.Query()

	if raw := strings.TrimSpace(q.Get("error")); raw != "" {
		if t, ok := errText[strings.ToLower(raw)]; ok {
			return &Flash{Kind: "error", Text: t}
		}
		return &Flash{Kind: "error", Text: raw}
	}
	if raw := strings.TrimSpace(q.Get("ok")); raw != "" {
		if t, ok := okText[strings.ToLower(raw)]; ok {
			return &Flash{Kind: "ok", Text: t}
		}
		return &Flash{Kind: "ok", Text: raw}
	}
	return nil
}
