package roster

import (
	"encoding/json"
	"errors"
)

// Claves del storage plano. Los backups agregan un timestamp ISO-8601 al
// prefijo, así el orden lexicográfico de claves coincide con el cronológico.
const (
	LiveRosterKey   = "roster"
	LastSavedKey    = "roster:last_saved"
	BackupKeyPrefix = "backup:"
)

// ErrUnrecognizedShape indica que el JSON almacenado no tiene ninguna de las
// formas aceptadas. Preferimos un resultado explícito antes que coerción
// silenciosa: el caller decide si cae a defaults.
var ErrUnrecognizedShape = errors.New("unrecognized roster shape")

// wrappedRoster es la forma vieja del payload (objeto con campo characters).
// Se acepta por compatibilidad con datos ya guardados.
type wrappedRoster struct {
	Characters []Character `json:"characters"`
}

// DecodeRoster parsea un payload persistido. Acepta dos formas:
// un array pelado de personajes, o un objeto {"characters": [...]}.
// Cualquier otra cosa (incluido JSON inválido) devuelve ErrUnrecognizedShape.
// El resultado sale siempre normalizado.
func DecodeRoster(data []byte) ([]Character, error) {
	var chars []Character
	if err := json.Unmarshal(data, &chars); err == nil && chars != nil {
		return Normalize(chars), nil
	}

	var wrapped wrappedRoster
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Characters != nil {
		return Normalize(wrapped.Characters), nil
	}

	return nil, ErrUnrecognizedShape
}

// EncodeRoster serializa el roster para la clave viva (compacto).
func EncodeRoster(chars []Character) ([]byte, error) {
	return json.Marshal(chars)
}

// EncodeRosterIndented serializa pretty-printed: es el payload de backups y
// del archivo descargable.
func EncodeRosterIndented(chars []Character) ([]byte, error) {
	return json.MarshalIndent(chars, "", "  ")
}
