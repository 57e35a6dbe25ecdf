package roster

import "context"

// Store es el contrato de persistencia plano clave->valor (el equivalente del
// local storage original). Las implementaciones devuelven su propio ErrNotFound;
// el dominio trata cualquier falla de lectura como "clave ausente".
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error

	// ListKeys devuelve las claves con el prefijo dado, ordenadas ascendente.
	ListKeys(ctx context.Context, prefix string) ([]string, error)
}
