package backups

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ranch-roster/internal/domain/roster"
	"ranch-roster/internal/platform/logger"
	"ranch-roster/internal/platform/metrics"
)

var (
	ErrNotFound      = errors.New("backup not found")
	ErrInvalidBackup = errors.New("invalid backup payload")
)

// backupTimeLayout: ISO-8601 con milisegundos fijos. El ancho fijo importa:
// garantiza que el orden lexicográfico de claves sea el cronológico.
const backupTimeLayout = "2006-01-02T15:04:05.000Z"

// RosterKeeper es lo que backups necesita del roster vivo: sacar una copia y
// reemplazarlo entero. Evita el ciclo de imports backups <-> roster service.
type RosterKeeper interface {
	Snapshot() []roster.Character
	Replace(ctx context.Context, chars []roster.Character)
}

// Backup describe un snapshot guardado.
type Backup struct {
	Key       string
	CreatedAt time.Time
}

type Service struct {
	store  roster.Store
	keeper RosterKeeper
	log    logger.Logger
	now    func() time.Time
	encode func([]roster.Character) ([]byte, error)
}

func NewService(store roster.Store, keeper RosterKeeper, log logger.Logger) *Service {
	if log == nil {
		log = logger.New(logger.Options{})
	}
	return &Service{
		store:  store,
		keeper: keeper,
		log:    log,
		now:    time.Now,
		encode: roster.EncodeRosterIndented,
	}
}

// Create escribe un snapshot del roster completo bajo una clave con timestamp.
// No toca la clave viva.
func (s *Service) Create(ctx context.Context) (Backup, error) {
	chars := s.keeper.Snapshot()

	payload, err := s.encode(chars)
	if err != nil {
		s.log.Error("backup encode failed", map[string]any{"err": err.Error()})
		return Backup{}, err
	}

	// Si ya existe un snapshot en el mismo milisegundo, se avanza el timestamp
	// hasta una clave libre para no pisar el anterior.
	now := s.now().UTC()
	key := roster.BackupKeyPrefix + now.Format(backupTimeLayout)
	for {
		if _, err := s.store.Get(ctx, key); err != nil {
			break
		}
		now = now.Add(time.Millisecond)
		key = roster.BackupKeyPrefix + now.Format(backupTimeLayout)
	}

	if err := s.store.Set(ctx, key, string(payload)); err != nil {
		s.log.Error("backup write failed", map[string]any{"key": key, "err": err.Error()})
		return Backup{}, err
	}

	metrics.BackupsCreated.Inc()
	s.log.Info("backup created", map[string]any{"key": key})
	return Backup{Key: key, CreatedAt: now}, nil
}

// List enumera los snapshots, el más nuevo primero. Las claves ISO-8601
// ordenan lexicográficamente, así que basta invertir el listado ascendente.
func (s *Service) List(ctx context.Context) ([]Backup, error) {
	keys, err := s.store.ListKeys(ctx, roster.BackupKeyPrefix)
	if err != nil {
		return nil, err
	}

	out := make([]Backup, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		out = append(out, Backup{
			Key:       keys[i],
			CreatedAt: parseBackupKey(keys[i]),
		})
	}
	return out, nil
}

// Restore valida un snapshot con el mismo parser laxo del load y, si sirve,
// reemplaza el roster vivo en memoria. No persiste de inmediato: eso queda
// para el próximo save con debounce.
func (s *Service) Restore(ctx context.Context, key string) (int, error) {
	if !strings.HasPrefix(key, roster.BackupKeyPrefix) {
		return 0, ErrNotFound
	}

	raw, err := s.store.Get(ctx, key)
	if err != nil {
		return 0, ErrNotFound
	}

	chars, err := roster.DecodeRoster([]byte(raw))
	if err != nil {
		return 0, ErrInvalidBackup
	}

	s.keeper.Replace(ctx, chars)

	metrics.BackupsRestored.Inc()
	s.log.Info("backup restored", map[string]any{"key": key, "characters": len(chars)})
	return len(chars), nil
}

// Delete borra un snapshot. La clave viva queda fuera de alcance por el prefijo.
func (s *Service) Delete(ctx context.Context, key string) error {
	if !strings.HasPrefix(key, roster.BackupKeyPrefix) {
		return ErrNotFound
	}
	return s.store.Delete(ctx, key)
}

// Export arma el mismo payload de un backup como archivo descargable,
// con nombre legible con fecha y hora.
func (s *Service) Export(ctx context.Context) (string, []byte, error) {
	chars := s.keeper.Snapshot()

	payload, err := s.encode(chars)
	if err != nil {
		s.log.Error("export encode failed", map[string]any{"err": err.Error()})
		return "", nil, err
	}

	filename := fmt.Sprintf("ranch-roster-%s.json", s.now().UTC().Format("2006-01-02_15-04-05"))
	return filename, payload, nil
}

func parseBackupKey(key string) time.Time {
	raw := strings.TrimPrefix(key, roster.BackupKeyPrefix)
	t, err := time.Parse(backupTimeLayout, raw)
	if err != nil {
		// clave vieja o escrita a mano: se lista igual, sin timestamp
		return time.Time{}
	}
	return t
}
