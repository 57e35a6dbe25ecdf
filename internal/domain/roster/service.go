package roster

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"ranch-roster/internal/platform/logger"
	"ranch-roster/internal/platform/metrics"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrExhausted    = errors.New("no breeding capacity left")
)

// DefaultSaveDebounce coalesce ediciones rápidas en un solo write.
const DefaultSaveDebounce = 300 * time.Millisecond

// Service es el dueño del roster vivo en memoria. Toda mutación pasa por acá,
// se clampa, y agenda un save con debounce (write-through perezoso).
// Single-user: un solo árbol, sin escritores concurrentes más allá del timer.
type Service struct {
	store Store
	log   logger.Logger
	now   func() time.Time

	debounce time.Duration

	mu    sync.RWMutex
	chars []Character

	// saveMu protege el timer del debounce como recurso explícito:
	// cada write nuevo cancela el anterior.
	saveMu    sync.Mutex
	saveTimer *time.Timer
}

type ServiceOptions struct {
	Logger   logger.Logger
	Debounce time.Duration // <= 0 usa DefaultSaveDebounce
}

// NewService carga el roster desde el store (o crea el default si falta o está
// corrupto) y deja el servicio listo. Nunca falla por datos malos: esa es la
// semántica del load original.
func NewService(ctx context.Context, store Store, opts ServiceOptions) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.New(logger.Options{})
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultSaveDebounce
	}

	s := &Service{
		store:    store,
		log:      log,
		now:      time.Now,
		debounce: debounce,
	}

	s.chars = s.loadOrDefault(ctx)
	return s
}

// loadOrDefault: clave ausente o contenido malformado => roster default.
// Jamás propaga el error al caller.
func (s *Service) loadOrDefault(ctx context.Context) []Character {
	raw, err := s.store.Get(ctx, LiveRosterKey)
	if err != nil {
		s.log.Info("no stored roster, creating default", map[string]any{"characters": DefaultCharacters})
		chars := DefaultRoster()
		s.scheduleSave()
		return chars
	}

	chars, err := DecodeRoster([]byte(raw))
	if err != nil {
		s.log.Warn("stored roster is malformed, falling back to default", map[string]any{"err": err.Error()})
		chars = DefaultRoster()
		s.scheduleSave()
	}
	return chars
}

// Roster devuelve una copia profunda del roster vivo.
func (s *Service) Roster() []Character {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CloneRoster(s.chars)
}

// Snapshot es un alias semántico de Roster para el módulo de backups.
func (s *Service) Snapshot() []Character {
	return s.Roster()
}

// LastSaved lee el timestamp del último save persistido.
func (s *Service) LastSaved(ctx context.Context) (time.Time, bool) {
	raw, err := s.store.Get(ctx, LastSavedKey)
	if err != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (s *Service) RenameCharacter(ctx context.Context, characterID, name string) (Character, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Character{}, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findCharacter(characterID)
	if idx < 0 {
		return Character{}, ErrNotFound
	}
	s.chars[idx].Name = name

	s.scheduleSave()
	return cloneCharacter(s.chars[idx]), nil
}

// PatchTime distingue "campo no enviado" de "campo enviado como null"
// (null limpia el timestamp).
type PatchTime struct {
	Present bool
	Value   *time.Time
}

type UpdateAnimalInput struct {
	Species *Species
	Sex     *Sex
	Rank    *Rank

	Adult         *bool
	BreedCapacity *int
	BreedUsed     *int

	StartTime     PatchTime
	LastBreedTime PatchTime

	// Traits reemplaza la lista completa (nil = no tocar).
	Traits *[]Trait
}

// UpdateAnimal aplica un patch parcial a un slot. Los numéricos inválidos se
// clampean (no se rechazan); los enums inválidos sí son 400.
func (s *Service) UpdateAnimal(ctx context.Context, characterID string, slot int, in UpdateAnimalInput) (Animal, error) {
	if in.Species != nil && !ValidSpecies(*in.Species) {
		return Animal{}, ErrInvalidInput
	}
	if in.Sex != nil && !ValidSex(*in.Sex) {
		return Animal{}, ErrInvalidInput
	}
	if in.Rank != nil && !ValidRank(*in.Rank) {
		return Animal{}, ErrInvalidInput
	}
	if in.Traits != nil {
		for _, t := range *in.Traits {
			if !KnownTrait(t.Name) || !ValidTraitRank(t.Rank) {
				return Animal{}, ErrInvalidInput
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, idx, err := s.animalAt(characterID, slot)
	if err != nil {
		return Animal{}, err
	}

	if in.Species != nil {
		a.Species = *in.Species
	}
	if in.Sex != nil {
		a.Sex = *in.Sex
	}
	if in.Rank != nil {
		a.Rank = *in.Rank
	}
	if in.Adult != nil {
		a.Adult = *in.Adult
	}
	if in.BreedCapacity != nil {
		a.BreedCapacity = *in.BreedCapacity
	}
	if in.BreedUsed != nil {
		a.BreedUsed = *in.BreedUsed
	}
	if in.StartTime.Present {
		a.StartTime = copyTime(in.StartTime.Value)
	}
	if in.LastBreedTime.Present {
		a.LastBreedTime = copyTime(in.LastBreedTime.Value)
	}
	if in.Traits != nil {
		traits := make([]Trait, len(*in.Traits))
		copy(traits, *in.Traits)
		a.Traits = traits
	}

	a = clampAnimal(a)
	s.chars[idx].Animals[slot] = a

	s.scheduleSave()
	return cloneAnimal(a), nil
}

// ReplaceAnimalInput es el registro completo de un slot para PUT:
// los campos ausentes quedan en su cero (enums vacíos caen a none).
type ReplaceAnimalInput struct {
	Species Species
	Sex     Sex
	Rank    Rank

	Adult         bool
	BreedCapacity int
	BreedUsed     int

	StartTime     *time.Time
	LastBreedTime *time.Time

	Traits []Trait
}

// ReplaceAnimal reemplaza el slot entero con el registro recibido.
// Conserva el id del animal existente: reemplazar no es resetear.
func (s *Service) ReplaceAnimal(ctx context.Context, characterID string, slot int, in ReplaceAnimalInput) (Animal, error) {
	if in.Species != "" && !ValidSpecies(in.Species) {
		return Animal{}, ErrInvalidInput
	}
	if in.Sex != "" && !ValidSex(in.Sex) {
		return Animal{}, ErrInvalidInput
	}
	if in.Rank != "" && !ValidRank(in.Rank) {
		return Animal{}, ErrInvalidInput
	}
	for _, t := range in.Traits {
		if !KnownTrait(t.Name) || !ValidTraitRank(t.Rank) {
			return Animal{}, ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, idx, err := s.animalAt(characterID, slot)
	if err != nil {
		return Animal{}, err
	}

	traits := make([]Trait, len(in.Traits))
	copy(traits, in.Traits)

	a := clampAnimal(Animal{
		ID:            current.ID,
		Species:       in.Species,
		Sex:           in.Sex,
		Rank:          in.Rank,
		Adult:         in.Adult,
		BreedCapacity: in.BreedCapacity,
		BreedUsed:     in.BreedUsed,
		StartTime:     copyTime(in.StartTime),
		LastBreedTime: copyTime(in.LastBreedTime),
		Traits:        traits,
	})
	s.chars[idx].Animals[slot] = a

	s.scheduleSave()
	return cloneAnimal(a), nil
}

// BreedAnimal registra una cría. automatic=true usa la variante que avanza el
// last breed un cooldown desde el valor anterior (ver BreedAuto).
func (s *Service) BreedAnimal(ctx context.Context, characterID string, slot int, automatic bool) (Animal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, idx, err := s.animalAt(characterID, slot)
	if err != nil {
		return Animal{}, err
	}

	var ok bool
	if automatic {
		a, ok = BreedAuto(a, s.now())
	} else {
		a, ok = Breed(a, s.now())
	}
	if !ok {
		return Animal{}, ErrExhausted
	}
	s.chars[idx].Animals[slot] = a

	s.scheduleSave()
	return cloneAnimal(a), nil
}

// ResetAnimal descarta el slot completo (timestamps, rasgos, contadores)
// y lo reemplaza por un animal nuevo con id nuevo.
func (s *Service) ResetAnimal(ctx context.Context, characterID string, slot int) (Animal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, idx, err := s.animalAt(characterID, slot)
	if err != nil {
		return Animal{}, err
	}

	fresh := NewAnimal()
	s.chars[idx].Animals[slot] = fresh

	s.scheduleSave()
	return cloneAnimal(fresh), nil
}

// ResetRoster reemplaza todo por el roster default.
func (s *Service) ResetRoster(ctx context.Context) []Character {
	s.mu.Lock()
	s.chars = DefaultRoster()
	out := CloneRoster(s.chars)
	s.mu.Unlock()

	s.scheduleSave()
	return out
}

// Replace reemplaza el roster vivo en memoria (camino del restore). No persiste
// de inmediato: queda para el próximo save con debounce.
func (s *Service) Replace(ctx context.Context, chars []Character) {
	normalized := Normalize(CloneRoster(chars))

	s.mu.Lock()
	s.chars = normalized
	s.mu.Unlock()

	s.scheduleSave()
}

// Flush cancela el debounce pendiente y persiste ya (shutdown, tests).
func (s *Service) Flush(ctx context.Context) error {
	s.saveMu.Lock()
	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}
	s.saveMu.Unlock()

	return s.persist(ctx)
}

// Close persiste lo pendiente. Pensado para defer en main.
func (s *Service) Close() error {
	return s.Flush(context.Background())
}

func (s *Service) scheduleSave() {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}
	s.saveTimer = time.AfterFunc(s.debounce, func() {
		if err := s.persist(context.Background()); err != nil {
			s.log.Error("debounced save failed", map[string]any{"err": err.Error()})
		}
	})
}

// persist escribe el roster a la clave viva y estampa last_saved por separado.
func (s *Service) persist(ctx context.Context) error {
	s.mu.RLock()
	data, err := EncodeRoster(s.chars)
	s.mu.RUnlock()
	if err != nil {
		return err
	}

	if err := s.store.Set(ctx, LiveRosterKey, string(data)); err != nil {
		metrics.SaveFailures.Inc()
		return err
	}
	if err := s.store.Set(ctx, LastSavedKey, s.now().UTC().Format(time.RFC3339)); err != nil {
		// el stamp es cosmético: no invalida el save del roster
		s.log.Warn("could not stamp last_saved", map[string]any{"err": err.Error()})
	}

	metrics.RosterSaves.Inc()
	return nil
}

// findCharacter asume mu tomado.
func (s *Service) findCharacter(id string) int {
	for i := range s.chars {
		if s.chars[i].ID == id {
			return i
		}
	}
	return -1
}

// animalAt asume mu tomado. Devuelve copia del animal y el índice del personaje.
func (s *Service) animalAt(characterID string, slot int) (Animal, int, error) {
	if slot < 0 || slot >= SlotsPerCharacter {
		return Animal{}, -1, ErrInvalidInput
	}
	idx := s.findCharacter(characterID)
	if idx < 0 {
		return Animal{}, -1, ErrNotFound
	}
	return s.chars[idx].Animals[slot], idx, nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
