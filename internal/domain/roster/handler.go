package roster

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/roster", func(rr chi.Router) {
		rr.Get("/", getRosterHandler(svc))
		rr.Get("/summary", summaryHandler(svc))
		rr.Get("/last-saved", lastSavedHandler(svc))
		rr.Post("/reset", resetRosterHandler(svc))
	})

	r.Route("/characters/{characterID}", func(cr chi.Router) {
		cr.Patch("/", renameCharacterHandler(svc))
		cr.Put("/animals/{slot}", replaceAnimalHandler(svc))
		cr.Patch("/animals/{slot}", updateAnimalHandler(svc))
		cr.Post("/animals/{slot}/breed", breedAnimalHandler(svc))
		cr.Post("/animals/{slot}/reset", resetAnimalHandler(svc))
	})
}

type traitResponse struct {
	Name  string `json:"name"`
	Rank  string `json:"rank"`
	Label string `json:"label"`
	Seed  bool   `json:"seed"`
}

type animalResponse struct {
	ID      string `json:"id"`
	Species string `json:"species"`
	Sex     string `json:"sex"`
	Rank    string `json:"rank"`

	StartTime     *time.Time `json:"start_time,omitempty"`
	LastBreedTime *time.Time `json:"last_breed_time,omitempty"`

	Adult           bool `json:"adult"`
	BreedCapacity   int  `json:"breed_capacity"`
	BreedUsed       int  `json:"breed_used"`
	RemainingBreeds int  `json:"remaining_breeds"`

	Traits []traitResponse `json:"traits"`

	// Derivados contra el reloj del request; nunca se persisten.
	Status      string `json:"status"`
	TimeToAdult string `json:"time_to_adult"`
	TimeToReady string `json:"time_to_ready"`
}

type characterResponse struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Animals []animalResponse `json:"animals"`
}

type rosterResponse struct {
	Characters []characterResponse `json:"characters"`
	LastSaved  *time.Time          `json:"last_saved,omitempty"`
}

type lastSavedResponse struct {
	LastSaved *time.Time `json:"last_saved"`
}

type renameCharacterRequest struct {
	Name string `json:"name"`
}

type traitRequest struct {
	Name string `json:"name"`
	Rank string `json:"rank"`
}

type replaceAnimalRequest struct {
	Species string `json:"species"`
	Sex     string `json:"sex"`
	Rank    string `json:"rank"`

	Adult         bool `json:"adult"`
	BreedCapacity int  `json:"breed_capacity"`
	BreedUsed     int  `json:"breed_used"`

	StartTime     *time.Time `json:"start_time"`
	LastBreedTime *time.Time `json:"last_breed_time"`

	Traits []traitRequest `json:"traits"`
}

type updateAnimalRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Species *string `json:"species"`
	Sex     *string `json:"sex"`
	Rank    *string `json:"rank"`

	Adult         *bool `json:"adult"`
	BreedCapacity *int  `json:"breed_capacity"`
	BreedUsed     *int  `json:"breed_used"`

	Traits *[]traitRequest `json:"traits"`
}

type breedRequest struct {
	// "manual" (default) o "automatic"
	Mode string `json:"mode"`
}

type summaryEntryResponse struct {
	CharacterID   string `json:"character_id"`
	CharacterName string `json:"character_name"`
	Slot          int    `json:"slot"`
	AnimalID      string `json:"animal_id"`
	Rank          string `json:"rank"`
	Status        string `json:"status"`
	TimeToAdult   string `json:"time_to_adult"`
	TimeToReady   string `json:"time_to_ready"`
}

type speciesSummaryResponse struct {
	Species string                 `json:"species"`
	Total   int                    `json:"total"`
	Counts  map[string]int         `json:"counts"`
	Animals []summaryEntryResponse `json:"animals"`
}

// getRosterHandler devuelve el roster completo con estados derivados.
// @Summary Roster completo
// @Tags roster
// @Success 200 {object} rosterResponse
// @Router /roster [get]
func getRosterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()

		chars := svc.Roster()
		out := rosterResponse{
			Characters: make([]characterResponse, 0, len(chars)),
		}
		for _, c := range chars {
			out.Characters = append(out.Characters, toCharacterResponse(c, now))
		}

		if ts, ok := svc.LastSaved(r.Context()); ok {
			out.LastSaved = &ts
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// lastSavedHandler expone el stamp del último save persistido; null si el
// roster todavía no se guardó nunca.
// @Summary Último guardado
// @Tags roster
// @Success 200 {object} lastSavedResponse
// @Router /roster/last-saved [get]
func lastSavedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var out lastSavedResponse
		if ts, ok := svc.LastSaved(r.Context()); ok {
			out.LastSaved = &ts
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// summaryHandler arma el dashboard por especie y estado.
// @Summary Dashboard por especie
// @Tags roster
// @Success 200 {array} speciesSummaryResponse
// @Router /roster/summary [get]
func summaryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()

		groups := svc.Summary()
		out := make([]speciesSummaryResponse, 0, len(groups))
		for _, g := range groups {
			entry := speciesSummaryResponse{
				Species: string(g.Species),
				Total:   g.Total,
				Counts:  make(map[string]int, len(g.Counts)),
				Animals: make([]summaryEntryResponse, 0, len(g.Animals)),
			}
			for st, n := range g.Counts {
				entry.Counts[string(st)] = n
			}
			for _, ref := range g.Animals {
				entry.Animals = append(entry.Animals, summaryEntryResponse{
					CharacterID:   ref.CharacterID,
					CharacterName: ref.CharacterName,
					Slot:          ref.Slot,
					AnimalID:      ref.Animal.ID,
					Rank:          string(ref.Animal.Rank),
					Status:        string(ref.Status),
					TimeToAdult:   FormatCountdown(TimeToAdult(ref.Animal, now)),
					TimeToReady:   FormatCountdown(TimeToReady(ref.Animal, now)),
				})
			}
			out = append(out, entry)
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func resetRosterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()

		chars := svc.ResetRoster(r.Context())
		out := make([]characterResponse, 0, len(chars))
		for _, c := range chars {
			out = append(out, toCharacterResponse(c, now))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func renameCharacterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req renameCharacterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.RenameCharacter(r.Context(), chi.URLParam(r, "characterID"), req.Name)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCharacterResponse(c, time.Now()))
	}
}

// updateAnimalFields son las claves que el PATCH acepta. Como se decodifica a
// un map (para distinguir null de ausente), DisallowUnknownFields no aplica y
// la validación es manual.
var updateAnimalFields = map[string]bool{
	"species":         true,
	"sex":             true,
	"rank":            true,
	"adult":           true,
	"breed_capacity":  true,
	"breed_used":      true,
	"traits":          true,
	"start_time":      true,
	"last_breed_time": true,
}

// updateAnimalHandler edita un slot campo por campo.
// Los timestamps aceptan null para limpiar, así que decodificamos primero a un
// map para distinguir "no enviado" de "enviado como null".
// @Summary Editar animal
// @Tags roster
// @Router /characters/{characterID}/animals/{slot} [patch]
func updateAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot, ok := slotParam(w, r)
		if !ok {
			return
		}

		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		for k := range raw {
			if !updateAnimalFields[k] {
				http.Error(w, "unknown field: "+k, http.StatusBadRequest)
				return
			}
		}

		var req updateAnimalRequest
		{
			// re-marshal para reutilizar los tags del struct
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		in := UpdateAnimalInput{
			Adult:         req.Adult,
			BreedCapacity: req.BreedCapacity,
			BreedUsed:     req.BreedUsed,
		}
		if req.Species != nil {
			sp := Species(strings.TrimSpace(*req.Species))
			in.Species = &sp
		}
		if req.Sex != nil {
			sx := Sex(strings.TrimSpace(*req.Sex))
			in.Sex = &sx
		}
		if req.Rank != nil {
			rk := Rank(strings.TrimSpace(*req.Rank))
			in.Rank = &rk
		}
		if req.Traits != nil {
			traits := make([]Trait, 0, len(*req.Traits))
			for _, t := range *req.Traits {
				traits = append(traits, Trait{Name: t.Name, Rank: TraitRank(t.Rank)})
			}
			in.Traits = &traits
		}

		var perr error
		in.StartTime, perr = patchTimeField(raw, "start_time")
		if perr != nil {
			http.Error(w, "start_time must be RFC3339 or null", http.StatusBadRequest)
			return
		}
		in.LastBreedTime, perr = patchTimeField(raw, "last_breed_time")
		if perr != nil {
			http.Error(w, "last_breed_time must be RFC3339 or null", http.StatusBadRequest)
			return
		}

		a, err := svc.UpdateAnimal(r.Context(), chi.URLParam(r, "characterID"), slot, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a, time.Now()))
	}
}

// replaceAnimalHandler reemplaza el slot completo. A diferencia del PATCH,
// los campos ausentes vuelven a su cero (enums vacíos caen a none).
// @Summary Reemplazar animal
// @Tags roster
// @Router /characters/{characterID}/animals/{slot} [put]
func replaceAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot, ok := slotParam(w, r)
		if !ok {
			return
		}

		var req replaceAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := ReplaceAnimalInput{
			Species:       Species(strings.TrimSpace(req.Species)),
			Sex:           Sex(strings.TrimSpace(req.Sex)),
			Rank:          Rank(strings.TrimSpace(req.Rank)),
			Adult:         req.Adult,
			BreedCapacity: req.BreedCapacity,
			BreedUsed:     req.BreedUsed,
			StartTime:     req.StartTime,
			LastBreedTime: req.LastBreedTime,
			Traits:        make([]Trait, 0, len(req.Traits)),
		}
		for _, t := range req.Traits {
			in.Traits = append(in.Traits, Trait{Name: t.Name, Rank: TraitRank(t.Rank)})
		}

		a, err := svc.ReplaceAnimal(r.Context(), chi.URLParam(r, "characterID"), slot, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a, time.Now()))
	}
}

// breedAnimalHandler registra una cría manual o automática.
// @Summary Registrar cría
// @Tags roster
// @Router /characters/{characterID}/animals/{slot}/breed [post]
func breedAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot, ok := slotParam(w, r)
		if !ok {
			return
		}

		// body opcional: sin body = modo manual
		var req breedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		automatic := false
		switch strings.ToLower(strings.TrimSpace(req.Mode)) {
		case "", "manual":
		case "automatic", "auto":
			automatic = true
		default:
			http.Error(w, "mode must be manual or automatic", http.StatusBadRequest)
			return
		}

		a, err := svc.BreedAnimal(r.Context(), chi.URLParam(r, "characterID"), slot, automatic)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a, time.Now()))
	}
}

func resetAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot, ok := slotParam(w, r)
		if !ok {
			return
		}

		a, err := svc.ResetAnimal(r.Context(), chi.URLParam(r, "characterID"), slot)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a, time.Now()))
	}
}

func slotParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	slot, err := strconv.Atoi(chi.URLParam(r, "slot"))
	if err != nil || slot < 0 || slot >= SlotsPerCharacter {
		http.Error(w, "slot must be 0..5", http.StatusBadRequest)
		return 0, false
	}
	return slot, true
}

// patchTimeField detecta presencia del campo en el raw map:
// ausente => no tocar; null => limpiar; string => RFC3339.
func patchTimeField(raw map[string]json.RawMessage, field string) (PatchTime, error) {
	v, exists := raw[field]
	if !exists {
		return PatchTime{}, nil
	}
	if string(v) == "null" {
		return PatchTime{Present: true, Value: nil}, nil
	}

	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return PatchTime{}, err
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return PatchTime{}, err
	}
	return PatchTime{Present: true, Value: &t}, nil
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, ErrExhausted):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toCharacterResponse(c Character, now time.Time) characterResponse {
	animals := make([]animalResponse, 0, len(c.Animals))
	for _, a := range c.Animals {
		animals = append(animals, toAnimalResponse(a, now))
	}
	return characterResponse{
		ID:      c.ID,
		Name:    c.Name,
		Animals: animals,
	}
}

func toAnimalResponse(a Animal, now time.Time) animalResponse {
	traits := make([]traitResponse, 0, len(a.Traits))
	for _, t := range a.Traits {
		traits = append(traits, traitResponse{
			Name:  t.Name,
			Rank:  string(t.Rank),
			Label: TraitLabel(t),
			Seed:  IsSeedTrait(t.Name),
		})
	}

	return animalResponse{
		ID:              a.ID,
		Species:         string(a.Species),
		Sex:             string(a.Sex),
		Rank:            string(a.Rank),
		StartTime:       a.StartTime,
		LastBreedTime:   a.LastBreedTime,
		Adult:           a.Adult,
		BreedCapacity:   a.BreedCapacity,
		BreedUsed:       a.BreedUsed,
		RemainingBreeds: a.RemainingBreeds(),
		Traits:          traits,
		Status:          string(Classify(a, now)),
		TimeToAdult:     FormatCountdown(TimeToAdult(a, now)),
		TimeToReady:     FormatCountdown(TimeToReady(a, now)),
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// (roster/backups) para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
