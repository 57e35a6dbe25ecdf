package roster

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Species define las especies criables soportadas en el rancho.
// @Enum none, chicken, duck, goat, deer, boar, wolf, bison, crocodile
type Species string

const (
	SpeciesNone      Species = "none"
	SpeciesChicken   Species = "chicken"
	SpeciesDuck      Species = "duck"
	SpeciesGoat      Species = "goat"
	SpeciesDeer      Species = "deer"
	SpeciesBoar      Species = "boar"
	SpeciesWolf      Species = "wolf"
	SpeciesBison     Species = "bison"
	SpeciesCrocodile Species = "crocodile"
)

// AllSpecies fija el orden del catálogo (se usa para ordenar el dashboard).
var AllSpecies = []Species{
	SpeciesChicken,
	SpeciesDuck,
	SpeciesGoat,
	SpeciesDeer,
	SpeciesBoar,
	SpeciesWolf,
	SpeciesBison,
	SpeciesCrocodile,
	SpeciesNone,
}

func ValidSpecies(s Species) bool {
	for _, sp := range AllSpecies {
		if sp == s {
			return true
		}
	}
	return false
}

// Sex define el sexo del animal.
// @Enum none, male, female
type Sex string

const (
	SexNone   Sex = "none"
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

func ValidSex(s Sex) bool {
	return s == SexNone || s == SexMale || s == SexFemale
}

// Rank define la calidad del animal.
// @Enum none, S, A, B, C
type Rank string

const (
	RankNone Rank = "none"
	RankS    Rank = "S"
	RankA    Rank = "A"
	RankB    Rank = "B"
	RankC    Rank = "C"
)

func ValidRank(r Rank) bool {
	return r == RankNone || r == RankS || r == RankA || r == RankB || r == RankC
}

// TraitRank define el nivel de un rasgo heredable.
// @Enum I, II, III
type TraitRank string

const (
	TraitRankI   TraitRank = "I"
	TraitRankII  TraitRank = "II"
	TraitRankIII TraitRank = "III"
)

func ValidTraitRank(r TraitRank) bool {
	return r == TraitRankI || r == TraitRankII || r == TraitRankIII
}

// Trait es un rasgo heredado. No hay constraint de unicidad dentro de un animal:
// el juego permite duplicados y los preservamos tal cual.
type Trait struct {
	Name string    `json:"name"`
	Rank TraitRank `json:"rank"`
}

// TraitCatalog es el catálogo fijo de rasgos. El subconjunto "seed" se muestra
// abreviado en la UI (ver TraitLabel).
var TraitCatalog = []string{
	"High Yield",
	"Rapid Growth",
	"Fertile",
	"Resilient",
	"Gentle",
	"Alpha",
	"Plump",
	"Keen Senses",
	"Thick Hide",
	"Wheat Seed",
	"Corn Seed",
	"Pumpkin Seed",
	"Sunflower Seed",
	"Rice Seed",
}

var seedTraits = map[string]struct{}{
	"Wheat Seed":     {},
	"Corn Seed":      {},
	"Pumpkin Seed":   {},
	"Sunflower Seed": {},
	"Rice Seed":      {},
}

func IsSeedTrait(name string) bool {
	_, ok := seedTraits[name]
	return ok
}

func KnownTrait(name string) bool {
	for _, t := range TraitCatalog {
		if t == name {
			return true
		}
	}
	return false
}

// TraitLabel devuelve la etiqueta para UI: los rasgos seed van abreviados
// ("Wheat Seed" => "Wheat"), el resto se muestra completo.
func TraitLabel(t Trait) string {
	if IsSeedTrait(t.Name) {
		return strings.TrimSuffix(t.Name, " Seed")
	}
	return t.Name
}

const (
	// SlotsPerCharacter: cada personaje tiene exactamente 6 slots (3 parejas).
	SlotsPerCharacter = 6

	// DefaultCharacters: tamaño del roster por defecto.
	DefaultCharacters = 10

	// DefaultBreedCapacity: crías permitidas por animal recién registrado.
	DefaultBreedCapacity = 3

	// GrowthDuration: tiempo hasta adultez desde el start time.
	GrowthDuration = 24 * time.Hour

	// BreedCooldown: ventana fija post-cría durante la cual no puede volver a criar.
	BreedCooldown = 24 * time.Hour
)

// Animal representa un slot de cría de un personaje.
// Invariantes: 0 <= BreedUsed <= BreedCapacity (se clampa en cada mutación);
// un animal que nunca crió no tiene LastBreedTime.
type Animal struct {
	ID      string  `json:"id"`
	Species Species `json:"species"`
	Sex     Sex     `json:"sex"`
	Rank    Rank    `json:"rank"`

	StartTime     *time.Time `json:"start_time,omitempty"`
	LastBreedTime *time.Time `json:"last_breed_time,omitempty"`

	Adult         bool `json:"adult"`
	BreedCapacity int  `json:"breed_capacity"`
	BreedUsed     int  `json:"breed_used"`

	Traits []Trait `json:"traits"`
}

// Character agrupa los 6 slots de animales de un personaje del juego.
type Character struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Animals []Animal `json:"animals"`
}

// NewAnimal crea un slot vacío con id nuevo.
func NewAnimal() Animal {
	return Animal{
		ID:            uuid.NewString(),
		Species:       SpeciesNone,
		Sex:           SexNone,
		Rank:          RankNone,
		BreedCapacity: DefaultBreedCapacity,
		Traits:        []Trait{},
	}
}

// NewCharacter crea un personaje con sus 6 slots vacíos.
func NewCharacter(name string) Character {
	animals := make([]Animal, 0, SlotsPerCharacter)
	for i := 0; i < SlotsPerCharacter; i++ {
		animals = append(animals, NewAnimal())
	}
	return Character{
		ID:      uuid.NewString(),
		Name:    name,
		Animals: animals,
	}
}
