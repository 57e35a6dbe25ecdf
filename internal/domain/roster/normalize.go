package roster

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DefaultRoster crea el roster inicial: 10 personajes con 6 slots vacíos cada uno.
func DefaultRoster() []Character {
	out := make([]Character, 0, DefaultCharacters)
	for i := 1; i <= DefaultCharacters; i++ {
		out = append(out, NewCharacter(fmt.Sprintf("Character %d", i)))
	}
	return out
}

// Normalize repara un roster recién cargado para que cumpla los invariantes:
// ids presentes, enums con fallback a none, exactamente 6 slots por personaje
// y contadores clampeados. Nunca rechaza: datos raros se corrigen, no se tiran.
func Normalize(chars []Character) []Character {
	out := make([]Character, 0, len(chars))
	for _, c := range chars {
		if strings.TrimSpace(c.ID) == "" {
			c.ID = uuid.NewString()
		}
		c.Animals = resizeSlots(c.Animals, SlotsPerCharacter)
		for i := range c.Animals {
			c.Animals[i] = clampAnimal(c.Animals[i])
		}
		out = append(out, c)
	}
	return out
}

// resizeSlots garantiza exactamente n elementos: rellena con slots vacíos
// o descarta el excedente. Independiente de cualquier render.
func resizeSlots(animals []Animal, n int) []Animal {
	if len(animals) > n {
		animals = animals[:n]
	}
	out := make([]Animal, 0, n)
	out = append(out, animals...)
	for len(out) < n {
		out = append(out, NewAnimal())
	}
	return out
}

func clampAnimal(a Animal) Animal {
	if strings.TrimSpace(a.ID) == "" {
		a.ID = uuid.NewString()
	}
	if a.Species == "" || !ValidSpecies(a.Species) {
		a.Species = SpeciesNone
	}
	if a.Sex == "" || !ValidSex(a.Sex) {
		a.Sex = SexNone
	}
	if a.Rank == "" || !ValidRank(a.Rank) {
		a.Rank = RankNone
	}
	if a.BreedCapacity < 0 {
		a.BreedCapacity = 0
	}
	a.BreedUsed = clampInt(a.BreedUsed, 0, a.BreedCapacity)
	if a.Traits == nil {
		a.Traits = []Trait{}
	}
	return a
}

// CloneRoster copia profunda del árbol completo. El roster vivo es un árbol
// con ownership único; nunca entregamos referencias compartidas hacia afuera.
func CloneRoster(chars []Character) []Character {
	out := make([]Character, 0, len(chars))
	for _, c := range chars {
		out = append(out, cloneCharacter(c))
	}
	return out
}

func cloneCharacter(c Character) Character {
	animals := make([]Animal, 0, len(c.Animals))
	for _, a := range c.Animals {
		animals = append(animals, cloneAnimal(a))
	}
	c.Animals = animals
	return c
}

func cloneAnimal(a Animal) Animal {
	if a.StartTime != nil {
		t := *a.StartTime
		a.StartTime = &t
	}
	if a.LastBreedTime != nil {
		t := *a.LastBreedTime
		a.LastBreedTime = &t
	}
	traits := make([]Trait, len(a.Traits))
	copy(traits, a.Traits)
	a.Traits = traits
	return a
}
