package roster

// AnimalRef ubica un animal dentro del roster para el dashboard.
type AnimalRef struct {
	CharacterID   string
	CharacterName string
	Slot          int
	Animal        Animal
	Status        Status
}

// SpeciesSummary agrupa los animales de una especie por estado derivado.
type SpeciesSummary struct {
	Species Species
	Total   int
	Counts  map[Status]int
	Animals []AnimalRef
}

// Summary arma el dashboard agregado: todos los animales agrupados por especie
// (en el orden del catálogo) y clasificados contra el reloj actual.
// Especies sin animales no aparecen.
func (s *Service) Summary() []SpeciesSummary {
	now := s.now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	bySpecies := make(map[Species]*SpeciesSummary)
	for _, c := range s.chars {
		for slot, a := range c.Animals {
			sum, ok := bySpecies[a.Species]
			if !ok {
				sum = &SpeciesSummary{
					Species: a.Species,
					Counts:  map[Status]int{},
				}
				bySpecies[a.Species] = sum
			}

			st := Classify(a, now)
			sum.Total++
			sum.Counts[st]++
			sum.Animals = append(sum.Animals, AnimalRef{
				CharacterID:   c.ID,
				CharacterName: c.Name,
				Slot:          slot,
				Animal:        cloneAnimal(a),
				Status:        st,
			})
		}
	}

	out := make([]SpeciesSummary, 0, len(bySpecies))
	for _, sp := range AllSpecies {
		if sum, ok := bySpecies[sp]; ok {
			out = append(out, *sum)
		}
	}
	return out
}
