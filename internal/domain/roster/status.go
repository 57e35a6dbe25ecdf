package roster

import (
	"fmt"
	"time"
)

// Status es el estado derivado de un animal. Nunca se persiste:
// se recalcula contra el reloj en cada consulta.
// @Enum immature, exhausted, cooldown, ready
type Status string

const (
	StatusImmature  Status = "immature"
	StatusExhausted Status = "exhausted"
	StatusCooldown  Status = "cooldown"
	StatusReady     Status = "ready"
)

// RemainingBreeds devuelve la capacidad de cría restante, nunca negativa.
func (a Animal) RemainingBreeds() int {
	r := a.BreedCapacity - a.BreedUsed
	if r < 0 {
		return 0
	}
	return r
}

// Classify clasifica el animal en exactamente un estado.
// Las condiciones se evalúan en orden: immature > exhausted > cooldown > ready.
func Classify(a Animal, now time.Time) Status {
	if !a.Adult {
		return StatusImmature
	}
	if a.RemainingBreeds() <= 0 {
		return StatusExhausted
	}
	if a.LastBreedTime != nil && now.Before(a.LastBreedTime.Add(BreedCooldown)) {
		return StatusCooldown
	}
	return StatusReady
}

// TimeToAdult devuelve cuánto falta para la adultez, clampeado a cero.
// Sin start time no hay countdown.
func TimeToAdult(a Animal, now time.Time) time.Duration {
	if a.Adult || a.StartTime == nil {
		return 0
	}
	return clampDuration(a.StartTime.Add(GrowthDuration).Sub(now))
}

// TimeToReady devuelve cuánto falta para que termine el cooldown, clampeado a cero.
func TimeToReady(a Animal, now time.Time) time.Duration {
	if a.LastBreedTime == nil {
		return 0
	}
	return clampDuration(a.LastBreedTime.Add(BreedCooldown).Sub(now))
}

// Breed registra una cría manual: last breed = ahora, used+1 (clampeado).
// Devuelve ok=false (sin tocar el animal) si no queda capacidad.
func Breed(a Animal, now time.Time) (Animal, bool) {
	if a.RemainingBreeds() <= 0 {
		return a, false
	}
	t := now
	a.LastBreedTime = &t
	a.BreedUsed = clampInt(a.BreedUsed+1, 0, a.BreedCapacity)
	return a, true
}

// BreedAuto registra una cría "automática": en vez de marcar ahora, avanza el
// last breed exactamente un cooldown desde su valor anterior (o desde ahora si
// no había). Modela ciclos de cría encadenados/en cola. Se mantiene separado
// de Breed a propósito: las dos semánticas existen en el juego.
func BreedAuto(a Animal, now time.Time) (Animal, bool) {
	if a.RemainingBreeds() <= 0 {
		return a, false
	}
	next := now
	if a.LastBreedTime != nil {
		next = a.LastBreedTime.Add(BreedCooldown)
	}
	a.LastBreedTime = &next
	a.BreedUsed = clampInt(a.BreedUsed+1, 0, a.BreedCapacity)
	return a, true
}

// FormatCountdown renderiza una duración como HH:MM:SS para la UI.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	s := int(d/time.Second) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func clampDuration(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
