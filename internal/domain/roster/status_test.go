package roster

import (
	"testing"
	"time"
)

func timePtr(t time.Time) *time.Time { return &t }

func adultAnimal(capacity, used int) Animal {
	a := NewAnimal()
	a.Adult = true
	a.BreedCapacity = capacity
	a.BreedUsed = used
	return a
}

func TestClassify(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		animal Animal
		want   Status
	}{
		{
			name: "not adult is immature no matter what",
			animal: func() Animal {
				a := adultAnimal(3, 3)
				a.Adult = false
				a.LastBreedTime = timePtr(now.Add(-time.Hour))
				return a
			}(),
			want: StatusImmature,
		},
		{
			name:   "adult with capacity 3 used 3 is exhausted",
			animal: adultAnimal(3, 3),
			want:   StatusExhausted,
		},
		{
			name: "used over capacity still exhausted",
			animal: func() Animal {
				a := adultAnimal(2, 5)
				return a
			}(),
			want: StatusExhausted,
		},
		{
			name: "bred one hour ago is cooling down",
			animal: func() Animal {
				a := adultAnimal(3, 1)
				a.LastBreedTime = timePtr(now.Add(-time.Hour))
				return a
			}(),
			want: StatusCooldown,
		},
		{
			name: "bred 25 hours ago is ready",
			animal: func() Animal {
				a := adultAnimal(3, 1)
				a.LastBreedTime = timePtr(now.Add(-25 * time.Hour))
				return a
			}(),
			want: StatusReady,
		},
		{
			name:   "adult never bred is ready",
			animal: adultAnimal(3, 0),
			want:   StatusReady,
		},
		{
			name: "exhausted wins over cooldown",
			animal: func() Animal {
				a := adultAnimal(1, 1)
				a.LastBreedTime = timePtr(now.Add(-time.Hour))
				return a
			}(),
			want: StatusExhausted,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.animal, now); got != tc.want {
				t.Fatalf("Classify = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestTimeToAdult(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	a := NewAnimal()
	a.StartTime = timePtr(now.Add(-time.Hour))
	if got, want := TimeToAdult(a, now), 23*time.Hour; got != want {
		t.Fatalf("TimeToAdult = %v, want %v", got, want)
	}

	// pasado el plazo: clampeado a cero, nunca negativo
	a.StartTime = timePtr(now.Add(-25 * time.Hour))
	if got := TimeToAdult(a, now); got != 0 {
		t.Fatalf("TimeToAdult past due = %v, want 0", got)
	}

	a.StartTime = nil
	if got := TimeToAdult(a, now); got != 0 {
		t.Fatalf("TimeToAdult without start = %v, want 0", got)
	}

	a.StartTime = timePtr(now.Add(-time.Hour))
	a.Adult = true
	if got := TimeToAdult(a, now); got != 0 {
		t.Fatalf("TimeToAdult for adult = %v, want 0", got)
	}
}

func TestTimeToReady(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	a := adultAnimal(3, 1)
	a.LastBreedTime = timePtr(now.Add(-time.Hour))
	if got, want := TimeToReady(a, now), 23*time.Hour; got != want {
		t.Fatalf("TimeToReady = %v, want %v", got, want)
	}

	a.LastBreedTime = timePtr(now.Add(-25 * time.Hour))
	if got := TimeToReady(a, now); got != 0 {
		t.Fatalf("TimeToReady past cooldown = %v, want 0", got)
	}

	a.LastBreedTime = nil
	if got := TimeToReady(a, now); got != 0 {
		t.Fatalf("TimeToReady never bred = %v, want 0", got)
	}
}

func TestBreedManual(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	a := adultAnimal(3, 0)
	got, ok := Breed(a, now)
	if !ok {
		t.Fatal("Breed should succeed with remaining capacity")
	}
	if got.BreedUsed != 1 {
		t.Fatalf("BreedUsed = %d, want 1", got.BreedUsed)
	}
	if got.LastBreedTime == nil || !got.LastBreedTime.Equal(now) {
		t.Fatalf("LastBreedTime = %v, want %v", got.LastBreedTime, now)
	}

	// sin capacidad restante: no-op
	exhausted := adultAnimal(3, 3)
	got, ok = Breed(exhausted, now)
	if ok {
		t.Fatal("Breed should no-op when exhausted")
	}
	if got.BreedUsed != 3 || got.LastBreedTime != nil {
		t.Fatalf("exhausted animal mutated: %+v", got)
	}
}

func TestBreedAuto(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	// sin last breed previo: arranca desde ahora
	a := adultAnimal(3, 0)
	got, ok := BreedAuto(a, now)
	if !ok {
		t.Fatal("BreedAuto should succeed")
	}
	if got.LastBreedTime == nil || !got.LastBreedTime.Equal(now) {
		t.Fatalf("LastBreedTime = %v, want %v", got.LastBreedTime, now)
	}

	// con last breed previo: avanza exactamente un cooldown desde el valor
	// anterior, no desde ahora (ciclos encadenados)
	prev := now.Add(-time.Hour)
	a = adultAnimal(3, 1)
	a.LastBreedTime = timePtr(prev)
	got, ok = BreedAuto(a, now)
	if !ok {
		t.Fatal("BreedAuto should succeed")
	}
	want := prev.Add(BreedCooldown)
	if got.LastBreedTime == nil || !got.LastBreedTime.Equal(want) {
		t.Fatalf("LastBreedTime = %v, want %v", got.LastBreedTime, want)
	}
	if got.BreedUsed != 2 {
		t.Fatalf("BreedUsed = %d, want 2", got.BreedUsed)
	}

	// también no-opea sin capacidad
	if _, ok := BreedAuto(adultAnimal(2, 2), now); ok {
		t.Fatal("BreedAuto should no-op when exhausted")
	}
}

func TestClampAnimalInvariant(t *testing.T) {
	// para todo capacity >= 0 y cualquier used: 0 <= used <= capacity post-clamp
	for capacity := -2; capacity <= 5; capacity++ {
		for used := -3; used <= 8; used++ {
			a := NewAnimal()
			a.BreedCapacity = capacity
			a.BreedUsed = used

			got := clampAnimal(a)
			if got.BreedCapacity < 0 {
				t.Fatalf("capacity %d clamped to %d, want >= 0", capacity, got.BreedCapacity)
			}
			if got.BreedUsed < 0 || got.BreedUsed > got.BreedCapacity {
				t.Fatalf("capacity=%d used=%d => clamped used=%d cap=%d", capacity, used, got.BreedUsed, got.BreedCapacity)
			}
		}
	}
}

func TestFormatCountdown(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00:00"},
		{-time.Hour, "00:00:00"},
		{26*time.Hour + 5*time.Minute + 9*time.Second, "26:05:09"},
		{59 * time.Second, "00:00:59"},
	}
	for _, tc := range cases {
		if got := FormatCountdown(tc.in); got != tc.want {
			t.Fatalf("FormatCountdown(%v) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestTraitLabel(t *testing.T) {
	if got := TraitLabel(Trait{Name: "Wheat Seed", Rank: TraitRankII}); got != "Wheat" {
		t.Fatalf("seed trait label = %s, want Wheat", got)
	}
	if got := TraitLabel(Trait{Name: "Alpha", Rank: TraitRankI}); got != "Alpha" {
		t.Fatalf("regular trait label = %s, want Alpha", got)
	}
}
