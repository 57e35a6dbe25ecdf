package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Contadores de las operaciones de persistencia. No hay nada de latencias ni
// histogramas: en una herramienta local solo interesa saber que los saves y
// backups efectivamente ocurren (o fallan).
var (
	RosterSaves = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ranch_roster_saves_total",
		Help: "Saves del roster persistidos (incluye los disparados por debounce).",
	})
	SaveFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ranch_roster_save_failures_total",
		Help: "Saves del roster que fallaron contra el store.",
	})
	BackupsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ranch_roster_backups_created_total",
		Help: "Snapshots de backup creados.",
	})
	BackupsRestored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ranch_roster_backups_restored_total",
		Help: "Restores aplicados sobre el roster vivo.",
	})
)

// Handler expone el endpoint /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
