package backups

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/backups", func(br chi.Router) {
		br.Get("/", listBackupsHandler(svc))
		br.Post("/", createBackupHandler(svc))
		br.Post("/restore", restoreBackupHandler(svc))
		br.Delete("/", deleteBackupHandler(svc))
		br.Get("/export", exportHandler(svc))
	})
}

type backupResponse struct {
	Key       string     `json:"key"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type restoreRequest struct {
	Key string `json:"key"`
}

type deleteRequest struct {
	Key string `json:"key"`
}

// createBackupHandler crea un snapshot del roster completo.
// @Summary Crear backup
// @Tags backups
// @Success 201 {object} backupResponse
// @Router /backups [post]
func createBackupHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := svc.Create(r.Context())
		if err != nil {
			// el detalle ya quedó en el log; al usuario le alcanza un aviso genérico
			http.Error(w, "backup failed", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, toBackupResponse(b))
	}
}

// listBackupsHandler lista snapshots, el más nuevo primero.
// @Summary Listar backups
// @Tags backups
// @Success 200 {array} backupResponse
// @Router /backups [get]
func listBackupsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]backupResponse, 0, len(items))
		for _, b := range items {
			out = append(out, toBackupResponse(b))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// restoreBackupHandler reemplaza el roster vivo por el contenido del snapshot.
// @Summary Restaurar backup
// @Tags backups
// @Router /backups/restore [post]
func restoreBackupHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req restoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Key) == "" {
			http.Error(w, "invalid json: key required", http.StatusBadRequest)
			return
		}

		n, err := svc.Restore(r.Context(), req.Key)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "backup not found", http.StatusNotFound)
			case errors.Is(err, ErrInvalidBackup):
				http.Error(w, "backup payload is not a valid roster", http.StatusUnprocessableEntity)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"restored":   true,
			"characters": n,
		})
	}
}

func deleteBackupHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req deleteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Key) == "" {
			http.Error(w, "invalid json: key required", http.StatusBadRequest)
			return
		}

		if err := svc.Delete(r.Context(), req.Key); err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "backup not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// exportHandler descarga el roster como JSON pretty-printed.
// @Summary Exportar roster
// @Tags backups
// @Produce json
// @Router /backups/export [get]
func exportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename, payload, err := svc.Export(r.Context())
		if err != nil {
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(payload)
	}
}

func toBackupResponse(b Backup) backupResponse {
	out := backupResponse{Key: b.Key}
	if !b.CreatedAt.IsZero() {
		t := b.CreatedAt
		out.CreatedAt = &t
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
