package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"botadmin-backend/internal/domain"
	"botadmin-backend/internal/usecase"
)

// BotHandler serves bot_instances reads and all write paths.
type BotHandler struct {
	repo domain.BotInstanceRepository
	svc  *usecase.BotService
	log  *logrus.Logger
}

func NewBotHandler(repo domain.BotInstanceRepository, svc *usecase.BotService, log *logrus.Logger) *BotHandler {
	return &BotHandler{repo: repo, svc: svc, log: log}
}

// Bots dispatches /api/bots by method.
func (h *BotHandler) Bots(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	case http.MethodPut:
		h.update(w, r)
	case http.MethodDelete:
		h.delete(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *BotHandler) list(w http.ResponseWriter, r *http.Request) {
	bots, err := h.repo.ListAll(r.Context())
	if err != nil {
		h.log.WithError(err).Error("failed to fetch bots")
		writeError(w, http.StatusInternalServerError, "Failed to fetch bots")
		return
	}

	if q, ok := parseTableQuery(r); ok {
		writeJSON(w, http.StatusOK, usecase.BotsTable().Apply(bots, q))
		return
	}
	writeJSON(w, http.StatusOK, bots)
}

func (h *BotHandler) create(w http.ResponseWriter, r *http.Request) {
	var in usecase.CreateBotInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.OwnerID == "" {
		if user := UserFrom(r.Context()); user != nil {
			in.OwnerID = user.ID
		}
	}

	res, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.log.WithError(err).Error("failed to create bot")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	payload := map[string]any{"success": true, "data": res.Bot}
	if res.Warning != "" {
		payload["warning"] = res.Warning
	}
	writeJSON(w, http.StatusOK, payload)
}

func (h *BotHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var in usecase.BotFormInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bot, err := h.svc.Update(r.Context(), id, in)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Bot not found")
		return
	}
	if err != nil {
		h.log.WithError(err).WithField("bot_id", id).Error("failed to update bot")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": bot})
}

func (h *BotHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	err := h.svc.Delete(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Bot not found")
		return
	}
	if err != nil {
		h.log.WithError(err).WithField("bot_id", id).Error("failed to delete bot")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Toggle handles POST /api/bots/toggle?id=N. Guard rejections answer 409
// with the operator message and change nothing.
func (h *BotHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	bot, err := h.svc.ToggleDesiredState(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Bot not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": bot})
}

// NextID handles GET /api/bots/next-id.
func (h *BotHandler) NextID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	next, err := h.svc.NextSequence(r.Context())
	if err != nil {
		h.log.WithError(err).Error("failed to fetch next bot id")
		writeError(w, http.StatusInternalServerError, "Failed to fetch next id")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"nextId": next})
}

// NamePreview handles GET /api/bots/name-preview. It returns the generated
// instance name, or the inputs still missing.
func (h *BotHandler) NamePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	params := r.URL.Query()
	in := usecase.NameInputs{
		Crypto:   params.Get("crypto"),
		Interval: params.Get("interval"),
		Strategy: params.Get("strategy"),
	}
	if user := UserFrom(r.Context()); user != nil {
		in.OwnerID = user.ID
	}
	if v := params.Get("momentumSec"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			in.MomentumSec = n
		}
	}
	if v := params.Get("momentumThreshold"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			in.MomentumThreshold = n
		}
	}

	if missing := usecase.MissingNameInputs(in); len(missing) > 0 {
		writeJSON(w, http.StatusOK, map[string]any{"missing": missing})
		return
	}

	seq, err := h.svc.NextSequence(r.Context())
	if err != nil {
		h.log.WithError(err).Error("failed to fetch next bot id")
		writeError(w, http.StatusInternalServerError, "Failed to fetch next id")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": usecase.InstanceName(in, seq)})
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "Missing id")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}
