// Package handler provides the HTTP handlers for the scheduling API.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"bandroom/store"
)

// Handler holds the server dependencies and registers routes.
type Handler struct {
	store   store.Store
	members []string
	mux     *http.ServeMux
}

// New creates a Handler and wires up all routes. members is the fixed
// roster served by the all-members availability endpoint.
func New(s store.Store, members []string) *Handler {
	h := &Handler{store: s, members: members, mux: http.NewServeMux()}
	h.routes()
	return h
}

// ServeHTTP makes Handler an http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.mux.HandleFunc("GET /api/health", h.health)

	h.mux.HandleFunc("GET /api/current-user/{userId}", h.getCurrentUser)
	h.mux.HandleFunc("POST /api/current-user/{userId}", h.setCurrentUser)

	// The literal "all" segment wins over the {member} wildcard.
	h.mux.HandleFunc("GET /api/availability/all/{year}/{month}", h.getAllAvailability)
	h.mux.HandleFunc("GET /api/availability/{member}/{year}/{month}", h.getAvailability)
	h.mux.HandleFunc("POST /api/availability/{member}/{year}/{month}", h.setAvailability)

	h.mux.HandleFunc("GET /api/concerts", h.getConcerts)
	h.mux.HandleFunc("POST /api/concerts", h.addConcert)
	h.mux.HandleFunc("DELETE /api/concerts/{index}", h.removeConcert)

	h.mux.HandleFunc("GET /api/links", h.getLinks)
	h.mux.HandleFunc("POST /api/links", h.addLink)
	h.mux.HandleFunc("DELETE /api/links/{index}", h.removeLink)
}

// ---------- helpers ----------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func fail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}

// failStore maps a store failure to a generic 500. Absent keys never
// reach here; they are normal empty-shaped results.
func failStore(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("store operation failed", "method", r.Method, "path", r.URL.Path, "err", err)
	fail(w, http.StatusInternalServerError, "storage unavailable")
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// ---------- health ----------

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	err := h.store.Health()
	resp := map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UnixMilli(),
	}
	status := http.StatusOK
	if err != nil {
		resp["status"] = "degraded"
		status = http.StatusServiceUnavailable
	}
	// The relational backend also reports database connectivity.
	if _, ok := h.store.(*store.SqliteStore); ok {
		if err != nil {
			resp["database"] = "unreachable"
		} else {
			resp["database"] = "connected"
		}
	}
	writeJSON(w, status, resp)
}

// ---------- current user ----------

func (h *Handler) getCurrentUser(w http.ResponseWriter, r *http.Request) {
	v, err := h.store.Get(store.CurrentUserKey(r.PathValue("userId")))
	if err != nil {
		failStore(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": v})
}

func (h *Handler) setCurrentUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		User any `json:"user"`
	}
	if err := readJSON(r, &body); err != nil {
		fail(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := h.store.Put(store.CurrentUserKey(r.PathValue("userId")), body.User); err != nil {
		failStore(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": body.User})
}

// ---------- availability ----------

func (h *Handler) getAvailability(w http.ResponseWriter, r *http.Request) {
	// {member} comes out of PathValue already percent-decoded, so the
	// derived key matches the one written by setAvailability.
	key := store.AvailabilityKey(r.PathValue("member"), r.PathValue("year"), r.PathValue("month"))
	v, err := h.store.Get(key)
	if err != nil {
		failStore(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, asObject(v))
}

func (h *Handler) setAvailability(w http.ResponseWriter, r *http.Request) {
	var days map[string]any
	if err := readJSON(r, &days); err != nil {
		fail(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := validateAvailability(days); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	key := store.AvailabilityKey(r.PathValue("member"), r.PathValue("year"), r.PathValue("month"))
	if err := h.store.Put(key, days); err != nil {
		failStore(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) getAllAvailability(w http.ResponseWriter, r *http.Request) {
	year, month := r.PathValue("year"), r.PathValue("month")
	result := make(map[string]any, len(h.members))
	for _, member := range h.members {
		v, err := h.store.Get(store.AvailabilityKey(member, year, month))
		if err != nil {
			failStore(w, r, err)
			return
		}
		result[member] = asObject(v)
	}
	writeJSON(w, http.StatusOK, result)
}

func asObject(v any) map[string]any {
	if obj, ok := v.(map[string]any); ok {
		return obj
	}
	return map[string]any{}
}

// ---------- concerts ----------

func (h *Handler) getConcerts(w http.ResponseWriter, r *http.Request) {
	h.getList(w, r, store.KeyConcerts)
}

func (h *Handler) addConcert(w http.ResponseWriter, r *http.Request) {
	var concert map[string]any
	if err := readJSON(r, &concert); err != nil {
		fail(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := requireStringFields(concert, "location", "date"); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	concert["id"] = uuid.NewString()
	concert["addedAt"] = time.Now().UnixMilli()
	if err := store.Append(h.store, store.KeyConcerts, concert); err != nil {
		failStore(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "concert": concert})
}

func (h *Handler) removeConcert(w http.ResponseWriter, r *http.Request) {
	h.removeAt(w, r, store.KeyConcerts)
}

// ---------- links ----------

func (h *Handler) getLinks(w http.ResponseWriter, r *http.Request) {
	h.getList(w, r, store.KeyLinks)
}

func (h *Handler) addLink(w http.ResponseWriter, r *http.Request) {
	var link map[string]any
	if err := readJSON(r, &link); err != nil {
		fail(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := requireStringFields(link, "name"); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	link["id"] = uuid.NewString()
	link["addedAt"] = time.Now().UnixMilli()
	if err := store.Append(h.store, store.KeyLinks, link); err != nil {
		failStore(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "link": link})
}

func (h *Handler) removeLink(w http.ResponseWriter, r *http.Request) {
	h.removeAt(w, r, store.KeyLinks)
}

// ---------- shared list logic ----------

func (h *Handler) getList(w http.ResponseWriter, r *http.Request, key string) {
	v, err := h.store.Get(key)
	if err != nil {
		failStore(w, r, err)
		return
	}
	list, ok := v.([]any)
	if v != nil && !ok {
		failStore(w, r, errors.New("stored value is not a list"))
		return
	}
	if list == nil {
		list = []any{}
	}
	writeJSON(w, http.StatusOK, list)
}

// removeAt deletes one element by index. A non-numeric index gets the
// same 400 response as an out-of-range one; neither mutates the list.
func (h *Handler) removeAt(w http.ResponseWriter, r *http.Request, key string) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		fail(w, http.StatusBadRequest, "index out of range: "+r.PathValue("index"))
		return
	}
	if _, err := store.RemoveAt(h.store, key, index); err != nil {
		if errors.Is(err, store.ErrIndexOutOfRange) {
			fail(w, http.StatusBadRequest, err.Error())
			return
		}
		failStore(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
