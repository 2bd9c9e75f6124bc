package pinned

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/career-auditor/internal/listing"
	"github.com/spigell/career-auditor/internal/logger"
	"github.com/spigell/career-auditor/internal/normalizer"
)

const maxPayloadBytes = 1 << 20

var (
	ErrUnauthorized   = errors.New("unauthorized: invalid credentials")
	ErrInvalidPayload = errors.New("invalid data")
)

// Credentials are the two shared secrets that gate a pinned-list update.
type Credentials struct {
	SecretOne string
	SecretTwo string
}

type updatePayload struct {
	SecretOne string            `json:"secretOne"`
	SecretTwo string            `json:"secretTwo"`
	Listings  []listing.Listing `json:"listings"`
}

// Handler serves the pinned listings and accepts authenticated replacements.
type Handler struct {
	store  Store
	creds  Credentials
	logger *zap.Logger
}

func NewHandler(store Store, creds Credentials, log *zap.Logger) *Handler {
	return &Handler{store: store, creds: creds, logger: logger.WithFields(log)}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.update(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.Load(r.Context())
	if err != nil {
		h.logger.Error("loading pinned listings", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server error"})
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	payload, err := h.decode(r.Body)
	switch {
	case errors.Is(err, ErrUnauthorized):
		h.logger.Warn("rejected pinned update", zap.String("remote", r.RemoteAddr))
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
		return
	case err != nil:
		h.logger.Warn("malformed pinned update", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": ErrInvalidPayload.Error()})
		return
	}

	if err := h.store.Save(r.Context(), payload.Listings); err != nil {
		h.logger.Error("saving pinned listings", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server error"})
		return
	}

	h.logger.Info("pinned listings replaced", zap.Int("count", len(payload.Listings)))
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "count": len(payload.Listings)})
}

// decode checks credentials before validating the listings.
func (h *Handler) decode(body io.Reader) (*updatePayload, error) {
	raw := map[string]any{}
	if err := json.NewDecoder(io.LimitReader(body, maxPayloadBytes)).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	one, _ := raw["secretOne"].(string)
	two, _ := raw["secretTwo"].(string)
	if !h.authorized(one, two) {
		return nil, ErrUnauthorized
	}

	if _, ok := raw["listings"].([]any); !ok {
		return nil, fmt.Errorf("%w: listings must be an array", ErrInvalidPayload)
	}

	payload := &updatePayload{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: pubDateHook,
		TagName:    "json",
		Result:     payload,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	for i, l := range payload.Listings {
		if !listing.ValidLink(l.Link) {
			return nil, fmt.Errorf("%w: listing %d has no absolute http(s) link", ErrInvalidPayload, i)
		}
	}

	return payload, nil
}

func (h *Handler) authorized(one, two string) bool {
	if h.creds.SecretOne == "" || h.creds.SecretTwo == "" {
		return false
	}
	okOne := subtle.ConstantTimeCompare([]byte(one), []byte(h.creds.SecretOne))
	okTwo := subtle.ConstantTimeCompare([]byte(two), []byte(h.creds.SecretTwo))
	return okOne&okTwo == 1
}

// pubDateHook accepts the publish date in any feed date format. Unknown formats become the zero time.
func pubDateHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(time.Time{}) || from.Kind() != reflect.String {
		return data, nil
	}
	return normalizer.ParsePubDate(data.(string)), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
