package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/vmtecnologia/usersvc/internal/logging"
	"github.com/vmtecnologia/usersvc/internal/server/models"
	"github.com/vmtecnologia/usersvc/internal/server/services"
)

const (
	defaultPageNumber = 0
	defaultPageSize   = 10
	maxBodyBytes      = 1 << 20
)

type UserService interface {
	Create(ctx context.Context, in services.UserInput) (*models.User, error)
	Update(ctx context.Context, in services.UserInput) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, filter models.UserFilter, page, size int) (*models.Page[*models.User], error)
	Delete(ctx context.Context, id int64) error
}

type Authenticator interface {
	Login(ctx context.Context, c services.Credential) (string, error)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type userRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Enabled  *bool  `json:"enabled,omitempty"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type pageResponse struct {
	Page         int            `json:"page"`
	PageSize     int            `json:"pageSize"`
	TotalContent int64          `json:"totalContent"`
	TotalPages   int            `json:"totalPages"`
	Items        []userResponse `json:"items"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Enabled:   u.Enabled,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type Handler struct {
	users   UserService
	auth    Authenticator
	metrics *Metrics
	logger  logging.Logger
}

func NewHandler(users UserService, auth Authenticator, metrics *Metrics, logger logging.Logger) *Handler {
	return &Handler{users: users, auth: auth, metrics: metrics, logger: logger}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(w, r, &req); err != nil {
		h.metrics.ObserveLogin(LoginIncomplete)
		h.fail(w, r, err)
		return
	}

	token, err := h.auth.Login(r.Context(), services.Credential{Email: req.Email, Password: req.Password})
	if err != nil {
		h.metrics.ObserveLogin(loginOutcome(err))
		h.fail(w, r, err)
		return
	}

	h.metrics.ObserveLogin(LoginSucceeded)
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	in, err := decodeUser(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	u, err := h.users.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	in, err := decodeUser(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	u, err := h.users.Update(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.users.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	u, err := h.users.FindByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := models.UserFilter{
		Username: q.Get("username"),
		Email:    q.Get("email"),
	}
	if v := q.Get("enabled"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "enabled must be true or false")
			return
		}
		filter.Enabled = &enabled
	}

	page, okPage := intParam(q.Get("pageNumber"), defaultPageNumber)
	size, okSize := intParam(q.Get("pageSize"), defaultPageSize)
	if !okPage || !okSize {
		h.fail(w, r, services.ErrInvalidPage)
		return
	}

	result, err := h.users.List(r.Context(), filter, page, size)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	items := make([]userResponse, len(result.Items))
	for i, u := range result.Items {
		items[i] = toUserResponse(u)
	}
	writeJSON(w, http.StatusOK, pageResponse{
		Page:         result.Page,
		PageSize:     result.PageSize,
		TotalContent: result.TotalContent,
		TotalPages:   result.TotalPages,
		Items:        items,
	})
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "UP"})
}

// fail writes the mapped error response. Messages of 500s are not exposed.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "err", err)
		writeError(w, r, status, "internal server error")
		return
	}
	writeError(w, r, status, err.Error())
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, services.ErrCredentialsIncomplete):
		return LoginIncomplete
	case errors.Is(err, services.ErrIdentityNotFound), errors.Is(err, services.ErrIncorrectCredential):
		return LoginRejected
	default:
		return LoginFailed
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errMalformedBody
	}
	return nil
}

func decodeUser(w http.ResponseWriter, r *http.Request) (services.UserInput, error) {
	var req userRequest
	if err := decode(w, r, &req); err != nil {
		return services.UserInput{}, err
	}
	return services.UserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Enabled:  req.Enabled,
	}, nil
}

func queryID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		return 0, services.ErrInvalidID
	}
	return id, nil
}

func intParam(v string, def int) (int, bool) {
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}
