package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/kailas-cloud/arttinder/internal/domain"
	"github.com/kailas-cloud/arttinder/internal/metrics"
	healthuc "github.com/kailas-cloud/arttinder/internal/usecase/health"
	imagesuc "github.com/kailas-cloud/arttinder/internal/usecase/images"
	preferenceuc "github.com/kailas-cloud/arttinder/internal/usecase/preference"
	recommenduc "github.com/kailas-cloud/arttinder/internal/usecase/recommend"
	suggestuc "github.com/kailas-cloud/arttinder/internal/usecase/suggest"
	useruc "github.com/kailas-cloud/arttinder/internal/usecase/user"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// Server holds the HTTP handlers of the API.
type Server struct {
	images        *imagesuc.Service
	suggest       *suggestuc.Service
	recommend     *recommenduc.Service
	prefs         *preferenceuc.Service
	users         *useruc.Service
	health        *healthuc.Service
	errorHandlers []errorHandler
}

// Services groups the use cases served over HTTP.
type Services struct {
	Images    *imagesuc.Service
	Suggest   *suggestuc.Service
	Recommend *recommenduc.Service
	Prefs     *preferenceuc.Service
	Users     *useruc.Service
	Health    *healthuc.Service
}

// NewServer creates an HTTP API server.
func NewServer(svc Services) *Server {
	return &Server{
		images:        svc.Images,
		suggest:       svc.Suggest,
		recommend:     svc.Recommend,
		prefs:         svc.Prefs,
		users:         svc.Users,
		health:        svc.Health,
		errorHandlers: defaultErrorHandlers(),
	}
}

type okResponse struct {
	OK bool `json:"ok"`
}

type validKeyResponse struct {
	Valid bool `json:"valid"`
}

// SearchImages handles GET /images/search.
func (s *Server) SearchImages(w http.ResponseWriter, r *http.Request) {
	p, err := parseSearchParams(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	page, err := s.images.Search(r.Context(), p.Q, p.PerPage, p.Page, keySource(r, p.APIKey))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// ValidateKey handles GET /images/validate-key.
func (s *Server) ValidateKey(w http.ResponseWriter, r *http.Request) {
	p, err := parseKeyParams(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	if err := s.images.ValidateKey(r.Context(), keySource(r, p.APIKey)); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, validKeyResponse{Valid: true})
}

// RecommendImages handles GET /images/recommend. Requires X-User-Id.
func (s *Server) RecommendImages(w http.ResponseWriter, r *http.Request) {
	p, err := parseRecommendParams(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	key, err := s.images.ResolveKey(keySource(r, p.APIKey))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	page, err := s.recommend.Recommend(ctx, recommenduc.Request{
		UserID:  UserIDFromContext(r.Context()),
		PerPage: p.PerPage,
		Page:    p.Page,
		APIKey:  key,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setUsageHeaders(w, usage)
	writeJSON(w, http.StatusOK, page)
}

// Suggest handles GET /suggest.
func (s *Server) Suggest(w http.ResponseWriter, r *http.Request) {
	p, err := parseSuggestParams(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	res, err := s.suggest.Suggest(ctx, p.Q, p.Limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setUsageHeaders(w, usage)
	writeJSON(w, http.StatusOK, res)
}

// ValidateHandle handles GET /user/validate.
func (s *Server) ValidateHandle(w http.ResponseWriter, r *http.Request) {
	p, err := parseHandleParams(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	res, err := s.users.ValidateHandle(r.Context(), p.Handle)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// UpsertUser handles POST /user/upsert.
func (s *Server) UpsertUser(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if _, err := s.users.Upsert(r.Context(), scalarString(body["userId"]), scalarString(body["handle"])); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// GetPrefs handles GET /prefs. Requires X-User-Id.
func (s *Server) GetPrefs(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.prefs.Get(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, prefs)
}

// SetPrefs handles POST /prefs. The body replaces the stored record. Requires X-User-Id.
func (s *Server) SetPrefs(w http.ResponseWriter, r *http.Request) {
	var prefs domain.Preferences
	if err := decodeBody(w, r, &prefs); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.prefs.Set(r.Context(), UserIDFromContext(r.Context()), prefs); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, report)
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics.Handler().ServeHTTP(w, r)
}

func keySource(r *http.Request, queryKey string) imagesuc.KeySource {
	return imagesuc.KeySource{Header: r.Header.Get(HeaderPexelsKey), Query: queryKey}
}

func setUsageHeaders(w http.ResponseWriter, usage *domain.Usage) {
	if usage.Used() {
		w.Header().Set(HeaderTokens, strconv.Itoa(usage.TotalTokens()))
	}
}

// decodeBody decodes a JSON object body. An empty body decodes to the zero value.
func decodeBody(w http.ResponseWriter, r *http.Request, dest any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// scalarString coerces a decoded JSON scalar to a string. Absent and null values are empty.
func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
