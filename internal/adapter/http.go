package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/utils"
	"github.com/MKhiriev/go-story-sync/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	hashKey string

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying resty client with the resolved base URL and
// request timeout. In-flight requests are never aborted early: they complete
// or hit the timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	timeout := adapterCfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &httpServerAdapter{client: client, hashKey: appCfg.HashKey, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter].
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter]. It POSTs the credentials to
// /api/user/register and takes the bearer token from the Authorization
// response header.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.Token, error) {
	return h.authenticate(ctx, "/api/user/register", user)
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// /api/user/login and takes the bearer token from the Authorization
// response header.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.Token, error) {
	return h.authenticate(ctx, "/api/user/login", user)
}

func (h *httpServerAdapter) authenticate(ctx context.Context, path string, user models.User) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post(path)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %s request: %w", ErrNetwork, path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: parse bearer token: %w", ErrMalformedResponse, err)
	}
	userID, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: parse user id: %w", ErrMalformedResponse, err)
	}

	h.SetToken(token)
	return models.Token{SignedString: token, UserID: userID}, nil
}

// PushBatch implements [ServerAdapter]. It computes the integrity hash over
// req.Operations and POSTs the batch to /api/sync/push.
func (h *httpServerAdapter) PushBatch(ctx context.Context, req models.PushRequest) (models.PushResponse, error) {
	hash, err := utils.HashJSON(req.Operations, h.hashKey)
	if err != nil {
		return models.PushResponse{}, fmt.Errorf("hash batch: %w", err)
	}
	req.Hash = hash

	var pushResp models.PushResponse
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&pushResp).
		Post("/api/sync/push")
	if err != nil {
		return models.PushResponse{}, fmt.Errorf("%w: push request: %w", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PushResponse{}, err
	}

	if len(pushResp.Results) != len(req.Operations) {
		h.logger.Error().Str("func", "*httpServerAdapter.PushBatch").
			Int("sent", len(req.Operations)).
			Int("results", len(pushResp.Results)).
			Msg("result count does not match batch size")
		return models.PushResponse{}, fmt.Errorf("%w: %d results for %d operations",
			ErrMalformedResponse, len(pushResp.Results), len(req.Operations))
	}

	return pushResp, nil
}

// PullChanges implements [ServerAdapter]. It GETs /api/sync/changes with the
// change id cursor in the after parameter.
func (h *httpServerAdapter) PullChanges(ctx context.Context, req models.PullRequest) (models.PullResponse, error) {
	r := h.authedRequest(ctx).SetQueryParam("device_id", req.DeviceID)
	if req.After > 0 {
		r.SetQueryParam("after", strconv.FormatInt(req.After, 10))
	}

	resp, err := r.Get("/api/sync/changes")
	if err != nil {
		return models.PullResponse{}, fmt.Errorf("%w: pull request: %w", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PullResponse{}, err
	}

	var pullResp models.PullResponse
	if err = json.Unmarshal(resp.Body(), &pullResp); err != nil {
		return models.PullResponse{}, fmt.Errorf("%w: decode changes: %w", ErrMalformedResponse, err)
	}
	return pullResp, nil
}

// ListProjects implements [ServerAdapter].
func (h *httpServerAdapter) ListProjects(ctx context.Context) ([]models.Project, error) {
	resp, err := h.authedRequest(ctx).Get("/api/projects")
	if err != nil {
		return nil, fmt.Errorf("%w: list projects request: %w", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var projects []models.Project
	if err = json.Unmarshal(resp.Body(), &projects); err != nil {
		return nil, fmt.Errorf("%w: decode projects: %w", ErrMalformedResponse, err)
	}
	return projects, nil
}

// CreateProject implements [ServerAdapter].
func (h *httpServerAdapter) CreateProject(ctx context.Context, name string) (models.Project, error) {
	var project models.Project
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.Project{Name: name}).
		SetResult(&project).
		Post("/api/projects")
	if err != nil {
		return models.Project{}, fmt.Errorf("%w: create project request: %w", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Project{}, err
	}
	return project, nil
}

// Health implements [ServerAdapter].
func (h *httpServerAdapter) Health(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get("/api/health")
	if err != nil {
		return fmt.Errorf("%w: health request: %w", ErrNetwork, err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
