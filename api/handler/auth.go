package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/gatehouse/authengine/api/transport"
	"github.com/gatehouse/authengine/domain"
	"github.com/gatehouse/authengine/pkg/httpcontext"
	authUC "github.com/gatehouse/authengine/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc *authUC.Service
}

func NewAuthHandler(uc *authUC.Service, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Authenticate with email and password
// @Tags auth
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Email == "" || req.Password == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.AuthenticateByCredential(stdCtx, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}

// @Summary Authenticate with an existing bearer token
// @Tags auth
// @Router /api/v1/auth/token [post]
func (h *AuthHandler) Token(ctx *fasthttp.RequestCtx) {
	var req transport.TokenAuthRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.UserID == "" || req.Token == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.AuthenticateByToken(stdCtx, req.UserID, req.Token)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}

// @Summary Check whether a session is still live
// @Tags auth
// @Router /api/v1/auth/verify [post]
func (h *AuthHandler) Verify(ctx *fasthttp.RequestCtx) {
	var req transport.VerifyRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.UserID == "" || req.Token == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	live, err := h.uc.IsSessionLive(stdCtx, req.UserID, req.Token)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]bool{"live": live})
}
