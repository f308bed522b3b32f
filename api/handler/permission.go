package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/gatehouse/authengine/api/transport"
	"github.com/gatehouse/authengine/domain"
	"github.com/gatehouse/authengine/pkg/httpcontext"
	authUC "github.com/gatehouse/authengine/usecase/auth"
)

type PermissionHandler struct {
	baseHandler
	uc *authUC.Service
}

func NewPermissionHandler(uc *authUC.Service, adapter *httpcontext.Adapter, logger *zap.Logger) *PermissionHandler {
	return &PermissionHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Effective permission set for the authenticated user
// @Tags permissions
// @Router /api/v1/permissions [get]
func (h *PermissionHandler) GetEffective(ctx *fasthttp.RequestCtx) {
	userID := string(ctx.Request.Header.Peek("X-User-ID"))
	if userID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing user", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	permissions := h.uc.GetEffectivePermissions(stdCtx, userID)
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"user_id":     userID,
		"permissions": permissions,
		"count":       len(permissions),
	})
}
