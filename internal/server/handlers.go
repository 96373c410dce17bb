package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/chat"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/intent"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/models"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/usage"
)

// doneSentinel terminates every answer stream, whatever served it.
const doneSentinel = "[DONE]"

// Handlers contains all dependencies for API endpoint handlers
type Handlers struct {
	Pipeline   *chat.Pipeline // Full request-time decision pipeline
	Ledger     *usage.Ledger  // Daily quota counter
	AdminToken string         // Credential that bypasses the quota
	DevMode    bool           // Enable detailed error responses in development
	Logger     *logrus.Logger // Structured logger
}

// err returns a standardized JSON error response
// In dev mode, includes additional error details for debugging
func (h *Handlers) err(c echo.Context, code int, msg string, details any) error {
	resp := ErrorResponse{Error: msg, Code: code}
	if h.DevMode && details != nil {
		resp.Details = details
	}
	return c.JSON(code, resp)
}

// Health returns a simple health check endpoint
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{OK: true})
}

// Presets returns the static market-view preset catalog
func (h *Handlers) Presets(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"items": intent.Catalog})
}

// isAdmin checks the administrative credential header.
func (h *Handlers) isAdmin(c echo.Context) bool {
	return h.AdminToken != "" && c.Request().Header.Get("X-Admin-Token") == h.AdminToken
}

// Chat runs one conversational turn and streams the answer as server-sent
// events terminated by the [DONE] sentinel. A usage_check action short-
// circuits to a quota report without touching the pipeline.
func (h *Handlers) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid json", nil)
	}

	identity := c.RealIP()
	isAdmin := h.isAdmin(c)

	if req.Action == "usage_check" {
		remaining, err := h.Ledger.Remaining(c.Request().Context(), identity, isAdmin)
		if err != nil {
			return h.err(c, http.StatusInternalServerError, "failed to read usage", nil)
		}
		return c.JSON(http.StatusOK, UsageResponse{Remaining: remaining, IsAdmin: isAdmin})
	}

	if len(req.Messages) == 0 {
		return h.err(c, http.StatusBadRequest, "messages are required", map[string]any{"messages": "required"})
	}
	if strings.TrimSpace(models.LastUserMessage(req.Messages)) == "" {
		return h.err(c, http.StatusBadRequest, "a user message is required", map[string]any{"messages": "no user content"})
	}

	if err := h.Ledger.Allow(c.Request().Context(), identity, isAdmin); err != nil {
		if err == usage.ErrQuotaExceeded {
			reset := h.Ledger.ResetTime()
			return h.err(c, http.StatusTooManyRequests,
				fmt.Sprintf("daily chat limit reached, resets %s", reset.Format("Jan 2 15:04 MST")), nil)
		}
		return h.err(c, http.StatusInternalServerError, "failed to check usage", nil)
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	result := h.Pipeline.Run(c.Request().Context(), chat.TurnInput{
		SessionID: sessionID,
		Identity:  identity,
		IsAdmin:   isAdmin,
		Messages:  req.Messages,
	})

	// Forward fragments as they arrive; never buffer the full answer.
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("X-Session-Id", sessionID)
	res.WriteHeader(http.StatusOK)
	res.Flush()

	for fragment := range result.Stream {
		payload, err := json.Marshal(fragment)
		if err != nil {
			h.Logger.WithError(err).Error("failed to marshal fragment")
			continue
		}
		if _, err := fmt.Fprintf(res, "data: %s\n\n", payload); err != nil {
			h.Logger.WithError(err).Debug("client went away mid-stream")
			break
		}
		res.Flush()
	}

	fmt.Fprintf(res, "data: %s\n\n", doneSentinel)
	res.Flush()

	// Detached: persistence and the usage entry never delay the stream.
	result.Finish()
	return nil
}
