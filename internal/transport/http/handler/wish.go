package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wishify/wishify/internal/authctx"
	"github.com/wishify/wishify/internal/domain"
	"github.com/wishify/wishify/internal/usecase"
)

type wishUsecaser interface {
	Create(ctx context.Context, input usecase.CreateWishInput) (*domain.Wish, error)
	List(ctx context.Context, ownerID string) ([]*domain.Wish, error)
	Delete(ctx context.Context, id, callerID string) error
}

type WishHandler struct {
	wishUsecase wishUsecaser
	logger      *slog.Logger
}

func NewWishHandler(wishUsecase wishUsecaser, logger *slog.Logger) *WishHandler {
	return &WishHandler{
		wishUsecase: wishUsecase,
		logger:      logger.With("component", "wish_handler"),
	}
}

type createWishRequest struct {
	Name     string `json:"name"     binding:"required,max=256"`
	Email    string `json:"email"    binding:"required,email"`
	WishType string `json:"wishType" binding:"omitempty,oneof=Birthday Anniversary Holiday Other"`
	WishDate string `json:"wishDate" binding:"required"`
}

type wishResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	WishType  string     `json:"wishType"`
	WishDate  string     `json:"wishDate"`
	IsSent    bool       `json:"isSent"`
	SentDate  *time.Time `json:"sentDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func toWishResponse(w *domain.Wish) wishResponse {
	return wishResponse{
		ID:        w.ID,
		Name:      w.Name,
		Email:     w.Email,
		WishType:  string(w.Type),
		WishDate:  w.Date.Format("2006-01-02"),
		IsSent:    w.Sent,
		SentDate:  w.SentAt,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// parseWishDate accepts a bare date or a full RFC 3339 timestamp.
func parseWishDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// GET /wishes
func (h *WishHandler) List(c *gin.Context) {
	userID := authctx.UserID(c.Request.Context())

	wishes, err := h.wishUsecase.List(c.Request.Context(), userID)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list wishes", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	resp := make([]wishResponse, 0, len(wishes))
	for _, w := range wishes {
		resp = append(resp, toWishResponse(w))
	}
	c.JSON(http.StatusOK, resp)
}

// POST /wishes
func (h *WishHandler) Create(c *gin.Context) {
	var req createWishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseWishDate(req.WishDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wishDate must be YYYY-MM-DD or RFC 3339"})
		return
	}

	wish, err := h.wishUsecase.Create(c.Request.Context(), usecase.CreateWishInput{
		OwnerID: authctx.UserID(c.Request.Context()),
		Name:    req.Name,
		Email:   req.Email,
		Type:    domain.WishType(req.WishType),
		Date:    date,
	})
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "create wish", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Wish added successfully!",
		"wish":    toWishResponse(wish),
	})
}

// DELETE /wishes/:id
func (h *WishHandler) Delete(c *gin.Context) {
	wishID := c.Param("id")
	userID := authctx.UserID(c.Request.Context())

	if err := h.wishUsecase.Delete(c.Request.Context(), wishID, userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrWishNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errWishNotFound})
		case errors.Is(err, domain.ErrNotWishOwner):
			c.JSON(http.StatusUnauthorized, gin.H{"error": errNotWishOwner})
		default:
			h.logger.ErrorContext(c.Request.Context(), "delete wish", "wish_id", wishID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Wish deleted successfully."})
}
