package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitcore/gym-api/internal/dto"
	"github.com/fitcore/gym-api/internal/model"
	"github.com/fitcore/gym-api/internal/service"
)

type ContactHandler struct {
	svc *service.ContactService
}

func NewContactHandler(svc *service.ContactService) *ContactHandler {
	return &ContactHandler{svc: svc}
}

func (h *ContactHandler) Create(c *gin.Context) {
	var req dto.CreateContactMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	msg, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, toContactResponse(msg))
}

func (h *ContactHandler) List(c *gin.Context) {
	msgs, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	resp := make([]dto.ContactMessageResponse, 0, len(msgs))
	for i := range msgs {
		resp = append(resp, toContactResponse(&msgs[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func toContactResponse(m *model.ContactMessage) dto.ContactMessageResponse {
	return dto.ContactMessageResponse{
		ID: m.ID, Name: m.Name, Email: m.Email,
		Subject: m.Subject, Message: m.Message, CreatedAt: m.CreatedAt,
	}
}
