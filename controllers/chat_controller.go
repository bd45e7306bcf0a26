package controllers

import (
	"net/http"

	"github.com/Lokavishruth/siftclub/services"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	ai services.Completer
}

func NewChatController(ai services.Completer) *ChatController {
	return &ChatController{ai: ai}
}

// POST /chat  { "prompt": "..." }
// Passes a caller-built prompt straight to the completion service. Ingredient
// resolution is not involved here.
func (ct *ChatController) Chat(c *gin.Context) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No prompt provided."})
		return
	}

	answer, err := ct.ai.Complete(c.Request.Context(), req.Prompt)
	if err != nil {
		status, msg := services.Dispatch(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": answer})
}
