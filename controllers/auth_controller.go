package controllers

import (
	"net/http"

	"github.com/admsdev98/NutriOrxata/middlewares"
	"github.com/admsdev98/NutriOrxata/services"

	"github.com/gin-gonic/gin"
)

func abortServiceError(c *gin.Context, err *services.ServiceError) {
	c.JSON(err.Status, gin.H{"error": err.Code})
}

type registerInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	result, serviceErr := services.RegisterWorker(input.Email, input.Password)
	if serviceErr != nil {
		abortServiceError(c, serviceErr)
		return
	}

	resp := gin.H{"status": "ok"}
	if result.DevVerifyToken != "" {
		resp["dev_verify_token"] = result.DevVerifyToken
	}
	c.JSON(http.StatusOK, resp)
}

type verifyEmailInput struct {
	Token string `json:"token" binding:"required"`
}

func VerifyEmail(c *gin.Context) {
	var input verifyEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	if serviceErr := services.VerifyEmail(input.Token); serviceErr != nil {
		abortServiceError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// VerifyEmailLink serves link-based verification from email clients.
func VerifyEmailLink(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_token"})
		return
	}

	if serviceErr := services.VerifyEmail(token); serviceErr != nil {
		abortServiceError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	result, serviceErr := services.Login(input.Email, input.Password)
	if serviceErr != nil {
		abortServiceError(c, serviceErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": result.AccessToken,
		"access_mode":  result.AccessMode,
	})
}

func Me(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	result, serviceErr := services.Me(user)
	if serviceErr != nil {
		abortServiceError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, result)
}
