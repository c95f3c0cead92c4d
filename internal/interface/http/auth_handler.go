package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/skillmate/skillmate-api/internal/application"
	"github.com/skillmate/skillmate-api/pkg/helpers"
	"github.com/skillmate/skillmate-api/pkg/response"
	"github.com/skillmate/skillmate-api/pkg/validation"
)

type AuthHandler struct {
	Accounts *application.AccountService
	Cookies  *helpers.CookieManager
	RDB      *redis.Client
	Logger   *logrus.Logger
}

func NewAuthHandler(accounts *application.AccountService, cookies *helpers.CookieManager, rdb *redis.Client, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Accounts: accounts, Cookies: cookies, RDB: rdb, Logger: logger}
}

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Name     string `json:"name" binding:"required"`
	Avatar   string `json:"avatar" binding:"omitempty,url"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type authResponse struct {
	AccountID    string `json:"account_id"`
	Name         string `json:"name"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Accounts.Signup(c.Request.Context(), application.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Avatar:   req.Avatar,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	h.Cookies.SetPair(c, res.Tokens.AccessToken, res.Tokens.AccessTokenExpiry, res.Tokens.RefreshToken, res.Tokens.RefreshTokenExpiry)
	response.Success(c, http.StatusCreated, authResponse{
		AccountID:    res.AccountID,
		Name:         res.Name,
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
	}, "account created", nil)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeErr(c, err)
		return
	}
	h.Cookies.SetPair(c, res.Tokens.AccessToken, res.Tokens.AccessTokenExpiry, res.Tokens.RefreshToken, res.Tokens.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, authResponse{
		AccountID:    res.AccountID,
		Name:         res.Name,
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
	}, "login successful", nil)
}

// Refresh POST /api/auth/refresh
// The token is read from the cookie, with a JSON body fallback for API
// clients that do not carry cookies.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, _ := c.Cookie("refresh_token")
	if token == "" {
		var req refreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			token = req.RefreshToken
		}
	}
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	res, err := h.Accounts.Refresh(c.Request.Context(), token)
	if err != nil {
		writeErr(c, err)
		return
	}
	h.Cookies.SetPair(c, res.Tokens.AccessToken, res.Tokens.AccessTokenExpiry, res.Tokens.RefreshToken, res.Tokens.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, authResponse{
		AccountID:    res.AccountID,
		Name:         res.Name,
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
	}, "token refreshed", nil)
}

// Logout POST /api/auth/logout (auth required)
func (h *AuthHandler) Logout(c *gin.Context) {
	if uid := c.GetString("accountID"); uid != "" && h.RDB != nil {
		if err := h.RDB.Del(c.Request.Context(), "account:session:"+uid).Err(); err != nil && h.Logger != nil {
			h.Logger.WithError(err).WithField("account_id", uid).Warn("session delete failed")
		}
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, nil, "logged out", nil)
}
