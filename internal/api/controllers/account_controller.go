package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zenjourney/internal/models/request_models"
	"zenjourney/internal/services"
	"zenjourney/internal/web"
	"zenjourney/pkg/middleware"
	"zenjourney/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
	renderer       *web.Renderer
	limiter        *middleware.RateLimiter
	sessionTTL     int
	secureCookies  bool
	log            *zap.Logger
}

func NewAccountController(
	accountService services.AccountServiceInterface,
	renderer *web.Renderer,
	limiter *middleware.RateLimiter,
	sessionTTLSeconds int,
	secureCookies bool,
	log *zap.Logger,
) *AccountController {
	return &AccountController{
		accountService: accountService,
		renderer:       renderer,
		limiter:        limiter,
		sessionTTL:     sessionTTLSeconds,
		secureCookies:  secureCookies,
		log:            log,
	}
}

func (a *AccountController) LoginPage(c *gin.Context) {
	if middleware.CurrentIdentity(c) != nil {
		c.Redirect(http.StatusSeeOther, middleware.SafeNext(c.Query("next")))
		return
	}
	a.renderer.Render(c, http.StatusOK, "login.html", web.PageData{
		Title: "Login",
		Data:  request_models.LoginRequest{Next: c.Query("next")},
	})
}

func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		a.renderLogin(c, http.StatusBadRequest, req, "Please enter a valid email address and password")
		return
	}

	if a.limiter != nil && !a.limiter.Allow(c.ClientIP()) {
		a.renderLogin(c, http.StatusTooManyRequests, req, "Too many login attempts. Please wait a minute and try again.")
		return
	}

	token, _, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrAccountNotFound), errors.Is(err, utils.ErrInvalidCredentials):
			a.renderLogin(c, http.StatusUnauthorized, req, "Invalid email or password")
		default:
			a.log.Error("login failed", zap.String("trace_id", utils.TraceID(c)), zap.Error(err))
			a.renderLogin(c, http.StatusInternalServerError, req, "Failed to log in. Please try again.")
		}
		return
	}

	middleware.SetSessionCookie(c, token, a.sessionTTL, a.secureCookies)
	c.Redirect(http.StatusSeeOther, middleware.SafeNext(req.Next))
}

func (a *AccountController) renderLogin(c *gin.Context, status int, req request_models.LoginRequest, message string) {
	req.Password = ""
	a.renderer.Render(c, status, "login.html", web.PageData{
		Title: "Login",
		Flash: &web.Flash{Type: "error", Message: message},
		Data:  req,
	})
}

func (a *AccountController) RegisterPage(c *gin.Context) {
	a.renderer.Render(c, http.StatusOK, "register.html", web.PageData{
		Title: "Register",
		Data:  request_models.SignUpRequest{},
	})
}

func (a *AccountController) Register(c *gin.Context) {
	var req request_models.SignUpRequest
	if err := c.ShouldBind(&req); err != nil {
		a.renderRegister(c, http.StatusBadRequest, req, "Please enter a valid email and a password of at least 6 characters")
		return
	}

	if _, err := a.accountService.CreateAccount(c.Request.Context(), req); err != nil {
		if errors.Is(err, utils.ErrEmailAlreadyExists) {
			a.renderRegister(c, http.StatusConflict, req, "An account with this email already exists")
			return
		}
		a.log.Error("register failed", zap.String("trace_id", utils.TraceID(c)), zap.Error(err))
		a.renderRegister(c, http.StatusInternalServerError, req, "Failed to create account. Please try again.")
		return
	}

	token, _, err := a.accountService.Login(c.Request.Context(), request_models.LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	middleware.SetSessionCookie(c, token, a.sessionTTL, a.secureCookies)
	c.Redirect(http.StatusSeeOther, "/")
}

func (a *AccountController) renderRegister(c *gin.Context, status int, req request_models.SignUpRequest, message string) {
	req.Password = ""
	a.renderer.Render(c, status, "register.html", web.PageData{
		Title: "Register",
		Flash: &web.Flash{Type: "error", Message: message},
		Data:  req,
	})
}

func (a *AccountController) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, a.secureCookies)
	c.Redirect(http.StatusSeeOther, "/")
}

// Verify godoc
// @Summary Verify the session cookie
// @Description Returns the signed-in user, or 401 when the session is missing or invalid
// @Tags Auth
// @Produce json
// @Success 200 {object} response_models.VerifyResponse
// @Failure 401 {object} utils.APIResponse
// @Router /api/auth/verify [get]
func (a *AccountController) Verify(c *gin.Context) {
	res, err := a.accountService.Verify(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		if errors.Is(err, utils.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
			return
		}
		utils.HandleServiceError(c, a.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
