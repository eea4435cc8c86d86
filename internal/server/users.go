package server

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/maderas/backend/internal/auth/domain"
	"github.com/maderas/backend/internal/ratelimit"
	"go.uber.org/zap"
)

const (
	loginSuccess   = "success"
	loginFailure   = "failure"
	loginThrottled = "throttled"
)

type registerRequest struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Rol      string `json:"rol"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Rol      string `json:"rol"`
	Estado   string `json:"estado"`
}

type listUsersQuery struct {
	Q      string `form:"q"`
	Estado string `form:"estado"`
	Rol    string `form:"rol"`
}

// Register creates an account. Only an admin caller may choose the role.
func (s *Server) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	rol := ""
	if principal, ok := principalFrom(c); ok && principal.IsAdmin() {
		rol = strings.TrimSpace(req.Rol)
	}

	user, err := s.authsvc.Register(c.Request.Context(), authdomain.RegisterRequest{
		Nombre:   strings.TrimSpace(req.Nombre),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
		Rol:      rol,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "usuario", opCreate, user.ID.String(), map[string]any{
		"email": user.Email,
		"rol":   user.Rol,
	})
	c.JSON(http.StatusCreated, gin.H{"message": "Usuario registrado exitosamente", "id": user.ID})
}

func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ctx := c.Request.Context()
	email := strings.TrimSpace(req.Email)

	res, err := s.loginLimiter.Allow(ctx, c.ClientIP())
	if err != nil {
		if errors.Is(err, ratelimit.ErrTooManyRequests) {
			s.obsMetrics.RecordLogin(ctx, loginThrottled)
			c.Set(contextRetryAfterKey, strconv.Itoa(int(math.Ceil(res.RetryAfter.Seconds()))))
		}
		AbortWithError(c, err)
		return
	}

	result, err := s.authsvc.Login(ctx, authdomain.LoginRequest{Email: email, Password: req.Password})
	if err != nil {
		s.obsMetrics.RecordLogin(ctx, loginFailure)
		s.auditLogin(c, "user.login_failed", nil, map[string]any{"email": email})
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordLogin(ctx, loginSuccess)
	userID := result.User.ID.String()
	s.auditLogin(c, "user.login", &userID, map[string]any{"email": email})

	c.JSON(http.StatusOK, result)
}

func (s *Server) auditLogin(c *gin.Context, action string, userID *string, metadata map[string]any) {
	if s.auditSvc == nil {
		return
	}
	if err := s.auditSvc.AuditLog(c.Request.Context(), action, "usuario", userID, metadata); err != nil {
		s.log.Warn("failed to write audit log", zap.String("action", action), zap.Error(err))
	}
}

func (s *Server) ListUsers(c *gin.Context) {
	var query listUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.authsvc.List(c.Request.Context(), authdomain.ListUserRequest{
		Q:      strings.TrimSpace(query.Q),
		Estado: strings.TrimSpace(query.Estado),
		Rol:    strings.TrimSpace(query.Rol),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, resp)
}

func (s *Server) GetUserByID(c *gin.Context) {
	resp, err := s.authsvc.GetByID(c.Request.Context(), param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) UpdateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := param(c, "id")
	user, err := s.authsvc.Update(c.Request.Context(), authdomain.UpdateUserRequest{
		ID:       id,
		Nombre:   strings.TrimSpace(req.Nombre),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
		Rol:      strings.TrimSpace(req.Rol),
		Estado:   strings.TrimSpace(req.Estado),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "usuario", opUpdate, id, map[string]any{
		"rol":              user.Rol,
		"estado":           user.Estado,
		"password_changed": req.Password != "",
	})
	respondMessage(c, "Usuario actualizado correctamente")
}

// DeleteUser deactivates the account.
func (s *Server) DeleteUser(c *gin.Context) {
	id := param(c, "id")
	if err := s.authsvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "usuario", opDelete, id, nil)
	respondMessage(c, "Usuario marcado como inactivo (borrado lógico) correctamente")
}
