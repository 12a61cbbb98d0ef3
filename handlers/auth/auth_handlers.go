package auth

import (
	"api/config"
	"api/database"
	"api/middleware"
	"api/models"
	"api/utils"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// setCookieToken sets the session token as a secure HTTP-only cookie
func setCookieToken(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		config.AuthCookieName,
		token,
		int(config.TokenTTL.Seconds()),
		"/",
		"",
		true, // secure (HTTPS only)
		true, // httpOnly (not accessible via JavaScript)
	)
}

func authResponse(user *models.User) AuthResponse {
	return AuthResponse{
		UserID:        user.ID,
		Email:         user.Email,
		Firstname:     user.Firstname,
		Lastname:      user.Lastname,
		Role:          user.Role,
		LastConnected: user.LastConnected,
	}
}

// Login authenticates a user and sets the session cookie
// @Summary Login a user
// @Description Authenticate with email and password, receive a session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param login body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidCredentials})
		return
	}
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidCredentials})
		return
	}

	token, err := middleware.IssueToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrTokenGenerateFailed})
		return
	}

	now := time.Now()
	user.LastConnected = &now
	database.DB.Model(&user).Update("last_connected", now)

	setCookieToken(c, token)
	c.JSON(http.StatusOK, authResponse(&user))
}

// CheckAuth returns the profile of the authenticated user
// @Summary Check authentication
// @Description Return the currently authenticated user, or 401
// @Tags Auth
// @Produce json
// @Success 200 {object} AuthResponse
// @Failure 401 {object} map[string]string
// @Router /auth/check [get]
// @Security Bearer
func CheckAuth(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	c.JSON(http.StatusOK, authResponse(user))
}

// RegisterUser creates a new user account, restricted to administrators
// @Summary Register a user
// @Description Create a new user account with the given role
// @Tags Auth
// @Accept json
// @Produce json
// @Param register body RegisterRequest true "New user details"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
// @Security Bearer
func RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role: " + req.Role})
		return
	}

	var count int64
	database.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": ErrEmailInUse})
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrHashPasswordFailed})
		return
	}

	user := models.User{
		Email:     req.Email,
		Password:  hashed,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Role:      req.Role,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrUserCreateFailed})
		return
	}

	c.JSON(http.StatusCreated, authResponse(&user))
}

// Logout clears the session cookie
// @Summary Logout
// @Description Clear the session cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(config.AuthCookieName, "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"message": MsgLogoutSuccess})
}
