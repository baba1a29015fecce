package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/centsible/backend/internal/auth"
	"github.com/centsible/backend/internal/httperror"
	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
	"github.com/gin-gonic/gin"
)

var errPasswordTooShort = errors.New("the password must be at least 8 characters long")

// RegisterAuthRoutes registers the authentication routes. The "me" route
// is attached separately since it requires the authentication middleware.
func RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsAuth)
	r.POST("/register", Register)
	r.POST("/login", Login)
}

// RegisterSessionRoutes registers the routes that require an
// authenticated session.
func RegisterSessionRoutes(r *gin.RouterGroup) {
	r.GET("/me", GetMe)
}

type RegisterRequest struct {
	Name     string `json:"name" example:"Jane Doe"`                // Name of the user
	Email    string `json:"email" example:"jane.doe@example.com"`   // Email address used for login
	Password string `json:"password" example:"correct-horse-batt"` // Cleartext password, stored as a bcrypt hash
}

type LoginRequest struct {
	Email    string `json:"email" example:"jane.doe@example.com"`   // Email address used for login
	Password string `json:"password" example:"correct-horse-batt"` // Cleartext password
}

type User struct {
	models.DefaultModel
	Name  string `json:"name" example:"Jane Doe"`              // Name of the user
	Email string `json:"email" example:"jane.doe@example.com"` // Email address used for login
}

type Session struct {
	Token     string    `json:"token"`                                      // Bearer token for the Authorization header
	ExpiresAt time.Time `json:"expiresAt" example:"2026-01-02T15:04:05Z"`   // Time the token expires at
	User      User      `json:"user"`                                       // The user the session belongs to
}

type SessionResponse struct {
	Data Session `json:"data"` // The created session
}

type UserResponse struct {
	Data User `json:"data"` // The authenticated user
}

func newUser(model models.User) User {
	return User{
		DefaultModel: model.DefaultModel,
		Name:         model.Name,
		Email:        model.Email,
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Router			/v1/auth [options]
func OptionsAuth(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Register user
// @Description	Creates a new user and returns a session for it
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		201		{object}	SessionResponse
// @Failure		400		{object}	httperror.Error
// @Failure		500		{object}	httperror.Error
// @Param			user	body		RegisterRequest	true	"User"
// @Router			/v1/auth/register [post]
func Register(c *gin.Context) {
	var request RegisterRequest

	err := httputil.BindData(c, &request)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	if len(request.Password) < 8 {
		c.JSON(http.StatusBadRequest, httperror.New(errPasswordTooShort))
		return
	}

	hash, err := auth.HashPassword(request.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httperror.New(err))
		return
	}

	user := models.User{
		Name:         request.Name,
		Email:        request.Email,
		PasswordHash: hash,
	}

	err = models.DB.Create(&user).Error
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	token, expiresAt, err := auth.CreateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httperror.New(err))
		return
	}

	c.JSON(http.StatusCreated, SessionResponse{
		Data: Session{
			Token:     token,
			ExpiresAt: expiresAt,
			User:      newUser(user),
		},
	})
}

// @Summary		Log in
// @Description	Verifies the credentials and returns a session token
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200			{object}	SessionResponse
// @Failure		400			{object}	httperror.Error
// @Failure		401			{object}	httperror.Error
// @Param			credentials	body		LoginRequest	true	"Credentials"
// @Router			/v1/auth/login [post]
func Login(c *gin.Context) {
	var request LoginRequest

	err := httputil.BindData(c, &request)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	user, err := models.UserByEmail(models.DB, request.Email)
	if err != nil {
		// Same response as for a wrong password so that the endpoint
		// does not leak which accounts exist
		c.JSON(http.StatusUnauthorized, httperror.New(auth.ErrInvalidCredentials))
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, request.Password); err != nil {
		c.JSON(http.StatusUnauthorized, httperror.New(err))
		return
	}

	if !user.Active {
		c.JSON(http.StatusUnauthorized, httperror.New(models.ErrUserInactive))
		return
	}

	token, expiresAt, err := auth.CreateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httperror.New(err))
		return
	}

	c.JSON(http.StatusOK, SessionResponse{
		Data: Session{
			Token:     token,
			ExpiresAt: expiresAt,
			User:      newUser(user),
		},
	})
}

// @Summary		Authenticated user
// @Description	Returns the user the session token belongs to
// @Tags			Auth
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		401	{object}	httperror.Error
// @Router			/v1/auth/me [get]
func GetMe(c *gin.Context) {
	var user models.User
	err := models.DB.First(&user, userID(c)).Error
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	c.JSON(http.StatusOK, UserResponse{Data: newUser(user)})
}
