package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/http/middleware"
	"backend/internal/repositories"
	"backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Phone             string `json:"phone"`
	PreferredLanguage string `json:"preferred_language"`
}

// Register creates a customer account. Role is always customer here; admin
// accounts are provisioned manually.
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") || len(email) > 255 {
		RespondDomainError(c, domain.ValidationError{Field: "email", Msg: "format email tidak valid"})
		return
	}
	if len(req.Password) < 6 {
		RespondDomainError(c, domain.ValidationError{Field: "password", Msg: "minimal 6 karakter"})
		return
	}
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	if firstName == "" || lastName == "" {
		RespondDomainError(c, domain.ValidationError{Field: "first_name", Msg: "nama depan dan belakang wajib diisi"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "gagal memproses password", Err: err})
		return
	}

	lang := strings.TrimSpace(req.PreferredLanguage)
	if lang == "" {
		lang = "en"
	}

	repo := repositories.UserRepository{}
	user := models.User{
		Email:             email,
		PasswordHash:      string(hash),
		FirstName:         firstName,
		LastName:          lastName,
		Phone:             strings.TrimSpace(req.Phone),
		Role:              models.RoleCustomer,
		PreferredLanguage: lang,
		IsActive:          true,
	}
	id, err := repo.Create(user)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	created, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "register", "user_id="+strconv.FormatInt(id, 10)+" email="+email)
	c.JSON(http.StatusCreated, gin.H{"user": created})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and issues a 24h JWT.
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		RespondDomainError(c, domain.ValidationError{Field: "email", Msg: "email dan password wajib diisi"})
		return
	}

	repo := repositories.UserRepository{}
	user, err := repo.GetByEmail(email)
	if err != nil {
		if domain.IsNotFound(err) {
			respondError(c, http.StatusUnauthorized, "unauthorized", "email atau password salah", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}
	if !user.IsActive {
		respondError(c, http.StatusUnauthorized, "unauthorized", "akun dinonaktifkan", nil)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		respondError(c, http.StatusUnauthorized, "unauthorized", "email atau password salah", nil)
		return
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"iat":     now.Unix(),
		"exp":     now.Add(24 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "gagal membuat token", Err: err})
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "login", "email="+email)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Me returns the authenticated user's profile.
func Me(c *gin.Context) {
	userID := middleware.GetUserID(c)
	repo := repositories.UserRepository{}
	user, err := repo.GetByID(userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
