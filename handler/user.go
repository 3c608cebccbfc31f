package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Mayen007/qrgen/auth"
	"github.com/Mayen007/qrgen/middleware"
	"github.com/Mayen007/qrgen/model"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

func userKey(id string) string     { return "user:" + id }
func emailKey(email string) string { return "user:email:" + email }

// UserHandler handles user registration and authentication
type UserHandler struct {
	redis      *redis.Client
	jwtManager *auth.JWTManager
}

// NewUserHandler creates a new user handler
func NewUserHandler(rdb *redis.Client, jwtManager *auth.JWTManager) *UserHandler {
	return &UserHandler{
		redis:      rdb,
		jwtManager: jwtManager,
	}
}

// Register handles POST /api/auth/register
// @Summary Register a new user
// @Description Register with email and password, returns tokens on success
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Registration data"
// @Success 201 {object} model.LoginResponse "Tokens and user"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 409 {object} ErrorResponse "Email already exists"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/auth/register [post]
func (uh *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendJSONError(w, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		SendJSONError(w, http.StatusBadRequest, errors.New("invalid email"), "Please provide a valid email address")
		return
	}

	if len(req.Password) < 8 {
		SendJSONError(w, http.StatusBadRequest, errors.New("weak password"), "Password must be at least 8 characters")
		return
	}

	// Check if email already exists
	_, err := uh.redis.Get(ctx, emailKey(req.Email)).Result()
	if err == nil {
		SendJSONError(w, http.StatusConflict, errors.New("email exists"), "An account with this email already exists. Please login.")
		return
	} else if err != redis.Nil {
		log.Error().Err(err).Msg("Failed to check email existence")
		SendJSONError(w, http.StatusInternalServerError, err, "Failed to process registration")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("Failed to hash password")
		SendJSONError(w, http.StatusInternalServerError, err, "Failed to process registration")
		return
	}

	user := model.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		Active:       true,
	}

	userJSON, err := json.Marshal(user)
	if err != nil {
		SendJSONError(w, http.StatusInternalServerError, err, "Failed to process registration")
		return
	}
	if err := uh.redis.Set(ctx, userKey(user.ID), userJSON, 0).Err(); err != nil {
		log.Error().Err(err).Msg("Failed to store user")
		SendJSONError(w, http.StatusInternalServerError, err, "Failed to process registration")
		return
	}
	if err := uh.redis.Set(ctx, emailKey(user.Email), user.ID, 0).Err(); err != nil {
		log.Error().Err(err).Msg("Failed to store email index")
		SendJSONError(w, http.StatusInternalServerError, err, "Failed to process registration")
		return
	}

	log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("User registered")
	uh.sendTokens(w, http.StatusCreated, &user)
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Authenticate with email and password, returns access and refresh tokens
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Credentials"
// @Success 200 {object} model.LoginResponse "Tokens and user"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 401 {object} ErrorResponse "Wrong credentials or inactive account"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/auth/login [post]
func (uh *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendJSONError(w, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := uh.loadUserByEmail(ctx, req.Email)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load user for login")
		SendJSONError(w, http.StatusInternalServerError, err, "Failed to process login")
		return
	}
	if user == nil {
		SendJSONError(w, http.StatusUnauthorized, errors.New("invalid credentials"), "Wrong email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn().Str("email", req.Email).Msg("Failed login attempt")
		SendJSONError(w, http.StatusUnauthorized, errors.New("invalid credentials"), "Wrong email or password")
		return
	}

	if !user.Active {
		SendJSONError(w, http.StatusUnauthorized, errors.New("account disabled"), "This account has been disabled")
		return
	}

	user.LastLoginAt = time.Now()
	if userJSON, err := json.Marshal(user); err == nil {
		uh.redis.Set(ctx, userKey(user.ID), userJSON, 0)
	}

	log.Info().Str("user_id", user.ID).Msg("User logged in")
	uh.sendTokens(w, http.StatusOK, user)
}

// Me handles GET /api/user
// @Summary Current user
// @Description Returns the authenticated user's profile
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} model.UserResponse "User profile"
// @Failure 401 {object} ErrorResponse "Not authenticated"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/user [get]
func (uh *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := middleware.GetUserID(r)
	if userID == "" {
		SendJSONError(w, http.StatusUnauthorized, errors.New("unauthorized"), "Authentication required")
		return
	}

	user, err := uh.loadUser(ctx, userID)
	if err != nil {
		SendJSONError(w, http.StatusInternalServerError, err, "Failed to load user")
		return
	}
	if user == nil {
		SendJSONError(w, http.StatusUnauthorized, errors.New("unknown user"), "Account no longer exists")
		return
	}

	SendJSONSuccess(w, http.StatusOK, user.ToResponse())
}

func (uh *UserHandler) loadUser(ctx context.Context, id string) (*model.User, error) {
	data, err := uh.redis.Get(ctx, userKey(id)).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (uh *UserHandler) loadUserByEmail(ctx context.Context, email string) (*model.User, error) {
	id, err := uh.redis.Get(ctx, emailKey(email)).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return uh.loadUser(ctx, id)
}

func (uh *UserHandler) sendTokens(w http.ResponseWriter, status int, user *model.User) {
	accessToken, err := uh.jwtManager.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		log.Error().Err(err).Msg("Failed to sign access token")
		SendJSONError(w, http.StatusInternalServerError, err, "Failed to issue tokens")
		return
	}
	refreshToken, err := uh.jwtManager.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		log.Error().Err(err).Msg("Failed to sign refresh token")
		SendJSONError(w, http.StatusInternalServerError, err, "Failed to issue tokens")
		return
	}

	SendJSONSuccess(w, status, model.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.ToResponse(),
	})
}
