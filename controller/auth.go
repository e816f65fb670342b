package controller

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/RayyanKhan4004/PEMPAK-api/apperror"
	"github.com/RayyanKhan4004/PEMPAK-api/database"
	"github.com/RayyanKhan4004/PEMPAK-api/models"
	"github.com/RayyanKhan4004/PEMPAK-api/utils"
)

type AuthController struct {
	DB        database.Database
	JWTSecret string
}

func NewAuthController(db database.Database, jwtSecret string) *AuthController {
	return &AuthController{DB: db, JWTSecret: jwtSecret}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (ac *AuthController) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.New(apperror.Validation, "name, email and password are required"))
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(c, apperror.New(apperror.Validation, "name, email and password are required"))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	collection := ac.DB.Collection("users")

	count, err := collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Registration failed", err))
		return
	}
	if count > 0 {
		respondError(c, apperror.New(apperror.Duplicate, "Email already registered"))
		return
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Registration failed", err))
		return
	}

	now := time.Now()
	user := models.User{
		ID:           bson.NewObjectID(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := collection.InsertOne(ctx, user); err != nil {
		// The unique index can still fire on a concurrent register.
		if mongo.IsDuplicateKeyError(err) {
			respondError(c, apperror.New(apperror.Duplicate, "Email already registered"))
			return
		}
		respondError(c, apperror.Wrap(apperror.Internal, "Registration failed", err))
		return
	}

	token, err := utils.SignedToken(ac.JWTSecret, user.ID.Hex(), user.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token})
}

func (ac *AuthController) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.New(apperror.Validation, "Email and password are required"))
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(c, apperror.New(apperror.Validation, "Email and password are required"))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	err := ac.DB.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Unknown email and wrong password produce the same answer.
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}
	if err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Login failed", err))
		return
	}

	if err := utils.VerifyPassword(req.Password, user.PasswordHash); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := utils.SignedToken(ac.JWTSecret, user.ID.Hex(), user.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Me returns the identity baked into the presented token.
func (ac *AuthController) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id": c.GetString("user_id"),
		"email":   c.GetString("email"),
	})
}
