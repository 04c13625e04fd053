package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"skywatch/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// handleRegister creates a new user with a bcrypt-hashed password.
// Registration always assigns the "user" role; admins are provisioned
// out of band.
func (a *App) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		errorJSON(w, "Name, email, and password are required", http.StatusBadRequest)
		return
	}
	if len(req.Password) < 6 {
		errorJSON(w, "Password must be at least 6 characters long", http.StatusBadRequest)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		errorJSON(w, "hash error", http.StatusInternalServerError)
		return
	}
	u := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		CreatedAt:    time.Now(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	res, err := a.users.InsertOne(ctx, &u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			errorJSON(w, "User with this email already exists", http.StatusConflict)
			return
		}
		errorJSON(w, "db error", http.StatusInternalServerError)
		return
	}
	u.ID = res.InsertedID.(primitive.ObjectID)

	tok, err := signJWT(a.cfg.JWTSecret, u.ID, u.Role)
	if err != nil {
		errorJSON(w, "jwt error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, authResp{
		Message: "User registered successfully",
		Token:   tok,
		User:    userPayload{ID: u.ID.Hex(), Name: u.Name, Email: u.Email, Role: string(u.Role)},
	})
}

// handleLogin verifies credentials and returns a JWT token.
func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		errorJSON(w, "Email and password are required", http.StatusBadRequest)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var u models.User
	if err := a.users.FindOne(ctx, bson.M{"email": strings.ToLower(req.Email)}).Decode(&u); err != nil {
		errorJSON(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		errorJSON(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	tok, err := signJWT(a.cfg.JWTSecret, u.ID, u.Role)
	if err != nil {
		errorJSON(w, "jwt error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, authResp{
		Message: "Login successful",
		Token:   tok,
		User:    userPayload{ID: u.ID.Hex(), Name: u.Name, Email: u.Email, Role: string(u.Role)},
	})
}

// handleMe returns the current user's profile.
func (a *App) handleMe(w http.ResponseWriter, r *http.Request) {
	ident := mustIdentity(r)
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var u models.User
	if err := a.users.FindOne(ctx, bson.M{"_id": ident.ID}).Decode(&u); err != nil {
		errorJSON(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
