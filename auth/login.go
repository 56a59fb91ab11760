package auth

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"cakepoint/globals"
	"cakepoint/middleware"
	"cakepoint/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

// Login authenticates the single store admin. Credentials come from the
// environment: ADMIN_USERNAME and a bcrypt ADMIN_PASSWORD_HASH. There is
// no user collection; this store has exactly one operator.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	adminUser := os.Getenv("ADMIN_USERNAME")
	adminHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminUser == "" || adminHash == "" {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Admin login is not configured")
		return
	}

	if input.Username != adminUser {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(adminHash), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	claims := &middleware.Claims{
		Username: adminUser,
		UserID:   "admin",
		Role:     []string{"admin"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(globals.JwtSecret)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"token":    tokenString,
		"username": adminUser,
	})
}
