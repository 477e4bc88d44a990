package api

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// userClaims is the token payload accepted by the /user stub. Tokens are issued elsewhere; there is no users table.
type userClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		respondError(w, http.StatusUnauthorized, "no autenticado")
		return
	}
	tokenStr := strings.TrimSpace(header[len("Bearer "):])

	claims := &userClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(h.opts.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		respondError(w, http.StatusUnauthorized, "token inválido")
		return
	}
	respondJSON(w, http.StatusOK, claims)
}
