package user

import (
	"backend/api"
	"backend/database"
	"backend/server/util"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

type UserLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// curl -X POST -H "Content-Type: application/json" -d '{"email":"alice@example.com","password":"password"}' http://localhost:1984/api/v1/user/login -v

// Login a user
//
//	@Summary      Login a user
//	@Description  Authenticate and login a user with email and password
//	@Tags         accounts
//	@Accept       json
//	@Produce      json
//	@Param        request body UserLogin true "Login credentials"
//	@Success      200  {object}  map[string]string "Session token"
//	@Failure      400  {string}  string "Invalid JSON"
//	@Failure      401  {string}  string "Invalid password"
//	@Failure      404  {string}  string "User not found"
//	@Router       /api/v1/user/login [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var data UserLogin

	DB, err := util.GetDB(r)
	if err != nil {
		http.Error(w, "Unable to get database", http.StatusInternalServerError)
		return
	}

	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if data.Password == "" {
		http.Error(w, "Invalid password", http.StatusUnauthorized)
		return
	}

	expiry := time.Now().Add(24 * time.Hour)
	token := api.GenerateToken(data.Email)

	_, err = database.LoginUser(DB, data.Email, data.Password, token, expiry)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Invalid password", http.StatusUnauthorized)
		return
	}

	cookie := api.CreateSessionToken(w, r, h.CookieDomain, token, expiry)
	http.SetCookie(w, cookie)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}
