package database

import (
	"errors"
	"net/mail"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrEmailInUse = errors.New("email already in use")
var ErrInvalidCredentials = errors.New("invalid password")
var ErrUserNotFound = errors.New("user not found")

type User struct {
	Model
	Name         string `json:"name"`
	Email        string `json:"email" gorm:"unique"`
	PasswordHash string `json:"-"`
	Role         string `json:"role" gorm:"default:'user'"`
}

func RegisterUser(
	DB *gorm.DB,
	name string,
	email string,
	password []byte,
) (*User, error) {
	_, err := mail.ParseAddress(email)
	if err != nil {
		return nil, err
	}

	var existing User
	q := DB.First(&existing, "email = ?", email)
	if q.Error == nil {
		return nil, ErrEmailInUse
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var user User = User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	r := DB.Create(&user)

	if r.Error != nil {
		return nil, r.Error
	}

	return &user, nil
}

// LoginUser verifies the credentials and opens a new session for the user.
// The returned token is the session bearer credential.
func LoginUser(
	DB *gorm.DB,
	email string,
	password string,
	token string,
	expiry time.Time,
) (*User, error) {
	var user User
	q := DB.First(&user, "email = ?", email)
	if q.Error != nil {
		return nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	session := Session{
		UserId: user.ID,
		Token:  token,
		Expiry: expiry,
	}

	if r := DB.Create(&session); r.Error != nil {
		return nil, r.Error
	}

	return &user, nil
}
