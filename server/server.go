package server

import (
	"backend/api/files"
	"backend/api/folders"
	"backend/api/permissions"
	"backend/api/user"
	"backend/database"
	"fmt"
	"log"
	"net/http"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ServerStatus string = "unknown"

func CreateUser(
	DB *gorm.DB,
	username string,
	password string,
	isAdminUser bool,
) (error, *database.User) {
	log.Println("Creating root user")
	// first chaeck if that user already exists
	var user database.User
	q := DB.First(&user, "email = ?", username)

	if q.Error != nil {
		if q.Error.Error() != "record not found" {
			log.Fatal(q.Error)
			return fmt.Errorf("Error reading user from db"), nil
		}
	} else {
		log.Println("User already exists")
		return nil, &user
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		log.Fatal(err)
	}

	role := "user"
	if isAdminUser {
		role = "admin"
	}

	user = database.User{
		Name:         username,
		Email:        username,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}

	q = DB.Create(&user)

	if q.Error != nil {
		log.Fatal(q.Error)
		return fmt.Errorf("Error writing user to db"), nil
	}

	return nil, &user
}

func CreateRootUser(DB *gorm.DB, username string, password string) (error, *database.User) {
	return CreateUser(DB, username, password, true)
}

func BackendServer(
	DB *gorm.DB,
	userHandler *user.UserHandler,
	filesHandler *files.FilesHandler,
	foldersHandler *folders.FoldersHandler,
	permissionsHandler *permissions.PermissionsHandler,
	host string,
	port int64,
	debug bool,
	ssl bool,
) (*http.Server, string) {
	var protocol string
	var fullHost string

	router := BackendRouting(DB, userHandler, filesHandler, foldersHandler, permissionsHandler, debug)
	if ssl {
		protocol = "https"
	} else {
		protocol = "http"
	}

	fullHost = fmt.Sprintf("%s://%s:%d", protocol, host, port)

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", host, port),
		Handler: router,
	}

	return server, fullHost
}
