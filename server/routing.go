package server

import (
	"backend/api/files"
	"backend/api/folders"
	"backend/api/permissions"
	"backend/api/user"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

func BackendRouting(
	DB *gorm.DB,
	userHandler *user.UserHandler,
	filesHandler *files.FilesHandler,
	foldersHandler *folders.FoldersHandler,
	permissionsHandler *permissions.PermissionsHandler,
	debug bool,
) *http.ServeMux {
	mux := http.NewServeMux()
	v1PrivateApis := http.NewServeMux()

	v1PrivateApis.HandleFunc("GET /user/self", userHandler.Self)
	v1PrivateApis.HandleFunc("POST /user/logout", userHandler.Logout)

	v1PrivateApis.HandleFunc("POST /files/upload", filesHandler.Upload)
	v1PrivateApis.HandleFunc("GET /files/list", filesHandler.List)
	v1PrivateApis.HandleFunc("GET /files/search", filesHandler.Search)
	v1PrivateApis.HandleFunc("POST /files/zip", filesHandler.DownloadZip)
	v1PrivateApis.HandleFunc("POST /files/delete", filesHandler.BulkDelete)
	v1PrivateApis.HandleFunc("DELETE /files/shares/{token}", filesHandler.RevokeShare)
	v1PrivateApis.HandleFunc("GET /files/{file_uuid}", filesHandler.Download)
	v1PrivateApis.HandleFunc("POST /files/{file_uuid}/share", filesHandler.Share)
	v1PrivateApis.HandleFunc("POST /files/{file_uuid}/analyze", filesHandler.Analyze)

	v1PrivateApis.HandleFunc("POST /folders/create", foldersHandler.Create)
	v1PrivateApis.HandleFunc("GET /folders/list", foldersHandler.List)
	v1PrivateApis.HandleFunc("DELETE /folders/{folder_uuid}", foldersHandler.Delete)
	v1PrivateApis.HandleFunc("POST /folders/{folder_uuid}/move", foldersHandler.Move)

	v1PrivateApis.HandleFunc("POST /permissions/grant", permissionsHandler.Grant)
	v1PrivateApis.HandleFunc("POST /permissions/revoke", permissionsHandler.Revoke)
	v1PrivateApis.HandleFunc("GET /permissions/{file_uuid}", permissionsHandler.List)

	publicChain := CreateStack(Logging, DatabaseMiddleware(DB))
	mux.Handle("POST /api/v1/user/login", publicChain(http.HandlerFunc(userHandler.Login)))
	mux.Handle("POST /api/v1/user/register", publicChain(http.HandlerFunc(userHandler.Register)))
	mux.Handle("GET /public/{token}", publicChain(http.HandlerFunc(filesHandler.PublicDownload)))
	mux.HandleFunc("GET /_health", func(w http.ResponseWriter, r *http.Request) {
		if ServerStatus != "running" {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(fmt.Sprintf("Server is not running, status: %s", ServerStatus)))
		} else {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("Server is running"))
		}
	})
	privateChain := CreateStack(Logging, AuthMiddleware(DB))
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", privateChain(v1PrivateApis)))

	return mux
}
