package test

import (
	"backend/analyzer"
	"backend/api/files"
	"backend/api/folders"
	"backend/api/permissions"
	"backend/api/user"
	"backend/database"
	"backend/server"
	"backend/storage"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"testing"
	"time"
)

// startTestBackend wires a full backend against a throwaway sqlite database
// and a local blob store, with the classifier pointed at a canned
// chat-completions stub.
func startTestBackend(t *testing.T) string {
	t.Helper()

	DB := database.SetupDatabase("sqlite", filepath.Join(t.TempDir(), "test.db"), false)

	blobs, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create blob store: %v", err)
	}

	ai := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{
					"role":    "assistant",
					"content": `{"tags":["stub"],"category":"Notes"}`,
				}},
			},
		})
	}))
	t.Cleanup(ai.Close)

	classifier := analyzer.NewClassifier(ai.URL, "", []string{"stub-model"}, time.Second)

	filesHandler := &files.FilesHandler{
		Blobs:    blobs,
		Analyzer: analyzer.New(blobs, classifier),
	}

	mux := server.BackendRouting(
		DB,
		&user.UserHandler{},
		filesHandler,
		&folders.FoldersHandler{Blobs: blobs},
		&permissions.PermissionsHandler{},
		false,
	)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	filesHandler.PublicBaseURL = ts.URL
	server.ServerStatus = "running"

	return ts.URL
}

func registerUser(host string, data user.UserRegister) error {
	body := new(bytes.Buffer)
	err := json.NewEncoder(body).Encode(data)
	if err != nil {
		log.Printf("Error encoding data: %v", err)
		return err
	}

	resp, err := http.Post(fmt.Sprintf("%s/api/v1/user/register", host), "application/json", body)
	if err != nil {
		log.Printf("Error sending request: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("Error response: %v", resp.Status)
	}

	return nil
}

func loginUser(host string, data user.UserLogin) (error, string) {
	body := new(bytes.Buffer)
	err := json.NewEncoder(body).Encode(data)
	if err != nil {
		log.Printf("Error encoding data: %v", err)
		return err, ""
	}

	resp, err := http.Post(fmt.Sprintf("%s/api/v1/user/login", host), "application/json", body)
	if err != nil {
		log.Printf("Error sending request: %v", err)
		return err, ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Error response: %v", resp.Status), ""
	}

	cookieHeader := resp.Header.Get("Set-Cookie")
	re := regexp.MustCompile(`session_id=([^;]+)`)

	match := re.FindStringSubmatch(cookieHeader)
	if match != nil && len(match) > 1 {
		return nil, match[1]
	}
	return fmt.Errorf("No session cookie in response"), ""
}

// registerAndLogin is the common test preamble: a fresh user with an open
// session.
func registerAndLogin(t *testing.T, host string, name string) string {
	t.Helper()

	email := fmt.Sprintf("%s@example.com", name)
	if err := registerUser(host, user.UserRegister{Name: name, Email: email, Password: "password123"}); err != nil {
		t.Fatalf("Failed to register %s: %v", name, err)
	}

	err, sessionId := loginUser(host, user.UserLogin{Email: email, Password: "password123"})
	if err != nil {
		t.Fatalf("Failed to login %s: %v", name, err)
	}

	return sessionId
}

func doRequest(host string, sessionId string, method string, path string, payload interface{}) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(payload); err != nil {
			return nil, err
		}
		body = buf
	}

	req, err := http.NewRequest(method, host+path, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if sessionId != "" {
		req.Header.Set("Cookie", fmt.Sprintf("session_id=%s", sessionId))
	}

	return (&http.Client{}).Do(req)
}

func decodeResponse(t *testing.T, resp *http.Response, wantStatus int, out interface{}) {
	t.Helper()
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("Unexpected status %v (want %v): %s", resp.StatusCode, wantStatus, raw)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("Error decoding response: %v", err)
		}
	}
}

func uploadFiles(host string, sessionId string, folderUUID string, uploads map[string]string) (error, *files.UploadResponse) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	for filename, content := range uploads {
		part, err := writer.CreateFormFile("files", filename)
		if err != nil {
			return err, nil
		}
		if _, err := part.Write([]byte(content)); err != nil {
			return err, nil
		}
	}
	if folderUUID != "" {
		if err := writer.WriteField("folder_uuid", folderUUID); err != nil {
			return err, nil
		}
	}
	if err := writer.Close(); err != nil {
		return err, nil
	}

	req, err := http.NewRequest("POST", fmt.Sprintf("%s/api/v1/files/upload", host), body)
	if err != nil {
		return err, nil
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Cookie", fmt.Sprintf("session_id=%s", sessionId))

	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		return err, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("Error response: %v: %s", resp.Status, raw), nil
	}

	var response files.UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return err, nil
	}

	return nil, &response
}

// uploadOne uploads a single file and returns its uuid.
func uploadOne(t *testing.T, host string, sessionId string, filename string, content string) string {
	t.Helper()

	err, response := uploadFiles(host, sessionId, "", map[string]string{filename: content})
	if err != nil {
		t.Fatalf("Failed to upload %s: %v", filename, err)
	}
	if len(response.Files) != 1 || response.Files[0].FileUUID == "" {
		t.Fatalf("Unexpected upload response: %+v", response)
	}

	return response.Files[0].FileUUID
}

func getUserInfo(host string, sessionId string) (error, *database.User) {
	resp, err := doRequest(host, sessionId, "GET", "/api/v1/user/self", nil)
	if err != nil {
		return err, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Error response: %v", resp.Status), nil
	}

	var user database.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return err, nil
	}

	return nil, &user
}
