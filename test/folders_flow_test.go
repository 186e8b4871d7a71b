package test

import (
	"backend/api/folders"
	"backend/database"
	"net/http"
	"testing"
)

func createFolder(t *testing.T, host string, sessionId string, name string, parentUUID string) *database.Folder {
	t.Helper()

	resp, err := doRequest(host, sessionId, "POST", "/api/v1/folders/create", folders.FolderCreate{
		Name:       name,
		ParentUUID: parentUUID,
	})
	if err != nil {
		t.Fatal(err)
	}

	var created map[string]database.Folder
	decodeResponse(t, resp, http.StatusOK, &created)

	folder := created["folder"]
	if folder.UUID == "" {
		t.Fatalf("Created folder has no uuid: %+v", folder)
	}
	return &folder
}

func TestFolderCreateAndList(t *testing.T) {
	host := startTestBackend(t)
	sessionId := registerAndLogin(t, host, "alice")

	documents := createFolder(t, host, sessionId, "Documents", "")
	createFolder(t, host, sessionId, "Invoices", documents.UUID)

	err, response := uploadFiles(host, sessionId, documents.UUID, map[string]string{"notes.txt": "x"})
	if err != nil {
		t.Fatalf("Failed to upload into folder: %v", err)
	}
	if response.Files[0].FileUUID == "" {
		t.Fatalf("Unexpected upload outcome: %+v", response.Files[0])
	}

	resp, err := doRequest(host, sessionId, "GET", "/api/v1/folders/list", nil)
	if err != nil {
		t.Fatal(err)
	}
	var listing map[string][]database.Folder
	decodeResponse(t, resp, http.StatusOK, &listing)

	if len(listing["folders"]) != 2 {
		t.Fatalf("Expected 2 folders, got %d", len(listing["folders"]))
	}

	var docFiles []database.File
	for _, folder := range listing["folders"] {
		if folder.Name == "Documents" {
			docFiles = folder.Files
		}
	}
	if len(docFiles) != 1 || docFiles[0].Filename != "notes.txt" {
		t.Errorf("Expected notes.txt inside Documents, got %+v", docFiles)
	}
}

func TestFolderCreateValidation(t *testing.T) {
	host := startTestBackend(t)
	sessionId := registerAndLogin(t, host, "alice")

	resp, err := doRequest(host, sessionId, "POST", "/api/v1/folders/create", folders.FolderCreate{Name: ""})
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected 400 for empty name, got %v", resp.Status)
	}

	resp, err = doRequest(host, sessionId, "POST", "/api/v1/folders/create", folders.FolderCreate{
		Name:       "Orphan",
		ParentUUID: "no-such-parent",
	})
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("Expected 404 for unknown parent, got %v", resp.Status)
	}
}

func TestFolderParentMustBeOwn(t *testing.T) {
	host := startTestBackend(t)
	aliceSession := registerAndLogin(t, host, "alice")
	bobSession := registerAndLogin(t, host, "bob")

	bobsFolder := createFolder(t, host, bobSession, "Private", "")

	resp, err := doRequest(host, aliceSession, "POST", "/api/v1/folders/create", folders.FolderCreate{
		Name:       "Sneaky",
		ParentUUID: bobsFolder.UUID,
	})
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("Expected 404 for foreign parent, got %v", resp.Status)
	}
}

func TestFolderMove(t *testing.T) {
	host := startTestBackend(t)
	aliceSession := registerAndLogin(t, host, "alice")
	bobSession := registerAndLogin(t, host, "bob")

	root := createFolder(t, host, aliceSession, "root", "")
	mid := createFolder(t, host, aliceSession, "mid", root.UUID)
	leaf := createFolder(t, host, aliceSession, "leaf", mid.UUID)

	resp, err := doRequest(host, aliceSession, "POST", "/api/v1/folders/"+leaf.UUID+"/move", folders.FolderMove{
		ParentUUID: root.UUID,
	})
	if err != nil {
		t.Fatal(err)
	}
	var moved map[string]database.Folder
	decodeResponse(t, resp, http.StatusOK, &moved)
	if moved["folder"].UUID != leaf.UUID {
		t.Fatalf("Unexpected move response: %+v", moved)
	}

	// a folder cannot land in its own subtree
	resp, err = doRequest(host, aliceSession, "POST", "/api/v1/folders/"+root.UUID+"/move", folders.FolderMove{
		ParentUUID: mid.UUID,
	})
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected 400 for cyclic move, got %v", resp.Status)
	}

	// another user's folder is no valid parent
	bobsFolder := createFolder(t, host, bobSession, "Private", "")
	resp, err = doRequest(host, aliceSession, "POST", "/api/v1/folders/"+root.UUID+"/move", folders.FolderMove{
		ParentUUID: bobsFolder.UUID,
	})
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("Expected 404 for foreign parent, got %v", resp.Status)
	}
}

func TestFolderRecursiveDelete(t *testing.T) {
	host := startTestBackend(t)
	sessionId := registerAndLogin(t, host, "alice")

	root := createFolder(t, host, sessionId, "root", "")
	sub := createFolder(t, host, sessionId, "sub", root.UUID)

	if err, _ := uploadFiles(host, sessionId, root.UUID, map[string]string{"root.txt": "r"}); err != nil {
		t.Fatal(err)
	}
	if err, _ := uploadFiles(host, sessionId, sub.UUID, map[string]string{"sub.txt": "s"}); err != nil {
		t.Fatal(err)
	}
	uploadOne(t, host, sessionId, "loose.txt", "outside any folder")

	resp, err := doRequest(host, sessionId, "DELETE", "/api/v1/folders/"+root.UUID, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Unexpected delete status: %v", resp.Status)
	}

	resp, err = doRequest(host, sessionId, "GET", "/api/v1/folders/list", nil)
	if err != nil {
		t.Fatal(err)
	}
	var folderListing map[string][]database.Folder
	decodeResponse(t, resp, http.StatusOK, &folderListing)
	if len(folderListing["folders"]) != 0 {
		t.Fatalf("Expected no folders left, got %d", len(folderListing["folders"]))
	}

	resp, err = doRequest(host, sessionId, "GET", "/api/v1/files/list", nil)
	if err != nil {
		t.Fatal(err)
	}
	var fileListing map[string][]database.File
	decodeResponse(t, resp, http.StatusOK, &fileListing)
	if len(fileListing["files"]) != 1 || fileListing["files"][0].Filename != "loose.txt" {
		t.Fatalf("Expected only loose.txt to survive, got %+v", fileListing["files"])
	}
}

func TestFolderDeleteForeign(t *testing.T) {
	host := startTestBackend(t)
	aliceSession := registerAndLogin(t, host, "alice")
	bobSession := registerAndLogin(t, host, "bob")

	bobsFolder := createFolder(t, host, bobSession, "Private", "")

	resp, err := doRequest(host, aliceSession, "DELETE", "/api/v1/folders/"+bobsFolder.UUID, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("Expected 404 for foreign folder, got %v", resp.Status)
	}
}
