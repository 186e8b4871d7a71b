package permissions

type PermissionsHandler struct{}
