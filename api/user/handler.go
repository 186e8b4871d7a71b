package user

type UserHandler struct {
	CookieDomain string
}
