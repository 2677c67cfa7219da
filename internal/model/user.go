package model

// User is a household member allowed to sign in. The set of users is fixed
// at load time; nothing creates or removes users while the app runs.
type User struct {
	Name    string
	PIN     string // 4-digit plaintext credential, also the access-policy key
	IsAdmin bool
}

// LastLogin is the persisted hint used only to pre-fill the login form.
type LastLogin struct {
	Name string `json:"name"`
	PIN  string `json:"pin"`
}
