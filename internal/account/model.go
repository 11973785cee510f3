package account

// User is a stored account record keyed by phone number. HashedPassword never
// leaves this package: external reads go through Profile.
type User struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Phone          string `json:"phone"`
	HashedPassword string `json:"hashedPassword"`
	TOSAgreement   bool   `json:"tosAgreement"`
}

// Profile is the externally visible projection of a User. It has no hash
// field at all, so the hash cannot be serialized outward on any path.
type Profile struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Phone        string `json:"phone"`
	TOSAgreement bool   `json:"tosAgreement"`
}
