package token

// Token is a short-lived credential proving a successful password
// authentication for the user identified by Phone. Expires is an absolute
// instant in milliseconds since the Unix epoch.
type Token struct {
	Phone   string `json:"phone"`
	ID      string `json:"id"`
	Expires int64  `json:"expires"`
}

// Live reports whether the token has not yet expired at the given instant,
// expressed in milliseconds since the Unix epoch.
func (t Token) Live(nowMillis int64) bool {
	return t.Expires > nowMillis
}
