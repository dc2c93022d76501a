package domain

// Principal is the authenticated identity derived from a verified ID token.
// It exists only for the duration of a request and is never persisted.
type Principal struct {
	// Subject is the stable identifier from the token's sub claim.
	Subject string

	// Email is the email claim, when the token carries one.
	Email string

	// Username is the provider-issued username claim (cognito:username).
	Username string
}

// DisplayName returns the identifier shown for this principal: the email
// claim when present, otherwise the provider username, otherwise the
// subject.
func (p *Principal) DisplayName() string {
	if p.Email != "" {
		return p.Email
	}
	if p.Username != "" {
		return p.Username
	}
	return p.Subject
}
