package models

import (
	id "aegis/pkg/domain"
)

// Account is the directory view of a credential holder. The session core does
// not own account lifecycle; it only needs identity, the password hash to
// verify against, and the active flag that gates issuance.
type Account struct {
	ID           id.AccountID
	Email        string
	PasswordHash string
	Active       bool
}
