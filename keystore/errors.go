package keystore

import "fmt"

var ErrNoSuchKey = fmt.Errorf("no such key")

// ErrInvalidPassword is returned when an encrypted entry does not decrypt,
// whatever the reason.
var ErrInvalidPassword = fmt.Errorf("invalid password")

// ErrKeyStorage is wrapped by I/O failures and malformed documents or entries.
var ErrKeyStorage = fmt.Errorf("key storage error")

// ErrRoleMismatch is returned when a key is read from a store tagged with
// the other participant role.
var ErrRoleMismatch = fmt.Errorf("key store participant role mismatch")
