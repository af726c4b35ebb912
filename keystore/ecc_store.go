package keystore

import (
	"fmt"
	"strings"

	"github.com/regnull/easyecies"
)

// Aliases used by the key stores.
const (
	AliasPrivate  = "private"
	AliasPublic   = "public"
	AliasRole     = "participant role"
	AliasComments = "comments"
)

// Participant roles recorded in the key stores.
const (
	RoleReceiver = "Receiver (Decoder)"
	RoleSender   = "Sender (Encoder)"
)

// eccKeyStore is a secret key store bound to a file and a participant role.
type eccKeyStore struct {
	path  string
	role  string
	store *SecretKeyStore
}

func newECCKeyStore(path, role string) eccKeyStore {
	return eccKeyStore{path: path, role: role, store: New()}
}

// Path returns the file path of the store.
func (s *eccKeyStore) Path() string {
	return s.path
}

// Load replaces the contents with the file.
func (s *eccKeyStore) Load() error {
	return s.store.Load(s.path)
}

// Store tags the store with its role and comments and writes it to the file.
func (s *eccKeyStore) Store(comments string) error {
	s.store.AddTextAnnotation(AliasRole, s.role)
	s.store.AddTextAnnotation(AliasComments, strings.TrimSpace(comments))
	return s.store.Store(s.path)
}

// Role returns the participant role recorded in the store, empty if none.
func (s *eccKeyStore) Role() string {
	role, _ := s.store.TextAnnotation(AliasRole)
	return role
}

// Comments returns the comments recorded in the store.
func (s *eccKeyStore) Comments() string {
	comments, _ := s.store.TextAnnotation(AliasComments)
	return comments
}

func (s *eccKeyStore) checkRole() error {
	if role := s.Role(); role != "" && role != s.role {
		return fmt.Errorf("%w: %s is tagged %q, expected %q", ErrRoleMismatch, s.path, role, s.role)
	}
	return nil
}

// PrivateKeyStore holds the receiver's private key, encrypted under a
// password.
type PrivateKeyStore struct {
	eccKeyStore
}

// NewPrivateKeyStore returns an empty private key store for the file at path.
func NewPrivateKeyStore(path string) *PrivateKeyStore {
	return &PrivateKeyStore{eccKeyStore: newECCKeyStore(path, RoleReceiver)}
}

// SetPrivateKey stores key encrypted under password.
func (s *PrivateKeyStore) SetPrivateKey(key *easyecies.PrivateKey, password string) error {
	if key == nil {
		return easyecies.ErrInvalidPrivateKey
	}
	raw := key.Bytes()
	defer clear(raw)
	return s.store.SetEntry(AliasPrivate, SecretKey{Algorithm: key.Algorithm(), Encoded: raw}, password)
}

// PrivateKey decrypts and returns the private key.
func (s *PrivateKeyStore) PrivateKey(password string) (*easyecies.PrivateKey, error) {
	if err := s.checkRole(); err != nil {
		return nil, err
	}
	secret, err := s.store.Entry(AliasPrivate, password)
	if err != nil {
		return nil, err
	}
	defer clear(secret.Encoded)
	curve, err := easyecies.LookupCurve(secret.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyStorage, err)
	}
	key, err := easyecies.NewPrivateKeyFromBytes(curve, secret.Encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyStorage, err)
	}
	return key, nil
}

// PublicKeyStore holds the public key given to senders, unencrypted.
type PublicKeyStore struct {
	eccKeyStore
}

// NewPublicKeyStore returns an empty public key store for the file at path.
func NewPublicKeyStore(path string) *PublicKeyStore {
	return &PublicKeyStore{eccKeyStore: newECCKeyStore(path, RoleSender)}
}

// SetPublicKey stores key.
func (s *PublicKeyStore) SetPublicKey(key *easyecies.PublicKey) error {
	if key == nil {
		return easyecies.ErrInvalidPublicKey
	}
	return s.store.SetEntryUnencrypted(AliasPublic, SecretKey{Algorithm: key.Algorithm(), Encoded: key.CompressedBytes()})
}

// PublicKey returns the public key.
func (s *PublicKeyStore) PublicKey() (*easyecies.PublicKey, error) {
	if err := s.checkRole(); err != nil {
		return nil, err
	}
	secret, err := s.store.EntryUnencrypted(AliasPublic)
	if err != nil {
		return nil, err
	}
	curve, err := easyecies.LookupCurve(secret.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyStorage, err)
	}
	key, err := easyecies.NewPublicKeyFromBytes(curve, secret.Encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyStorage, err)
	}
	return key, nil
}
