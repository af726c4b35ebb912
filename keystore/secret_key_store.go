// Package keystore persists key material in name/value documents, with
// password protection for secret entries.
package keystore

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/regnull/easyecies/pbe"
)

// SecretKeyStore maps aliases to entries. An entry is a key, stored either
// encrypted under a password or only base64 encoded, or a plain text
// annotation. All kinds share one alias space.
//
// A SecretKeyStore is not safe for concurrent use.
type SecretKeyStore struct {
	entries map[string]string
}

// New returns an empty store.
func New() *SecretKeyStore {
	return &SecretKeyStore{entries: make(map[string]string)}
}

// SetEntry encrypts key under password and stores it as alias.
func (s *SecretKeyStore) SetEntry(alias string, key SecretKey, password string) error {
	b, err := key.MarshalBinary()
	if err != nil {
		return err
	}
	defer clear(b)
	encrypted, err := pbe.Encrypt(b, password)
	if err != nil {
		return fmt.Errorf("failed to encrypt entry %q: %w", alias, err)
	}
	s.entries[alias] = base64.StdEncoding.EncodeToString(encrypted)
	return nil
}

// Entry returns the key stored as alias by SetEntry.
func (s *SecretKeyStore) Entry(alias string, password string) (SecretKey, error) {
	encrypted, err := s.decodedEntry(alias)
	if err != nil {
		return SecretKey{}, err
	}
	b, err := pbe.Decrypt(encrypted, password)
	if err != nil {
		return SecretKey{}, ErrInvalidPassword
	}
	defer clear(b)
	var key SecretKey
	if err := key.UnmarshalBinary(b); err != nil {
		return SecretKey{}, err
	}
	return key, nil
}

// SetEntryUnencrypted stores key as alias without encryption. Use it for
// public material only.
func (s *SecretKeyStore) SetEntryUnencrypted(alias string, key SecretKey) error {
	b, err := key.MarshalBinary()
	if err != nil {
		return err
	}
	s.entries[alias] = base64.StdEncoding.EncodeToString(b)
	return nil
}

// EntryUnencrypted returns the key stored as alias by SetEntryUnencrypted.
func (s *SecretKeyStore) EntryUnencrypted(alias string) (SecretKey, error) {
	b, err := s.decodedEntry(alias)
	if err != nil {
		return SecretKey{}, err
	}
	var key SecretKey
	if err := key.UnmarshalBinary(b); err != nil {
		return SecretKey{}, err
	}
	return key, nil
}

func (s *SecretKeyStore) decodedEntry(alias string) ([]byte, error) {
	value, ok := s.entries[alias]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchKey, alias)
	}
	b, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: entry %q is not base64: %v", ErrKeyStorage, alias, err)
	}
	return b, nil
}

// AddTextAnnotation stores text as alias.
func (s *SecretKeyStore) AddTextAnnotation(alias string, text string) {
	s.entries[alias] = text
}

// TextAnnotation returns the text stored as alias.
func (s *SecretKeyStore) TextAnnotation(alias string) (string, error) {
	text, ok := s.entries[alias]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNoSuchKey, alias)
	}
	return text, nil
}

// Contains reports whether alias is in the store.
func (s *SecretKeyStore) Contains(alias string) bool {
	_, ok := s.entries[alias]
	return ok
}

// Delete removes alias from the store.
func (s *SecretKeyStore) Delete(alias string) {
	delete(s.entries, alias)
}

// Aliases returns all aliases in sorted order.
func (s *SecretKeyStore) Aliases() []string {
	aliases := make([]string, 0, len(s.entries))
	for alias := range s.entries {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// Len returns the number of entries.
func (s *SecretKeyStore) Len() int {
	return len(s.entries)
}

// Decode replaces all entries with the document read from r. On error the
// store is left unchanged.
func (s *SecretKeyStore) Decode(r io.Reader, format Format) error {
	m, err := decodeDocument(r, format)
	if err != nil {
		return fmt.Errorf("%w: failed to decode %v document: %v", ErrKeyStorage, format, err)
	}
	s.entries = m
	return nil
}

// Encode writes all entries to w as a document in the given format.
func (s *SecretKeyStore) Encode(w io.Writer, format Format) error {
	if err := encodeDocument(w, format, s.entries); err != nil {
		return fmt.Errorf("%w: failed to encode %v document: %v", ErrKeyStorage, format, err)
	}
	return nil
}

// Load replaces all entries with the contents of the file at path. The
// format is chosen by FormatForPath.
func (s *SecretKeyStore) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: failed to read key store: %v", ErrKeyStorage, err)
	}
	return s.Decode(bytes.NewReader(data), FormatForPath(path))
}

// Store writes all entries to the file at path. The file is written to
// a temporary file in the same directory first and renamed into place,
// so readers see either the old or the new store.
func (s *SecretKeyStore) Store(path string) error {
	var buf bytes.Buffer
	if err := s.Encode(&buf, FormatForPath(path)); err != nil {
		return err
	}
	if err := writeFileAtomic(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("%w: failed to write key store: %v", ErrKeyStorage, err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp, perm); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
