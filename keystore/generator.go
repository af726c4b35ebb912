package keystore

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/regnull/easyecies"
	"github.com/regnull/easyecies/pbe"
)

const (
	EncoderKeyStoreName = "encoder_keystore.xml"
	DecoderKeyStoreName = "decoder_keystore.xml"
	PasswordsFileName   = "passwords.txt"

	// PasswordLength is the length of the password derived from the user's
	// password to protect the private key entry.
	PasswordLength = 50
)

type generatorOptions struct {
	prefix   string
	seed     string
	password string
	comments string
	keySize  int
	logger   zerolog.Logger
}

// Option configures GenerateKeyStores.
type Option func(*generatorOptions)

// WithPrefix prefixes the file names with prefix and an underscore.
func WithPrefix(prefix string) Option {
	return func(o *generatorOptions) {
		o.prefix = prefix
	}
}

// WithSeed generates the key pair deterministically from seed.
func WithSeed(seed string) Option {
	return func(o *generatorOptions) {
		o.seed = seed
	}
}

// WithPassword sets the password protecting the private key store.
func WithPassword(password string) Option {
	return func(o *generatorOptions) {
		o.password = password
	}
}

// WithComments sets the comments recorded in both stores.
func WithComments(comments string) Option {
	return func(o *generatorOptions) {
		o.comments = comments
	}
}

// WithKeySize sets the key size in bits, easyecies.DefaultKeySize by default.
func WithKeySize(keySize int) Option {
	return func(o *generatorOptions) {
		o.keySize = keySize
	}
}

// WithLogger sets the logger, no logging by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *generatorOptions) {
		o.logger = logger
	}
}

// GeneratedFiles lists the files written by GenerateKeyStores.
type GeneratedFiles struct {
	EncoderKeyStore string
	DecoderKeyStore string
	PasswordsFile   string
	Fingerprint     string
}

// KeyStorePaths returns the file paths GenerateKeyStores uses for dir and
// prefix. The fingerprint is left empty.
func KeyStorePaths(dir, prefix string) *GeneratedFiles {
	prefix = strings.TrimSpace(prefix)
	if prefix != "" {
		prefix += "_"
	}
	return &GeneratedFiles{
		EncoderKeyStore: filepath.Join(dir, prefix+EncoderKeyStoreName),
		DecoderKeyStore: filepath.Join(dir, prefix+DecoderKeyStoreName),
		PasswordsFile:   filepath.Join(dir, prefix+PasswordsFileName),
	}
}

// GenerateKeyStores creates a new key pair and writes it to dir as a
// public (encoder) key store, a password protected private (decoder) key
// store and a passwords file. Existing files are renamed with a random
// suffix first.
func GenerateKeyStores(dir string, opts ...Option) (*GeneratedFiles, error) {
	o := &generatorOptions{
		keySize: easyecies.DefaultKeySize,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyStorage, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrKeyStorage, dir)
	}

	files := KeyStorePaths(dir, o.prefix)

	var random io.Reader = rand.Reader
	if o.seed != "" {
		random = easyecies.NewDeterministicReader(o.seed)
	}
	kp, err := easyecies.GenerateKeyPair(o.keySize, random)
	if err != nil {
		return nil, err
	}
	defer kp.Private().Destroy()
	files.Fingerprint = kp.Public().Fingerprint()

	publicStore := NewPublicKeyStore(files.EncoderKeyStore)
	if err := publicStore.SetPublicKey(kp.Public()); err != nil {
		return nil, err
	}
	privateStore := NewPrivateKeyStore(files.DecoderKeyStore)
	if err := privateStore.SetPrivateKey(kp.Private(), pbe.DerivePassword(o.password, PasswordLength)); err != nil {
		return nil, err
	}

	// Nothing is moved away until the new stores are ready to be written.
	suffix := uuid.New().String()
	for _, path := range []string{files.EncoderKeyStore, files.DecoderKeyStore, files.PasswordsFile} {
		if err := backup(path, suffix, o.logger); err != nil {
			return nil, err
		}
	}

	if err := publicStore.Store(o.comments); err != nil {
		return nil, err
	}
	o.logger.Info().Str("path", files.EncoderKeyStore).Str("fingerprint", files.Fingerprint).Msg("public key store written")
	if err := privateStore.Store(o.comments); err != nil {
		return nil, err
	}
	o.logger.Info().Str("path", files.DecoderKeyStore).Msg("private key store written")

	if err := writePasswordsFile(files.PasswordsFile, o.password, o.seed); err != nil {
		return nil, err
	}
	o.logger.Info().Str("path", files.PasswordsFile).Msg("passwords file written")

	return files, nil
}

// backup renames path to path.<suffix> if it exists.
func backup(path, suffix string, logger zerolog.Logger) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrKeyStorage, err)
	}
	target := path + "." + suffix
	if err := os.Rename(path, target); err != nil {
		return fmt.Errorf("%w: could not back up %s: %v", ErrKeyStorage, path, err)
	}
	logger.Warn().Str("path", path).Str("backup", target).Msg("existing file backed up")
	return nil
}

func writePasswordsFile(path, password, seed string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Decryption Keystore password: [%s]\n", password)
	if seed == "" {
		b.WriteString("No Seed.\n")
	} else {
		fmt.Fprintf(&b, "Seed password: [%s]\n", seed)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("%w: failed to write passwords file: %v", ErrKeyStorage, err)
	}
	return nil
}

// LoadPrivateKey reads the private key from the store at path, protected
// by password as written by GenerateKeyStores.
func LoadPrivateKey(path string, password string) (*easyecies.PrivateKey, error) {
	store := NewPrivateKeyStore(path)
	if err := store.Load(); err != nil {
		return nil, err
	}
	return store.PrivateKey(pbe.DerivePassword(password, PasswordLength))
}

// LoadPublicKey reads the public key from the store at path.
func LoadPublicKey(path string) (*easyecies.PublicKey, error) {
	store := NewPublicKeyStore(path)
	if err := store.Load(); err != nil {
		return nil, err
	}
	return store.PublicKey()
}
