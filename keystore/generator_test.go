package keystore

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regnull/easyecies"
)

func Test_GenerateKeyStores(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	files, err := GenerateKeyStores(dir,
		WithPrefix(" alice "),
		WithPassword("pw1"),
		WithComments("for tests"),
	)
	require.NoError(t, err)
	assert.Equal(filepath.Join(dir, "alice_encoder_keystore.xml"), files.EncoderKeyStore)
	assert.Equal(filepath.Join(dir, "alice_decoder_keystore.xml"), files.DecoderKeyStore)
	assert.Equal(filepath.Join(dir, "alice_passwords.txt"), files.PasswordsFile)

	private, err := LoadPrivateKey(files.DecoderKeyStore, "pw1")
	assert.NoError(err)
	assert.Equal(easyecies.DefaultKeySize, private.Curve().KeySize())
	public, err := LoadPublicKey(files.EncoderKeyStore)
	assert.NoError(err)
	assert.True(private.PublicKey().Equal(public))
	assert.Equal(files.Fingerprint, public.Fingerprint())

	_, err = LoadPrivateKey(files.DecoderKeyStore, "pw2")
	assert.ErrorIs(err, ErrInvalidPassword)

	passwords, err := os.ReadFile(files.PasswordsFile)
	assert.NoError(err)
	assert.Equal("Decryption Keystore password: [pw1]\nNo Seed.\n", string(passwords))

	envelope, err := easyecies.EncryptEphemeral([]byte("hello"), public)
	assert.NoError(err)
	decrypted, err := easyecies.DecryptEphemeral(envelope, private)
	assert.NoError(err)
	assert.Equal([]byte("hello"), decrypted)
}

func Test_GenerateKeyStores_Seeded(t *testing.T) {
	assert := assert.New(t)

	dir1, dir2 := t.TempDir(), t.TempDir()
	files1, err := GenerateKeyStores(dir1, WithSeed("seed"), WithKeySize(256))
	require.NoError(t, err)
	files2, err := GenerateKeyStores(dir2, WithSeed("seed"), WithKeySize(256))
	require.NoError(t, err)
	assert.Equal(files1.Fingerprint, files2.Fingerprint)
	assert.Equal("V63mTUL7P2hGkf77iTJbKfTXGzM5ZjtwXP", files1.Fingerprint)
	assert.Equal(filepath.Join(dir1, "encoder_keystore.xml"), files1.EncoderKeyStore)

	// No password given, the key is protected by the derived default.
	private, err := LoadPrivateKey(files1.DecoderKeyStore, "")
	assert.NoError(err)
	assert.Equal(256, private.Curve().KeySize())

	passwords, err := os.ReadFile(files1.PasswordsFile)
	assert.NoError(err)
	assert.Equal("Decryption Keystore password: []\nSeed password: [seed]\n", string(passwords))
}

func Test_GenerateKeyStores_Backup(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	var logs bytes.Buffer
	logger := zerolog.New(&logs)

	first, err := GenerateKeyStores(dir, WithLogger(logger))
	require.NoError(t, err)
	firstPublic, err := LoadPublicKey(first.EncoderKeyStore)
	require.NoError(t, err)

	second, err := GenerateKeyStores(dir, WithLogger(logger))
	require.NoError(t, err)
	assert.NotEqual(first.Fingerprint, second.Fingerprint)

	entries, err := os.ReadDir(dir)
	assert.NoError(err)
	assert.Len(entries, 6)

	var backups []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), EncoderKeyStoreName+".") {
			backups = append(backups, e.Name())
		}
	}
	require.Len(t, backups, 1)
	backedUp, err := LoadPublicKey(filepath.Join(dir, backups[0]))
	assert.NoError(err)
	assert.True(firstPublic.Equal(backedUp))

	assert.Contains(logs.String(), "existing file backed up")
	assert.Contains(logs.String(), "public key store written")
}

func Test_GenerateKeyStores_Errors(t *testing.T) {
	assert := assert.New(t)

	_, err := GenerateKeyStores(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(err, ErrKeyStorage)

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0600))
	_, err = GenerateKeyStores(file)
	assert.ErrorIs(err, ErrKeyStorage)

	_, err = GenerateKeyStores(t.TempDir(), WithKeySize(123))
	assert.ErrorIs(err, easyecies.ErrDomainNotFound)
}

func Test_GenerateKeyStores_FailureKeepsExisting(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	files, err := GenerateKeyStores(dir, WithPassword("pw1"))
	require.NoError(t, err)

	paths := []string{files.EncoderKeyStore, files.DecoderKeyStore, files.PasswordsFile}
	before := map[string][]byte{}
	for _, path := range paths {
		before[path], err = os.ReadFile(path)
		require.NoError(t, err)
	}

	_, err = GenerateKeyStores(dir, WithKeySize(999), WithPassword("pw2"))
	assert.ErrorIs(err, easyecies.ErrDomainNotFound)

	entries, err := os.ReadDir(dir)
	assert.NoError(err)
	assert.Len(entries, len(paths))
	for _, path := range paths {
		after, err := os.ReadFile(path)
		assert.NoError(err)
		assert.Equal(before[path], after, path)
	}

	private, err := LoadPrivateKey(files.DecoderKeyStore, "pw1")
	assert.NoError(err)
	public, err := LoadPublicKey(files.EncoderKeyStore)
	assert.NoError(err)
	assert.True(private.PublicKey().Equal(public))
}
