package keystore

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = SecretKey{Algorithm: "1.3.36.3.3.2.8.1.1.9", Encoded: bytes.Repeat([]byte{0x42}, 40)}

func Test_SecretKeyStore_Entries(t *testing.T) {
	assert := assert.New(t)

	s := New()
	assert.NoError(s.SetEntry("secret", testKey, "pw1"))
	assert.NoError(s.SetEntryUnencrypted("plain", testKey))
	s.AddTextAnnotation("note", "hello")
	assert.Equal(3, s.Len())
	assert.Equal([]string{"note", "plain", "secret"}, s.Aliases())
	assert.True(s.Contains("note"))

	key, err := s.Entry("secret", "pw1")
	assert.NoError(err)
	assert.Equal(testKey, key)

	_, err = s.Entry("secret", "pw2")
	assert.ErrorIs(err, ErrInvalidPassword)

	key, err = s.EntryUnencrypted("plain")
	assert.NoError(err)
	assert.Equal(testKey, key)

	text, err := s.TextAnnotation("note")
	assert.NoError(err)
	assert.Equal("hello", text)

	_, err = s.Entry("missing", "pw1")
	assert.ErrorIs(err, ErrNoSuchKey)
	_, err = s.EntryUnencrypted("missing")
	assert.ErrorIs(err, ErrNoSuchKey)
	_, err = s.TextAnnotation("missing")
	assert.ErrorIs(err, ErrNoSuchKey)

	// A text annotation is not a valid key entry.
	_, err = s.EntryUnencrypted("note")
	assert.ErrorIs(err, ErrKeyStorage)

	s.Delete("note")
	assert.False(s.Contains("note"))
	assert.Equal(2, s.Len())
}

func Test_SecretKeyStore_StoreLoad(t *testing.T) {
	assert := assert.New(t)

	for _, name := range []string{"store.xml", "store.yaml", "store.yml", "store"} {
		path := filepath.Join(t.TempDir(), name)

		s := New()
		require.NoError(t, s.SetEntry("secret", testKey, "pw1"))
		require.NoError(t, s.SetEntryUnencrypted("plain", testKey))
		s.AddTextAnnotation("comments", "multi\nline <comment> & more")
		require.NoError(t, s.Store(path))

		info, err := os.Stat(path)
		assert.NoError(err)
		assert.Equal(os.FileMode(0600), info.Mode().Perm())

		loaded := New()
		loaded.AddTextAnnotation("stale", "gone after load")
		assert.NoError(loaded.Load(path))
		assert.Equal(s.Aliases(), loaded.Aliases())

		key, err := loaded.Entry("secret", "pw1")
		assert.NoError(err)
		assert.Equal(testKey, key)
		key, err = loaded.EntryUnencrypted("plain")
		assert.NoError(err)
		assert.Equal(testKey, key)
		text, err := loaded.TextAnnotation("comments")
		assert.NoError(err)
		assert.Equal("multi\nline <comment> & more", text)

		// No temporary files are left behind.
		entries, err := os.ReadDir(filepath.Dir(path))
		assert.NoError(err)
		assert.Len(entries, 1)
	}
}

func Test_SecretKeyStore_XMLLayout(t *testing.T) {
	assert := assert.New(t)

	s := New()
	s.AddTextAnnotation("b", "2")
	s.AddTextAnnotation("a", "1")
	var buf bytes.Buffer
	assert.NoError(s.Encode(&buf, FormatXML))

	doc := buf.String()
	assert.True(strings.HasPrefix(doc, "<?xml"))
	assert.Contains(doc, "<values>")
	assert.Contains(doc, "<pair>")
	assert.Less(strings.Index(doc, "<name>a</name>"), strings.Index(doc, "<name>b</name>"))
}

func Test_SecretKeyStore_DecodeXML(t *testing.T) {
	assert := assert.New(t)

	doc := `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<values>
  <pair>
    <name>participant role</name>
    <value>Sender (Encoder)</value>
  </pair>
  <pair>
    <name>comments</name>
    <value/>
  </pair>
</values>`
	s := New()
	assert.NoError(s.Decode(strings.NewReader(doc), FormatXML))
	assert.Equal([]string{"comments", "participant role"}, s.Aliases())
	role, err := s.TextAnnotation("participant role")
	assert.NoError(err)
	assert.Equal("Sender (Encoder)", role)
}

func Test_SecretKeyStore_DecodeErrors(t *testing.T) {
	assert := assert.New(t)

	s := New()
	s.AddTextAnnotation("keep", "me")

	assert.ErrorIs(s.Decode(strings.NewReader("<other/>"), FormatXML), ErrKeyStorage)
	assert.ErrorIs(s.Decode(strings.NewReader("not xml"), FormatXML), ErrKeyStorage)
	assert.ErrorIs(s.Decode(strings.NewReader("values: [unclosed"), FormatYAML), ErrKeyStorage)
	assert.Equal([]string{"keep"}, s.Aliases())

	assert.ErrorIs(s.Load(filepath.Join(t.TempDir(), "missing.xml")), ErrKeyStorage)
	assert.ErrorIs(s.Store(filepath.Join(t.TempDir(), "no", "such", "dir.xml")), ErrKeyStorage)
}

func Test_FormatForPath(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(FormatXML, FormatForPath("a/b/keystore.xml"))
	assert.Equal(FormatYAML, FormatForPath("keystore.YAML"))
	assert.Equal(FormatYAML, FormatForPath("keystore.yml"))
	assert.Equal(FormatXML, FormatForPath("keystore"))
	assert.Equal("yaml", FormatYAML.String())
}
