package main

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/regnull/easyecies"
	"github.com/regnull/easyecies/keystore"
	"github.com/regnull/easyecies/pbe"
)

func inFlag() cli.Flag {
	return &cli.StringFlag{Name: "in", Aliases: []string{"i"}, Usage: "input file, stdin if not set"}
}

func outFlag() cli.Flag {
	return &cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file, stdout if not set"}
}

func base64Flag() cli.Flag {
	return &cli.BoolFlag{Name: "base64", Usage: "binary data is base64 text"}
}

func keyFlag() cli.Flag {
	return &cli.StringFlag{Name: "key", Aliases: []string{"k"}, Usage: "key store file, derived from --dir and --prefix if not set"}
}

func passwordFlag() cli.Flag {
	return &cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "key store password", EnvVars: []string{"EASYECIES_PASSWORD"}}
}

func curvesCommand() *cli.Command {
	return &cli.Command{
		Name:  "curves",
		Usage: "list the supported curves",
		Action: func(c *cli.Context) error {
			for _, curve := range easyecies.Curves() {
				params := easyecies.ParamsFor(curve.KeySize())
				fmt.Fprintf(c.App.Writer, "%-16s %-22s %3d bits, MAC %3d bits, overhead %d bytes\n",
					curve.Name(), curve.ID(), curve.KeySize(), params.MACDigestBits, easyecies.Overhead(curve))
			}
			return nil
		},
	}
}

func keygenCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "keygen",
		Usage: "generate an encoder and a decoder key store",
		Flags: []cli.Flag{
			passwordFlag(),
			&cli.StringFlag{Name: "seed", Usage: "generate the key pair deterministically from this seed"},
			&cli.StringFlag{Name: "comments", Usage: "comments recorded in both key stores"},
		},
		Action: func(c *cli.Context) error {
			files, err := keystore.GenerateKeyStores(e.cfg.Dir,
				keystore.WithPrefix(e.cfg.Prefix),
				keystore.WithKeySize(e.cfg.KeySize),
				keystore.WithPassword(c.String("password")),
				keystore.WithSeed(c.String("seed")),
				keystore.WithComments(c.String("comments")),
				keystore.WithLogger(e.log),
			)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, files.Fingerprint)
			return nil
		},
	}
}

func encryptCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "encrypt",
		Usage: "encrypt data to the public key in an encoder key store",
		Flags: []cli.Flag{keyFlag(), inFlag(), outFlag(), base64Flag()},
		Action: func(c *cli.Context) error {
			path := c.String("key")
			if path == "" {
				path = keystore.KeyStorePaths(e.cfg.Dir, e.cfg.Prefix).EncoderKeyStore
			}
			key, err := keystore.LoadPublicKey(path)
			if err != nil {
				return err
			}
			plaintext, err := readInput(c, false)
			if err != nil {
				return err
			}
			envelope, err := easyecies.EncryptEphemeral(plaintext, key)
			if err != nil {
				return err
			}
			e.log.Debug().Str("key", path).Int("plaintext", len(plaintext)).Int("envelope", len(envelope)).Msg("encrypted")
			return writeOutput(c, envelope, c.Bool("base64"))
		},
	}
}

func decryptCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "decrypt",
		Usage: "decrypt data with the private key in a decoder key store",
		Flags: []cli.Flag{keyFlag(), passwordFlag(), inFlag(), outFlag(), base64Flag()},
		Action: func(c *cli.Context) error {
			path := c.String("key")
			if path == "" {
				path = keystore.KeyStorePaths(e.cfg.Dir, e.cfg.Prefix).DecoderKeyStore
			}
			key, err := keystore.LoadPrivateKey(path, c.String("password"))
			if err != nil {
				return err
			}
			defer key.Destroy()
			envelope, err := readInput(c, c.Bool("base64"))
			if err != nil {
				return err
			}
			plaintext, err := easyecies.DecryptEphemeral(envelope, key)
			if err != nil {
				return err
			}
			e.log.Debug().Str("key", path).Int("plaintext", len(plaintext)).Msg("decrypted")
			return writeOutput(c, plaintext, false)
		},
	}
}

func showCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "print the contents of a key store",
		ArgsUsage: "[key store file]",
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			if path == "" {
				path = keystore.KeyStorePaths(e.cfg.Dir, e.cfg.Prefix).EncoderKeyStore
			}
			store := keystore.New()
			if err := store.Load(path); err != nil {
				return err
			}
			w := c.App.Writer
			fmt.Fprintf(w, "file:     %s\n", path)
			if role, err := store.TextAnnotation(keystore.AliasRole); err == nil {
				fmt.Fprintf(w, "role:     %s\n", role)
			}
			if comments, err := store.TextAnnotation(keystore.AliasComments); err == nil && comments != "" {
				fmt.Fprintf(w, "comments: %s\n", comments)
			}
			if store.Contains(keystore.AliasPublic) {
				key, err := keystore.LoadPublicKey(path)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "curve:    %s\n", key.Curve())
				fmt.Fprintf(w, "public:   %s\n", hex.EncodeToString(key.CompressedBytes()))
				fmt.Fprintf(w, "id:       %s\n", key.Fingerprint())
			}
			if store.Contains(keystore.AliasPrivate) {
				fmt.Fprintln(w, "private:  password protected")
			}
			return nil
		},
	}
}

func obfuscateCommand() *cli.Command {
	return &cli.Command{
		Name:  "obfuscate",
		Usage: "obfuscate data with a random salt",
		Flags: []cli.Flag{inFlag(), outFlag(), base64Flag()},
		Action: func(c *cli.Context) error {
			data, err := readInput(c, false)
			if err != nil {
				return err
			}
			obfuscated, err := pbe.Obfuscate(data)
			if err != nil {
				return err
			}
			return writeOutput(c, obfuscated, c.Bool("base64"))
		},
	}
}

func deobfuscateCommand() *cli.Command {
	return &cli.Command{
		Name:  "deobfuscate",
		Usage: "restore obfuscated data",
		Flags: []cli.Flag{inFlag(), outFlag(), base64Flag()},
		Action: func(c *cli.Context) error {
			data, err := readInput(c, c.Bool("base64"))
			if err != nil {
				return err
			}
			plain, err := pbe.Deobfuscate(data)
			if err != nil {
				return err
			}
			return writeOutput(c, plain, false)
		},
	}
}

// readInput reads --in or stdin, decoding base64 text if asked to.
func readInput(c *cli.Context, decodeBase64 bool) ([]byte, error) {
	var data []byte
	var err error
	if path := c.String("in"); path != "" && path != "-" {
		data, err = os.ReadFile(path)
	} else {
		data, err = io.ReadAll(c.App.Reader)
	}
	if err != nil {
		return nil, err
	}
	if !decodeBase64 {
		return data, nil
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("invalid base64 input: %w", err)
	}
	return decoded, nil
}

// writeOutput writes data to --out or stdout, as base64 text if asked to.
func writeOutput(c *cli.Context, data []byte, encodeBase64 bool) error {
	if encodeBase64 {
		data = []byte(base64.StdEncoding.EncodeToString(data) + "\n")
	}
	if path := c.String("out"); path != "" && path != "-" {
		return os.WriteFile(path, data, 0600)
	}
	_, err := c.App.Writer.Write(data)
	return err
}
