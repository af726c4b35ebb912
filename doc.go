/*
Package easyecies implements authenticated public key encryption on the
Brainpool curves (brainpoolP224r1 to brainpoolP512r1), using an elliptic curve
integrated encryption scheme with a fresh ephemeral key per message.

These operations include:

-- Looking up curve domains by identifier, key size or name

-- Creating private keys, randomly, deterministically from a seed string,
or from a mnemonic phrase

-- Encrypting data to a public key and decrypting it with the private key

The envelope produced by EncryptEphemeral is the compressed ephemeral public
key, followed by the ciphertext and the MAC tag. Digest and MAC sizes grow
with the key size, see ParamsFor.

Password-based encryption lives in package pbe, persistent key stores in
package keystore.
*/
package easyecies
