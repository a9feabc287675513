package driven

// CredentialCipher encrypts provider credentials at rest. Decryption
// failures are non-fatal by contract: Decrypt reports them through its
// second return value and callers treat an unusable credential as
// absent, never as a key.
type CredentialCipher interface {
	// Encrypt returns the encrypted form of plaintext.
	Encrypt(plaintext string) (string, error)

	// Decrypt reverses Encrypt. The second return value is false when
	// the value cannot be decrypted, in which case the first is empty.
	Decrypt(ciphertext string) (string, bool)
}
