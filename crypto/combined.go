package crypto

// CombinedEncrypt runs Vigenère with vigenereKey, then the table cipher with tableKey.
// The table step drops case and non-letters, so the result is uppercase letters only.
func CombinedEncrypt(text, vigenereKey, tableKey string) (string, error) {
	shifted, err := VigenereEncrypt(text, vigenereKey)
	if err != nil {
		return "", err
	}
	return TableEncrypt(shifted, tableKey)
}

// CombinedDecrypt reverses CombinedEncrypt on the cleaned text.
func CombinedDecrypt(ciphertext, vigenereKey, tableKey string) (string, error) {
	// validate both keys before doing any work
	if err := ValidateKey(vigenereKey); err != nil {
		return "", err
	}
	substituted, err := TableDecrypt(ciphertext, tableKey)
	if err != nil {
		return "", err
	}
	return VigenereDecrypt(substituted, vigenereKey)
}
