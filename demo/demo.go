// Package demo prints sample runs of every cipher and of the Kasiski analysis.
package demo

import (
	"context"
	"fmt"
	"io"

	"classical-cipher-backend/analysis"
	"classical-cipher-backend/crypto"
)

const (
	DefaultText = "Cryptography is the practice and study of techniques for secure communication " +
		"in the presence of adversarial behavior. More generally, cryptography is about constructing " +
		"and analyzing protocols that prevent third parties or the public from reading private messages. " +
		"Modern cryptography exists at the intersection of the disciplines of mathematics, computer science, " +
		"information security, electrical engineering, digital signal processing, physics, and others. " +
		"Core concepts related to information security, such as data confidentiality, data integrity, " +
		"authentication, and non-repudiation, are also central to cryptography."

	VigenereKey             = "CRYPTO"
	SimpleTranspositionKey  = "ZEBRAS"
	DoubleTranspositionKey2 = "GLASS"
	TableCipherKey          = "KEYWORD"
)

// Run prints every sample to w.
func Run(ctx context.Context, w io.Writer, analyzer *analysis.Analyzer) error {
	p := &printer{w: w}
	p.printf("=== Cryptography Tool ===\n")
	p.printf("Original text: %s\n\n", DefaultText)

	p.printf("\n=== Vigenère Cipher ===\n")
	encrypted, err := crypto.VigenereEncrypt(DefaultText, VigenereKey)
	if err != nil {
		return err
	}
	p.printf("Encrypted: %s\n", encrypted)
	decrypted, err := crypto.VigenereDecrypt(encrypted, VigenereKey)
	if err != nil {
		return err
	}
	p.printf("Decrypted: %s\n", decrypted)

	p.printf("\n=== Simple Transposition ===\n")
	encrypted, origLen, err := crypto.SimpleTranspositionEncrypt(DefaultText, SimpleTranspositionKey)
	if err != nil {
		return err
	}
	p.printf("Encrypted: %s\n", encrypted)
	decrypted, err = crypto.SimpleTranspositionDecrypt(encrypted, SimpleTranspositionKey, origLen)
	if err != nil {
		return err
	}
	p.printf("Decrypted: %s\n", decrypted)

	p.printf("\n=== Double Transposition ===\n")
	encrypted, origLen, err = crypto.DoubleTranspositionEncrypt(DefaultText, SimpleTranspositionKey, DoubleTranspositionKey2)
	if err != nil {
		return err
	}
	p.printf("Encrypted: %s\n", encrypted)
	decrypted, err = crypto.DoubleTranspositionDecrypt(encrypted, SimpleTranspositionKey, DoubleTranspositionKey2, origLen)
	if err != nil {
		return err
	}
	p.printf("Decrypted: %s\n", decrypted)

	p.printf("\n=== Table Cipher ===\n")
	encrypted, err = crypto.TableEncrypt(DefaultText, TableCipherKey)
	if err != nil {
		return err
	}
	p.printf("Encrypted: %s\n", encrypted)
	decrypted, err = crypto.TableDecrypt(encrypted, TableCipherKey)
	if err != nil {
		return err
	}
	p.printf("Decrypted: %s\n", decrypted)

	p.printf("\n=== Combined Vigenère + Table Cipher ===\n")
	encrypted, err = crypto.CombinedEncrypt(DefaultText, TableCipherKey, DoubleTranspositionKey2)
	if err != nil {
		return err
	}
	p.printf("Encrypted: %s\n", encrypted)
	decrypted, err = crypto.CombinedDecrypt(encrypted, TableCipherKey, DoubleTranspositionKey2)
	if err != nil {
		return err
	}
	p.printf("Decrypted: %s\n", decrypted)

	p.printf("\n=== Kasiski Test (Vigenère Cryptanalysis) ===\n")
	encrypted, err = crypto.VigenereEncrypt(DefaultText, VigenereKey)
	if err != nil {
		return err
	}
	p.printf("Encrypted test text: %s\n", encrypted)
	res, err := analyzer.Run(ctx, encrypted)
	if err != nil {
		return err
	}
	if res.Found {
		p.printf("Possible key length: %d (%s)\n", res.KeyLength, res.Strategy)
		p.printf("Possible key: %s\n", res.Key)
		p.printf("Possible decrypted text: %s\n", res.Sample)
	} else {
		p.printf("Possible key length: none\n")
	}

	return p.err
}

// printer keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
