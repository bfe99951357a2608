// SPDX-License-Identifier: Apache-2.0
package signing

import (
	"fmt"
	"os"

	"github.com/ProtonMail/gopenpgp/v3/crypto"
	"github.com/ProtonMail/gopenpgp/v3/profile"
)

// LoadKey loads a PGP key from either ASCII-armored or binary format (auto-detects)
func LoadKey(path string) (*crypto.Key, error) {
	keyData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key: %w", err)
	}

	// Try ASCII-armored first
	key, err := crypto.NewKeyFromArmored(string(keyData))
	if err == nil {
		return key, nil
	}

	// Try binary format
	key, err = crypto.NewKey(keyData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse key (tried both armored and binary formats): %w", err)
	}

	return key, nil
}

// VerifyDetached verifies a detached PGP signature over the given data using
// the provided public key
func VerifyDetached(data, signature []byte, publicKey *crypto.Key) error {
	// Create verification context with RFC4880 profile
	pgp := crypto.PGPWithProfile(profile.RFC4880())

	verifier, err := pgp.Verify().
		VerificationKey(publicKey).
		New()
	if err != nil {
		return fmt.Errorf("failed to create verifier: %w", err)
	}

	// Try armored format first
	verifyResult, err := verifier.VerifyDetached(data, signature, crypto.Armor)
	if err != nil {
		// Try binary format
		verifyResult, err = verifier.VerifyDetached(data, signature, crypto.Bytes)
		if err != nil {
			return fmt.Errorf("signature verification failed (tried both armored and binary formats): %w", err)
		}
	}

	// Check for signature errors
	if sigErr := verifyResult.SignatureError(); sigErr != nil {
		return fmt.Errorf("signature error: %w", sigErr)
	}

	return nil
}

// VerifyDetachedFiles verifies that signaturePath contains a valid detached
// signature over dataPath, made by the key at publicKeyPath
func VerifyDetachedFiles(dataPath, signaturePath, publicKeyPath string) error {
	data, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf("failed to read signed file: %w", err)
	}

	signature, err := os.ReadFile(signaturePath)
	if err != nil {
		return fmt.Errorf("failed to read signature: %w", err)
	}

	publicKey, err := LoadKey(publicKeyPath)
	if err != nil {
		return fmt.Errorf("failed to load public key: %w", err)
	}

	return VerifyDetached(data, signature, publicKey)
}
