// SPDX-License-Identifier: Apache-2.0
package signing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ProtonMail/gopenpgp/v3/crypto"
)

// signTestData generates a fresh key and a detached armored signature over
// data, returning the public half of the key. The public key is derived
// before the signer is cleared; ClearPrivateParams wipes the shared private
// material, not a copy.
func signTestData(t *testing.T, data []byte) (*crypto.Key, []byte) {
	t.Helper()

	pgp := crypto.PGP()
	key, err := pgp.KeyGeneration().
		AddUserId("Release Bot", "releases@example.com").
		New().
		GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	publicKey, err := key.ToPublic()
	if err != nil {
		t.Fatalf("ToPublic: %v", err)
	}

	signer, err := pgp.Sign().SigningKey(key).Detached().New()
	if err != nil {
		t.Fatalf("create signer: %v", err)
	}
	defer signer.ClearPrivateParams()

	signature, err := signer.Sign(data, crypto.Armor)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	return publicKey, signature
}

func TestVerifyDetached(t *testing.T) {
	data := []byte("abc123  hearth-linux-amd64.xz\n")
	publicKey, signature := signTestData(t, data)

	if err := VerifyDetached(data, signature, publicKey); err != nil {
		t.Errorf("expected valid signature, got %v", err)
	}

	tampered := []byte("def456  hearth-linux-amd64.xz\n")
	if err := VerifyDetached(tampered, signature, publicKey); err == nil {
		t.Error("expected verification failure for tampered data")
	}
}

func TestVerifyDetachedFiles(t *testing.T) {
	dir := t.TempDir()
	data := []byte("abc123  hearth-linux-amd64.xz\n")
	publicKey, signature := signTestData(t, data)

	armored, err := publicKey.Armor()
	if err != nil {
		t.Fatalf("Armor: %v", err)
	}

	dataPath := filepath.Join(dir, "SHA256SUMS")
	sigPath := filepath.Join(dir, "SHA256SUMS.asc")
	keyPath := filepath.Join(dir, "signing-key.asc")
	for path, contents := range map[string][]byte{
		dataPath: data,
		sigPath:  signature,
		keyPath:  []byte(armored),
	} {
		if err := os.WriteFile(path, contents, 0644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}

	if err := VerifyDetachedFiles(dataPath, sigPath, keyPath); err != nil {
		t.Errorf("expected valid signature, got %v", err)
	}

	if err := VerifyDetachedFiles(dataPath, sigPath, filepath.Join(dir, "missing.asc")); err == nil {
		t.Error("expected error for missing public key")
	}
}

func TestLoadKeyRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "key.asc")
	if err := os.WriteFile(path, []byte("not a key"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadKey(path); err == nil {
		t.Error("expected parse error")
	}
}
