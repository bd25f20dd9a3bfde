package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Paramètres Argon2id : ~15-20ms par hash, suffisant pour un login rapide.
const (
	argon2Time    = 1
	argon2Memory  = 32 * 1024 // 32 MB
	argon2Threads = 4
	argon2KeyLen  = 32
	argon2SaltLen = 16
)

// HashPassword hash un mot de passe avec Argon2id.
// Format produit : $argon2id$v=19$m=...,t=...,p=...$salt$hash
func HashPassword(password string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argon2Memory, argon2Time, argon2Threads, b64Salt, b64Hash), nil
}

// VerifyPassword recalcule le hash avec les paramètres encodés et compare
// en temps constant.
func VerifyPassword(password, encodedHash string) (bool, error) {
	var (
		version       int
		memory, t     uint32
		threads       uint8
		b64Salt, b64H string
	)

	n, err := fmt.Sscanf(encodedHash, "$argon2id$v=%d$m=%d,t=%d,p=%d$%s",
		&version, &memory, &t, &threads, &b64H)
	if err != nil || n != 5 {
		return false, errors.New("hash invalide")
	}

	// Le dernier %s de Sscanf avale "salt$hash" d'un bloc
	sep := -1
	for i, r := range b64H {
		if r == '$' {
			sep = i
			break
		}
	}
	if sep < 0 {
		return false, errors.New("hash invalide")
	}
	b64Salt, b64H = b64H[:sep], b64H[sep+1:]

	salt, err := base64.RawStdEncoding.DecodeString(b64Salt)
	if err != nil {
		return false, err
	}
	hash, err := base64.RawStdEncoding.DecodeString(b64H)
	if err != nil {
		return false, err
	}

	otherHash := argon2.IDKey([]byte(password), salt, t, memory, threads, uint32(len(hash)))

	return subtle.ConstantTimeCompare(hash, otherHash) == 1, nil
}
