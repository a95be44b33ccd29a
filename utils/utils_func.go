package utils

import (
	"fmt"
	"os"

	"golang.org/x/crypto/argon2"
)

func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Println("WARNING: JWT_SECRET environment variable not set.")
		return []byte("default-insecure-secret-only-for-development")
	}
	return []byte(secret)
}

// CardFingerprint derives a stable argon2 digest of a card number so a
// payment record can be matched to a card without ever storing the PAN.
func CardFingerprint(cardNumber string) string {
	salt := []byte(GetEnvOrDefault("CARD_FINGERPRINT_SALT", "tripmarket-card-salt"))
	hashed := argon2.IDKey([]byte(cardNumber), salt, 1, 64*1024, 4, 32)
	return fmt.Sprintf("%x", hashed)
}

// GetEnvOrDefault returns the env value or a fallback.
func GetEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
