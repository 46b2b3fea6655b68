package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/pendlerapp-dev/schichtplan/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

const passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func GenerateRandomPassword(length int) (string, error) {
	password := make([]byte, length)
	for i := range password {
		index, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordCharset))))
		if err != nil {
			return "", err
		}
		password[i] = passwordCharset[index.Int64()]
	}
	return string(password), nil
}

// GenerateFeedToken returns an opaque token for the calendar feed URL.
// 32 hex characters is enough to make guessing impractical.
func GenerateFeedToken() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

var (
	firstNames = []string{"Anna", "Ben", "Clara", "David", "Emma", "Felix", "Greta", "Hannes", "Ida", "Jonas", "Katrin", "Lukas", "Mia", "Niklas", "Ola", "Paul", "Rosa", "Stefan", "Tina", "Ulrich"}
	lastNames  = []string{"Bauer", "Fischer", "Hoffmann", "Keller", "Krause", "Lehmann", "Meyer", "Neumann", "Richter", "Schmidt", "Schneider", "Vogel", "Wagner", "Weber", "Zimmermann"}
)

// GenerateRandomUser builds a demo worker account for seeding. All seeded
// accounts share the configured password.
func GenerateRandomUser(password, emailDomain string) (*domain.User, error) {
	firstIndex, err := rand.Int(rand.Reader, big.NewInt(int64(len(firstNames))))
	if err != nil {
		return nil, err
	}
	lastIndex, err := rand.Int(rand.Reader, big.NewInt(int64(len(lastNames))))
	if err != nil {
		return nil, err
	}
	suffix, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	fullName := firstNames[firstIndex.Int64()] + " " + lastNames[lastIndex.Int64()]
	username := fmt.Sprintf("%s%04d", strings.ToLower(firstNames[firstIndex.Int64()]), suffix.Int64())

	return &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        fmt.Sprintf("%s@%s", username, emailDomain),
		Role:         domain.RoleWorker,
	}, nil
}
