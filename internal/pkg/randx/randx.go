/*
Package randx provides functions for generating cryptographically secure random identifiers.

It is primarily used to generate fixed-length Base62 encoded room names and
UUID connection identifiers.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// Base62Chars defines the character set used for Base62 encoding (0-9, A-Z, a-z).
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base62Len is the total number of characters in the Base62 character set (62).
	Base62Len = int64(len(Base62Chars))

	// RoomNameLength is the fixed length of a generated room name.
	RoomNameLength = 6
)

// RoomName generates a Base62 encoded room name using a cryptographically secure
// random number generator (crypto/rand). The name is short enough to share by hand
// while keeping collisions practically unreachable at the expected room count.
func RoomName() (string, error) {
	result := make([]byte, RoomNameLength)

	for i := 0; i < RoomNameLength; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(Base62Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number for room name: %v", err)
		}

		result[i] = Base62Chars[num.Int64()]
	}

	return string(result), nil
}

// ConnectionID generates a UUID v4 string to serve as a unique identifier for a connection.
func ConnectionID() string {
	return uuid.New().String()
}

// IsValidRoomName checks if the given string is a valid generated room name.
// Validity criteria include: length equals RoomNameLength and all characters
// belong to the Base62Chars set.
func IsValidRoomName(name string) bool {
	if len(name) != RoomNameLength {
		return false
	}

	for _, char := range name {
		if !strings.ContainsRune(Base62Chars, char) {
			return false
		}
	}

	return true
}
