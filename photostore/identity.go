package photostore

import (
	crand "crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

var guestNameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9]`)

func randomSuffix() string {
	b := make([]byte, 6)
	if _, err := crand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// NewID produces a collision-resistant photo id composed of the current time
// in milliseconds and a random hex suffix. Uniqueness is by construction;
// existing ids are never consulted.
func NewID() string {
	return fmt.Sprintf("photo_%d_%s", time.Now().UnixMilli(), randomSuffix())
}

// fallbackID marks records synthesized for a missing or corrupt sidecar. The
// prefix keeps them visibly distinct from ids assigned at upload.
func fallbackID() string {
	return fmt.Sprintf("fallback_%d_%s", time.Now().UnixMilli(), randomSuffix())
}

// NewFilename derives the display filename for an upload: the upload time as a
// fixed-width YYMMDDHHMMSS string, the guest name stripped to alphanumerics
// ("guest" when no name was given at all), and the original extension as
// uploaded. Two uploads in the same second by identically-sanitized guests
// produce the same name; the store disambiguates at rename time.
func NewFilename(uploadTime time.Time, guestName, originalExtension string) string {
	sanitized := "guest"
	if guestName != "" {
		sanitized = guestNameSanitizer.ReplaceAllString(guestName, "")
	}
	return uploadTime.Format("060102150405") + sanitized + originalExtension
}

// tempFilename names the file holding upload bytes before the rename to the
// final deterministic name.
func tempFilename(originalExtension string) string {
	return "temp_" + uuid.New().String() + originalExtension
}
