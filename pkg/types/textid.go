package types

import (
	"crypto/sha1"
	"database/sql/driver"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// TextID is a SHA-1 content hash of an opinion text (20 bytes). Positions
// are only meaningful against the text they were computed on, so saved
// quotations record the TextID of their text.
type TextID [20]byte

// ComputeTextID computes SHA-1("text {len}\0{content}") where len is the
// byte length of content.
func ComputeTextID(content string) TextID {
	header := fmt.Sprintf("text %d\x00", len(content))
	h := sha1.New()
	h.Write([]byte(header))
	h.Write([]byte(content))

	var id TextID
	copy(id[:], h.Sum(nil))
	return id
}

// Hex returns 40-character hex string.
func (id TextID) Hex() string {
	return hex.EncodeToString(id[:])
}

// String implements Stringer (returns Hex()).
func (id TextID) String() string {
	return id.Hex()
}

// IsZero reports whether id is unset.
func (id TextID) IsZero() bool {
	return id == TextID{}
}

// ParseTextID parses 40-char hex string to TextID.
func ParseTextID(hexStr string) (TextID, error) {
	if len(hexStr) != 40 {
		return TextID{}, fmt.Errorf("invalid text ID length: expected 40, got %d", len(hexStr))
	}

	decoded, err := hex.DecodeString(hexStr)
	if err != nil {
		return TextID{}, fmt.Errorf("invalid hex string: %w", err)
	}

	var id TextID
	copy(id[:], decoded)
	return id, nil
}

// MarshalJSON implements json.Marshaler.
func (id TextID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.Hex())
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *TextID) UnmarshalJSON(data []byte) error {
	var hexStr string
	if err := json.Unmarshal(data, &hexStr); err != nil {
		return err
	}

	parsed, err := ParseTextID(hexStr)
	if err != nil {
		return err
	}

	*id = parsed
	return nil
}

// Value implements driver.Valuer for SQL serialization.
func (id TextID) Value() (driver.Value, error) {
	return id.Hex(), nil
}

// Scan implements sql.Scanner for SQL deserialization.
func (id *TextID) Scan(value interface{}) error {
	if value == nil {
		return fmt.Errorf("cannot scan nil into TextID")
	}

	var hexStr string
	switch v := value.(type) {
	case string:
		hexStr = v
	case []byte:
		hexStr = string(v)
	default:
		return fmt.Errorf("cannot scan type %T into TextID", value)
	}

	parsed, err := ParseTextID(hexStr)
	if err != nil {
		return err
	}

	*id = parsed
	return nil
}
