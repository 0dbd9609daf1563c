package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrInvalidDescription is returned when a font description cannot be
	// turned into a Font.
	ErrInvalidDescription = errors.New("text: invalid font description")

	// ErrNilFont is returned when a SpriteFont is rebuilt from a nil Font.
	ErrNilFont = errors.New("text: nil font")
)
