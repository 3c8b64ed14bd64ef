package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW = 87 // W key (ASCII)
	KeyA = 65 // A key (ASCII)
	KeyS = 83 // S key (ASCII)
	KeyD = 68 // D key (ASCII)
	KeyC = 67 // C key (ASCII)
	KeyI = 73 // I key (ASCII)
	KeyN = 78 // N key (ASCII)
	KeyO = 79 // O key (ASCII)
	KeyR = 82 // R key (ASCII)

	KeySpace        = 32 // Spacebar (ASCII)
	KeyMinus        = 45 // - key (ASCII)
	KeyEqual        = 61 // = key (ASCII)
	KeyLeftBracket  = 91 // [ key (ASCII)
	KeyRightBracket = 93 // ] key (ASCII)

	KeyEsc = 256 // Escape key (GLFW)
)

// Additional non-printable keys
const (
	KeyLeftShift  = 340 // Left Shift (GLFW)
	KeyRightShift = 344 // Right Shift (GLFW)
)
