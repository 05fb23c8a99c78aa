package editor

// Clipboard provides editor-level clipboard integration.
//
// Errors never reach the UI; failed reads and writes are logged.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}
