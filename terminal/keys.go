package terminal

// Key identifies a decoded input key.
type Key uint8

const (
	// KeyNone is an unrecognized byte sequence, delivered as a no-op
	// so garbled input never disturbs the caller.
	KeyNone Key = iota

	// KeyTimeout means the poll window expired with no input. It is
	// not an error; callers use it to run periodic work.
	KeyTimeout

	KeyRune  // printable character, see Event.Rune
	KeyCtrl  // control byte, see Event.Ctrl
	KeyDigit // ASCII digit, see Event.Digit

	KeyEnter
	KeyTab
	KeyEscape
	KeyBackspace

	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
)

var keyNames = [...]string{
	KeyNone:      "None",
	KeyTimeout:   "Timeout",
	KeyRune:      "Rune",
	KeyCtrl:      "Ctrl",
	KeyDigit:     "Digit",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyEscape:    "Escape",
	KeyBackspace: "Backspace",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyHome:      "Home",
	KeyEnd:       "End",
}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "Unknown"
}

// Event is a single decoded key event. Exactly one is produced per
// poll; the payload fields are valid only for the keys noted.
type Event struct {
	Key   Key
	Rune  rune // KeyRune, KeyDigit
	Ctrl  byte // KeyCtrl: raw control byte 0x00-0x1f
	Digit int  // KeyDigit: 0-9
}

// CSI sequence bodies (bytes between "ESC [" and inclusive of the
// terminator) recognized by the decoder. Anything else that is
// well-formed consumes as KeyNone.
var csiKeys = map[string]Key{
	"A":  KeyUp,
	"B":  KeyDown,
	"C":  KeyRight,
	"D":  KeyLeft,
	"H":  KeyHome,
	"F":  KeyEnd,
	"1~": KeyHome,
	"4~": KeyEnd,
	"5~": KeyPageUp,
	"6~": KeyPageDown,
}

// SS3 bodies (byte after "ESC O"), sent by terminals in application
// cursor mode.
var ss3Keys = map[string]Key{
	"A": KeyUp,
	"B": KeyDown,
	"C": KeyRight,
	"D": KeyLeft,
	"H": KeyHome,
	"F": KeyEnd,
}

// lookupCSI maps a CSI body to a key. The string([]byte) conversion
// inline in the map access does not allocate.
func lookupCSI(seq []byte) (Key, bool) {
	k, ok := csiKeys[string(seq)]
	return k, ok
}

func lookupSS3(seq []byte) (Key, bool) {
	k, ok := ss3Keys[string(seq)]
	return k, ok
}
