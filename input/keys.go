// Package input provides keyboard state for the per-frame movement pipeline.
package input

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownKey is returned when a key name has no binding.
var ErrUnknownKey = errors.New("unknown key")

// Key identifies a keyboard key. Values match raylib key codes so a Key
// can be passed straight to rl.IsKeyDown.
type Key int32

// Named keys. Letters and digits use their ASCII codes.
const (
	KeyNone Key = 0

	KeySpace     Key = 32
	KeyComma     Key = 44
	KeyMinus     Key = 45
	KeyPeriod    Key = 46
	KeySlash     Key = 47
	KeySemicolon Key = 59
	KeyEqual     Key = 61

	KeyA Key = 65
	KeyD Key = 68
	KeyE Key = 69
	KeyI Key = 73
	KeyJ Key = 74
	KeyK Key = 75
	KeyL Key = 76
	KeyO Key = 79
	KeyP Key = 80
	KeyQ Key = 81
	KeyR Key = 82
	KeyS Key = 83
	KeyT Key = 84
	KeyU Key = 85
	KeyW Key = 87
	KeyZ Key = 90

	KeyEscape    Key = 256
	KeyEnter     Key = 257
	KeyTab       Key = 258
	KeyBackspace Key = 259
	KeyRight     Key = 262
	KeyLeft      Key = 263
	KeyDown      Key = 264
	KeyUp        Key = 265
	KeyPageUp    Key = 266
	KeyPageDown  Key = 267
	KeyHome      Key = 268
	KeyEnd       Key = 269
	KeyF1        Key = 290
	KeyF2        Key = 291
	KeyF3        Key = 292
	KeyF4        Key = 293
	KeyF5        Key = 294
	KeyF6        Key = 295

	KeyLeftShift    Key = 340
	KeyLeftControl  Key = 341
	KeyLeftAlt      Key = 342
	KeyRightShift   Key = 344
	KeyRightControl Key = 345
	KeyRightAlt     Key = 346
)

var keyNames = map[Key]string{
	KeyNone:         "none",
	KeySpace:        "space",
	KeyComma:        "comma",
	KeyMinus:        "minus",
	KeyPeriod:       "period",
	KeySlash:        "slash",
	KeySemicolon:    "semicolon",
	KeyEqual:        "equal",
	KeyEscape:       "escape",
	KeyEnter:        "enter",
	KeyTab:          "tab",
	KeyBackspace:    "backspace",
	KeyRight:        "right",
	KeyLeft:         "left",
	KeyDown:         "down",
	KeyUp:           "up",
	KeyPageUp:       "page_up",
	KeyPageDown:     "page_down",
	KeyHome:         "home",
	KeyEnd:          "end",
	KeyF1:           "f1",
	KeyF2:           "f2",
	KeyF3:           "f3",
	KeyF4:           "f4",
	KeyF5:           "f5",
	KeyF6:           "f6",
	KeyLeftShift:    "left_shift",
	KeyLeftControl:  "left_control",
	KeyLeftAlt:      "left_alt",
	KeyRightShift:   "right_shift",
	KeyRightControl: "right_control",
	KeyRightAlt:     "right_alt",
}

var keysByName map[string]Key

func init() {
	for c := 'a'; c <= 'z'; c++ {
		keyNames[Key(c-'a'+'A')] = string(c)
	}
	for c := '0'; c <= '9'; c++ {
		keyNames[Key(c)] = string(c)
	}
	keysByName = make(map[string]Key, len(keyNames))
	for k, name := range keyNames {
		keysByName[name] = k
	}
}

// ParseKey returns the key for a binding name such as "left", "w" or "page_up".
// Names are case-insensitive.
func ParseKey(name string) (Key, error) {
	k, ok := keysByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return KeyNone, fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	return k, nil
}

// String returns the binding name of the key.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", int32(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Key) MarshalText() ([]byte, error) {
	if _, ok := keyNames[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKey, int32(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// KeyNames returns all known binding names, sorted.
func KeyNames() []string {
	names := make([]string, 0, len(keysByName))
	for name := range keysByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
