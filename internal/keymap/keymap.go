// Package keymap maps physical key names to CHIP-8 keypad codes and control
// actions.
//
// A keymap file contains one binding per line, a key name followed by "="
// and either a hexadecimal keypad digit or one of the actions "pause" and
// "quit". Lines starting with "#" are comments:
//
//	# top row
//	1 = 1
//	2 = 2
//	f1 = pause
//	escape = quit
package keymap

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/retroenv/retrochip8/internal/chip8"
)

// Action is the effect of a bound key.
type Action int

const (
	// ActionKey presses and releases a keypad key.
	ActionKey Action = iota
	// ActionPause toggles the pause state.
	ActionPause
	// ActionQuit stops the interpreter.
	ActionQuit
)

const (
	pauseName = "pause"
	quitName  = "quit"
)

var errDuplicateKey = errors.New("duplicate key binding")

// Binding is the target of a key name.
type Binding struct {
	Action Action
	Key    int // keypad code for ActionKey
}

// Keymap maps lowercase key names to bindings.
type Keymap struct {
	bindings map[string]Binding
}

// file is the parsed form of a keymap file.
type file struct {
	Entries []*entry `@@*`
}

// entry: name = target
type entry struct {
	Pos    lexer.Position
	Name   string `@Name "="`
	Target string `@Name`
}

var keymapLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Assign", Pattern: `=`},
	{Name: "Name", Pattern: `[^\s=#]+`},
})

var parser = participle.MustBuild[file](
	participle.Lexer(keymapLexer),
	participle.Elide("Whitespace", "Comment"),
)

// defaultLayout maps the left block of a QWERTY keyboard to the keypad
// layout of the COSMAC VIP:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
var defaultLayout = map[string]int{
	"1": 0x1, "2": 0x2, "3": 0x3, "4": 0xC,
	"q": 0x4, "w": 0x5, "e": 0x6, "r": 0xD,
	"a": 0x7, "s": 0x8, "d": 0x9, "f": 0xE,
	"z": 0xA, "x": 0x0, "c": 0xB, "v": 0xF,
}

// Default returns the keymap of the 1234/QWER/ASDF/ZXCV layout with F1,
// Pause and Space toggling the pause state and Escape quitting.
func Default() *Keymap {
	k := &Keymap{bindings: make(map[string]Binding, len(defaultLayout)+4)}
	for name, key := range defaultLayout {
		k.bindings[name] = Binding{Action: ActionKey, Key: key}
	}
	k.bindings["f1"] = Binding{Action: ActionPause}
	k.bindings["pause"] = Binding{Action: ActionPause}
	k.bindings["space"] = Binding{Action: ActionPause}
	k.bindings["escape"] = Binding{Action: ActionQuit}
	return k
}

// Parse parses the keymap source. The filename is only used in error
// messages.
func Parse(filename, source string) (*Keymap, error) {
	parsed, err := parser.ParseString(filename, source)
	if err != nil {
		return nil, fmt.Errorf("parsing keymap: %w", err)
	}

	k := &Keymap{bindings: make(map[string]Binding, len(parsed.Entries))}
	for _, e := range parsed.Entries {
		name := strings.ToLower(e.Name)
		if _, ok := k.bindings[name]; ok {
			return nil, fmt.Errorf("%s: %w: %s", e.Pos, errDuplicateKey, name)
		}

		binding, err := parseTarget(e.Target)
		if err != nil {
			return nil, fmt.Errorf("%s: key %s: %w", e.Pos, name, err)
		}
		k.bindings[name] = binding
	}
	return k, nil
}

// Load reads and parses a keymap file.
func Load(path string) (*Keymap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keymap file %s: %w", path, err)
	}
	return Parse(path, string(data))
}

func parseTarget(target string) (Binding, error) {
	switch strings.ToLower(target) {
	case pauseName:
		return Binding{Action: ActionPause}, nil
	case quitName:
		return Binding{Action: ActionQuit}, nil
	}

	key, err := strconv.ParseUint(target, 16, 8)
	if err != nil || key >= chip8.KeyCount {
		return Binding{}, fmt.Errorf("invalid target %q, expected keypad digit 0-F, %s or %s",
			target, pauseName, quitName)
	}
	return Binding{Action: ActionKey, Key: int(key)}, nil
}

// Lookup returns the binding of the key name. Names are matched case
// insensitive.
func (k *Keymap) Lookup(name string) (Binding, bool) {
	binding, ok := k.bindings[strings.ToLower(name)]
	return binding, ok
}

// Len returns the number of bound keys.
func (k *Keymap) Len() int {
	return len(k.bindings)
}

// Names returns the sorted list of bound key names.
func (k *Keymap) Names() []string {
	names := make([]string, 0, len(k.bindings))
	for name := range k.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
