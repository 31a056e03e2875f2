package terminal

import "strings"

const (
	interruptName = "interrupt"
	escape        = 0x1b
)

// escape sequences of the keys that have no single byte representation
var sequences = map[string]string{
	"[A":  "up",
	"[B":  "down",
	"[C":  "right",
	"[D":  "left",
	"OP":  "f1",
	"OQ":  "f2",
	"OR":  "f3",
	"OS":  "f4",
	"[P":  "pause",
	"[2~": "insert",
	"[3~": "delete",
}

// decodeKeys translates raw terminal input into key names as used by the
// keymap. Unknown escape sequences are dropped.
func decodeKeys(input []byte) []string {
	var names []string

	for i := 0; i < len(input); i++ {
		b := input[i]
		switch {
		case b == escape:
			name, length := decodeSequence(input[i+1:])
			if name != "" {
				names = append(names, name)
			}
			i += length

		case b == keyInterrupt:
			names = append(names, interruptName)
		case b == ' ':
			names = append(names, "space")
		case b == '\r' || b == '\n':
			names = append(names, "return")
		case b == '\t':
			names = append(names, "tab")
		case b == 0x7f:
			names = append(names, "backspace")
		case b > ' ' && b < 0x7f:
			names = append(names, strings.ToLower(string(rune(b))))
		}
	}
	return names
}

// decodeSequence returns the key name of the escape sequence at the start of
// input and the number of bytes it consists of. A lone escape byte is the
// escape key.
func decodeSequence(input []byte) (string, int) {
	if len(input) == 0 || (input[0] != '[' && input[0] != 'O') {
		return "escape", 0
	}

	// a sequence ends with the first byte in the range @ to ~ after the
	// introducer
	for end := 1; end < len(input); end++ {
		if input[end] >= '@' && input[end] <= '~' {
			seq := string(input[:end+1])
			if name, ok := sequences[seq]; ok {
				return name, end + 1
			}
			return "", end + 1
		}
	}
	return "", len(input)
}
