package presenter

import (
	"fmt"
	"strconv"

	"github.com/eiannone/keyboard"
)

// maxDigits bounds input length; buildings have at most 20 floors.
const maxDigits = 3

// LineEditor turns single key presses into floor numbers.
type LineEditor struct {
	buf []rune
}

type KeyResult int

const (
	KeyNone KeyResult = iota
	KeySubmit
	KeyQuit
)

// Feed consumes one key press. On KeySubmit the returned floor is the parsed number.
func (e *LineEditor) Feed(char rune, key keyboard.Key) (KeyResult, int) {
	switch key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return KeyQuit, 0
	case keyboard.KeyBackspace, keyboard.KeyBackspace2:
		if len(e.buf) > 0 {
			e.buf = e.buf[:len(e.buf)-1]
		}
		return KeyNone, 0
	case keyboard.KeyEnter:
		if len(e.buf) == 0 {
			return KeyNone, 0
		}
		floor, _ := strconv.Atoi(string(e.buf))
		e.buf = e.buf[:0]
		return KeySubmit, floor
	}
	if char == 'q' || char == 'Q' {
		return KeyQuit, 0
	}
	if char >= '0' && char <= '9' && len(e.buf) < maxDigits {
		e.buf = append(e.buf, char)
	}
	return KeyNone, 0
}

func (e *LineEditor) Pending() string {
	return string(e.buf)
}

// ReadKeys reads floor numbers from the terminal and sends them on calls until the user quits.
// calls is closed on return.
func ReadKeys(calls chan<- int) error {
	defer close(calls)
	if err := keyboard.Open(); err != nil {
		return fmt.Errorf("opening keyboard: %w", err)
	}
	defer keyboard.Close()

	var editor LineEditor
	for {
		char, key, err := keyboard.GetKey()
		if err != nil {
			return fmt.Errorf("reading key: %w", err)
		}
		switch res, floor := editor.Feed(char, key); res {
		case KeyQuit:
			return nil
		case KeySubmit:
			calls <- floor
		default:
			fmt.Printf("\rCall floor: %-3s", editor.Pending())
		}
	}
}
