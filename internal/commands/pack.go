package commands

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// pack implements the `pack` blueprint command (§4.7): binary-packs a
// list of scalars per a struct-like format string and appends the
// resulting bytes to captured_output. Recognised format characters:
// L/l (uint32/int32), S/s (uint16/int16), C/c (uint8/int8), each
// consuming one value from data, and x (one zero pad byte, no value).
func pack(ctx *Context, param any) (Result, error) {
	obj, ok := param.(map[string]any)
	if !ok {
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, nil
	}

	format, _ := obj["format"].(string)
	values, _ := obj["data"].([]any)

	buf := bytes.NewBufferString(ctx.CapturedOutput)
	vi := 0
	for _, ch := range format {
		if ch == 'x' {
			buf.WriteByte(0)
			continue
		}
		if vi >= len(values) {
			return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1},
				fmt.Errorf("pack: format %q needs more values than the %d supplied", format, len(values))
		}
		if err := packOne(buf, ch, values[vi]); err != nil {
			return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, err
		}
		vi++
	}

	return Result{CapturedOutput: buf.String(), Retcode: 0}, nil
}

func packOne(buf *bytes.Buffer, ch rune, value any) error {
	n, ok := toInt64(value)
	if !ok {
		return fmt.Errorf("pack: value %v is not numeric", value)
	}

	switch ch {
	case 'L':
		return binary.Write(buf, binary.BigEndian, uint32(n))
	case 'l':
		return binary.Write(buf, binary.BigEndian, int32(n))
	case 'S':
		return binary.Write(buf, binary.BigEndian, uint16(n))
	case 's':
		return binary.Write(buf, binary.BigEndian, int16(n))
	case 'C':
		return binary.Write(buf, binary.BigEndian, uint8(n))
	case 'c':
		return binary.Write(buf, binary.BigEndian, int8(n))
	default:
		return fmt.Errorf("pack: unsupported format character %q", ch)
	}
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
