package native

import (
	"strings"
	"unicode/utf16"
	"unsafe"
)

// GoString copies a NUL-terminated C string. A nil pointer yields "".
func GoString(p *byte) string {
	if p == nil {
		return ""
	}
	var n int
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}

// GoUTF16String copies a NUL-terminated UTF-16 C string, replacing unpaired
// surrogates with U+FFFD. A nil pointer yields "".
func GoUTF16String(p *uint16) string {
	if p == nil {
		return ""
	}
	var n int
	for *(*uint16)(unsafe.Add(unsafe.Pointer(p), n*2)) != 0 {
		n++
	}
	return string(utf16.Decode(unsafe.Slice(p, n)))
}

// UTF16z encodes s as a NUL-terminated UTF-16 code-unit slice. Interior NUL
// would silently truncate on the C side, so it is rejected here.
func UTF16z(s string) ([]uint16, error) {
	if strings.ContainsRune(s, 0) {
		return nil, &ArgumentError{Reason: "text contains an interior NUL byte"}
	}
	units := utf16.Encode([]rune(s))
	return append(units, 0), nil
}

// CStrings converts values into NUL-terminated C strings and returns the
// pointer array expected by char** parameters. The returned slice keeps the
// string copies alive for the duration of the native call.
func CStrings(name string, values []string) ([]*byte, error) {
	out := make([]*byte, len(values))
	for i, value := range values {
		if err := CheckNoNUL(name, value); err != nil {
			return nil, err
		}
		buf := append([]byte(value), 0)
		out[i] = &buf[0]
	}
	return out, nil
}

// CheckNoNUL rejects strings that cannot cross the C boundary intact.
// purego terminates string arguments at the first NUL, which would silently
// truncate the input instead of failing.
func CheckNoNUL(name, s string) error {
	if strings.ContainsRune(s, 0) {
		return &ArgumentError{Reason: name + " contains an interior NUL byte"}
	}
	return nil
}
