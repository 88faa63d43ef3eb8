package x11res

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// authEntry is one record from an Xauthority file, as described in Xau(3).
type authEntry struct {
	family  uint16
	addr    string
	display string
	name    string
	data    []byte
}

// xauthPath returns the Xauthority file path, honoring $XAUTHORITY the same
// way libXau does, falling back to ~/.Xauthority.
func xauthPath() (string, error) {
	if path := os.Getenv("XAUTHORITY"); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrapf(err, "os.UserHomeDir")
	}
	return home + "/.Xauthority", nil
}

// lookupAuth finds the auth entry matching hostname and display number,
// returning an empty name/data pair (MIT-MAGIC-COOKIE-less access) if no
// Xauthority file exists or no entry matches.
func lookupAuth(hostname string, displayNum int) (name string, data []byte, err error) {
	path, err := xauthPath()
	if err != nil {
		return "", nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, nil
		}
		return "", nil, errors.Wrapf(err, "os.Open %q", path)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	wantDisplay := strconv.Itoa(displayNum)
	for {
		entry, err := readAuthEntry(r)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", nil, errors.Wrapf(err, "readAuthEntry")
		}
		if entry.display == wantDisplay && (entry.addr == hostname || entry.family == familyWild) {
			return entry.name, entry.data, nil
		}
	}

	return "", nil, nil
}

const familyWild = 0xffff

func readAuthEntry(r *bufio.Reader) (authEntry, error) {
	var entry authEntry

	family, err := readUint16(r)
	if err != nil {
		return entry, err
	}
	entry.family = family

	addr, err := readAuthField(r)
	if err != nil {
		return entry, err
	}
	entry.addr = string(addr)

	display, err := readAuthField(r)
	if err != nil {
		return entry, err
	}
	entry.display = string(display)

	name, err := readAuthField(r)
	if err != nil {
		return entry, err
	}
	entry.name = string(name)

	data, err := readAuthField(r)
	if err != nil {
		return entry, err
	}
	entry.data = data

	return entry, nil
}

func readUint16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

func readAuthField(r io.Reader) ([]byte, error) {
	n, err := readUint16(r)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("short field read: %w", err)
	}
	return buf, nil
}

// splitDisplay parses a display string such as ":0", ":0.0", or
// "host:10.1" into its hostname, display number, and screen number (0 if
// the display string names no screen).
func splitDisplay(display string) (hostname string, num int, screen int, err error) {
	idx := strings.LastIndex(display, ":")
	if idx < 0 {
		return "", 0, 0, errors.Errorf("invalid display %q: missing ':'", display)
	}
	hostname = display[:idx]
	rest := display[idx+1:]

	numPart := rest
	screenPart := ""
	if dot := strings.Index(rest, "."); dot >= 0 {
		numPart = rest[:dot]
		screenPart = rest[dot+1:]
	}

	num, err = strconv.Atoi(numPart)
	if err != nil {
		return "", 0, 0, errors.Wrapf(err, "invalid display number in %q", display)
	}

	if screenPart != "" {
		screen, err = strconv.Atoi(screenPart)
		if err != nil {
			return "", 0, 0, errors.Wrapf(err, "invalid screen number in %q", display)
		}
	}

	return hostname, num, screen, nil
}
