// Package x11res is the X11 transport collaborator for the resource
// database core: it owns the connection handshake and the small slice of
// the X protocol (InternAtom, GetProperty, ChangeProperty, DeleteProperty)
// needed to read and write RESOURCE_MANAGER on the first screen's root
// window, or SCREEN_RESOURCES on any one screen's root window. It never
// parses resource syntax; that's the xrm package's job.
package x11res

import (
	"encoding/binary"
	"fmt"
	"net"
	"os"

	"github.com/pkg/errors"
)

const (
	protocolMajor = 11
	protocolMinor = 0

	opInternAtom     = 16
	opChangeProperty = 18
	opDeleteProperty = 19
	opGetProperty    = 20

	atomStringType  = 31 // predefined atom STRING
	propModeReplace = 0
)

// Conn is an open connection to an X server, past the setup handshake.
type Conn struct {
	netConn net.Conn
	order   binary.ByteOrder
	roots   []uint32 // root window of each screen, in screen order
	screen  int      // selected screen, from the display string's screen component
	seq     uint16

	resourceManagerAtom uint32
	screenResourcesAtom uint32
}

// Dial connects to the X server named by display (e.g. ":0", "host:0.0",
// "host:0.1" to select screen 1) using the DISPLAY environment variable's
// conventions, completes the setup handshake, and interns RESOURCE_MANAGER
// and SCREEN_RESOURCES for later use.
func Dial(display string) (*Conn, error) {
	if display == "" {
		display = os.Getenv("DISPLAY")
	}
	if display == "" {
		return nil, errors.New("no DISPLAY set and none provided")
	}

	hostname, num, screen, err := splitDisplay(display)
	if err != nil {
		return nil, err
	}

	netConn, err := dialTransport(hostname, num)
	if err != nil {
		return nil, errors.Wrapf(err, "dialTransport")
	}

	authName, authData, err := lookupAuth(effectiveHostname(hostname), num)
	if err != nil {
		netConn.Close()
		return nil, errors.Wrapf(err, "lookupAuth")
	}

	c := &Conn{netConn: netConn, order: binary.BigEndian, screen: screen}
	if err := c.handshake(authName, authData); err != nil {
		netConn.Close()
		return nil, errors.Wrapf(err, "handshake")
	}
	if c.screen >= len(c.roots) {
		netConn.Close()
		return nil, errors.Errorf("display %q names screen %d, server has %d", display, c.screen, len(c.roots))
	}

	atom, err := c.InternAtom("RESOURCE_MANAGER", false)
	if err != nil {
		netConn.Close()
		return nil, errors.Wrapf(err, "InternAtom RESOURCE_MANAGER")
	}
	c.resourceManagerAtom = atom

	atom, err = c.InternAtom("SCREEN_RESOURCES", false)
	if err != nil {
		netConn.Close()
		return nil, errors.Wrapf(err, "InternAtom SCREEN_RESOURCES")
	}
	c.screenResourcesAtom = atom

	return c, nil
}

// screenRoot returns the root window of the selected screen.
func (c *Conn) screenRoot() uint32 {
	return c.roots[c.screen]
}

func effectiveHostname(hostname string) string {
	if hostname == "" {
		h, err := os.Hostname()
		if err == nil {
			return h
		}
	}
	return hostname
}

func dialTransport(hostname string, num int) (net.Conn, error) {
	if hostname == "" || hostname == "unix" {
		sockPath := fmt.Sprintf("/tmp/.X11-unix/X%d", num)
		return net.Dial("unix", sockPath)
	}
	addr := fmt.Sprintf("%s:%d", hostname, 6000+num)
	return net.Dial("tcp", addr)
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.netConn.Close()
}

func pad4(n int) int {
	return (4 - n%4) % 4
}

func (c *Conn) handshake(authName string, authData []byte) error {
	nameLen := len(authName)
	dataLen := len(authData)

	buf := make([]byte, 12+nameLen+pad4(nameLen)+dataLen+pad4(dataLen))
	buf[0] = 'B' // big-endian byte order
	c.order.PutUint16(buf[2:], protocolMajor)
	c.order.PutUint16(buf[4:], protocolMinor)
	c.order.PutUint16(buf[6:], uint16(nameLen))
	c.order.PutUint16(buf[8:], uint16(dataLen))
	copy(buf[12:], authName)
	copy(buf[12+nameLen+pad4(nameLen):], authData)

	if _, err := c.netConn.Write(buf); err != nil {
		return errors.Wrapf(err, "write setup request")
	}

	header := make([]byte, 8)
	if _, err := readFull(c.netConn, header); err != nil {
		return errors.Wrapf(err, "read setup header")
	}

	status := header[0]
	additionalLen := int(c.order.Uint16(header[6:])) * 4

	body := make([]byte, additionalLen)
	if _, err := readFull(c.netConn, body); err != nil {
		return errors.Wrapf(err, "read setup body")
	}

	if status != 1 {
		reasonLen := int(header[1])
		reason := string(body[:min(reasonLen, len(body))])
		return errors.Errorf("X server refused connection: %s", reason)
	}

	return c.parseSetupSuccess(body)
}

// parseSetupSuccess extracts the root window id of every screen from the
// connection setup reply body, per the X11 protocol encoding.
func (c *Conn) parseSetupSuccess(body []byte) error {
	if len(body) < 32 {
		return errors.New("truncated connection setup reply")
	}

	vendorLen := int(c.order.Uint16(body[16:]))
	numScreens := int(body[20])
	numFormats := int(body[21])

	offset := 32
	offset += vendorLen + pad4(vendorLen)
	offset += numFormats * 8

	roots := make([]uint32, 0, numScreens)
	for i := 0; i < numScreens; i++ {
		root, next, err := parseScreen(c.order, body, offset)
		if err != nil {
			return err
		}
		roots = append(roots, root)
		offset = next
	}
	if len(roots) == 0 {
		return errors.New("connection setup reply has no screens")
	}
	c.roots = roots

	return nil
}

// parseScreen reads one SCREEN structure starting at offset, returning its
// root window id and the offset of the structure that follows it. A SCREEN
// is followed by a variable number of DEPTH structures (each in turn
// followed by a variable number of VISUALTYPEs), so its length can only be
// computed by walking through them.
func parseScreen(order binary.ByteOrder, body []byte, offset int) (root uint32, next int, err error) {
	const fixedLen = 40 // root through number-of-depths, before the DEPTH list
	if offset+fixedLen > len(body) {
		return 0, 0, errors.New("truncated SCREEN structure")
	}

	root = order.Uint32(body[offset:])
	numDepths := int(body[offset+39])

	pos := offset + fixedLen
	for d := 0; d < numDepths; d++ {
		const depthFixedLen = 8
		if pos+depthFixedLen > len(body) {
			return 0, 0, errors.New("truncated DEPTH structure")
		}
		numVisuals := int(order.Uint16(body[pos+2:]))
		pos += depthFixedLen + numVisuals*24 // each VISUALTYPE is 24 bytes
	}

	return root, pos, nil
}

func readFull(r net.Conn, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (c *Conn) nextSeq() uint16 {
	c.seq++
	return c.seq
}

// InternAtom returns the atom for name, creating it unless onlyIfExists
// and it does not already exist (in which case the zero atom is returned).
func (c *Conn) InternAtom(name string, onlyIfExists bool) (uint32, error) {
	nameLen := len(name)
	reqLen := 8 + nameLen + pad4(nameLen)
	req := make([]byte, reqLen)
	req[0] = opInternAtom
	if onlyIfExists {
		req[1] = 1
	}
	c.order.PutUint16(req[2:], uint16(reqLen/4))
	c.order.PutUint16(req[4:], uint16(nameLen))
	copy(req[8:], name)

	if err := c.send(req); err != nil {
		return 0, errors.Wrapf(err, "send InternAtom")
	}

	reply, err := c.receiveReply()
	if err != nil {
		return 0, errors.Wrapf(err, "receive InternAtom reply")
	}
	if len(reply) < 12 {
		return 0, errors.New("truncated InternAtom reply")
	}
	return c.order.Uint32(reply[8:]), nil
}

// GetProperty reads the RESOURCE_MANAGER property (STRING type) from the
// first screen's root window, returning (value, false) if the property does
// not exist.
func (c *Conn) GetProperty() (string, bool, error) {
	return c.getProperty(c.roots[0], c.resourceManagerAtom)
}

// GetScreenProperty reads the SCREEN_RESOURCES property (STRING type) from
// the selected screen's root window, returning (value, false) if the
// property does not exist. SCREEN_RESOURCES holds resources specific to one
// screen, layered on top of RESOURCE_MANAGER by clients on a multi-screen
// display.
func (c *Conn) GetScreenProperty() (string, bool, error) {
	return c.getProperty(c.screenRoot(), c.screenResourcesAtom)
}

func (c *Conn) getProperty(window, atom uint32) (string, bool, error) {
	req := make([]byte, 24)
	req[0] = opGetProperty
	req[1] = 0 // delete = false
	c.order.PutUint16(req[2:], uint16(len(req)/4))
	c.order.PutUint32(req[4:], window)
	c.order.PutUint32(req[8:], atom)
	c.order.PutUint32(req[12:], atomStringType)
	c.order.PutUint32(req[16:], 0)          // long-offset
	c.order.PutUint32(req[20:], 0xFFFFFFFF) // long-length, effectively unbounded

	if err := c.send(req); err != nil {
		return "", false, errors.Wrapf(err, "send GetProperty")
	}

	reply, err := c.receiveReply()
	if err != nil {
		return "", false, errors.Wrapf(err, "receive GetProperty reply")
	}
	if len(reply) < 20 {
		return "", false, errors.New("truncated GetProperty reply")
	}

	format := reply[1]
	propType := c.order.Uint32(reply[8:])
	valueLenUnits := c.order.Uint32(reply[16:])
	if propType == 0 {
		return "", false, nil // property does not exist
	}

	var valueLenBytes int
	switch format {
	case 0:
		valueLenBytes = 0
	case 8:
		valueLenBytes = int(valueLenUnits)
	case 16:
		valueLenBytes = int(valueLenUnits) * 2
	case 32:
		valueLenBytes = int(valueLenUnits) * 4
	default:
		return "", false, errors.Errorf("unexpected GetProperty format %d", format)
	}

	const replyHeaderLen = 32
	if len(reply) < replyHeaderLen+valueLenBytes {
		return "", false, errors.New("GetProperty reply value truncated")
	}
	value := reply[replyHeaderLen : replyHeaderLen+valueLenBytes]

	return string(value), true, nil
}

// ChangeProperty overwrites RESOURCE_MANAGER on the first screen's root
// window with value, as STRING/format 8.
func (c *Conn) ChangeProperty(value string) error {
	return c.changeProperty(c.roots[0], c.resourceManagerAtom, value)
}

// ChangeScreenProperty overwrites SCREEN_RESOURCES on the selected screen's
// root window with value, as STRING/format 8.
func (c *Conn) ChangeScreenProperty(value string) error {
	return c.changeProperty(c.screenRoot(), c.screenResourcesAtom, value)
}

func (c *Conn) changeProperty(window, atom uint32, value string) error {
	data := []byte(value)
	dataLen := len(data)
	reqLen := 24 + dataLen + pad4(dataLen)

	req := make([]byte, reqLen)
	req[0] = opChangeProperty
	req[1] = propModeReplace
	c.order.PutUint16(req[2:], uint16(reqLen/4))
	c.order.PutUint32(req[4:], window)
	c.order.PutUint32(req[8:], atom)
	c.order.PutUint32(req[12:], atomStringType)
	req[16] = 8 // format
	c.order.PutUint32(req[20:], uint32(dataLen))
	copy(req[24:], data)

	return errors.Wrapf(c.send(req), "send ChangeProperty")
}

// DeleteProperty removes RESOURCE_MANAGER from the first screen's root
// window entirely.
func (c *Conn) DeleteProperty() error {
	return c.deleteProperty(c.roots[0], c.resourceManagerAtom)
}

// DeleteScreenProperty removes SCREEN_RESOURCES from the selected screen's
// root window entirely.
func (c *Conn) DeleteScreenProperty() error {
	return c.deleteProperty(c.screenRoot(), c.screenResourcesAtom)
}

func (c *Conn) deleteProperty(window, atom uint32) error {
	req := make([]byte, 12)
	req[0] = opDeleteProperty
	c.order.PutUint16(req[2:], uint16(len(req)/4))
	c.order.PutUint32(req[4:], window)
	c.order.PutUint32(req[8:], atom)
	return errors.Wrapf(c.send(req), "send DeleteProperty")
}

func (c *Conn) send(req []byte) error {
	c.nextSeq()
	_, err := c.netConn.Write(req)
	return err
}

// receiveReply reads one server reply, skipping over any events that
// precede it (events and replies share the same 32-byte-aligned wire
// framing; a real client would dispatch events elsewhere, but xrdb has no
// use for them).
func (c *Conn) receiveReply() ([]byte, error) {
	for {
		header := make([]byte, 32)
		if _, err := readFull(c.netConn, header); err != nil {
			return nil, errors.Wrapf(err, "read reply header")
		}

		switch header[0] {
		case 0: // error
			return nil, errors.Errorf("X server error: code=%d", header[1])
		case 1: // reply
			extra := int(c.order.Uint32(header[4:])) * 4
			if extra == 0 {
				return header, nil
			}
			body := make([]byte, extra)
			if _, err := readFull(c.netConn, body); err != nil {
				return nil, errors.Wrapf(err, "read reply body")
			}
			return append(header, body...), nil
		default:
			// Event: discard and keep waiting for our reply.
			continue
		}
	}
}
