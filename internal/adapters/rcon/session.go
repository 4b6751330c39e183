package rcon

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"strings"
	"time"

	gorcon "github.com/gorcon/rcon"
)

// session is one authenticated console connection. Replies longer than one
// packet are reassembled: every command is followed by a marker packet the
// server answers only after it has flushed the whole reply.
type session struct {
	conn    net.Conn
	r       *bufio.Reader
	timeout time.Duration
	lastID  int32
}

// DialRCON opens and authenticates a session. The dial is bounded by the
// smaller of timeout and the context deadline; timeout also bounds every
// request on the session.
func DialRCON(ctx context.Context, addr, password string, timeout time.Duration) (Conn, error) {
	dialTimeout := timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < dialTimeout {
			dialTimeout = left
		}
	}
	if dialTimeout <= 0 {
		return nil, context.DeadlineExceeded
	}

	d := net.Dialer{Timeout: dialTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	s := &session{conn: conn, r: bufio.NewReader(conn), timeout: timeout}
	if err := s.auth(password); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return s, nil
}

func (s *session) nextID() int32 {
	if s.lastID == math.MaxInt32 {
		s.lastID = 0
	}
	s.lastID++
	return s.lastID
}

func (s *session) deadline() error {
	if s.timeout <= 0 {
		return nil
	}
	return s.conn.SetDeadline(time.Now().Add(s.timeout))
}

func (s *session) write(typ, id int32, body string) error {
	_, err := gorcon.NewPacket(typ, id, body).WriteTo(s.conn)
	return err
}

func (s *session) read() (*gorcon.Packet, error) {
	p := &gorcon.Packet{}
	if _, err := p.ReadFrom(s.r); err != nil {
		return nil, err
	}
	return p, nil
}

// auth sends the password and waits for the auth response, skipping the
// empty value packet some servers send first.
func (s *session) auth(password string) error {
	if err := s.deadline(); err != nil {
		return err
	}
	id := s.nextID()
	if err := s.write(gorcon.SERVERDATA_AUTH, id, password); err != nil {
		return err
	}
	for {
		p, err := s.read()
		if err != nil {
			return err
		}
		if p.Type != gorcon.SERVERDATA_AUTH_RESPONSE {
			continue
		}
		switch p.ID {
		case -1:
			return gorcon.ErrAuthFailed
		case id:
			return nil
		default:
			return gorcon.ErrInvalidPacketID
		}
	}
}

// Execute runs command and returns the reply joined across packets.
func (s *session) Execute(command string) (string, error) {
	switch {
	case command == "":
		return "", gorcon.ErrCommandEmpty
	case len(command) > gorcon.MaxCommandLen:
		return "", gorcon.ErrCommandTooLong
	}
	if err := s.deadline(); err != nil {
		return "", err
	}

	id, marker := s.nextID(), s.nextID()
	if err := s.write(gorcon.SERVERDATA_EXECCOMMAND, id, command); err != nil {
		return "", err
	}
	// A value-typed request is not a command; the server answers it with the
	// marker id once everything queued before it has been sent.
	if err := s.write(gorcon.SERVERDATA_RESPONSE_VALUE, marker, ""); err != nil {
		return "", err
	}

	var reply strings.Builder
	for {
		p, err := s.read()
		if err != nil {
			return "", err
		}
		switch p.ID {
		case id:
			reply.WriteString(p.Body())
		case marker:
			return reply.String(), nil
		default:
			return "", fmt.Errorf("%w: packet id %d, want %d", ErrUnexpectedReply, p.ID, id)
		}
	}
}

func (s *session) Close() error {
	err := s.conn.Close()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}
