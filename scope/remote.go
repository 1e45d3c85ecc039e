// Package scope drives a network-attached oscilloscope. The scope hardware
// itself (sampling, triggering, gain) is configured out of band; this client
// only arms it and transfers the captured segment waves.
package scope

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"net"
)

// Remote is a scope reachable over TCP. Arm and transfer are simple
// request/response exchanges: a command line, an "ok" line, and for
// transfers a binary block of little-endian uint16 samples per segment.
type Remote struct {
	conn        net.Conn
	r           *bufio.Reader
	maxSegments int
	maxSamples  int
}

// Dial connects to the scope at addr. Transfers announcing more than
// maxSegments segments or maxSamples samples per segment are rejected
// before anything is allocated for them.
func Dial(addr string, maxSegments, maxSamples int) (*Remote, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial scope %v : %v", addr, err)
	}
	return &Remote{
		conn:        conn,
		r:           bufio.NewReader(conn),
		maxSegments: maxSegments,
		maxSamples:  maxSamples,
	}, nil
}

func (s *Remote) sendCommand(cmd string) error {
	if _, err := s.conn.Write([]byte(cmd + "\n")); err != nil {
		return fmt.Errorf("failed to send %v : %v", cmd, err)
	}
	line, err := s.r.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read %v response : %v", cmd, err)
	}
	if line != "ok\n" {
		return fmt.Errorf("scope rejected %v : %v", cmd, line)
	}
	return nil
}

// Arm arms the scope for the next trigger.
func (s *Remote) Arm() error {
	return s.sendCommand("arm")
}

// CaptureAndTransfer blocks until the scope has captured the armed
// acquisition and returns one wave per segment.
func (s *Remote) CaptureAndTransfer() ([][]uint16, error) {
	if err := s.sendCommand("transfer"); err != nil {
		return nil, err
	}
	var hdr [8]byte
	if _, err := io.ReadFull(s.r, hdr[:]); err != nil {
		return nil, fmt.Errorf("failed to read transfer header : %v", err)
	}
	numSegments := binary.LittleEndian.Uint32(hdr[0:4])
	numSamples := binary.LittleEndian.Uint32(hdr[4:8])
	if numSegments > uint32(s.maxSegments) {
		return nil, fmt.Errorf("scope announced %d segments, at most %d configured", numSegments, s.maxSegments)
	}
	if numSamples > uint32(s.maxSamples) {
		return nil, fmt.Errorf("scope announced %d samples per segment, at most %d configured", numSamples, s.maxSamples)
	}

	waves := make([][]uint16, numSegments)
	buf := make([]byte, 2*numSamples)
	for i := range waves {
		if _, err := io.ReadFull(s.r, buf); err != nil {
			return nil, fmt.Errorf("failed to read segment %d : %v", i, err)
		}
		wave := make([]uint16, numSamples)
		for j := range wave {
			wave[j] = binary.LittleEndian.Uint16(buf[2*j:])
		}
		waves[i] = wave
	}
	return waves, nil
}

// Close closes the connection to the scope.
func (s *Remote) Close() error {
	return s.conn.Close()
}
