package trace

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode holds CBOR encoding options with canonical mode for
// deterministic encoding.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("trace: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// MarshalSession serializes a Session to CBOR bytes.
func MarshalSession(s *Session) ([]byte, error) {
	return cborEncMode.Marshal(s)
}

// UnmarshalSession deserializes a Session from CBOR bytes.
func UnmarshalSession(data []byte) (*Session, error) {
	var s Session
	if err := cbor.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("trace: unmarshal session: %w", err)
	}
	return &s, nil
}
