package wire

import "testing"

func TestHeader_IsQueryIsResponse(t *testing.T) {
	query := Header{Flags: 0x0000}
	if !query.IsQuery() {
		t.Error("IsQuery() = false for QR=0, want true")
	}
	if query.IsResponse() {
		t.Error("IsResponse() = true for QR=0, want false")
	}

	response := Header{Flags: 0x8000}
	if response.IsQuery() {
		t.Error("IsQuery() = true for QR=1, want false")
	}
	if !response.IsResponse() {
		t.Error("IsResponse() = false for QR=1, want true")
	}
}

func TestHeader_RCODEAndOPCODE(t *testing.T) {
	h := Header{Flags: 0x8003} // QR=1, OPCODE=0, RCODE=3
	if got := h.RCODE(); got != 3 {
		t.Errorf("RCODE() = %d, want 3", got)
	}
	if got := h.OPCODE(); got != 0 {
		t.Errorf("OPCODE() = %d, want 0", got)
	}
}
