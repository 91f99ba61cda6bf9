package block

import "testing"

func TestMSUMask(t *testing.T) {
	tests := []struct {
		nbits int
		want  uint8
	}{
		{1, 0x01},
		{4, 0x0F},
		{7, 0x7F},
		{8, 0xFF},
	}
	for _, tt := range tests {
		if got := MSUMask[uint8](tt.nbits); got != tt.want {
			t.Errorf("MSUMask[uint8](%d) = 0x%X, want 0x%X", tt.nbits, got, tt.want)
		}
	}
}

func TestMaskPaddingInvariant(t *testing.T) {
	blocks := []uint8{0xFF, 0xFF}
	Mask(blocks, 12)
	if blocks[1] != 0x0F {
		t.Errorf("Mask left high bits set: block[1] = 0x%X", blocks[1])
	}
	if TestBit(blocks, 12) || TestBit(blocks, 15) {
		t.Error("bits at or above nbits must be zero after Mask")
	}
}

func TestSetTestBit(t *testing.T) {
	blocks := make([]uint8, 2)
	SetBit(blocks, 3, true)
	SetBit(blocks, 9, true)
	if !TestBit(blocks, 3) || !TestBit(blocks, 9) {
		t.Fatal("expected bits 3 and 9 set")
	}
	if TestBit(blocks, 4) {
		t.Error("bit 4 should be clear")
	}
	SetBit(blocks, 3, false)
	if TestBit(blocks, 3) {
		t.Error("bit 3 should have been cleared")
	}
}

func TestShiftLeft(t *testing.T) {
	blocks := []uint8{0x01, 0x00}
	ShiftLeft(blocks, 9)
	if blocks[0] != 0x00 || blocks[1] != 0x02 {
		t.Errorf("got %02X %02X, want 00 02", blocks[0], blocks[1])
	}
}

func TestShiftLeftOverflowClears(t *testing.T) {
	blocks := []uint8{0xFF, 0xFF}
	ShiftLeft(blocks, 20)
	if blocks[0] != 0 || blocks[1] != 0 {
		t.Errorf("shift >= width should clear all blocks, got %02X %02X", blocks[0], blocks[1])
	}
}

func TestShiftRightLogical(t *testing.T) {
	blocks := []uint8{0x00, 0x02}
	ShiftRightLogical(blocks, 9)
	if blocks[0] != 0x01 || blocks[1] != 0x00 {
		t.Errorf("got %02X %02X, want 01 00", blocks[0], blocks[1])
	}
}

func TestShiftRightArithmeticSignExtends(t *testing.T) {
	// -8 in a 4-bit two's complement value stored in one byte: 0b1000
	blocks := []uint8{0x08}
	ShiftRightArithmetic(blocks, 1, 4)
	// -8 >> 1 == -4 == 0b1100 in 4 bits
	if blocks[0] != 0x0C {
		t.Errorf("got 0x%X, want 0x0C", blocks[0])
	}
}

func TestAddWithCarry(t *testing.T) {
	acc := []uint8{0xFF, 0x00}
	addend := []uint8{0x01, 0x00}
	carry := AddWithCarry(acc, addend)
	if acc[0] != 0x00 || acc[1] != 0x01 {
		t.Errorf("got %02X %02X, want 00 01", acc[0], acc[1])
	}
	if carry {
		t.Error("did not expect carry out of the top block")
	}
}

func TestAddWithCarryOverflowsTopBlock(t *testing.T) {
	acc := []uint8{0xFF}
	addend := []uint8{0x01}
	carry := AddWithCarry(acc, addend)
	if acc[0] != 0x00 {
		t.Errorf("got 0x%X, want 0x00", acc[0])
	}
	if !carry {
		t.Error("expected carry out of the top block")
	}
}

func TestFindMsb(t *testing.T) {
	tests := []struct {
		blocks []uint8
		want   int
	}{
		{[]uint8{0x00, 0x00}, -1},
		{[]uint8{0x01, 0x00}, 0},
		{[]uint8{0x00, 0x80}, 15},
		{[]uint8{0xFF, 0x01}, 8},
	}
	for _, tt := range tests {
		if got := FindMsb(tt.blocks); got != tt.want {
			t.Errorf("FindMsb(%v) = %d, want %d", tt.blocks, got, tt.want)
		}
	}
}

func TestRoundingDecisionTable(t *testing.T) {
	// bit layout, LSB to MSB: sticky bits ... round guard
	tests := []struct {
		name   string
		blocks []uint8
		guard  int
		want   int
	}{
		{"guard clear rounds down", []uint8{0b0000}, 2, -1},
		{"guard set, round+sticky clear is a tie", []uint8{0b0100}, 2, 0},
		{"guard set, round set rounds up", []uint8{0b0110}, 2, 1},
		{"guard set, sticky set rounds up", []uint8{0b1001}, 3, 1},
		{"guard set with nothing below is a tie", []uint8{0b0001}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundingDecision(tt.blocks, tt.guard); got != tt.want {
				t.Errorf("RoundingDecision(%04b, guard=%d) = %d, want %d", tt.blocks[0], tt.guard, got, tt.want)
			}
		})
	}
}

func TestIsZeroEqual(t *testing.T) {
	a := []uint8{0, 0}
	if !IsZero(a) {
		t.Error("expected IsZero")
	}
	b := []uint8{0, 1}
	if IsZero(b) {
		t.Error("did not expect IsZero")
	}
	if !Equal(a, []uint8{0, 0}) {
		t.Error("expected Equal")
	}
	if Equal(a, b) {
		t.Error("did not expect Equal")
	}
}
