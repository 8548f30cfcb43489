package fastbloom

import "testing"

func TestBitVecSetGet(t *testing.T) {
	v := newBitVec(1024)

	v.set(37)
	v.set(38)

	if !v.get(37) {
		t.Error("expected bit 37 to be set")
	}
	if !v.get(38) {
		t.Error("expected bit 38 to be set")
	}
	if v.get(36) {
		t.Error("expected bit 36 to be clear")
	}
	if v.get(39) {
		t.Error("expected bit 39 to be clear")
	}
}

func TestBitVecWordBoundaries(t *testing.T) {
	v := newBitVec(256)

	// First and last bit of each word
	for _, i := range []uint64{0, 63, 64, 127, 128, 191, 192, 255} {
		v.set(i)
	}
	for _, i := range []uint64{0, 63, 64, 127, 128, 191, 192, 255} {
		if !v.get(i) {
			t.Errorf("expected bit %d to be set", i)
		}
	}
	if v.count() != 8 {
		t.Errorf("expected 8 set bits, got %d", v.count())
	}
}

func TestBitVecBinaryOps(t *testing.T) {
	mk := func(bits ...uint64) *bitVec {
		v := newBitVec(128)
		for _, b := range bits {
			v.set(b)
		}
		return v
	}

	a := mk(1, 2, 3)
	b := mk(2, 3, 4)

	or := a.copy()
	or.or(b)
	for _, i := range []uint64{1, 2, 3, 4} {
		if !or.get(i) {
			t.Errorf("or: expected bit %d to be set", i)
		}
	}
	if or.count() != 4 {
		t.Errorf("or: expected 4 set bits, got %d", or.count())
	}

	and := a.copy()
	and.and(b)
	if !and.get(2) || !and.get(3) {
		t.Error("and: expected bits 2 and 3 to be set")
	}
	if and.get(1) || and.get(4) {
		t.Error("and: expected bits 1 and 4 to be clear")
	}

	xor := a.copy()
	xor.xor(b)
	if !xor.get(1) || !xor.get(4) {
		t.Error("xor: expected bits 1 and 4 to be set")
	}
	if xor.get(2) || xor.get(3) {
		t.Error("xor: expected bits 2 and 3 to be clear")
	}

	diff := a.copy()
	diff.andNot(b)
	if !diff.get(1) {
		t.Error("andNot: expected bit 1 to be set")
	}
	if diff.get(2) || diff.get(3) || diff.get(4) {
		t.Error("andNot: expected bits 2, 3, 4 to be clear")
	}
}

func TestBitVecComplementOps(t *testing.T) {
	mk := func(bits ...uint64) *bitVec {
		v := newBitVec(64)
		for _, b := range bits {
			v.set(b)
		}
		return v
	}

	a := mk(1, 2)
	b := mk(2, 3)

	nor := a.copy()
	nor.nor(b)
	if nor.get(1) || nor.get(2) || nor.get(3) {
		t.Error("nor: expected bits 1, 2, 3 to be clear")
	}
	if !nor.get(0) || !nor.get(4) {
		t.Error("nor: expected bits 0 and 4 to be set")
	}

	xnor := a.copy()
	xnor.xnor(b)
	if !xnor.get(2) || !xnor.get(0) {
		t.Error("xnor: expected bits 0 and 2 to be set")
	}
	if xnor.get(1) || xnor.get(3) {
		t.Error("xnor: expected bits 1 and 3 to be clear")
	}

	nand := a.copy()
	nand.nand(b)
	if nand.get(2) {
		t.Error("nand: expected bit 2 to be clear")
	}
	if !nand.get(0) || !nand.get(1) || !nand.get(3) {
		t.Error("nand: expected bits 0, 1, 3 to be set")
	}
}

func TestBitVecClearAndCount(t *testing.T) {
	v := newBitVec(512)
	for i := uint64(0); i < 512; i += 3 {
		v.set(i)
	}
	if v.count() == 0 {
		t.Fatal("expected set bits before clear")
	}

	v.clear()
	if v.count() != 0 {
		t.Errorf("expected 0 set bits after clear, got %d", v.count())
	}
}

func TestBitVecEqual(t *testing.T) {
	a := newBitVec(128)
	b := newBitVec(128)
	a.set(10)
	b.set(10)

	if !a.equal(b) {
		t.Error("expected equal vectors")
	}

	b.set(11)
	if a.equal(b) {
		t.Error("expected unequal vectors after extra bit")
	}

	c := newBitVec(192)
	c.set(10)
	if a.equal(c) {
		t.Error("expected unequal vectors with different sizes")
	}
}

func TestBitVecCopyIndependent(t *testing.T) {
	a := newBitVec(64)
	a.set(5)

	b := a.copy()
	b.set(6)

	if a.get(6) {
		t.Error("copy is not independent of the original")
	}
	if !b.get(5) || !b.get(6) {
		t.Error("copy lost bits")
	}
}
