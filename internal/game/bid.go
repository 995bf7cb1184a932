package game

import "fmt"

// Bid is a claim that at least Quantity dice across the table show Face.
type Bid struct {
	Quantity int
	Face     int
}

// String formats a bid as "3x4s".
func (b Bid) String() string {
	return fmt.Sprintf("%dx%ds", b.Quantity, b.Face)
}

// beats reports whether b outranks other under the standard ordering:
// strictly higher quantity, or the same quantity on a higher face.
func (b Bid) beats(other Bid) bool {
	if b.Quantity != other.Quantity {
		return b.Quantity > other.Quantity
	}
	return b.Face > other.Face
}

// BidLegal reports whether b is a legal bid over cur (nil for an opening bid)
// with totalDice on the table. Quantity must stay within [1, totalDice] and
// Face within [1, faces].
//
// With wildOnes, transitions involving face 1 use the wild ordering instead:
// staying on ones needs a strictly greater quantity, leaving ones needs at
// least twice the quantity plus one, and moving onto ones needs at least half
// the quantity rounded up.
func BidLegal(b Bid, cur *Bid, totalDice, faces int, wildOnes bool) bool {
	if b.Quantity < 1 || b.Quantity > totalDice {
		return false
	}
	if b.Face < 1 || b.Face > faces {
		return false
	}
	if cur == nil {
		return true
	}

	if wildOnes {
		switch {
		case cur.Face == 1 && b.Face == 1:
			return b.Quantity > cur.Quantity
		case cur.Face == 1 && b.Face != 1:
			return b.Quantity >= 2*cur.Quantity+1
		case cur.Face != 1 && b.Face == 1:
			return b.Quantity >= (cur.Quantity+1)/2
		}
	}
	return b.beats(*cur)
}

// MinimalLegalBid returns the smallest legal bid over cur, scanning in
// ascending (quantity, face) order, and false when no legal bid remains.
func MinimalLegalBid(cur *Bid, totalDice, faces int, wildOnes bool) (Bid, bool) {
	for q := 1; q <= totalDice; q++ {
		for f := 1; f <= faces; f++ {
			b := Bid{Quantity: q, Face: f}
			if BidLegal(b, cur, totalDice, faces, wildOnes) {
				return b, true
			}
		}
	}
	return Bid{}, false
}
