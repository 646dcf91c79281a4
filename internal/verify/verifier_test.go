package verify

import (
	"strings"
	"testing"

	"github.com/picoin-tech/picoin-core/pkg/types"
)

func wellFormedID() string {
	return strings.Repeat("ab", types.DigestSize)
}

func TestVerifyOrigin(t *testing.T) {
	v := New(nil)
	id := wellFormedID()

	tests := []struct {
		name   string
		origin types.Origin
		id     string
		amount types.Amount
		want   bool
	}{
		{"mining ok", types.OriginMining, id, types.CoinPrecision, true},
		{"p2p ok", types.OriginP2P, id, 1, true},
		{"rewards ok", types.OriginRewards, id, 42, true},
		{"exchange rejected", "exchange", id, types.CoinPrecision, false},
		{"empty origin rejected", "", id, types.CoinPrecision, false},
		{"zero amount rejected", types.OriginMining, id, 0, false},
		{"malformed id rejected", types.OriginMining, "deadbeef", types.CoinPrecision, false},
		{"empty id rejected", types.OriginMining, "", types.CoinPrecision, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.VerifyOrigin(tt.origin, tt.id, tt.amount)
			if got != tt.want {
				t.Errorf("VerifyOrigin(%q, %q, %d) = %v, want %v",
					tt.origin, tt.id, tt.amount, got, tt.want)
			}
		})
	}
}

func TestBatchVerify_OrderAndIndependence(t *testing.T) {
	v := New(nil)
	id := wellFormedID()

	claims := []Claim{
		{Source: "p2p", ID: id, Amount: 100},
		{Source: "exchange", ID: id, Amount: 100},
		{Source: "mining", ID: id, Amount: 100},
	}

	got := v.BatchVerify(claims)
	if len(got) != len(claims) {
		t.Fatalf("BatchVerify returned %d results, want %d", len(got), len(claims))
	}

	want := []bool{true, false, true}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("result[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBatchVerify_MatchesSingleVerification(t *testing.T) {
	v := New(nil)
	id := wellFormedID()

	claims := []Claim{
		{Source: "mining", ID: id, Amount: 1},
		{Source: "rewards", ID: "bad", Amount: 1},
		{Source: "p2p", ID: id, Amount: 0},
		{Source: "", ID: id, Amount: 5},
	}

	batch := v.BatchVerify(claims)
	for i, c := range claims {
		single := v.VerifyOrigin(types.Origin(c.Source), c.ID, c.Amount)
		if batch[i] != single {
			t.Errorf("claim %d: batch = %v, single = %v", i, batch[i], single)
		}
	}
}

func TestBatchVerify_Empty(t *testing.T) {
	v := New(nil)
	got := v.BatchVerify(nil)
	if len(got) != 0 {
		t.Errorf("BatchVerify(nil) = %v, want empty", got)
	}
}

func TestNew_RestrictedSet(t *testing.T) {
	v := New([]types.Origin{types.OriginMining})
	id := wellFormedID()

	if !v.VerifyOrigin(types.OriginMining, id, 1) {
		t.Error("mining should pass in restricted set")
	}
	if v.VerifyOrigin(types.OriginP2P, id, 1) {
		t.Error("p2p should fail when not configured")
	}
}
