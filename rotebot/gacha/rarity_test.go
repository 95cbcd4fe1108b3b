package gacha

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		want Rarity
	}{
		{"Ayanokoji kiyotaka", RarityRare},
		{"Sakayanagi Arisu", RarityRare},
		{"Sudo ken", RarityUncommon},
		{"Karuizawa Kei", RarityCommon},
		{"not a real character", RarityCommon},
		{"", RarityCommon},
	}
	for _, tt := range tests {
		if got := Classify(tt.name); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRarityWeight(t *testing.T) {
	if RarityRare.Weight() != 1 || RarityUncommon.Weight() != 2 || RarityCommon.Weight() != 3 {
		t.Errorf("unexpected weights: rare=%d uncommon=%d common=%d",
			RarityRare.Weight(), RarityUncommon.Weight(), RarityCommon.Weight())
	}
}

func TestRarityMarker(t *testing.T) {
	if RarityRare.Marker() == RarityCommon.Marker() {
		t.Error("rare and common markers must differ")
	}
	for _, r := range []Rarity{RarityCommon, RarityUncommon, RarityRare} {
		if r.Marker() == "" {
			t.Errorf("rarity %v has empty marker", r)
		}
	}
}
