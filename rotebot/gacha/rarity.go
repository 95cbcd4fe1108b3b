package gacha

import "github.com/kiyotakas/rotebot/rotebot/config"

type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
)

// Tier lists for the ROTE character roster. Classification checks rare
// first, then uncommon, then falls back to common, so a name on two lists
// takes the higher tier.
var (
	RareCharacters = []string{
		"Ayanokoji kiyotaka", "Horikita suzune", "Kushida kikyo",
		"Koenji Rokusuke", "Kiryūin Fūka", "Ichinose Honami",
		"Sakayanagi Arisu", "Takuya yagami",
	}

	UncommonCharacters = []string{
		"Sudo ken", "Hirata yosuke", "Chabashira sae",
	}

	CommonCharacters = []string{
		"Karuizawa Kei", "Tachibana akane",
		"Yamamura miki", "Tsubaki sakurako",
	}
)

// Classify is total: unknown names are common, not an error.
func Classify(name string) Rarity {
	for _, rare := range RareCharacters {
		if name == rare {
			return RarityRare
		}
	}
	for _, uncommon := range UncommonCharacters {
		if name == uncommon {
			return RarityUncommon
		}
	}
	return RarityCommon
}

func (r Rarity) String() string {
	switch r {
	case RarityRare:
		return "rare"
	case RarityUncommon:
		return "uncommon"
	default:
		return "common"
	}
}

// Marker is the display emoji shown next to a character's name.
func (r Rarity) Marker() string {
	switch r {
	case RarityRare:
		return config.EmojiRare
	case RarityUncommon:
		return config.EmojiUncommon
	default:
		return config.EmojiCommon
	}
}

// Weight is the number of pool copies a member of this tier gets. Commons
// are three times as likely as rares of equal roster size.
func (r Rarity) Weight() int {
	switch r {
	case RarityRare:
		return 1
	case RarityUncommon:
		return 2
	default:
		return 3
	}
}
