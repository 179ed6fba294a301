package data

// DefensePreset is a built-in enemy base defense.
type DefensePreset struct {
	ID      string
	Label   string
	Defense string
}

// DefensePresets is the built-in preset list; the first entry is the
// default selection.
var DefensePresets = []DefensePreset{
	{"kbn_nm", "キレートビッグフェリスのうわさ Nightmare", "1900"},
	{"ai_nm", "人工知能のうわさ Nightmare", "1500"},
	{"needle_witch_nm", "針の魔女 Nightmare", "1300"},
	{"stage_odd_nm", "舞台装置の魔女(奇数ターン) Nightmare", "1800"},
	{"stage_even_nm", "舞台装置の魔女(偶数ターン) Nightmare", "9039.74"},
	{"birdcage_witch_nm", "鳥かごの魔女 Nightmare", "1500"},
	{"chairman_witch_nm", "委員長の魔女 Nightmare", "1300"},
	{"artist_witch_nm", "芸術家の魔女 Nightmare", "1600"},
	{"mermaid_witch_nm", "人魚の魔女 Nightmare", "1000"},
	{"dog_witch_nm", "犬の魔女 Nightmare", "1300"},
	{"shadow_witch_nm", "影の魔女 Nightmare", "600"},
	{"silver_witch_nm", "銀の魔女 Nightmare", "3800"},
	{"graffiti_witch_nm", "落書きの魔女 Nightmare", "1000"},
	{"box_witch_nm", "ハコの魔女 Nightmare", "1000"},
	{"sweets_witch_nm", "お菓子の魔女 Nightmare", "900"},
	{"darkness_witch_nm", "暗闇の魔女 Nightmare", "1000"},
	{"rosegarden_witch_nm", "薔薇園の魔女 Nightmare", "1000"},
	{"rosegarden_witch_chaos", "薔薇園の魔女Chaos", "2000"},
}

// DefaultDefensePresetID is selected when nothing else is chosen.
func DefaultDefensePresetID() string {
	return DefensePresets[0].ID
}

// FindDefensePreset looks up a built-in preset by ID.
func FindDefensePreset(id string) (DefensePreset, bool) {
	for _, p := range DefensePresets {
		if p.ID == id {
			return p, true
		}
	}
	return DefensePreset{}, false
}
