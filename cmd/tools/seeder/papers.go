package main

type paperRow struct {
	SKU          string
	Name         string
	GSM          float64
	Type         string
	Finish       string
	ParentWidth  float64
	ParentHeight float64
	CostPerSheet float64
	Usage        string
}

// papers is the house stock list. Cost is per parent sheet.
var papers = []paperRow{
	{"1301543", "Accent 40# Opaque Text 19x12.5", 59, "Uncoated", "Uncoated", 19, 12.5, 0.05, "B/W Text and Manga"},
	{"1301480", "Accent 50# Opaque Text 11x17", 74, "Uncoated", "Uncoated", 11, 17, 0.04, "B/W Text and Manga"},
	{"1301737", "Accent 50# Opaque Text 12x18", 74, "Uncoated", "Uncoated", 12, 18, 0.05, "B/W Text and Manga"},
	{"1301542", "Accent 60# Opaque Text 19x12.5", 89, "Uncoated", "Uncoated", 19, 12.5, 0.06, "B/W Text and Manga"},
	{"1301969", "Accent Opq Warm White 60# Opaque Text 12x18", 89, "Uncoated", "Uncoated", 12, 18, 0.06, "B/W Text and Manga"},
	{"1300290", "Kelly Dig 60# Opaque Text 11x17", 89, "Uncoated", "Uncoated", 11, 17, 0.06, "B/W Text and Manga"},
	{"1300295", "Kelly Dig 60# Opaque Text 12x18", 89, "Uncoated", "Uncoated", 12, 18, 0.07, "B/W Text and Manga"},
	{"1300291", "Kelly Dig 60# Opaque Text 13x19", 89, "Uncoated", "Uncoated", 13, 19, 0.08, "B/W Text and Manga"},
	{"1300293", "Kelly Dig 70# Opaque Text 11x17", 104, "Uncoated", "Uncoated", 11, 17, 0.07, "B/W Text and Manga"},
	{"1300294", "Kelly Dig 70# Opaque Text 13x19", 104, "Uncoated", "Uncoated", 13, 19, 0.09, "B/W Text and Manga"},
	{"1300304", "Kelly Dig 80# Opaque Text 11x17", 118, "Uncoated", "Uncoated", 11, 17, 0.08, "B/W Text and Manga"},
	{"1300305", "Kelly Dig 80# Opaque Text 12x18", 118, "Uncoated", "Uncoated", 12, 18, 0.09, "B/W Text and Manga"},
	{"1300306", "Kelly Dig 80# Opaque Text 13x19", 118, "Uncoated", "Uncoated", 13, 19, 0.1, "B/W Text and Manga"},
	{"1300307", "Kelly Dig 100# Opaque Text 11x17", 148, "Uncoated", "Uncoated", 11, 17, 0.1, "B/W Text and Manga"},
	{"1111628", "Finesse Dig 80# Gloss Text 12x18", 118, "Coated", "Gloss", 12, 18, 0.07, "Internal Color Images"},
	{"1106244", "Kelly Dig 100# Gloss Text 13x19", 148, "Coated", "Gloss", 13, 19, 0.1, "Internal Color Images"},
	{"1107417", "Kelly Dig 100# Gloss Text 18x12", 148, "Coated", "Gloss", 18, 12, 0.08, "Internal Color Images"},
	{"1106260", "Kelly Dig 100# Silk Text 11x17", 148, "Coated", "Silk", 11, 17, 0.07, "Internal Color Images"},
	{"1107418", "Kelly Dig 100# Silk Text 18x12", 148, "Coated", "Silk", 18, 12, 0.08, "Internal Color Images"},
	{"1111628-2", "Kelly Dig 80# Gloss Text 11x17", 118, "Coated", "Gloss", 11, 17, 0.06, "Internal Color Images"},
	{"1100204", "Kelly Dig 80# Gloss Text 12x18", 118, "Coated", "Gloss", 12, 18, 0.07, "Internal Color Images"},
	{"1107415", "Kelly Dig 80# Gloss Text 18x12", 118, "Coated", "Gloss", 18, 12, 0.07, "Internal Color Images"},
	{"1106247", "Kelly Dig 80# Gloss Text 13x19", 118, "Coated", "Gloss", 13, 19, 0.08, "Internal Color Images"},
	{"1106262", "Kelly Dig 80# Silk Text 11x17", 118, "Coated", "Silk", 11, 17, 0.06, "Internal Color Images"},
	{"1106261", "Kelly Dig 80# Silk Text 12x18", 118, "Coated", "Silk", 12, 18, 0.07, "Internal Color Images"},
	{"1107415-2", "Pacesetter 80# Gloss Text 18x12", 118, "Coated", "Gloss", 18, 12, 0.07, "Internal Color Images"},
	{"1106676", "Pacesetter 80# Silk Text 19x12.5", 118, "Coated", "Silk", 19, 12.5, 0.06, "Internal Color Images"},
	{"1301350", "Accent 70# Opaque Text 19x12.5", 104, "Uncoated", "Uncoated", 19, 12.5, 0.07, "Internal Color Images"},
	{"1301356", "Accent 100# Opaque Text 19x12.5", 148, "Uncoated", "Uncoated", 19, 12.5, 0.11, "Internal Color Images"},
	{"1301351", "Accent 80# Opaque Text 19x12.5", 118, "Uncoated", "Uncoated", 19, 12.5, 0.08, "Internal Color Images"},
	{"1106245", "Kelly Dig 100# Gloss Text 12x18", 148, "Coated", "Gloss", 12, 18, 0.08, "Internal Color Images"},
	{"1107400", "Kelly Dig 100# Gloss Cover 13x19", 270, "Coated", "Gloss", 13, 19, 0.18, "Internal Color Images"},
	{"1107401", "Kelly Dig 111# Gloss Cover 13x19", 300, "Coated", "Gloss", 13, 19, 0.2, "Internal Color Images"},
	{"1106667", "Pacesetter 100# Silk Txt 19x12.5 (Forecast)", 148, "Coated", "Silk", 19, 12.5, 0.09, "Internal Color Images"},
	{"1107391", "Kelly Dig 100# Silk Cover 11x17", 270, "Coated", "Silk", 11, 17, 0.14, "Covers"},
	{"1106255", "Kelly Dig 100# Silk Cover 12x18", 270, "Coated", "Silk", 12, 18, 0.16, "Covers"},
	{"1107392", "Kelly Dig 100# Silk Cover 13x19", 270, "Coated", "Silk", 13, 19, 0.18, "Covers"},
	{"2207393", "Kelly Dig 111# Silk Cover 11x17", 300, "Coated", "Silk", 11, 17, 0.15, "Covers"},
	{"1107402", "Kelly Dig 130# Gloss Cover 11x17", 350, "Coated", "Gloss", 11, 17, 0.18, "Covers"},
	{"1107403", "Kelly Dig 130# Gloss Cover 12x18", 350, "Coated", "Gloss", 12, 18, 0.2, "Covers"},
	{"1107404", "Kelly Dig 130# Gloss Cover 13x19", 350, "Coated", "Gloss", 13, 19, 0.23, "Covers"},
	{"1105722", "Kelly Dig 130# Silk Cover 11x17", 350, "Coated", "Silk", 11, 17, 0.18, "Covers"},
	{"1107395", "Kelly Dig 130# Silk Cover 12x18", 350, "Coated", "Silk", 12, 18, 0.2, "Covers"},
	{"1105733", "Kelly Dig 80# Gloss Cover 13x19", 216, "Coated", "Gloss", 13, 19, 0.13, "Covers"},
	{"1105734", "Kelly Dig 80# Silk Cover 11x17", 216, "Coated", "Silk", 11, 17, 0.11, "Covers"},
	{"1105735", "Kelly Dig 80# Silk Cover 12x18", 216, "Coated", "Silk", 12, 18, 0.12, "Covers"},
	{"1105736", "Kelly Dig 80# Silk Cover 13x19", 216, "Coated", "Silk", 13, 19, 0.14, "Covers"},
	{"1105732", "Pacesetter 80# Gloss Cover 18x12", 216, "Coated", "Gloss", 18, 12, 0.11, "Covers"},
	{"1107394", "Kelly Dig 111# Silk Cover 13x19", 300, "Coated", "Silk", 19, 13, 0.2, "Covers"},
	{"1202429", "Tango Digital C1S SBS", 300, "Coated", "C1S", 13, 19, 0.2, "Covers"},
	{"3502479", "Blanks Jumbo Door Hanger (4 up)", 80, "Coated", "Gloss", 12, 18, 0.58, "Specialty"},
	{"JUMBO-BLEED", "Jumbo Door Hanger w/ Bleeds | 12\" x 18\" Sheet", 118, "Uncoated", "Uncoated", 18, 12, 0.59, "Specialty"},
	{"10PT-JUMBO", "10 pt Jumbo Door Hanger w/ Bleeds | 12\" x 18\" Sheet", 118, "Uncoated", "Uncoated", 18, 12, 0.85, "Specialty"},
	{"2001592", "Aspire Petallics Cvr Snow Willow", 285, "Uncoated", "Petallic", 8.5, 11, 0.31, "Specialty"},
	{"1500772", "Kelly Copy 20# 92 B", 75, "Uncoated", "Copy", 8.5, 11, 0.02, "Copy Paper"},
	{"5514155", "24 X36 Newsprint", 75, "Uncoated", "Uncoated", 12, 18, 0.01, "Copy Paper"},
	{"0", "BYOP (Bring Your Own Paper)", 118, "Uncoated", "Uncoated", 8.5, 11, 0, "Other"},
}
