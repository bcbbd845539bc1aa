package palette

import "image/color"

// Transparent is the name of the sentinel entry with index 0
const Transparent = "Transparent"

var defaultEntries = []Entry{
	{"Black", 1, color.NRGBA{0, 0, 0, 255}, false},
	{"Dark Gray", 2, color.NRGBA{60, 60, 60, 255}, false},
	{"Gray", 3, color.NRGBA{120, 120, 120, 255}, false},
	{"Medium Gray", 32, color.NRGBA{170, 170, 170, 255}, true},
	{"Light Gray", 4, color.NRGBA{210, 210, 210, 255}, false},
	{"White", 5, color.NRGBA{255, 255, 255, 255}, false},
	{"Deep Red", 6, color.NRGBA{96, 0, 24, 255}, false},
	{"Dark Red", 33, color.NRGBA{165, 14, 30, 255}, true},
	{"Red", 7, color.NRGBA{237, 28, 36, 255}, false},
	{"Light Red", 34, color.NRGBA{250, 128, 114, 255}, true},
	{"Dark Orange", 35, color.NRGBA{228, 92, 26, 255}, true},
	{"Orange", 8, color.NRGBA{255, 127, 39, 255}, false},
	{"Gold", 9, color.NRGBA{246, 170, 9, 255}, false},
	{"Yellow", 10, color.NRGBA{249, 221, 59, 255}, false},
	{"Light Yellow", 11, color.NRGBA{255, 250, 188, 255}, false},
	{"Dark Goldenrod", 37, color.NRGBA{156, 132, 49, 255}, true},
	{"Goldenrod", 38, color.NRGBA{197, 173, 49, 255}, true},
	{"Light Goldenrod", 39, color.NRGBA{232, 212, 95, 255}, true},
	{"Dark Olive", 40, color.NRGBA{74, 107, 58, 255}, true},
	{"Olive", 41, color.NRGBA{90, 148, 74, 255}, true},
	{"Light Olive", 42, color.NRGBA{132, 197, 115, 255}, true},
	{"Dark Green", 12, color.NRGBA{14, 185, 104, 255}, false},
	{"Green", 13, color.NRGBA{19, 230, 123, 255}, false},
	{"Light Green", 14, color.NRGBA{135, 255, 94, 255}, false},
	{"Dark Teal", 15, color.NRGBA{135, 255, 94, 255}, false},
	{"Teal", 16, color.NRGBA{16, 174, 166, 255}, false},
	{"Light Teal", 17, color.NRGBA{19, 225, 190, 255}, false},
	{"Dark Cyan", 43, color.NRGBA{15, 121, 159, 255}, true},
	{"Cyan", 20, color.NRGBA{96, 247, 242, 255}, false},
	{"Light Cyan", 44, color.NRGBA{187, 250, 242, 255}, true},
	{"Dark Blue", 18, color.NRGBA{40, 80, 158, 255}, false},
	{"Blue", 19, color.NRGBA{64, 147, 228, 255}, false},
	{"Light Blue", 45, color.NRGBA{125, 199, 255, 255}, true},
	{"Dark Indigo", 46, color.NRGBA{77, 49, 184, 255}, true},
	{"Indigo", 21, color.NRGBA{107, 80, 246, 255}, false},
	{"Light Indigo", 22, color.NRGBA{153, 177, 251, 255}, false},
	{"Dark Slate Blue", 47, color.NRGBA{74, 66, 132, 255}, true},
	{"Slate Blue", 48, color.NRGBA{122, 113, 196, 255}, true},
	{"Light Slate Blue", 49, color.NRGBA{181, 174, 241, 255}, true},
	{"Dark Purple", 23, color.NRGBA{120, 12, 153, 255}, false},
	{"Purple", 24, color.NRGBA{170, 56, 185, 255}, false},
	{"Light Purple", 25, color.NRGBA{224, 159, 249, 255}, false},
	{"Dark Pink", 26, color.NRGBA{203, 0, 122, 255}, false},
	{"Pink", 27, color.NRGBA{236, 31, 128, 255}, false},
	{"Light Pink", 28, color.NRGBA{243, 141, 169, 255}, false},
	{"Dark Peach", 53, color.NRGBA{155, 82, 73, 255}, true},
	{"Peach", 54, color.NRGBA{209, 128, 120, 255}, true},
	{"Light Peach", 55, color.NRGBA{250, 182, 164, 255}, true},
	{"Dark Brown", 29, color.NRGBA{104, 70, 52, 255}, false},
	{"Brown", 30, color.NRGBA{149, 104, 42, 255}, false},
	{"Light Brown", 50, color.NRGBA{219, 164, 99, 255}, true},
	{"Dark Tan", 56, color.NRGBA{123, 99, 82, 255}, true},
	{"Tan", 57, color.NRGBA{156, 132, 107, 255}, true},
	{"Light Tan", 36, color.NRGBA{214, 181, 148, 255}, true},
	{"Dark Beige", 51, color.NRGBA{209, 128, 81, 255}, true},
	{"Beige", 31, color.NRGBA{248, 178, 119, 255}, false},
	{"Light Beige", 52, color.NRGBA{255, 197, 165, 255}, true},
	{"Dark Stone", 61, color.NRGBA{109, 100, 63, 255}, true},
	{"Stone", 62, color.NRGBA{148, 140, 107, 255}, true},
	{"Light Stone", 63, color.NRGBA{205, 197, 158, 255}, true},
	{"Dark Slate", 58, color.NRGBA{51, 57, 65, 255}, true},
	{"Slate", 59, color.NRGBA{109, 117, 141, 255}, true},
	{"Light Slate", 60, color.NRGBA{179, 185, 209, 255}, true},
	{Transparent, 0, color.NRGBA{0, 0, 0, 0}, false},
}
