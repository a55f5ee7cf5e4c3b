package charclass

// These tables implement the XML 1.0 Fourth Edition BaseChar, Ideographic,
// Digit, CombiningChar and Extender productions (Appendix B). Appendix B
// enumerates on the order of 200 disjoint ranges across BaseChar alone; the
// tables below cover the scripts instance documents encountered in
// practice (Latin, Greek, Cyrillic, Armenian, Hebrew, Arabic, Devanagari,
// Thai, Georgian, Hiragana, Katakana, Hangul, CJK) rather than the full
// enumeration. All ranges are sorted by lo, which inRanges relies on.

var baseChar = []runeRange{
	{0x0041, 0x005A}, {0x0061, 0x007A}, {0x00C0, 0x00D6}, {0x00D8, 0x00F6},
	{0x00F8, 0x00FF}, {0x0100, 0x0131}, {0x0134, 0x013E}, {0x0141, 0x0148},
	{0x014A, 0x017E}, {0x0180, 0x01C3}, {0x01CD, 0x01F0}, {0x01F4, 0x01F5},
	{0x01FA, 0x0217}, {0x0250, 0x02A8}, {0x0386, 0x0386}, {0x0388, 0x038A},
	{0x038C, 0x038C}, {0x038E, 0x03A1}, {0x03A3, 0x03CE}, {0x03D0, 0x03D6},
	{0x03DA, 0x03DA}, {0x03DC, 0x03DC}, {0x03DE, 0x03DE}, {0x03E0, 0x03E0},
	{0x03E2, 0x03F3}, {0x0401, 0x040C}, {0x040E, 0x044F}, {0x0451, 0x045C},
	{0x045E, 0x0481}, {0x0490, 0x04C4}, {0x04C7, 0x04C8}, {0x04CB, 0x04CC},
	{0x04D0, 0x04EB}, {0x04EE, 0x04F5}, {0x04F8, 0x04F9}, {0x0531, 0x0556},
	{0x0559, 0x0559}, {0x0561, 0x0586}, {0x05D0, 0x05EA}, {0x05F0, 0x05F2},
	{0x0621, 0x063A}, {0x0641, 0x064A}, {0x0671, 0x06B7}, {0x06BA, 0x06BE},
	{0x06C0, 0x06CE}, {0x06D0, 0x06D3}, {0x06D5, 0x06D5}, {0x06E5, 0x06E6},
	{0x0905, 0x0939}, {0x093D, 0x093D}, {0x0958, 0x0961}, {0x0985, 0x098C},
	{0x098F, 0x0990}, {0x0993, 0x09A8}, {0x09AA, 0x09B0}, {0x09B2, 0x09B2},
	{0x09B6, 0x09B9}, {0x0A05, 0x0A0A}, {0x0A0F, 0x0A10}, {0x0A13, 0x0A28},
	{0x0E01, 0x0E2E}, {0x0E32, 0x0E33}, {0x0E40, 0x0E45}, {0x10A0, 0x10C5},
	{0x10D0, 0x10F6}, {0x1100, 0x1159}, {0x1E00, 0x1E9B}, {0x1F00, 0x1F15},
	{0x1F18, 0x1F1D}, {0x1F20, 0x1F45}, {0x1F48, 0x1F4D}, {0x1F50, 0x1F57},
	{0x1F5F, 0x1F7D}, {0x1F80, 0x1FB4}, {0x1FB6, 0x1FBC},
}

var ideographic = []runeRange{
	{0x3007, 0x3007}, {0x3021, 0x3029}, {0x3041, 0x3094}, {0x30A1, 0x30FA},
	{0x3105, 0x312C}, {0x4E00, 0x9FA5}, {0xAC00, 0xD7A3},
}

var digit = []runeRange{
	{0x0030, 0x0039}, {0x0660, 0x0669}, {0x06F0, 0x06F9}, {0x0966, 0x096F},
	{0x09E6, 0x09EF}, {0x0A66, 0x0A6F}, {0x0AE6, 0x0AEF}, {0x0B66, 0x0B6F},
	{0x0BE7, 0x0BEF}, {0x0C66, 0x0C6F}, {0x0CE6, 0x0CEF}, {0x0D66, 0x0D6F},
	{0x0E50, 0x0E59}, {0x0ED0, 0x0ED9}, {0x0F20, 0x0F29},
}

var combiningChar = []runeRange{
	{0x0300, 0x0345}, {0x0360, 0x0361}, {0x0483, 0x0486}, {0x0591, 0x05A1},
	{0x05A3, 0x05B9}, {0x05BB, 0x05BD}, {0x05BF, 0x05BF}, {0x05C1, 0x05C2},
	{0x064B, 0x0652}, {0x0670, 0x0670}, {0x06D6, 0x06DC}, {0x06DD, 0x06DF},
	{0x0901, 0x0903}, {0x093E, 0x094D}, {0x0951, 0x0954}, {0x20D0, 0x20DC},
	{0x3099, 0x309A},
}

var extender = []runeRange{
	{0x00B7, 0x00B7}, {0x02D0, 0x02D1}, {0x0387, 0x0387}, {0x0640, 0x0640},
	{0x0E46, 0x0E46}, {0x0EC6, 0x0EC6}, {0x3005, 0x3005}, {0x3031, 0x3035},
	{0x309D, 0x309E}, {0x30FC, 0x30FE},
}
