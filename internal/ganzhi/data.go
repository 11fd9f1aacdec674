package ganzhi

var stemElements = map[string]string{
	"甲": Wood, "乙": Wood,
	"丙": Fire, "丁": Fire,
	"戊": Earth, "己": Earth,
	"庚": Metal, "辛": Metal,
	"壬": Water, "癸": Water,
}

// Hidden stems per branch, strongest first. Weights sum to 8 per branch.
var hiddenStems = map[string][]HiddenStem{
	"子": {{"癸", 8}},
	"丑": {{"己", 5}, {"癸", 2}, {"辛", 1}},
	"寅": {{"甲", 5}, {"丙", 2}, {"戊", 1}},
	"卯": {{"乙", 8}},
	"辰": {{"戊", 5}, {"乙", 2}, {"癸", 1}},
	"巳": {{"丙", 5}, {"戊", 2}, {"庚", 1}},
	"午": {{"丁", 5}, {"己", 3}},
	"未": {{"己", 5}, {"丁", 2}, {"乙", 1}},
	"申": {{"庚", 5}, {"壬", 2}, {"戊", 1}},
	"酉": {{"辛", 8}},
	"戌": {{"戊", 5}, {"辛", 2}, {"丁", 1}},
	"亥": {{"壬", 5}, {"甲", 3}},
}

var naYin = map[string]string{
	"甲子": "海中金", "乙丑": "海中金", "丙寅": "炉中火", "丁卯": "炉中火",
	"戊辰": "大林木", "己巳": "大林木", "庚午": "路旁土", "辛未": "路旁土",
	"壬申": "剑锋金", "癸酉": "剑锋金", "甲戌": "山头火", "乙亥": "山头火",
	"丙子": "涧下水", "丁丑": "涧下水", "戊寅": "城头土", "己卯": "城头土",
	"庚辰": "白蜡金", "辛巳": "白蜡金", "壬午": "杨柳木", "癸未": "杨柳木",
	"甲申": "泉中水", "乙酉": "泉中水", "丙戌": "屋上土", "丁亥": "屋上土",
	"戊子": "霹雳火", "己丑": "霹雳火", "庚寅": "松柏木", "辛卯": "松柏木",
	"壬辰": "长流水", "癸巳": "长流水", "甲午": "沙中金", "乙未": "沙中金",
	"丙申": "山下火", "丁酉": "山下火", "戊戌": "平地木", "己亥": "平地木",
	"庚子": "壁上土", "辛丑": "壁上土", "壬寅": "金箔金", "癸卯": "金箔金",
	"甲辰": "覆灯火", "乙巳": "覆灯火", "丙午": "天河水", "丁未": "天河水",
	"戊申": "大驿土", "己酉": "大驿土", "庚戌": "钗钏金", "辛亥": "钗钏金",
	"壬子": "桑柘木", "癸丑": "桑柘木", "甲寅": "大溪水", "乙卯": "大溪水",
	"丙辰": "沙中土", "丁巳": "沙中土", "戊午": "天上火", "己未": "天上火",
	"庚申": "石榴木", "辛酉": "石榴木", "壬戌": "大海水", "癸亥": "大海水",
}

// Branch relations (zhi_atts). Sanhe and Sanhui list the two partners.
var relations = map[string]Relations{
	"子": {Chong: "午", Xing: "卯", Beixing: "卯", Sanhe: [2]string{"申", "辰"}, Sanhui: [2]string{"亥", "丑"}, Hai: "未", Po: "酉", Liuhe: "丑"},
	"丑": {Chong: "未", Xing: "戌", Beixing: "未", Sanhe: [2]string{"巳", "酉"}, Sanhui: [2]string{"子", "亥"}, Hai: "午", Po: "辰", Liuhe: "子"},
	"寅": {Chong: "申", Xing: "巳", Beixing: "申", Sanhe: [2]string{"午", "戌"}, Sanhui: [2]string{"卯", "辰"}, Hai: "巳", Po: "亥", Liuhe: "亥"},
	"卯": {Chong: "酉", Xing: "子", Beixing: "子", Sanhe: [2]string{"未", "亥"}, Sanhui: [2]string{"寅", "辰"}, Hai: "辰", Po: "午", Liuhe: "戌"},
	"辰": {Chong: "戌", Xing: "辰", Beixing: "辰", Sanhe: [2]string{"子", "申"}, Sanhui: [2]string{"寅", "卯"}, Hai: "卯", Po: "丑", Liuhe: "酉"},
	"巳": {Chong: "亥", Xing: "申", Beixing: "寅", Sanhe: [2]string{"酉", "丑"}, Sanhui: [2]string{"午", "未"}, Hai: "寅", Po: "申", Liuhe: "申"},
	"午": {Chong: "子", Xing: "午", Beixing: "午", Sanhe: [2]string{"寅", "戌"}, Sanhui: [2]string{"巳", "未"}, Hai: "丑", Po: "卯", Liuhe: "未"},
	"未": {Chong: "丑", Xing: "丑", Beixing: "戌", Sanhe: [2]string{"卯", "亥"}, Sanhui: [2]string{"巳", "午"}, Hai: "子", Po: "戌", Liuhe: "午"},
	"申": {Chong: "寅", Xing: "寅", Beixing: "巳", Sanhe: [2]string{"子", "辰"}, Sanhui: [2]string{"酉", "戌"}, Hai: "亥", Po: "巳", Liuhe: "巳"},
	"酉": {Chong: "卯", Xing: "酉", Beixing: "酉", Sanhe: [2]string{"巳", "丑"}, Sanhui: [2]string{"申", "戌"}, Hai: "戌", Po: "子", Liuhe: "辰"},
	"戌": {Chong: "辰", Xing: "未", Beixing: "丑", Sanhe: [2]string{"午", "寅"}, Sanhui: [2]string{"申", "酉"}, Hai: "酉", Po: "未", Liuhe: "卯"},
	"亥": {Chong: "巳", Xing: "亥", Beixing: "亥", Sanhe: [2]string{"卯", "未"}, Sanhui: [2]string{"子", "丑"}, Hai: "申", Po: "寅", Liuhe: "寅"},
}

// Seasonal adjustment stems (tiaohou), keyed by day stem + month branch.
var seasonal = map[string]string{
	"甲寅": "丙癸", "甲卯": "庚丙丁戊己", "甲辰": "庚丁壬", "甲巳": "癸丁庚",
	"甲午": "癸丁庚", "甲未": "癸丁庚", "甲申": "庚丁壬", "甲酉": "庚丁丙",
	"甲戌": "庚甲丁壬癸", "甲亥": "庚丁丙戊", "甲子": "丁庚丙", "甲丑": "丁庚丙",

	"乙寅": "丙癸", "乙卯": "丙癸", "乙辰": "癸丙戊", "乙巳": "癸",
	"乙午": "癸丙", "乙未": "癸丙", "乙申": "丙癸己", "乙酉": "癸丙丁",
	"乙戌": "癸辛", "乙亥": "丙戊", "乙子": "丙", "乙丑": "丙",

	"丙寅": "壬庚", "丙卯": "壬己", "丙辰": "壬甲", "丙巳": "壬癸庚",
	"丙午": "壬庚", "丙未": "壬庚", "丙申": "壬戊", "丙酉": "壬癸",
	"丙戌": "甲壬", "丙亥": "甲戊庚壬", "丙子": "壬戊己", "丙丑": "壬甲",

	"丁寅": "甲庚", "丁卯": "庚甲", "丁辰": "甲庚", "丁巳": "甲庚",
	"丁午": "壬庚癸", "丁未": "甲壬庚", "丁申": "甲庚丙戊", "丁酉": "甲庚丙戊",
	"丁戌": "甲庚戊", "丁亥": "甲庚", "丁子": "甲庚", "丁丑": "甲庚",

	"戊寅": "丙甲癸", "戊卯": "丙甲癸", "戊辰": "甲丙癸", "戊巳": "甲丙癸",
	"戊午": "壬甲丙", "戊未": "癸丙甲", "戊申": "丙癸甲", "戊酉": "丙癸",
	"戊戌": "甲丙癸", "戊亥": "甲丙", "戊子": "丙甲", "戊丑": "丙甲",

	"己寅": "丙庚甲", "己卯": "甲癸丙", "己辰": "丙癸甲", "己巳": "癸丙",
	"己午": "癸丙", "己未": "癸丙", "己申": "丙癸", "己酉": "丙癸",
	"己戌": "甲丙癸", "己亥": "丙甲戊", "己子": "丙甲戊", "己丑": "丙甲戊",

	"庚寅": "戊甲壬丙丁", "庚卯": "丁甲庚丙", "庚辰": "甲丁壬癸", "庚巳": "壬戊丙丁",
	"庚午": "壬癸", "庚未": "丁甲", "庚申": "丁甲", "庚酉": "丁甲丙",
	"庚戌": "甲壬", "庚亥": "丁丙", "庚子": "丁甲丙", "庚丑": "丙丁甲",

	"辛寅": "己壬庚", "辛卯": "壬甲", "辛辰": "壬甲", "辛巳": "壬甲癸",
	"辛午": "壬己癸", "辛未": "壬庚甲", "辛申": "壬甲戊", "辛酉": "壬甲",
	"辛戌": "壬甲", "辛亥": "壬丙", "辛子": "丙戊壬甲", "辛丑": "丙壬戊己",

	"壬寅": "庚丙戊", "壬卯": "戊辛庚", "壬辰": "甲庚", "壬巳": "壬辛庚癸",
	"壬午": "癸庚辛", "壬未": "辛甲", "壬申": "戊丁", "壬酉": "甲庚",
	"壬戌": "甲丙", "壬亥": "戊丙庚", "壬子": "戊丙", "壬丑": "丙丁甲",

	"癸寅": "辛丙", "癸卯": "庚辛", "癸辰": "丙辛甲", "癸巳": "辛",
	"癸午": "庚辛壬癸", "癸未": "庚辛壬癸", "癸申": "丁", "癸酉": "辛丙",
	"癸戌": "辛甲壬癸", "癸亥": "庚辛戊丁", "癸子": "丙辛", "癸丑": "丙丁",
}

// Ten-god labels indexed by relation then by polarity (same, different).
var tenGodLabels = map[int][2]string{
	0:  {"比", "劫"}, // same element
	1:  {"食", "伤"}, // day master generates
	2:  {"才", "财"}, // day master controls
	3:  {"杀", "官"}, // controls day master
	-1: {"枭", "印"}, // generates day master
}

// Month-order pattern per ten-god of the month branch's main qi.
var patternNames = map[string]string{
	"比": "建禄格", "劫": "月刃格",
	"食": "食神格", "伤": "伤官格",
	"才": "偏财格", "财": "正财格",
	"杀": "七杀格", "官": "正官格",
	"枭": "偏印格", "印": "正印格",
}

// Twelve life stages starting from 长生.
var lifeStageNames = [12]string{"长", "沐", "冠", "建", "帝", "衰", "病", "死", "墓", "绝", "胎", "养"}

// Branch where each stem's 长生 falls. Yang stems advance, yin stems retreat.
var lifeStageStart = map[string]string{
	"甲": "亥", "丙": "寅", "戊": "寅", "庚": "巳", "壬": "申",
	"乙": "午", "丁": "酉", "己": "酉", "辛": "子", "癸": "卯",
}
