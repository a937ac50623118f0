package chart

// Palette 是图表用到的固定配色，按序列名或里程碑取值。
var Palette = map[string]string{
	"primary":   "#2E86C1",
	"7day_avg":  "#FFA500",
	"30day_avg": "#2ECC71",

	// 里程碑配色，取一组易区分的渐变
	"50":   "#FF6B6B",
	"150":  "#4ECDC4",
	"300":  "#9B59B6",
	"600":  "#F1C40F",
	"1000": "#E67E22",
	"1500": "#2ECC71",
}

// Color 按键取色，未登记的键退回主色。
func Color(key string) string {
	if c, ok := Palette[key]; ok {
		return c
	}
	return Palette["primary"]
}
