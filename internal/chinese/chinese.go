// Package chinese holds the traditional Chinese point-size table and the
// default font bindings thesis templates use for songti/heiti/fangsong/
// kaiti script and Latin-script fallback.
package chinese

import "fmt"

// SizeToPt maps a traditional Chinese type-size name (初号, 小初, ...) to
// its point size.
var SizeToPt = map[string]float64{
	"初号": 42.0,
	"小初": 36.0,
	"一号": 26.0,
	"小一": 24.0,
	"二号": 22.0,
	"小二": 18.0,
	"三号": 16.0,
	"小三": 15.0,
	"四号": 14.0,
	"小四": 12.0,
	"五号": 10.5,
	"小五": 9.0,
	"六号": 7.5,
	"小六": 6.5,
}

// DefaultChineseFonts maps a script family name to its default Windows
// font name.
var DefaultChineseFonts = map[string]string{
	"songti":   "SimSun",
	"heiti":    "SimHei",
	"fangsong": "FangSong",
	"kaiti":    "KaiTi",
}

// DefaultEnglishFonts maps a Latin-script family name to its default font.
var DefaultEnglishFonts = map[string]string{
	"times": "Times New Roman",
}

// PointsForChineseSize looks up a traditional Chinese type-size name and
// fails explicitly rather than returning a silent zero on an unknown name.
func PointsForChineseSize(sizeName string) (float64, error) {
	pt, ok := SizeToPt[sizeName]
	if !ok {
		return 0, fmt.Errorf("chinese: unknown Chinese size name %q", sizeName)
	}
	return pt, nil
}
