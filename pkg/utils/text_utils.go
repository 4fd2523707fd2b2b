package utils

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - font: 字体
//   - maxWidth: 最大宽度（像素）
//
// 换行规则:
//   - 在空白处断行，连续空白折叠为一个空格
//   - 单个单词超过最大宽度时独占一行（不拆单词）
func WrapText(textStr string, font *text.GoTextFace, maxWidth float64) []string {
	if font == nil {
		return []string{textStr}
	}
	return wrapWords(textStr, func(s string) float64 {
		return measureTextWidth(s, font)
	}, maxWidth)
}

// wrapWords 按 measure 的宽度贪心换行
func wrapWords(textStr string, measure func(string) float64, maxWidth float64) []string {
	words := strings.Fields(textStr)
	if len(words) == 0 || maxWidth <= 0 {
		return []string{textStr}
	}

	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		candidate := current + " " + w
		if measure(candidate) > maxWidth {
			lines = append(lines, current)
			current = w
			continue
		}
		current = candidate
	}
	return append(lines, current)
}

// measureTextWidth 测量文本宽度
func measureTextWidth(textStr string, font *text.GoTextFace) float64 {
	if textStr == "" || font == nil {
		return 0
	}
	width, _ := text.Measure(textStr, font, 0)
	return width
}
