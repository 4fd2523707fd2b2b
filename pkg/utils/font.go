package utils

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// 字体源只解析一次，不同字号共享
var (
	regularSource *text.GoTextFaceSource
	boldSource    *text.GoTextFaceSource
)

// LoadFont 返回内置 Go 字体的指定字号字体
//
// 字体数据来自 golang.org/x/image/font/gofont，随二进制一起编译，
// 不依赖外部资源目录。
func LoadFont(size float64, bold bool) (*text.GoTextFace, error) {
	src, err := fontSource(bold)
	if err != nil {
		return nil, err
	}
	return &text.GoTextFace{Source: src, Size: size}, nil
}

func fontSource(bold bool) (*text.GoTextFaceSource, error) {
	cached := &regularSource
	data := goregular.TTF
	if bold {
		cached = &boldSource
		data = gobold.TTF
	}
	if *cached != nil {
		return *cached, nil
	}

	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse built-in font (bold=%v): %w", bold, err)
	}
	*cached = src
	return src, nil
}
