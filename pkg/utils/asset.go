package utils

import (
	"net/url"
	"strings"
)

// AssetPath 为资源路径加上部署前缀
//
// 去掉 path 开头的一个 "/" 避免出现双斜杠，再拼接到 basePath 之后：
//
//	AssetPath("", "/sounds/bomb.wav")        -> "/sounds/bomb.wav"
//	AssetPath("/invites", "sounds/song.mp3") -> "/invites/sounds/song.mp3"
func AssetPath(basePath, path string) string {
	cleanPath := strings.TrimPrefix(path, "/")
	return basePath + "/" + cleanPath
}

// TitleFromRoute 从页面路径中提取标题
//
// 路径形如 "/invites/<id>/"：先去掉部署前缀，再取第一个非空路径段并做百分号解码。
// 解码失败时原样返回该段。
func TitleFromRoute(route, basePath string) string {
	route = strings.TrimPrefix(route, basePath)
	for _, segment := range strings.Split(route, "/") {
		if segment == "" {
			continue
		}
		decoded, err := url.PathUnescape(segment)
		if err != nil {
			return segment
		}
		return decoded
	}
	return ""
}
