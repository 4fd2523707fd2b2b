package game

import (
	"fmt"
	"log"

	"github.com/pkg/browser"
)

// Navigator 执行离开应用的跳转
type Navigator interface {
	Navigate(url string) error
}

// NavigatorFunc 函数适配器
type NavigatorFunc func(url string) error

// Navigate 调用 f(url)
func (f NavigatorFunc) Navigate(url string) error {
	return f(url)
}

// BrowserNavigator 在系统浏览器中打开地址
type BrowserNavigator struct {
	open func(url string) error
}

// NewBrowserNavigator 创建使用系统默认浏览器的跳转器
func NewBrowserNavigator() *BrowserNavigator {
	return &BrowserNavigator{open: browser.OpenURL}
}

// Navigate 打开 url
func (n *BrowserNavigator) Navigate(url string) error {
	log.Printf("[Navigator] Opening %s", url)
	if err := n.open(url); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}
