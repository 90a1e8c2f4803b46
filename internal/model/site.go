package model

import "strings"

// Site describes the site being published. BaseURL never carries a
// trailing slash so it can be joined with site-relative paths directly.
type Site struct {
	Title   string
	Tagline string
	BaseURL string
	Author  string
}

// AbsoluteURL joins a site-relative path onto the base URL.
func (s Site) AbsoluteURL(path string) string {
	base := strings.TrimSuffix(s.BaseURL, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}
