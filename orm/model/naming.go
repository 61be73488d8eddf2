package model

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lower = cases.Lower(language.Und)

// TableNameOf derives the table name from a class name.
// DummyModel -> dummy_model, HTTPModel -> http_model, ModelX -> model_x
// It returns "" when the name has no letter.
func TableNameOf(className string) string {
	words := splitWords(className)
	for i, w := range words {
		words[i] = lower.String(w)
	}
	return strings.Join(words, "_")
}

// splitWords 按大小写边界切分单词
// 1. 小写字母或者数字后面的大写字母开始一个新单词
// 2. 连续的大写字母，如果后面跟着小写字母，最后一个大写字母开始一个新单词
// 3. 数字跟着前面的单词
// 4. 其它字符都是分隔符，直接丢弃
func splitWords(name string) []string {
	rs := []rune(name)
	var (
		words   []string
		cur     []rune
		letters bool
	)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	for i, r := range rs {
		switch {
		case unicode.IsUpper(r):
			letters = true
			if i > 0 && len(cur) > 0 {
				prev := rs[i-1]
				nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) ||
					(unicode.IsUpper(prev) && nextLower) {
					flush()
				}
			}
			cur = append(cur, r)
		case unicode.IsLetter(r):
			letters = true
			cur = append(cur, r)
		case unicode.IsDigit(r):
			cur = append(cur, r)
		default:
			flush()
		}
	}
	flush()
	if !letters {
		return nil
	}
	return words
}
