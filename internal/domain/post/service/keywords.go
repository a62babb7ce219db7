package service

import (
	"strings"
	"unicode"
)

// stopWords 搜索关键词提取时排除的常见词
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "with": true, "by": true, "about": true, "like": true,
	"through": true, "over": true, "before": true, "between": true,
	"after": true, "since": true, "without": true, "under": true,
	"within": true, "along": true, "following": true, "across": true,
	"behind": true, "beyond": true, "plus": true, "except": true,
	"up": true, "out": true, "around": true, "down": true, "off": true,
	"above": true, "near": true,
}

// ExtractKeywords 从帖子正文提取搜索关键词：
// 小写化、去掉非字母数字字符、按空白切分，
// 过滤停用词和长度 ≤2 的词，去重并保持出现顺序。
func ExtractKeywords(content string) []string {
	var b strings.Builder
	b.Grow(len(content))
	for _, r := range strings.ToLower(content) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	words := strings.Fields(b.String())

	keywords := make([]string, 0, len(words))
	seen := make(map[string]bool, len(words))
	for _, word := range words {
		if len(word) <= 2 || stopWords[word] || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
	}
	return keywords
}
