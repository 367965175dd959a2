package validator

import (
	"regexp"
	"strings"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dep2p/go-connectivity/pkg/interfaces"
	"github.com/dep2p/go-connectivity/pkg/types"
)

// DefaultPattern 默认正则：响应 <BODY> 中包含 Success
const DefaultPattern = `.*?<BODY>.*?Success.*?</BODY>.*`

// patternCacheSize 已编译正则缓存容量
const patternCacheSize = 64

// compiled 编译结果（包括失败结果，避免对非法正则重复编译和重复告警）
type compiled struct {
	re  *regexp.Regexp
	err error
}

var patternCache, _ = lru.New[string, compiled](patternCacheSize)

// RegexValidator 响应文本匹配正则即通过
//
// 匹配语义：忽略大小写；模式中字符类之外的空白和 # 注释被忽略；. 匹配换行。
// 非法正则对所有响应返回 false。
type RegexValidator struct {
	Pattern string
}

var _ interfaces.ResponseValidator = (*RegexValidator)(nil)

// NewRegex 创建正则校验器
func NewRegex(pattern string) *RegexValidator {
	return &RegexValidator{Pattern: pattern}
}

// IsValid 实现 interfaces.ResponseValidator
func (v *RegexValidator) IsValid(_ types.ProbeTarget, resp *interfaces.Response) bool {
	re, err := CompilePattern(v.Pattern)
	if err != nil {
		return false
	}
	text, ok := decodeText(resp)
	if !ok {
		return false
	}
	return re.MatchString(text)
}

// CompilePattern 按校验语义编译正则（带缓存）
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	if c, ok := patternCache.Get(pattern); ok {
		return c.re, c.err
	}

	re, err := regexp.Compile("(?is)" + stripExtended(pattern))
	if err != nil {
		logger.Warn("响应校验正则无效，所有探测将校验失败", "pattern", pattern, "error", err)
	}
	patternCache.Add(pattern, compiled{re: re, err: err})
	return re, err
}

// stripExtended 去除扩展模式下无意义的空白与注释
//
// 规则：字符类 [...] 内部与转义字符保持原样；其余位置的空白被删除，
// # 到行尾视为注释。
func stripExtended(pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern))

	inClass := false
	inComment := false
	escaped := false

	for _, r := range pattern {
		switch {
		case inComment:
			if r == '\n' {
				inComment = false
			}
		case escaped:
			b.WriteRune(r)
			escaped = false
		case r == '\\':
			b.WriteRune(r)
			escaped = true
		case inClass:
			b.WriteRune(r)
			if r == ']' {
				inClass = false
			}
		case r == '[':
			b.WriteRune(r)
			inClass = true
		case r == '#':
			inComment = true
		case unicode.IsSpace(r):
			// 忽略
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
