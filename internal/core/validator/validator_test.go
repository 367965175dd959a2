package validator

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-connectivity/pkg/interfaces"
	"github.com/dep2p/go-connectivity/pkg/types"
)

var target = types.ProbeTarget{URL: "https://example.com/success.html"}

func body(s string) *interfaces.Response {
	return &interfaces.Response{StatusCode: http.StatusOK, Body: []byte(s)}
}

// ============================================================================
//                              Contains / Equals
// ============================================================================

func TestContainsValidator(t *testing.T) {
	v := NewContains("Success")

	assert.True(t, v.IsValid(target, body("<HTML><BODY>Success</BODY></HTML>")))
	assert.True(t, v.IsValid(target, body("...Success...")))
	assert.False(t, v.IsValid(target, body("Failure")))
	assert.False(t, v.IsValid(target, body("")), "空响应体必须失败")
	assert.False(t, v.IsValid(target, nil))
	assert.False(t, v.IsValid(target, body("\xff\xfeSuccess")), "非法 UTF-8 必须失败")
}

func TestEqualsValidator(t *testing.T) {
	v := NewEquals("Success")

	assert.True(t, v.IsValid(target, body("Success")))
	assert.True(t, v.IsValid(target, body(" Success \n")), "首尾空白应被去除")
	assert.False(t, v.IsValid(target, body("Success!")))
	assert.False(t, v.IsValid(target, body("<BODY>Success</BODY>")))
	assert.False(t, v.IsValid(target, body("   ")))
}

// ============================================================================
//                              Regex
// ============================================================================

func TestRegexValidator(t *testing.T) {
	v := NewRegex("test[0-9]+")

	assert.True(t, v.IsValid(target, body("test1234")))
	assert.False(t, v.IsValid(target, body("testa1234")))
}

func TestRegexValidator_DefaultPattern(t *testing.T) {
	v := NewRegex(DefaultPattern)

	page := "<HTML><HEAD><TITLE>Success</TITLE></HEAD>\n<body>\nSuccess\n</body></HTML>"
	assert.True(t, v.IsValid(target, body(page)), "忽略大小写且 . 匹配换行")
	assert.False(t, v.IsValid(target, body("<HTML><BODY>Failure</BODY></HTML>")))
}

func TestRegexValidator_Extended(t *testing.T) {
	v := NewRegex("succ  ess   # 注释会被忽略\n [ ]ok")

	assert.True(t, v.IsValid(target, body("SUCCESS ok")))
	assert.False(t, v.IsValid(target, body("succ ess ok")), "模式中的空白不参与匹配")
}

func TestRegexValidator_InvalidPattern(t *testing.T) {
	v := NewRegex("(unclosed")

	assert.NotPanics(t, func() {
		assert.False(t, v.IsValid(target, body("(unclosed")))
	})

	_, err := CompilePattern("(unclosed")
	assert.Error(t, err)
}

func TestStripExtended(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a b c", "abc"},
		{`a\ b`, `a\ b`},
		{"[a b]c", "[a b]c"},
		{"a#comment\nb", "ab"},
		{`\[ a ]`, `\[a]`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripExtended(tt.in), "stripExtended(%q)", tt.in)
	}
}

// ============================================================================
//                              字符集
// ============================================================================

func TestDecode_Charset(t *testing.T) {
	v := NewContains("Café")

	latin1 := &interfaces.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"text/html; charset=ISO-8859-1"}},
		Body:       []byte("Caf\xe9"),
	}
	assert.True(t, v.IsValid(target, latin1), "latin-1 响应体应被转码")

	unknown := &interfaces.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"text/html; charset=x-no-such-charset"}},
		Body:       []byte("Café"),
	}
	assert.False(t, v.IsValid(target, unknown), "未知字符集无法解码")
}

// ============================================================================
//                              工厂
// ============================================================================

func TestNew(t *testing.T) {
	v, err := New(types.ValidationContains, Params{Expected: "Success"})
	require.NoError(t, err)
	assert.IsType(t, &ContainsValidator{}, v)

	v, err = New(types.ValidationEquals, Params{Expected: "Success"})
	require.NoError(t, err)
	assert.IsType(t, &EqualsValidator{}, v)

	v, err = New(types.ValidationRegex, Params{Pattern: DefaultPattern})
	require.NoError(t, err)
	assert.IsType(t, &RegexValidator{}, v)

	_, err = New(types.ValidationCustom, Params{})
	assert.ErrorIs(t, err, ErrCustomValidatorRequired)

	_, err = New(types.ValidationMode(42), Params{})
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestNew_Custom(t *testing.T) {
	var seen types.ProbeTarget
	custom := interfaces.ResponseValidatorFunc(func(tgt types.ProbeTarget, resp *interfaces.Response) bool {
		seen = tgt
		return resp != nil && len(resp.Body) == 0
	})

	v, err := New(types.ValidationCustom, Params{Custom: custom})
	require.NoError(t, err)

	// 自定义校验器可以显式接受空响应体
	assert.True(t, v.IsValid(target, body("")))
	assert.Equal(t, target, seen)
}
