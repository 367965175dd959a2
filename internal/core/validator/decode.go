package validator

import (
	"bytes"
	"io"
	"mime"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"

	"github.com/dep2p/go-connectivity/pkg/interfaces"
)

// maxDecodedSize 转码后文本上限
const maxDecodedSize = 1 << 20

// decodeText 将响应体解码为文本
//
// 返回 false 表示响应体为空或无法解码。
func decodeText(resp *interfaces.Response) (string, bool) {
	if resp == nil || len(resp.Body) == 0 {
		return "", false
	}

	label := charsetLabel(resp.ContentType())
	if label == "" || isUTF8Label(label) {
		if !utf8.Valid(resp.Body) {
			return "", false
		}
		return string(resp.Body), true
	}

	r, err := charset.NewReaderLabel(label, bytes.NewReader(resp.Body))
	if err != nil {
		logger.Debug("未知字符集", "charset", label, "error", err)
		return "", false
	}
	decoded, err := io.ReadAll(io.LimitReader(r, maxDecodedSize))
	if err != nil || !utf8.Valid(decoded) {
		return "", false
	}
	return string(decoded), true
}

// charsetLabel 提取 Content-Type 中的 charset 参数
func charsetLabel(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(params["charset"])
}

func isUTF8Label(label string) bool {
	switch strings.ToLower(label) {
	case "utf-8", "utf8":
		return true
	}
	return false
}
