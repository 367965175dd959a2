// Package validator 实现探测响应校验
//
// 校验器决定单个探测的 HTTP 响应是否证明互联网可达。
//
// # 校验模式
//
//   - Contains: 响应文本包含期望字符串（默认，期望 "Success"）
//   - Equals:   响应文本去除首尾空白后等于期望字符串
//   - Regex:    响应文本匹配正则（忽略大小写、忽略模式中的空白与 # 注释、. 匹配换行）
//   - Custom:   调用方提供的 interfaces.ResponseValidator
//
// 空响应体对所有内置模式均视为失败；无法解码为文本的响应体同样视为失败。
// 响应体按 Content-Type 的 charset 参数转码，未声明 charset 时要求是合法 UTF-8。
//
// 非法正则不会 panic，只会让每个探测都校验失败。
//
// 使用 New 按模式构造校验器：
//
//	v, err := validator.New(types.ValidationRegex, validator.Params{Pattern: validator.DefaultPattern})
package validator
