package xfile

import "strings"

// invalidFileNameChars 文件名中不允许出现的可打印字符。
//
// 取 Windows 与 POSIX 的并集，保证同一份配置在任意平台生成相同的文件名。
const invalidFileNameChars = `"<>|:*?\/`

// invalidPathChars 目录路径中不允许出现的可打印字符。
// 路径分隔符和盘符冒号在目录中是合法的，因此不在此列。
const invalidPathChars = `"<>|`

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f
}

// StripInvalidFileNameChars 删除文件名中的非法字符（控制字符和 `"<>|:*?\/`）。
//
// 只删除、不替换，与 "先拼接再净化" 的命名流程配合使用：
//
//	StripInvalidFileNameChars("app:01?.log") // "app01.log"
func StripInvalidFileNameChars(name string) string {
	return strings.Map(func(r rune) rune {
		if isControl(r) || strings.ContainsRune(invalidFileNameChars, r) {
			return -1
		}
		return r
	}, name)
}

// StripInvalidPathChars 删除目录路径中的非法字符（控制字符和 `"<>|`）。
func StripInvalidPathChars(path string) string {
	return strings.Map(func(r rune) rune {
		if isControl(r) || strings.ContainsRune(invalidPathChars, r) {
			return -1
		}
		return r
	}, path)
}
