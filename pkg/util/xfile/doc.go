// Package xfile 提供日志文件落盘所需的文件系统工具。
//
// # 名称净化
//
//   - [StripInvalidFileNameChars]: 删除文件名中的控制字符和 `"<>|:*?\/`
//   - [StripInvalidPathChars]: 删除目录路径中的控制字符和 `"<>|`
//
// 两者都只删除不替换，调用方应先拼接完整名称再净化。
// 非法字符集合取各平台并集，同一份配置在 Linux 和 Windows 上得到相同的文件名。
//
// # 目录与路径
//
//   - [EnsureDir]: 确保文件的父目录存在
//   - [EnsureDirectory]: 确保目录本身存在
//   - [SanitizePath]: 路径格式检查（空路径、空字节、".." 段、目录路径）
//
// 预定义错误变量支持 [errors.Is] 判断。
package xfile
