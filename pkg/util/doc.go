// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xfile: 文件名和路径的非法字符清理、路径检查、目录创建
//   - xproc: 进程信息查询，PID、进程名称和运行用户
package util
